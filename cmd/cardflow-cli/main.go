package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/goliatone/go-cardflow/pkg/condition"
	"github.com/goliatone/go-cardflow/pkg/envelope"
	"github.com/goliatone/go-cardflow/pkg/flowgraph"
	"github.com/goliatone/go-cardflow/pkg/openapi"
	"github.com/goliatone/go-cardflow/pkg/preview"
)

func main() {
	input := flag.String("input", "", "envelope file (json or yaml), or free text with -extract")
	extract := flag.Bool("extract", false, "scan the input as free text for an embedded envelope")
	openapiDoc := flag.String("openapi", "", "OpenAPI document to import fields from")
	operation := flag.String("operation", "", "operationId to import when -openapi is set")
	schemaOut := flag.String("schema", "", "write the linear field schema to this file (stdout if \"-\")")
	graphOut := flag.String("graph", "", "write the canonical graph to this file (stdout if \"-\")")
	runPreview := flag.Bool("preview", false, "walk the form interactively in the terminal")
	export := flag.Bool("export", false, "stamp and print the envelope as an export document")
	flag.Parse()

	env, err := loadEnvelope(*input, *extract, *openapiDoc, *operation)
	if err != nil {
		log.Fatalf("Failed to load input: %v", err)
	}

	envelope.Sanitize(env)
	env.EnsureFieldIDs()
	graph := env.Graph()

	if problems := flowgraph.Validate(graph); len(problems) > 0 {
		fmt.Fprintln(os.Stderr, "graph is invalid:")
		for _, problem := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", problem)
		}
		os.Exit(1)
	}
	if problems := flowgraph.ValidateConditions(graph, condition.Check); len(problems) > 0 {
		fmt.Fprintln(os.Stderr, "graph has invalid conditions:")
		for _, problem := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", problem)
		}
		os.Exit(1)
	}

	schema := flowgraph.ToSchema(graph)

	if *schemaOut != "" {
		if err := writeJSON(*schemaOut, schema); err != nil {
			log.Fatalf("Failed to write schema: %v", err)
		}
	}
	if *graphOut != "" {
		if err := writeJSON(*graphOut, graph); err != nil {
			log.Fatalf("Failed to write graph: %v", err)
		}
	}

	if *export {
		env.FlowchartGraph = &graph
		env.Schema = schema
		env.StampExport(time.Now())
		out, err := envelope.Marshal(env)
		if err != nil {
			log.Fatalf("Failed to export envelope: %v", err)
		}
		fmt.Println(string(out))
	}

	if *runPreview {
		answers, err := preview.Run(schema, preview.NewSurveyDriver())
		if err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
		out, _ := json.MarshalIndent(answers, "", "  ")
		fmt.Println(string(out))
	}

	if *schemaOut == "" && *graphOut == "" && !*export && !*runPreview {
		fmt.Println("graph is valid")
	}
}

func loadEnvelope(input string, extract bool, openapiDoc, operation string) (*envelope.Envelope, error) {
	if openapiDoc != "" {
		raw, err := os.ReadFile(openapiDoc)
		if err != nil {
			return nil, err
		}
		schema, err := openapi.FieldsFromDocument(context.Background(), raw, operation)
		if err != nil {
			return nil, err
		}
		return &envelope.Envelope{Schema: schema}, nil
	}

	if input == "" {
		return nil, fmt.Errorf("no input: pass -input or -openapi")
	}
	raw, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	if extract {
		env, ok := envelope.ExtractFromText(string(raw))
		if !ok {
			return nil, fmt.Errorf("no envelope found in %s", input)
		}
		return env, nil
	}
	return envelope.Parse(raw)
}

func writeJSON(path string, value any) error {
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	if path == "-" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Printf("Written to %s\n", path)
	return nil
}
