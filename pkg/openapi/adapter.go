// Package openapi imports card-form fields from an OpenAPI document. An
// operation's JSON request body becomes an ordered field list that
// flowgraph.FromSchema can turn into a canonical graph, letting an existing
// API seed a card form.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-cardflow/pkg/fields"
)

// ErrOperationNotFound is returned when the document does not define the
// requested operationId.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// FieldsFromDocument loads an OpenAPI document and converts the request body
// of the operation with the given operationId into a linear field schema.
// Properties are emitted in sorted name order so the result is stable across
// loads.
func FieldsFromDocument(ctx context.Context, raw []byte, operationID string) ([]fields.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi: %w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(operation)
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no json request body", operationID)
	}
	return fieldsFromSchema(schema), nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content.Get("application/json")
	if content == nil || content.Schema == nil {
		return nil
	}
	return content.Schema.Value
}

func fieldsFromSchema(schema *openapi3.Schema) []fields.Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]fields.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		out = append(out, fieldFromProperty(name, ref.Value, required[name]))
	}
	return out
}

func fieldFromProperty(name string, prop *openapi3.Schema, required bool) fields.Field {
	field := fields.Field{
		ID:       name,
		Type:     inputType(prop),
		Label:    label(name, prop),
		Required: required,
	}
	if len(prop.Enum) > 0 {
		field.Options = make([]string, 0, len(prop.Enum))
		for _, value := range prop.Enum {
			field.Options = append(field.Options, fmt.Sprint(value))
		}
	}
	if field.Type == fields.FieldTypeRadio && len(field.Options) == 0 {
		field.Options = []string{"Yes", "No"}
	}
	return field
}

func inputType(prop *openapi3.Schema) fields.FieldType {
	if len(prop.Enum) > 0 {
		return fields.FieldTypeSelect
	}
	switch {
	case prop.Type.Is(openapi3.TypeBoolean):
		return fields.FieldTypeRadio
	case prop.Type.Is(openapi3.TypeInteger), prop.Type.Is(openapi3.TypeNumber):
		return fields.FieldTypeNumber
	default:
		switch prop.Format {
		case "email":
			return fields.FieldTypeEmail
		case "date", "date-time":
			return fields.FieldTypeDate
		}
		if prop.MaxLength != nil && *prop.MaxLength > 255 {
			return fields.FieldTypeTextarea
		}
		return fields.FieldTypeText
	}
}

func label(name string, prop *openapi3.Schema) string {
	if strings.TrimSpace(prop.Title) != "" {
		return strings.TrimSpace(prop.Title)
	}
	cleaned := strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(name))
	if cleaned == "" {
		return name
	}
	return strings.ToUpper(cleaned[:1]) + cleaned[1:]
}
