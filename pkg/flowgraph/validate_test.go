package flowgraph

import (
	"strings"
	"testing"

	"github.com/goliatone/go-cardflow/pkg/fields"
)

func validGraph() Graph {
	return FromSchema([]fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Name", Required: true},
		{ID: "s1", Type: fields.FieldTypeStatement, Label: "Welcome aboard", Placeholder: "Intro"},
	}, nil)
}

func TestValidate_ValidGraph(t *testing.T) {
	if errs := Validate(validGraph()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_MissingArrays(t *testing.T) {
	errs := Validate(Graph{})
	if len(errs) == 0 {
		t.Fatal("expected errors for empty graph")
	}
	if !containsError(errs, "no nodes array") {
		t.Fatalf("expected nodes array error, got %v", errs)
	}
}

func TestValidate_NodeProblems(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Graph)
		message string
	}{
		{
			name:    "missing node id",
			mutate:  func(g *Graph) { g.Nodes[1].ID = "" },
			message: "missing id",
		},
		{
			name: "duplicate node id",
			mutate: func(g *Graph) {
				g.Nodes = append(g.Nodes, g.Nodes[1])
			},
			message: "duplicate id",
		},
		{
			name:    "invalid node type",
			mutate:  func(g *Graph) { g.Nodes[1].Type = "decision" },
			message: `invalid type "decision"`,
		},
		{
			name:    "question without field",
			mutate:  func(g *Graph) { g.Nodes[1].Data.Field = nil },
			message: "missing field definition",
		},
		{
			name: "question with bad field type",
			mutate: func(g *Graph) {
				g.Nodes[1].Data.Field.Type = "slider"
			},
			message: `invalid field type "slider"`,
		},
		{
			name: "statement without text",
			mutate: func(g *Graph) {
				g.Nodes[2].Data.StatementText = ""
			},
			message: "missing statementText",
		},
		{
			name: "reserved id on content node",
			mutate: func(g *Graph) {
				g.Nodes[1].ID = "end"
				g.Edges = nil
				g.Edges = []Edge{
					{ID: "e-start-end", Source: "start", Target: "end"},
				}
			},
			message: "reserved",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := validGraph()
			tc.mutate(&g)
			errs := Validate(g)
			if !containsError(errs, tc.message) {
				t.Fatalf("expected error containing %q, got %v", tc.message, errs)
			}
		})
	}
}

func TestValidate_MultipleStartNodes(t *testing.T) {
	g := validGraph()
	extra := g.Nodes[0]
	extra.ID = "start2"
	g.Nodes = append(g.Nodes, extra)

	errs := Validate(g)
	if !containsError(errs, "exactly one start node, found 2") {
		t.Fatalf("expected multiple-start error, got %v", errs)
	}
	// The edges are perfectly formed; no edge error should appear.
	for _, e := range errs {
		if strings.Contains(e, "edge") {
			t.Fatalf("unexpected edge error: %v", errs)
		}
	}
}

func TestValidate_DanglingEdgeReferences(t *testing.T) {
	g := validGraph()
	g.Edges = append(g.Edges, Edge{ID: "e-q1-ghost", Source: "q1", Target: "ghost"})
	g.Edges = append(g.Edges, Edge{ID: "broken", Source: "", Target: "q1"})

	errs := Validate(g)
	if !containsError(errs, `target references unknown node "ghost"`) {
		t.Fatalf("expected dangling target error, got %v", errs)
	}
	if !containsError(errs, "missing source") {
		t.Fatalf("expected missing source error, got %v", errs)
	}
}

func TestValidate_DisconnectedEnd(t *testing.T) {
	g := validGraph()
	// Cut the graph after q1: start -> q1 remains, end is an island.
	g.Edges = []Edge{{ID: "e-start-q1", Source: "start", Target: "q1"}}

	errs := Validate(g)
	if len(errs) != 1 {
		t.Fatalf("expected exactly the disconnection error, got %v", errs)
	}
	if !containsError(errs, "not reachable") {
		t.Fatalf("expected reachability error, got %v", errs)
	}
}

func TestValidate_ReachabilitySkippedWhenShapeBroken(t *testing.T) {
	g := validGraph()
	g.Nodes = g.Nodes[1:] // drop the start node

	errs := Validate(g)
	if containsError(errs, "not reachable") {
		t.Fatalf("reachability should be skipped without a start node, got %v", errs)
	}
	if !containsError(errs, "exactly one start node, found 0") {
		t.Fatalf("expected missing start error, got %v", errs)
	}
}

func TestValidateConditions(t *testing.T) {
	g := validGraph()
	g.Edges[0].Data = &EdgeData{Condition: `plan == "pro"`}
	g.Edges[1].Data = &EdgeData{Condition: "age >= &&"}

	check := func(rule string) error {
		if strings.Contains(rule, "&&") && strings.HasSuffix(rule, "&&") {
			return errInvalidRule
		}
		return nil
	}
	errs := ValidateConditions(g, check)
	if len(errs) != 1 || !strings.Contains(errs[0], "invalid condition") {
		t.Fatalf("expected one condition error, got %v", errs)
	}
}

var errInvalidRule = errString("invalid rule")

type errString string

func (e errString) Error() string { return string(e) }

func containsError(errs []string, fragment string) bool {
	for _, e := range errs {
		if strings.Contains(e, fragment) {
			return true
		}
	}
	return false
}
