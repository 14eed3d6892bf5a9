package flowgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardflow/pkg/fields"
)

func TestMergeWithSchema_RoundTripIsNoop(t *testing.T) {
	g := FromSchema([]fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Name", Required: true},
		{ID: "s1", Type: fields.FieldTypeStatement, Label: "Halfway there", Placeholder: "Progress"},
		{ID: "q2", Type: fields.FieldTypeSelect, Label: "Plan", Options: []string{"A", "B"}},
	}, nil)

	merged := MergeWithSchema(g, ToSchema(g))
	if diff := cmp.Diff(g, merged); diff != "" {
		t.Fatalf("merge with own projection must be a no-op (-want +got):\n%s", diff)
	}
}

func TestMergeWithSchema_RoundTripWithNodeMedia(t *testing.T) {
	g := FromSchema([]fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Name"},
	}, nil)
	for i := range g.Nodes {
		if g.Nodes[i].ID == "q1" {
			g.Nodes[i].Data.Media = &fields.Media{Type: "image", URL: "https://example.com/a.png"}
		}
	}

	merged := MergeWithSchema(g, ToSchema(g))
	if diff := cmp.Diff(g, merged); diff != "" {
		t.Fatalf("node media must survive the round trip (-want +got):\n%s", diff)
	}
}

func TestMergeWithSchema_RefreshesQuestionContent(t *testing.T) {
	g := FromSchema([]fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Name"},
	}, nil)

	merged := MergeWithSchema(g, []fields.Field{
		{ID: "q1", Type: fields.FieldTypeEmail, Label: "Work email", Required: true},
	})

	n, _ := merged.Node("q1")
	if n.Data.Label != "Work email" || n.Data.FieldType != fields.FieldTypeEmail {
		t.Fatalf("denormalized copies not refreshed: %+v", n.Data)
	}
	if n.Data.Field.Type != fields.FieldTypeEmail || !n.Data.Field.Required {
		t.Fatalf("field definition not refreshed: %+v", n.Data.Field)
	}

	// Topology and positions stay untouched.
	original, _ := g.Node("q1")
	if n.Position != original.Position {
		t.Fatalf("position changed: %v -> %v", original.Position, n.Position)
	}
	if len(merged.Edges) != len(g.Edges) {
		t.Fatalf("edge count changed: %d -> %d", len(g.Edges), len(merged.Edges))
	}
}

func TestMergeWithSchema_NeverAddsOrRemovesNodes(t *testing.T) {
	g := FromSchema([]fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Name"},
		{ID: "q2", Type: fields.FieldTypeText, Label: "Extra branch"},
	}, nil)

	// Stale schema: q2 is missing, q9 is unknown.
	merged := MergeWithSchema(g, []fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Full name"},
		{ID: "q9", Type: fields.FieldTypeText, Label: "Never materializes"},
	})

	if len(merged.Nodes) != len(g.Nodes) {
		t.Fatalf("node count changed: %d -> %d", len(g.Nodes), len(merged.Nodes))
	}
	if _, ok := merged.Node("q9"); ok {
		t.Fatal("merge must not add nodes")
	}
	unchanged, _ := merged.Node("q2")
	wantQ2, _ := g.Node("q2")
	if diff := cmp.Diff(wantQ2, unchanged); diff != "" {
		t.Fatalf("unmatched node must pass through untouched (-want +got):\n%s", diff)
	}
}

func TestMergeWithSchema_StatementRefresh(t *testing.T) {
	g := FromSchema([]fields.Field{
		{ID: "s1", Type: fields.FieldTypeStatement, Label: "Old text", Placeholder: "Old label"},
	}, nil)

	merged := MergeWithSchema(g, []fields.Field{
		{ID: "s1", Type: fields.FieldTypeStatement, Label: "New text", Placeholder: "New label"},
	})

	n, _ := merged.Node("s1")
	if n.Data.StatementText != "New text" || n.Data.Label != "New label" {
		t.Fatalf("statement content not refreshed: %+v", n.Data)
	}
}

func TestMergeWithSchema_StatementIgnoresTypeMismatch(t *testing.T) {
	g := FromSchema([]fields.Field{
		{ID: "s1", Type: fields.FieldTypeStatement, Label: "Keep me", Placeholder: "Label"},
	}, nil)

	// The schema entry with the same id is a question now; a statement node
	// only refreshes from a statement entry.
	merged := MergeWithSchema(g, []fields.Field{
		{ID: "s1", Type: fields.FieldTypeText, Label: "Not a statement"},
	})

	n, _ := merged.Node("s1")
	if n.Data.StatementText != "Keep me" {
		t.Fatalf("statement node refreshed from a non-statement entry: %+v", n.Data)
	}
}

func TestMergeWithSchema_DoesNotMutateInput(t *testing.T) {
	g := FromSchema([]fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Name"},
	}, nil)

	_ = MergeWithSchema(g, []fields.Field{
		{ID: "q1", Type: fields.FieldTypeEmail, Label: "Changed"},
	})

	n, _ := g.Node("q1")
	if n.Data.Label != "Name" || n.Data.Field.Type != fields.FieldTypeText {
		t.Fatalf("merge mutated its input graph: %+v", n.Data)
	}
}
