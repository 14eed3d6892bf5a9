package flowgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardflow/pkg/fields"
)

func TestFromSchema_CanonicalLayout(t *testing.T) {
	schema := []fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Name", Required: true},
		{ID: "q2", Type: fields.FieldTypeSelect, Label: "Plan", Options: []string{"A", "B"}, Required: true},
	}
	g := FromSchema(schema, nil)

	wantPositions := map[string]Position{
		"start": {X: 400, Y: 0},
		"q1":    {X: 400, Y: 100},
		"q2":    {X: 400, Y: 220},
		"end":   {X: 400, Y: 340},
	}
	if len(g.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if diff := cmp.Diff(wantPositions[n.ID], n.Position); diff != "" {
			t.Fatalf("node %q position mismatch (-want +got):\n%s", n.ID, diff)
		}
	}

	wantEdges := []string{"e-start-q1", "e-q1-q2", "e-q2-end"}
	if len(g.Edges) != len(wantEdges) {
		t.Fatalf("expected %d edges, got %d", len(wantEdges), len(g.Edges))
	}
	for i, e := range g.Edges {
		if e.ID != wantEdges[i] {
			t.Fatalf("edge %d: want id %q, got %q", i, wantEdges[i], e.ID)
		}
	}

	if errs := Validate(g); len(errs) != 0 {
		t.Fatalf("generated graph must validate, got %v", errs)
	}
}

func TestFromSchema_CountsAndValidity(t *testing.T) {
	for _, size := range []int{0, 1, 5} {
		schema := make([]fields.Field, size)
		for i := range schema {
			schema[i] = fields.Field{
				ID:    string(rune('a' + i)),
				Type:  fields.FieldTypeText,
				Label: "Q",
			}
		}
		g := FromSchema(schema, nil)
		if len(g.Nodes) != size+2 {
			t.Fatalf("size %d: expected %d nodes, got %d", size, size+2, len(g.Nodes))
		}
		if len(g.Edges) != size+1 {
			t.Fatalf("size %d: expected %d edges, got %d", size, size+1, len(g.Edges))
		}
		if errs := Validate(g); len(errs) != 0 {
			t.Fatalf("size %d: expected valid graph, got %v", size, errs)
		}
	}
}

func TestFromSchema_DenormalizedCopiesInSync(t *testing.T) {
	g := FromSchema([]fields.Field{
		{ID: "q1", Type: fields.FieldTypeEmail, Label: "Email"},
	}, nil)

	n, ok := g.Node("q1")
	if !ok {
		t.Fatal("missing q1 node")
	}
	if n.Data.FieldID != "q1" || n.Data.Label != "Email" || n.Data.FieldType != fields.FieldTypeEmail {
		t.Fatalf("denormalized copies out of sync: %+v", n.Data)
	}
}

func TestBuildFromSchemaAndEdges_FollowsDiscoveryOrder(t *testing.T) {
	schema := []fields.Field{
		{ID: "q2", Type: fields.FieldTypeText, Label: "Second"},
		{ID: "q1", Type: fields.FieldTypeText, Label: "First"},
	}
	g := BuildFromSchemaAndEdges(schema, []EdgeSpec{
		{Source: "start", Target: "q1"},
		{Source: "q1", Target: "q2"},
		{Source: "q2", Target: "end"},
	}, nil)

	// Edge discovery, not schema order, decides layout.
	wantOrder := []string{"start", "q1", "q2", "end"}
	for i, n := range g.Nodes {
		if n.ID != wantOrder[i] {
			t.Fatalf("node %d: want %q, got %q", i, wantOrder[i], n.ID)
		}
	}
	if errs := Validate(g); len(errs) != 0 {
		t.Fatalf("expected valid graph, got %v", errs)
	}
}

func TestBuildFromSchemaAndEdges_PartialEdgeListStillValidates(t *testing.T) {
	schema := []fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Q1"},
		{ID: "q2", Type: fields.FieldTypeText, Label: "Q2"},
	}
	cases := []struct {
		name  string
		edges []EdgeSpec
	}{
		{name: "no edges at all", edges: nil},
		{name: "start chain never reaches end", edges: []EdgeSpec{
			{Source: "start", Target: "q1"},
			{Source: "q1", Target: "q2"},
		}},
		{name: "edges referencing unknown nodes", edges: []EdgeSpec{
			{Source: "start", Target: "q1"},
			{Source: "q1", Target: "ghost"},
			{Source: "ghost", Target: "end"},
		}},
		{name: "island disconnected from start", edges: []EdgeSpec{
			{Source: "q1", Target: "q2"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := BuildFromSchemaAndEdges(schema, tc.edges, nil)
			if errs := Validate(g); len(errs) != 0 {
				t.Fatalf("builder output must always validate, got %v", errs)
			}
			if len(g.Nodes) != len(schema)+2 {
				t.Fatalf("expected every field to become a node, got %d nodes", len(g.Nodes))
			}
		})
	}
}

func TestBuildFromSchemaAndEdges_ParallelEdgeIDs(t *testing.T) {
	schema := []fields.Field{
		{ID: "q1", Type: fields.FieldTypeText, Label: "Q1"},
	}
	g := BuildFromSchemaAndEdges(schema, []EdgeSpec{
		{Source: "start", Target: "q1"},
		{Source: "q1", Target: "end"},
		{Source: "q1", Target: "end"},
		{Source: "q1", Target: "end"},
	}, nil)

	var ids []string
	for _, e := range g.Edges {
		if e.Source == "q1" && e.Target == "end" {
			ids = append(ids, e.ID)
		}
	}
	want := []string{"e-q1-end", "e-q1-end-1", "e-q1-end-2"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("parallel edge ids mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFromSchemaAndEdges_ViewportCarried(t *testing.T) {
	vp := &Viewport{X: 10, Y: 20, Zoom: 1.5}
	g := BuildFromSchemaAndEdges(nil, nil, vp)
	if g.Viewport == nil || g.Viewport.Zoom != 1.5 {
		t.Fatalf("expected viewport carried through, got %+v", g.Viewport)
	}
}

func TestBuildFromSchemaAndEdges_StatementNodes(t *testing.T) {
	schema := []fields.Field{
		{ID: "intro", Type: fields.FieldTypeStatement, Label: "Read me first", Placeholder: "Intro"},
	}
	g := BuildFromSchemaAndEdges(schema, []EdgeSpec{
		{Source: "start", Target: "intro"},
		{Source: "intro", Target: "end"},
	}, nil)

	n, ok := g.Node("intro")
	if !ok {
		t.Fatal("missing statement node")
	}
	if n.Type != NodeStatement {
		t.Fatalf("expected statement node, got %q", n.Type)
	}
	if n.Data.StatementText != "Read me first" || n.Data.Label != "Intro" {
		t.Fatalf("statement payload mismatch: %+v", n.Data)
	}
}
