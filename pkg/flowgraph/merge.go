package flowgraph

import "github.com/goliatone/go-cardflow/pkg/fields"

// MergeWithSchema refreshes the content payload of an authored graph from a
// newer flat schema and returns the result as a new graph. The graph is the
// source of truth for topology: no node or edge is ever added or removed
// here, positions are untouched, and nodes the schema does not know about
// pass through unchanged. The asymmetry is deliberate: a content-only edit
// made elsewhere in the system propagates into the graph without an editor
// session open, while a branch the schema has never seen is never silently
// dropped.
func MergeWithSchema(g Graph, schema []fields.Field) Graph {
	byID := make(map[string]fields.Field, len(schema))
	for _, f := range schema {
		byID[f.ID] = f
	}

	out := g.Clone()
	for i := range out.Nodes {
		n := &out.Nodes[i]
		switch n.Type {
		case NodeQuestion:
			f, ok := byID[n.Data.FieldID]
			if !ok {
				continue
			}
			field := f.Clone()
			// Field-level media in a projected schema was synthesized by the
			// linearizer from this node's own media; keeping it would
			// duplicate what the node already carries.
			if n.Data.Media != nil {
				field.Media = nil
			}
			n.Data.Field = &field
			Normalize(n)
		case NodeStatement:
			f, ok := byID[n.Data.FieldID]
			if !ok || f.Type != fields.FieldTypeStatement {
				continue
			}
			n.Data.StatementText = f.Label
			n.Data.Label = f.Placeholder
		}
	}
	return out
}
