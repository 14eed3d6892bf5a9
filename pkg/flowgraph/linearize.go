package flowgraph

import "github.com/goliatone/go-cardflow/pkg/fields"

// ToSchema projects a graph onto the flat, order-significant field list the
// non-branching form renderer consumes. Callers should validate the graph
// first; on a malformed graph the projection is best-effort and skips
// anything it cannot resolve.
//
// Traversal is breadth-first from the start node, each node visited at most
// once, stopping at (but not through) the end node. For a linear graph the
// output order equals the authored top-to-bottom order; for a branching
// graph it is one deterministic linearization, first discovered first
// emitted. Success cards are excluded: they belong to the post-submission
// flow only.
func ToSchema(g Graph) []fields.Field {
	byID := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	schema := []fields.Field{}
	for _, id := range bfs(adjacency(g.Edges), StartNodeID, EndNodeID) {
		n, ok := byID[id]
		if !ok {
			continue
		}
		switch n.Type {
		case NodeQuestion:
			if n.Data.Field == nil {
				continue
			}
			field := n.Data.Field.Clone()
			// The denormalized copy wins over the full definition so a
			// partially synced editor state still projects what the editor
			// shows.
			if n.Data.FieldType != "" {
				field.Type = n.Data.FieldType
			}
			if n.Data.Media != nil {
				media := *n.Data.Media
				field.Media = &media
			}
			schema = append(schema, field)
		case NodeStatement:
			if n.Data.IsSuccessCard {
				continue
			}
			field := fields.Field{
				ID:          n.Data.FieldID,
				Type:        fields.FieldTypeStatement,
				Label:       n.Data.StatementText,
				Placeholder: n.Data.Label,
				Required:    false,
			}
			if n.Data.Media != nil {
				media := *n.Data.Media
				field.Media = &media
			}
			schema = append(schema, field)
		}
	}
	return schema
}
