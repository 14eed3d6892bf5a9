package flowgraph

import "github.com/goliatone/go-cardflow/pkg/fields"

// BuildFromSchemaAndEdges expands the reduced representation, an ordered
// field list plus bare source/target pairs, into a canonical graph. This is
// the only sanctioned path for externally produced content (AI generation,
// minimal imports): raw node shapes from outside the system are never
// accepted, so the reserved ids, position scheme and payload shape cannot be
// corrupted by an external producer.
//
// Node order follows breadth-first discovery over the supplied edge specs,
// with fields the edge list never reaches appended in schema order so no
// content is dropped. Positions are always synthesized; this path has no
// prior layout to preserve. The output is guaranteed to pass Validate even
// when the edge list is partial or disconnected: edges referencing unknown
// ids are dropped, and a fallback edge keeps the end node reachable.
func BuildFromSchemaAndEdges(schema []fields.Field, edges []EdgeSpec, viewport *Viewport) Graph {
	byID := make(map[string]fields.Field, len(schema))
	for _, f := range schema {
		byID[f.ID] = f
	}

	// Discovery order over the reduced edge list, then whatever the edge
	// list missed, in schema order.
	ordered := make([]string, 0, len(schema))
	seen := make(map[string]bool, len(schema))
	for _, id := range bfs(specAdjacency(edges), StartNodeID, EndNodeID) {
		if id == StartNodeID || id == EndNodeID {
			continue
		}
		if _, ok := byID[id]; !ok {
			continue
		}
		ordered = append(ordered, id)
		seen[id] = true
	}
	for _, f := range schema {
		if !seen[f.ID] {
			ordered = append(ordered, f.ID)
			seen[f.ID] = true
		}
	}

	g := Graph{
		Nodes:    make([]Node, 0, len(ordered)+2),
		Edges:    []Edge{},
		Viewport: viewport,
	}
	g.Nodes = append(g.Nodes, Node{ID: StartNodeID, Type: NodeStart, Position: startPosition()})
	for i, id := range ordered {
		g.Nodes = append(g.Nodes, contentNode(byID[id], contentPosition(i)))
	}
	g.Nodes = append(g.Nodes, Node{ID: EndNodeID, Type: NodeEnd, Position: contentPosition(len(ordered))})

	alloc := newEdgeIDAllocator()
	for _, spec := range edges {
		if !validEndpoint(spec.Source, seen) || !validEndpoint(spec.Target, seen) {
			continue
		}
		g.Edges = append(g.Edges, Edge{
			ID:     alloc.next(spec.Source, spec.Target),
			Source: spec.Source,
			Target: spec.Target,
		})
	}

	ensureEndReachable(&g, alloc)
	return g
}

// FromSchema builds the canonical straight-line graph for a form that only
// ever existed as a flat schema: start, one node per field in order, end,
// one unconditional edge between each consecutive pair. Guarantees every
// schema-only form can be opened in the graph editor without manual
// reconstruction.
func FromSchema(schema []fields.Field, viewport *Viewport) Graph {
	g := Graph{
		Nodes:    make([]Node, 0, len(schema)+2),
		Edges:    make([]Edge, 0, len(schema)+1),
		Viewport: viewport,
	}
	g.Nodes = append(g.Nodes, Node{ID: StartNodeID, Type: NodeStart, Position: startPosition()})
	for i, f := range schema {
		g.Nodes = append(g.Nodes, contentNode(f, contentPosition(i)))
	}
	g.Nodes = append(g.Nodes, Node{ID: EndNodeID, Type: NodeEnd, Position: contentPosition(len(schema))})

	previous := StartNodeID
	for _, f := range schema {
		g.Edges = append(g.Edges, Edge{ID: EdgeID(previous, f.ID, 1), Source: previous, Target: f.ID})
		previous = f.ID
	}
	g.Edges = append(g.Edges, Edge{ID: EdgeID(previous, EndNodeID, 1), Source: previous, Target: EndNodeID})
	return g
}

func contentNode(f fields.Field, pos Position) Node {
	if f.Type == fields.FieldTypeStatement {
		n := Node{
			ID:   f.ID,
			Type: NodeStatement,
			Data: NodeData{
				FieldID:       f.ID,
				Label:         f.Placeholder,
				StatementText: f.Label,
			},
			Position: pos,
		}
		if f.Media != nil {
			media := *f.Media
			n.Data.Media = &media
		}
		return n
	}

	field := f.Clone()
	n := Node{
		ID:       f.ID,
		Type:     NodeQuestion,
		Data:     NodeData{Field: &field},
		Position: pos,
	}
	Normalize(&n)
	return n
}

func validEndpoint(id string, content map[string]bool) bool {
	return id == StartNodeID || id == EndNodeID || content[id]
}

// ensureEndReachable appends one fallback edge when the supplied edge list
// never connects start to end: from the deepest node breadth-first can reach
// (start itself when nothing is wired) straight to end.
func ensureEndReachable(g *Graph, alloc *edgeIDAllocator) {
	order := bfs(adjacency(g.Edges), StartNodeID, EndNodeID)
	last := StartNodeID
	for _, id := range order {
		if id == EndNodeID {
			return
		}
		last = id
	}
	g.Edges = append(g.Edges, Edge{ID: alloc.next(last, EndNodeID), Source: last, Target: EndNodeID})
}
