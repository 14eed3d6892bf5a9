package flowgraph

import "github.com/goliatone/go-cardflow/pkg/fields"

// Reserved node ids. The single entry node MUST use StartNodeID and the
// single exit node MUST use EndNodeID; no other node may claim either.
const (
	StartNodeID = "start"
	EndNodeID   = "end"
)

// NodeType is the closed set of vertex kinds in a card-form flow graph.
type NodeType string

const (
	NodeStart     NodeType = "start"
	NodeEnd       NodeType = "end"
	NodeQuestion  NodeType = "question"
	NodeStatement NodeType = "statement"
)

// Synthesized layout constants. Builders place every generated node in a
// single column; authored graphs carry their own positions and never pass
// through here.
const (
	layoutColumnX  = 400.0
	layoutStartY   = 0.0
	layoutFirstY   = 100.0
	layoutRowStepY = 120.0
)

// Position holds authoring-editor coordinates. Carried losslessly; never
// derived from content.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Viewport is the editor's pan/zoom state.
type Viewport struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Zoom float64 `json:"zoom" yaml:"zoom"`
}

// NodeData is the variant payload of a node. Start and end nodes leave every
// field empty. Question nodes carry Field as the authoritative definition
// plus denormalized FieldID/Label/FieldType copies for editor convenience;
// Normalize keeps the copies in sync. Statement nodes carry FieldID, Label
// and StatementText, with IsSuccessCard marking post-submission cards.
type NodeData struct {
	FieldID       string           `json:"fieldId,omitempty" yaml:"fieldId,omitempty"`
	Label         string           `json:"label,omitempty" yaml:"label,omitempty"`
	FieldType     fields.FieldType `json:"fieldType,omitempty" yaml:"fieldType,omitempty"`
	Field         *fields.Field    `json:"field,omitempty" yaml:"field,omitempty"`
	StatementText string           `json:"statementText,omitempty" yaml:"statementText,omitempty"`
	IsSuccessCard bool             `json:"isSuccessCard,omitempty" yaml:"isSuccessCard,omitempty"`
	Media         *fields.Media    `json:"media,omitempty" yaml:"media,omitempty"`
}

// Node is a typed vertex in the flow graph.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Type     NodeType `json:"type" yaml:"type"`
	Position Position `json:"position" yaml:"position"`
	Data     NodeData `json:"data" yaml:"data"`
}

// EdgeData carries the optional condition and label of an edge. An empty
// Condition means the edge is unconditional.
type EdgeData struct {
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string    `json:"id" yaml:"id"`
	Source string    `json:"source" yaml:"source"`
	Target string    `json:"target" yaml:"target"`
	Data   *EdgeData `json:"data,omitempty" yaml:"data,omitempty"`
}

// EdgeSpec is the reduced edge representation external producers supply:
// endpoints only, no id, no payload.
type EdgeSpec struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Graph is the authoritative representation of a card form's topology,
// branching and per-edge conditions. The linear field schema is a projection
// of it, never the other way around.
type Graph struct {
	Nodes    []Node    `json:"nodes" yaml:"nodes"`
	Edges    []Edge    `json:"edges" yaml:"edges"`
	Viewport *Viewport `json:"viewport,omitempty" yaml:"viewport,omitempty"`
}

// Clone returns a deep copy of the graph. Mutating operations return clones
// so callers can treat every Graph value as immutable.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = cloneNode(n)
	}
	for i, e := range g.Edges {
		out.Edges[i] = cloneEdge(e)
	}
	if g.Viewport != nil {
		vp := *g.Viewport
		out.Viewport = &vp
	}
	return out
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

func cloneNode(n Node) Node {
	out := n
	if n.Data.Field != nil {
		field := n.Data.Field.Clone()
		out.Data.Field = &field
	}
	if n.Data.Media != nil {
		media := *n.Data.Media
		out.Data.Media = &media
	}
	return out
}

func cloneEdge(e Edge) Edge {
	out := e
	if e.Data != nil {
		data := *e.Data
		out.Data = &data
	}
	return out
}

// adjacency builds a source -> ordered targets map. Shared by the validator's
// reachability check, the linearizer and the builders so every traversal sees
// the same edge ordering.
func adjacency(edges []Edge) map[string][]string {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

func specAdjacency(specs []EdgeSpec) map[string][]string {
	adj := make(map[string][]string, len(specs))
	for _, s := range specs {
		adj[s.Source] = append(adj[s.Source], s.Target)
	}
	return adj
}

// bfs walks the adjacency map from start in breadth-first order, visiting
// each node at most once and not expanding past stop. Returns discovery
// order including start (and stop, when reached).
func bfs(adj map[string][]string, start, stop string) []string {
	visited := map[string]bool{start: true}
	order := []string{start}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == stop {
			continue
		}
		for _, next := range adj[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
			queue = append(queue, next)
		}
	}
	return order
}
