package flowgraph

import (
	"fmt"
	"math"

	"github.com/goliatone/go-cardflow/pkg/fields"
)

// Validate checks every structural invariant of a flow graph and returns a
// human-readable description of each violation. An empty result means the
// graph is valid. Validate never panics and never stops at the first
// problem, so an editor can surface the full list at once; only the
// reachability check is gated, on the start/end shape being correct, to
// avoid cascading noise.
func Validate(g Graph) []string {
	var errs []string

	if g.Nodes == nil {
		errs = append(errs, "graph has no nodes array")
	}
	if g.Edges == nil {
		errs = append(errs, "graph has no edges array")
	}
	if g.Nodes == nil {
		return errs
	}

	ids := make(map[string]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			errs = append(errs, fmt.Sprintf("node %d: missing id", i))
			continue
		}
		if ids[n.ID] {
			errs = append(errs, fmt.Sprintf("node %d: duplicate id %q", i, n.ID))
		}
		ids[n.ID] = true

		switch n.Type {
		case NodeStart, NodeEnd, NodeQuestion, NodeStatement:
		default:
			errs = append(errs, fmt.Sprintf("node %q: invalid type %q", n.ID, n.Type))
		}

		if !finite(n.Position.X) || !finite(n.Position.Y) {
			errs = append(errs, fmt.Sprintf("node %q: position must be numeric", n.ID))
		}

		errs = append(errs, validateNodeData(n)...)
	}

	sentinelErrs := validateSentinels(g.Nodes)
	errs = append(errs, sentinelErrs...)

	for i, e := range g.Edges {
		switch {
		case e.Source == "":
			errs = append(errs, fmt.Sprintf("edge %d: missing source", i))
		case !ids[e.Source]:
			errs = append(errs, fmt.Sprintf("edge %d: source references unknown node %q", i, e.Source))
		}
		switch {
		case e.Target == "":
			errs = append(errs, fmt.Sprintf("edge %d: missing target", i))
		case !ids[e.Target]:
			errs = append(errs, fmt.Sprintf("edge %d: target references unknown node %q", i, e.Target))
		}
	}

	// Reachability is only meaningful once the start/end shape holds.
	if len(sentinelErrs) == 0 {
		order := bfs(adjacency(g.Edges), StartNodeID, EndNodeID)
		reached := false
		for _, id := range order {
			if id == EndNodeID {
				reached = true
				break
			}
		}
		if !reached {
			errs = append(errs, "end node is not reachable from start")
		}
	}

	return errs
}

// ValidateConditions syntax-checks every edge condition and field display
// rule in the graph. Kept separate from Validate: condition expressions are
// consumed by the fill-time runtime, and authoring tools opt into linting
// them.
func ValidateConditions(g Graph, check func(rule string) error) []string {
	if check == nil {
		return nil
	}
	var errs []string
	for _, e := range g.Edges {
		if e.Data == nil || e.Data.Condition == "" {
			continue
		}
		if err := check(e.Data.Condition); err != nil {
			errs = append(errs, fmt.Sprintf("edge %q: invalid condition: %v", e.ID, err))
		}
	}
	for _, n := range g.Nodes {
		if n.Data.Field == nil || n.Data.Field.DisplayIf == "" {
			continue
		}
		if err := check(n.Data.Field.DisplayIf); err != nil {
			errs = append(errs, fmt.Sprintf("node %q: invalid display rule: %v", n.ID, err))
		}
	}
	return errs
}

func validateNodeData(n Node) []string {
	var errs []string
	switch n.Type {
	case NodeQuestion:
		field := n.Data.Field
		if field == nil {
			errs = append(errs, fmt.Sprintf("question node %q: missing field definition", n.ID))
			break
		}
		if field.ID == "" {
			errs = append(errs, fmt.Sprintf("question node %q: field is missing an id", n.ID))
		}
		if !fields.IsInputType(field.Type) {
			errs = append(errs, fmt.Sprintf("question node %q: invalid field type %q", n.ID, field.Type))
		}
	case NodeStatement:
		if n.Data.FieldID == "" {
			errs = append(errs, fmt.Sprintf("statement node %q: missing fieldId", n.ID))
		}
		if n.Data.StatementText == "" {
			errs = append(errs, fmt.Sprintf("statement node %q: missing statementText", n.ID))
		}
	}
	return errs
}

// validateSentinels enforces the reserved start/end shape: exactly one node
// of each sentinel type, carrying the reserved id, and no other node
// claiming either id.
func validateSentinels(nodes []Node) []string {
	var errs []string
	starts, ends := 0, 0
	for _, n := range nodes {
		switch n.Type {
		case NodeStart:
			starts++
			if n.ID != StartNodeID {
				errs = append(errs, fmt.Sprintf("start node must use reserved id %q, found %q", StartNodeID, n.ID))
			}
		case NodeEnd:
			ends++
			if n.ID != EndNodeID {
				errs = append(errs, fmt.Sprintf("end node must use reserved id %q, found %q", EndNodeID, n.ID))
			}
		default:
			if n.ID == StartNodeID || n.ID == EndNodeID {
				errs = append(errs, fmt.Sprintf("node id %q is reserved for the %s node", n.ID, n.ID))
			}
		}
	}
	if starts != 1 {
		errs = append(errs, fmt.Sprintf("expected exactly one start node, found %d", starts))
	}
	if ends != 1 {
		errs = append(errs, fmt.Sprintf("expected exactly one end node, found %d", ends))
	}
	return errs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
