package flowgraph

import "fmt"

// Normalize refreshes the denormalized FieldID/Label/FieldType copies on a
// question node from its authoritative Field definition. Every mutator that
// touches Data.Field goes through here so the copies cannot drift.
func Normalize(n *Node) {
	if n == nil || n.Type != NodeQuestion || n.Data.Field == nil {
		return
	}
	n.Data.FieldID = n.Data.Field.ID
	n.Data.Label = n.Data.Field.Label
	n.Data.FieldType = n.Data.Field.Type
}

// EdgeID synthesizes the canonical edge id for a source/target pair. The
// occurrence count disambiguates parallel edges: the first occurrence keeps
// the bare id, repeats append -1, -2, and so on.
func EdgeID(source, target string, occurrence int) string {
	if occurrence <= 1 {
		return fmt.Sprintf("e-%s-%s", source, target)
	}
	return fmt.Sprintf("e-%s-%s-%d", source, target, occurrence-1)
}

// edgeIDAllocator hands out canonical, collision-free edge ids across one
// graph construction pass.
type edgeIDAllocator struct {
	seen map[string]int
}

func newEdgeIDAllocator() *edgeIDAllocator {
	return &edgeIDAllocator{seen: make(map[string]int)}
}

func (a *edgeIDAllocator) next(source, target string) string {
	key := source + "\x00" + target
	a.seen[key]++
	return EdgeID(source, target, a.seen[key])
}

// contentPosition returns the synthesized position for the i-th generated
// content node (0-based): fixed column, rows stepping down from y=100.
func contentPosition(i int) Position {
	return Position{X: layoutColumnX, Y: layoutFirstY + layoutRowStepY*float64(i)}
}

func startPosition() Position {
	return Position{X: layoutColumnX, Y: layoutStartY}
}
