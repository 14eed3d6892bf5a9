// Package cardflow compiles branching, conditional card forms. The flow
// graph (typed nodes, conditional edges, editor positions) is the
// authoritative representation; the flat field schema the renderer consumes
// is always a projection of it. This root package re-exports the core
// surface so persistence and editor callers need a single import.
package cardflow

import (
	"github.com/goliatone/go-cardflow/pkg/envelope"
	"github.com/goliatone/go-cardflow/pkg/fields"
	"github.com/goliatone/go-cardflow/pkg/flowgraph"
)

// Core graph types, aliased for callers that hold graphs as editor state.
type (
	Graph    = flowgraph.Graph
	Node     = flowgraph.Node
	Edge     = flowgraph.Edge
	EdgeSpec = flowgraph.EdgeSpec
	Viewport = flowgraph.Viewport
	Field    = fields.Field
	Envelope = envelope.Envelope
)

// ValidateFlowchartGraph checks every structural invariant and returns one
// human-readable entry per violation; empty means valid. Persistence is
// expected to refuse any graph with a non-empty result.
func ValidateFlowchartGraph(g Graph) []string {
	return flowgraph.Validate(g)
}

// FlowchartToSchema projects a validated graph onto the flat field list the
// public form renderer consumes.
func FlowchartToSchema(g Graph) []Field {
	return flowgraph.ToSchema(g)
}

// BuildFlowchartFromSchemaAndEdges expands an externally supplied reduced
// representation (ordered fields plus bare edge pairs) into a canonical
// graph that is guaranteed to validate.
func BuildFlowchartFromSchemaAndEdges(schema []Field, edges []EdgeSpec, viewport *Viewport) Graph {
	return flowgraph.BuildFromSchemaAndEdges(schema, edges, viewport)
}

// SchemaToFlowchart builds the default straight-line graph for a form that
// has only ever existed as a flat schema.
func SchemaToFlowchart(schema []Field, viewport *Viewport) Graph {
	return flowgraph.FromSchema(schema, viewport)
}

// MergeFlowchartWithSchema refreshes node content from a newer schema
// without touching topology or positions.
func MergeFlowchartWithSchema(g Graph, schema []Field) Graph {
	return flowgraph.MergeWithSchema(g, schema)
}

// ParseEnvelope decodes a JSON or YAML template envelope.
func ParseEnvelope(data []byte) (*Envelope, error) {
	return envelope.Parse(data)
}

// ExtractEnvelopeFromText scans free-form text, such as an AI chat response,
// for the first structurally acceptable envelope.
func ExtractEnvelopeFromText(text string) (*Envelope, bool) {
	return envelope.ExtractFromText(text)
}
