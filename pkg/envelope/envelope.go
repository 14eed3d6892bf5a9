// Package envelope wraps a card-form flow graph with the display, behavior,
// styling and scoring metadata that travels with it through import/export
// and AI generation. Acceptance is permissive by design: shape questions are
// answered with a boolean guard, never an error, and internal consistency
// stays the flowgraph validator's job.
package envelope

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cardflow/pkg/fields"
	"github.com/goliatone/go-cardflow/pkg/flowgraph"
)

// CurrentSchemaVersion is stamped on envelopes exported by this module.
const CurrentSchemaVersion = 1

// CardSettings holds card-behavior toggles. Stored template records also
// nest the authored graph here; Parse promotes it to the envelope level.
type CardSettings struct {
	FlowchartGraph      *flowgraph.Graph `json:"flowchartGraph,omitempty" yaml:"flowchartGraph,omitempty"`
	ShowProgressBar     bool             `json:"showProgressBar,omitempty" yaml:"showProgressBar,omitempty"`
	ShowQuestionNumbers bool             `json:"showQuestionNumbers,omitempty" yaml:"showQuestionNumbers,omitempty"`
	AutoAdvance         bool             `json:"autoAdvance,omitempty" yaml:"autoAdvance,omitempty"`
}

// Styling names a theme and carries token overrides for the render
// collaborator. Resolved into theme manifests by pkg/styling.
type Styling struct {
	Theme   string            `json:"theme,omitempty" yaml:"theme,omitempty"`
	Variant string            `json:"variant,omitempty" yaml:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// ScoreRange labels a band of total scores.
type ScoreRange struct {
	Min         int    `json:"min" yaml:"min"`
	Max         int    `json:"max" yaml:"max"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Scoring is carried through envelopes untouched; the profile-estimation
// feature that consumes it lives outside this module.
type Scoring struct {
	Enabled     bool                      `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	FieldPoints map[string]map[string]int `json:"fieldPoints,omitempty" yaml:"fieldPoints,omitempty"`
	Ranges      []ScoreRange              `json:"ranges,omitempty" yaml:"ranges,omitempty"`
}

// Envelope is the importable/exportable document bundling a graph, or the
// reduced schema+edges representation an AI generator emits, with the
// template's display metadata.
type Envelope struct {
	SchemaVersion  int                  `json:"schemaVersion,omitempty" yaml:"schemaVersion,omitempty"`
	ExportID       string               `json:"exportId,omitempty" yaml:"exportId,omitempty"`
	ExportedAt     string               `json:"exportedAt,omitempty" yaml:"exportedAt,omitempty"`
	Title          string               `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle       string               `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	ButtonText     string               `json:"buttonText,omitempty" yaml:"buttonText,omitempty"`
	SuccessMessage string               `json:"successMessage,omitempty" yaml:"successMessage,omitempty"`
	Schema         []fields.Field       `json:"schema,omitempty" yaml:"schema,omitempty"`
	FlowchartGraph *flowgraph.Graph     `json:"flowchartGraph,omitempty" yaml:"flowchartGraph,omitempty"`
	FlowchartEdges []flowgraph.EdgeSpec `json:"flowchartEdges,omitempty" yaml:"flowchartEdges,omitempty"`
	CardSettings   *CardSettings        `json:"cardSettings,omitempty" yaml:"cardSettings,omitempty"`
	Styling        *Styling             `json:"styling,omitempty" yaml:"styling,omitempty"`
	Scoring        *Scoring             `json:"scoring,omitempty" yaml:"scoring,omitempty"`
}

// Graph returns the canonical graph for the envelope. A full flowchartGraph
// wins; a reduced schema+edges payload goes through the builder; a bare
// schema falls back to the default straight-line generator.
func (e *Envelope) Graph() flowgraph.Graph {
	if e.FlowchartGraph != nil {
		return e.FlowchartGraph.Clone()
	}
	if len(e.FlowchartEdges) > 0 {
		return flowgraph.BuildFromSchemaAndEdges(e.Schema, e.FlowchartEdges, nil)
	}
	return flowgraph.FromSchema(e.Schema, nil)
}

// StampExport fills the export bookkeeping fields ahead of serialization.
func (e *Envelope) StampExport(now time.Time) {
	if e.SchemaVersion == 0 {
		e.SchemaVersion = CurrentSchemaVersion
	}
	e.ExportID = uuid.NewString()
	e.ExportedAt = now.UTC().Format(time.RFC3339)
}

// EnsureFieldIDs assigns a generated id to every schema field that arrived
// without one, so AI-supplied payloads survive the builder and validator.
func (e *Envelope) EnsureFieldIDs() {
	for i := range e.Schema {
		if e.Schema[i].ID == "" {
			e.Schema[i].ID = "field-" + uuid.NewString()[:8]
		}
	}
}

// IsEnvelope reports whether a decoded JSON/YAML value has an acceptable
// envelope shape: either a graph-shaped flowchartGraph (an object with array
// nodes and edges, at the top level or under cardSettings) or a non-empty
// schema array. This dual acceptance lets the AI-generation path and the
// full manual-export path share one import entry point.
func IsEnvelope(value any) bool {
	doc, ok := value.(map[string]any)
	if !ok {
		return false
	}
	if isGraphShape(doc["flowchartGraph"]) {
		return true
	}
	if settings, ok := doc["cardSettings"].(map[string]any); ok {
		if isGraphShape(settings["flowchartGraph"]) {
			return true
		}
	}
	schema, ok := doc["schema"].([]any)
	return ok && len(schema) > 0
}

func isGraphShape(value any) bool {
	graph, ok := value.(map[string]any)
	if !ok {
		return false
	}
	_, nodesOK := graph["nodes"].([]any)
	_, edgesOK := graph["edges"].([]any)
	return nodesOK && edgesOK
}
