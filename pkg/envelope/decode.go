package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNotEnvelope is returned when a document parses but does not have an
// acceptable envelope shape.
var ErrNotEnvelope = errors.New("envelope: document is not an envelope")

// Parse decodes an envelope document from JSON or YAML. The document must
// pass the IsEnvelope shape guard; internal graph consistency is left to
// flowgraph.Validate so callers can decide between rejecting and repairing.
func Parse(data []byte) (*Envelope, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("envelope: document is empty")
	}

	var shape any
	if err := json.Unmarshal(data, &shape); err == nil {
		if !IsEnvelope(shape) {
			return nil, ErrNotEnvelope
		}
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("envelope: decode json: %w", err)
		}
		normalize(&env)
		return &env, nil
	}

	var yamlShape map[string]any
	if err := yaml.Unmarshal(data, &yamlShape); err != nil {
		return nil, fmt.Errorf("envelope: document is neither json nor yaml: %w", err)
	}
	if !IsEnvelope(normalizeYAML(yamlShape)) {
		return nil, ErrNotEnvelope
	}
	var env Envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("envelope: decode yaml: %w", err)
	}
	normalize(&env)
	return &env, nil
}

// Marshal serializes an envelope as indented JSON, the interchange format
// the import/export feature and the AI generator both speak.
func Marshal(env *Envelope) ([]byte, error) {
	if env == nil {
		return nil, errors.New("envelope: nil envelope")
	}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("envelope: encode: %w", err)
	}
	return out, nil
}

// normalize promotes a graph stored under cardSettings to the envelope
// level, so downstream code has a single place to look.
func normalize(env *Envelope) {
	if env.FlowchartGraph == nil && env.CardSettings != nil && env.CardSettings.FlowchartGraph != nil {
		env.FlowchartGraph = env.CardSettings.FlowchartGraph
		env.CardSettings.FlowchartGraph = nil
	}
}

// normalizeYAML rewrites yaml.v3's map[string]any values recursively so the
// shape guard sees the same types a JSON decode would produce.
func normalizeYAML(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = normalizeYAML(v)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalizeYAML(v)
		}
		return out
	default:
		return value
	}
}
