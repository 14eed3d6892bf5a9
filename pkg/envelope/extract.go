package envelope

import (
	"encoding/json"
	"strings"
)

// ExtractFromText scans free-form text, typically an AI chat response, for
// an envelope document. Fenced code blocks are tried first, then bare JSON
// objects found in the prose. A fragment is only considered when it mentions
// one of the envelope payload keys (a full flowchartGraph or the reduced
// schema plus flowchartEdges form), and the first structurally accepted
// match wins. Parse failures along the way are treated as "no match here";
// the scan is best-effort by contract and never propagates an error.
func ExtractFromText(text string) (*Envelope, bool) {
	for _, candidate := range fencedBlocks(text) {
		if env, ok := tryParse(candidate); ok {
			return env, true
		}
	}
	for _, candidate := range bareObjects(text) {
		if env, ok := tryParse(candidate); ok {
			return env, true
		}
	}
	return nil, false
}

func tryParse(fragment string) (*Envelope, bool) {
	// Cheap key scan before a full parse; the IsEnvelope guard inside Parse
	// makes the real shape decision.
	if !strings.Contains(fragment, "flowchartGraph") &&
		!strings.Contains(fragment, "flowchartEdges") &&
		!strings.Contains(fragment, `"schema"`) &&
		!strings.Contains(fragment, "schema:") {
		return nil, false
	}
	env, err := Parse([]byte(fragment))
	if err != nil {
		return nil, false
	}
	return env, true
}

// fencedBlocks returns the contents of every ``` fenced block, language tag
// stripped.
func fencedBlocks(text string) []string {
	var blocks []string
	rest := text
	for {
		open := strings.Index(rest, "```")
		if open < 0 {
			return blocks
		}
		rest = rest[open+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && nl < 20 && !strings.Contains(rest[:nl], "{") {
			rest = rest[nl+1:]
		}
		closing := strings.Index(rest, "```")
		if closing < 0 {
			return blocks
		}
		blocks = append(blocks, strings.TrimSpace(rest[:closing]))
		rest = rest[closing+3:]
	}
}

// bareObjects walks the text and decodes every complete JSON object it can
// find, skipping past each successful match.
func bareObjects(text string) []string {
	var objects []string
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		objects = append(objects, string(raw))
		i += int(decoder.InputOffset()) - 1
	}
	return objects
}
