package envelope

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cardflow/pkg/fields"
)

var (
	policyOnce      sync.Once
	plainPolicy     *bluemonday.Policy
	statementPolicy *bluemonday.Policy
)

// Sanitize scrubs every display string in the envelope. Labels, titles and
// options are reduced to plain text; statement text keeps basic inline
// formatting. Imported and AI-generated envelopes go through here before
// anything is persisted or rendered.
func Sanitize(env *Envelope) {
	if env == nil {
		return
	}
	env.Title = plain(env.Title)
	env.Subtitle = plain(env.Subtitle)
	env.ButtonText = plain(env.ButtonText)
	env.SuccessMessage = statement(env.SuccessMessage)

	for i := range env.Schema {
		sanitizeField(&env.Schema[i])
	}
	if env.FlowchartGraph != nil {
		for i := range env.FlowchartGraph.Nodes {
			node := &env.FlowchartGraph.Nodes[i]
			node.Data.Label = plain(node.Data.Label)
			node.Data.StatementText = statement(node.Data.StatementText)
			if node.Data.Field != nil {
				sanitizeField(node.Data.Field)
			}
		}
	}
}

func sanitizeField(f *fields.Field) {
	f.Label = plain(f.Label)
	f.Placeholder = plain(f.Placeholder)
	for i, opt := range f.Options {
		f.Options[i] = plain(opt)
	}
}

func plain(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(plainSanitizer().Sanitize(raw))
}

func statement(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(statementSanitizer().Sanitize(raw))
}

func plainSanitizer() *bluemonday.Policy {
	initPolicies()
	return plainPolicy
}

func statementSanitizer() *bluemonday.Policy {
	initPolicies()
	return statementPolicy
}

func initPolicies() {
	policyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()

		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "i", "em", "strong", "u", "br", "p", "ul", "ol", "li")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		statementPolicy = policy
	})
}
