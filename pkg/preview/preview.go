// Package preview walks a linear field schema in the terminal the way the
// public form runtime walks it in the browser: display conditions are
// honored, answers are collected by field id, and piping substitutes earlier
// answers into later card copy. It exists for authors to sanity-check a form
// without deploying it; the real fill runtime lives outside this module.
package preview

import (
	"github.com/goliatone/go-cardflow/pkg/condition"
	"github.com/goliatone/go-cardflow/pkg/fields"
	"github.com/goliatone/go-cardflow/pkg/piping"
)

// Run walks the schema with the given driver and returns the collected
// answers keyed by field id. Fields whose display rule evaluates false are
// skipped; a malformed rule skips only the rule, not the field, matching the
// best-effort posture of the rest of the module.
func Run(schema []fields.Field, driver Driver) (map[string]any, error) {
	answers := make(map[string]any, len(schema))
	pipe := piping.New()

	for _, f := range schema {
		if f.DisplayIf != "" {
			show, err := condition.Eval(f.DisplayIf, condition.Context{Answers: answers})
			if err == nil && !show {
				continue
			}
		}

		card, err := pipe.ApplyField(f, answers)
		if err != nil {
			card = f
		}

		if card.Type == fields.FieldTypeStatement {
			// Statement text always pipes; Apply is a no-op without a
			// {{ ... }} reference.
			text, err := pipe.Apply(card.Label, answers)
			if err != nil {
				text = card.Label
			}
			if err := driver.Show(text); err != nil {
				return answers, err
			}
			continue
		}

		value, err := driver.Ask(card)
		if err != nil {
			return answers, err
		}
		answers[f.ID] = value
	}
	return answers, nil
}
