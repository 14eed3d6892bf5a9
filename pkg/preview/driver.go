package preview

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-cardflow/pkg/fields"
)

// ErrAborted is returned when the user interrupts the preview.
var ErrAborted = errors.New("preview: aborted")

// Driver abstracts the prompt implementation so the walk logic can be tested
// without a real terminal.
type Driver interface {
	Ask(f fields.Field) (any, error)
	Show(text string) error
}

type surveyDriver struct{}

// NewSurveyDriver returns the interactive survey-backed driver used by the
// CLI preview.
func NewSurveyDriver() Driver {
	return &surveyDriver{}
}

func (d *surveyDriver) Ask(f fields.Field) (any, error) {
	var opts []survey.AskOpt
	if f.Required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}

	switch f.Type {
	case fields.FieldTypeSelect, fields.FieldTypeRadio:
		var out string
		prompt := &survey.Select{Message: f.Label, Options: f.Options}
		if err := survey.AskOne(prompt, &out, opts...); err != nil {
			return nil, translateSurveyErr(err)
		}
		return out, nil
	case fields.FieldTypeCheckbox:
		var out []string
		prompt := &survey.MultiSelect{Message: f.Label, Options: f.Options}
		if err := survey.AskOne(prompt, &out, opts...); err != nil {
			return nil, translateSurveyErr(err)
		}
		return out, nil
	case fields.FieldTypeTextarea:
		var out string
		prompt := &survey.Multiline{Message: f.Label}
		if err := survey.AskOne(prompt, &out, opts...); err != nil {
			return nil, translateSurveyErr(err)
		}
		return out, nil
	default:
		var out string
		prompt := &survey.Input{Message: f.Label, Help: f.Placeholder}
		if err := survey.AskOne(prompt, &out, opts...); err != nil {
			return nil, translateSurveyErr(err)
		}
		return out, nil
	}
}

func (d *surveyDriver) Show(text string) error {
	_, err := fmt.Println(text)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
