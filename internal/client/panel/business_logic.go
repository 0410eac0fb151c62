package panel

import (
	"fmt"
	"regexp"
	"strings"

	"codebenders/internal/client/appstate"
	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

type ConstraintKind string

const (
	BusinessRule   ConstraintKind = "rule"
	DataConstraint ConstraintKind = "data"
)

var (
	openingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	closingFence = regexp.MustCompile("\r?\n?```[ \t]*$")
)

// StripCodeFences removes a markdown fence wrapped around generated text,
// along with the whitespace around it.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = openingFence.ReplaceAllString(s, "")
	s = closingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// BusinessLogic edits the rule lists of a step and previews the result.
type BusinessLogic struct {
	deps    *Deps
	preview string
}

func NewBusinessLogic(deps *Deps) *BusinessLogic {
	return &BusinessLogic{deps: deps}
}

// Constraints returns the saved drafts.
func (b *BusinessLogic) Constraints() appstate.Constraints {
	return b.deps.State.BusinessRules()
}

func (b *BusinessLogic) Add(kind ConstraintKind, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return invalid(string(kind), "Constraint text cannot be empty")
	}
	return b.edit(kind, func(list []string) ([]string, error) {
		return append(list, text), nil
	})
}

func (b *BusinessLogic) Update(kind ConstraintKind, index int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return invalid(string(kind), "Constraint text cannot be empty")
	}
	return b.edit(kind, func(list []string) ([]string, error) {
		if index < 0 || index >= len(list) {
			return nil, invalid(string(kind), fmt.Sprintf("No constraint at position %d", index+1))
		}
		list[index] = text
		return list, nil
	})
}

func (b *BusinessLogic) Remove(kind ConstraintKind, index int) error {
	return b.edit(kind, func(list []string) ([]string, error) {
		if index < 0 || index >= len(list) {
			return nil, invalid(string(kind), fmt.Sprintf("No constraint at position %d", index+1))
		}
		return append(list[:index:index], list[index+1:]...), nil
	})
}

func (b *BusinessLogic) edit(kind ConstraintKind, fn func([]string) ([]string, error)) error {
	c := b.deps.State.BusinessRules()
	var err error
	switch kind {
	case BusinessRule:
		c.BusinessRules, err = fn(c.BusinessRules)
	case DataConstraint:
		c.DataConstraints, err = fn(c.DataConstraints)
	default:
		return invalid("kind", fmt.Sprintf("Unknown constraint kind %q", kind))
	}
	if err != nil {
		return err
	}
	return b.deps.State.SetBusinessRules(c)
}

// GeneratePreview asks the backend to render the step and returns the HTML
// without code fences.
func (b *BusinessLogic) GeneratePreview(act wizard.Activation, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", invalid("description", "Describe the step before generating a preview")
	}

	c := b.deps.State.BusinessRules()
	res, err := b.deps.Workspace.GeneratePreview(act.Ctx, &dto.PreviewRequest{
		Description:     description,
		BusinessRules:   c.BusinessRules,
		DataConstraints: c.DataConstraints,
		Scope:           b.deps.State.Scope(),
	})
	if err != nil {
		return "", err
	}
	if err := live(act.Ctx); err != nil {
		return "", err
	}

	b.preview = StripCodeFences(res.Content)
	return b.preview, nil
}

func (b *BusinessLogic) Preview() string {
	return b.preview
}

func (b *BusinessLogic) Continue(act wizard.Activation) bool {
	return act.Advance()
}
