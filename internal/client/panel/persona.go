package panel

import (
	"errors"
	"fmt"
	"time"

	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

const (
	MaxPersonas         = 2
	personaWarningDelay = 4 * time.Second
)

var ErrPersonaLimit = errors.New("persona selection limit reached")

// Personas is the persona picker. The selection is kept in pick order.
type Personas struct {
	deps *Deps

	personas     []dto.Persona
	selected     []string
	warning      string
	warningUntil time.Time
}

func NewPersonas(deps *Deps) *Personas {
	return &Personas{deps: deps}
}

// Load fetches the personas for the current user and project and restores a
// previously saved selection.
func (p *Personas) Load(act wizard.Activation) ([]dto.Persona, error) {
	res, err := p.deps.Workspace.Personas(act.Ctx, p.deps.State.Scope())
	if err != nil {
		return nil, err
	}
	if err := live(act.Ctx); err != nil {
		return nil, err
	}

	p.personas = res.Personas
	p.selected = nil
	for _, saved := range p.deps.State.SelectedPersonas() {
		if p.find(saved.Id) != nil && len(p.selected) < MaxPersonas {
			p.selected = append(p.selected, saved.Id)
		}
	}
	return p.personas, nil
}

func (p *Personas) All() []dto.Persona {
	return p.personas
}

// Toggle selects or deselects a persona. Selecting beyond the limit leaves
// the selection as it is and raises a warning that clears itself.
func (p *Personas) Toggle(id string) error {
	if p.find(id) == nil {
		return invalid("persona", fmt.Sprintf("Unknown persona %q", id))
	}

	for i, sel := range p.selected {
		if sel == id {
			p.selected = append(p.selected[:i:i], p.selected[i+1:]...)
			return nil
		}
	}

	if len(p.selected) >= MaxPersonas {
		p.warning = fmt.Sprintf("You can select up to %d personas. Deselect one to choose another.", MaxPersonas)
		p.warningUntil = p.deps.now().Add(personaWarningDelay)
		return ErrPersonaLimit
	}
	p.selected = append(p.selected, id)
	return nil
}

func (p *Personas) IsSelected(id string) bool {
	for _, sel := range p.selected {
		if sel == id {
			return true
		}
	}
	return false
}

// Warning is the current warning text, or "" once it has expired.
func (p *Personas) Warning() string {
	if p.warning == "" || !p.deps.now().Before(p.warningUntil) {
		return ""
	}
	return p.warning
}

func (p *Personas) Selected() []dto.Persona {
	out := make([]dto.Persona, 0, len(p.selected))
	for _, id := range p.selected {
		if persona := p.find(id); persona != nil {
			out = append(out, *persona)
		}
	}
	return out
}

// Continue uploads the selected personas and advances.
func (p *Personas) Continue(act wizard.Activation) (*dto.PersonaUploadData, error) {
	selected := p.Selected()
	if len(selected) == 0 {
		return nil, invalid("persona", "Please select at least one persona")
	}

	res, err := p.deps.Workspace.UploadPersonas(act.Ctx, &dto.PersonaUploadRequest{
		SelectedPersonas: selected,
		Scope:            p.deps.State.Scope(),
	})
	if err != nil {
		return nil, err
	}
	if err := live(act.Ctx); err != nil {
		return nil, err
	}

	if err := p.deps.State.SetSelectedPersonas(selected); err != nil {
		return nil, fmt.Errorf("save personas: %w", err)
	}
	act.Advance()
	return &res.Data, nil
}

func (p *Personas) find(id string) *dto.Persona {
	for i := range p.personas {
		if p.personas[i].Id == id {
			return &p.personas[i]
		}
	}
	return nil
}
