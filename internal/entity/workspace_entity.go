package entity

import (
	"time"

	"codebenders/internal/dto"
)

// Workspace holds every wizard document saved for one scope (a project, or a
// user when no project is given). Documents are stored in their wire shape.
type Workspace struct {
	Key string

	PRD               *PRDDocument
	Personas          []dto.Persona
	Brand             *dto.BrandDesign
	APIs              []dto.ThirdPartyAPI
	Providers         map[string]string
	PreviewsGenerated int

	UpdatedAt time.Time
}

type PRDDocument struct {
	Id        string
	Text      string
	Source    string
	WordCount int
	CreatedAt time.Time
}

// Clone copies the slices and maps so callers can mutate the result freely.
func (w *Workspace) Clone() *Workspace {
	c := *w
	if w.PRD != nil {
		prd := *w.PRD
		c.PRD = &prd
	}
	if w.Brand != nil {
		brand := *w.Brand
		c.Brand = &brand
	}
	c.Personas = append([]dto.Persona(nil), w.Personas...)
	c.APIs = append([]dto.ThirdPartyAPI(nil), w.APIs...)
	if w.Providers != nil {
		c.Providers = make(map[string]string, len(w.Providers))
		for k, v := range w.Providers {
			c.Providers[k] = v
		}
	}
	return &c
}
