// Package appstate is the typed view over the client's local persistence.
// Every cross-panel value has exactly one key and one shape, declared here.
package appstate

import (
	"errors"

	"codebenders/internal/client/storage"
	"codebenders/internal/dto"
)

const (
	KeyToken                   = "token"
	KeyUser                    = "user"
	KeyCurrentProject          = "currentProject"
	KeyProjects                = "projects"
	KeySelectedPersonas        = "selectedPersonas"
	KeyProviderRecommendations = "providerRecommendations"
	KeyAPIKeyRequirements      = "apiKeyRequirements"
	KeyThirdPartyAPIKeys       = "thirdPartyApiKeys"
	KeyBusinessRules           = "businessRules"
	KeyBrandDesign             = "brandDesign"
)

// Constraints are the editable lists of the business logic editor.
type Constraints struct {
	BusinessRules   []string `json:"businessRules"`
	DataConstraints []string `json:"dataConstraints"`
}

type State struct {
	store storage.Store
}

func New(store storage.Store) *State {
	return &State{store: store}
}

func (s *State) Store() storage.Store {
	return s.store
}

// Token returns the bearer token, or "" when logged out.
func (s *State) Token() string {
	return storage.Get(s.store, KeyToken, "")
}

func (s *State) SetToken(token string) error {
	return storage.Set(s.store, KeyToken, token)
}

// User returns the signed-in user, or nil.
func (s *State) User() *dto.User {
	return storage.Get[*dto.User](s.store, KeyUser, nil)
}

func (s *State) SetUser(user dto.User) error {
	return storage.Set(s.store, KeyUser, user)
}

// SetSession stores the token and user of a successful login together.
func (s *State) SetSession(token string, user dto.User) error {
	if err := s.SetToken(token); err != nil {
		return err
	}
	return s.SetUser(user)
}

func (s *State) CurrentProject() *dto.Project {
	return storage.Get[*dto.Project](s.store, KeyCurrentProject, nil)
}

func (s *State) SetCurrentProject(project dto.Project) error {
	return storage.Set(s.store, KeyCurrentProject, project)
}

func (s *State) ClearCurrentProject() error {
	return storage.Remove(s.store, KeyCurrentProject)
}

// Projects is the locally kept project list used in demo mode.
func (s *State) Projects() []dto.Project {
	return storage.Get(s.store, KeyProjects, []dto.Project{})
}

func (s *State) SetProjects(projects []dto.Project) error {
	return storage.Set(s.store, KeyProjects, projects)
}

func (s *State) SelectedPersonas() []dto.Persona {
	return storage.Get(s.store, KeySelectedPersonas, []dto.Persona{})
}

func (s *State) SetSelectedPersonas(personas []dto.Persona) error {
	return storage.Set(s.store, KeySelectedPersonas, personas)
}

func (s *State) ProviderRecommendations() []dto.ProviderRecommendation {
	return storage.Get(s.store, KeyProviderRecommendations, []dto.ProviderRecommendation{})
}

func (s *State) SetProviderRecommendations(recs []dto.ProviderRecommendation) error {
	return storage.Set(s.store, KeyProviderRecommendations, recs)
}

func (s *State) APIKeyRequirements() []dto.APIKeyRequirement {
	return storage.Get(s.store, KeyAPIKeyRequirements, []dto.APIKeyRequirement{})
}

func (s *State) SetAPIKeyRequirements(reqs []dto.APIKeyRequirement) error {
	return storage.Set(s.store, KeyAPIKeyRequirements, reqs)
}

// ThirdPartyAPIKeys maps a required key field to the value the user entered.
func (s *State) ThirdPartyAPIKeys() map[string]string {
	return storage.Get(s.store, KeyThirdPartyAPIKeys, map[string]string{})
}

func (s *State) SetThirdPartyAPIKeys(keys map[string]string) error {
	return storage.Set(s.store, KeyThirdPartyAPIKeys, keys)
}

func (s *State) BusinessRules() Constraints {
	return storage.Get(s.store, KeyBusinessRules, Constraints{})
}

func (s *State) SetBusinessRules(c Constraints) error {
	return storage.Set(s.store, KeyBusinessRules, c)
}

func (s *State) BrandDesign() *dto.BrandDesign {
	return storage.Get[*dto.BrandDesign](s.store, KeyBrandDesign, nil)
}

func (s *State) SetBrandDesign(design dto.BrandDesign) error {
	return storage.Set(s.store, KeyBrandDesign, design)
}

// Scope returns the ids feature calls are keyed by. A missing user or
// project yields nil, which the backend reads as "no existing record".
func (s *State) Scope() dto.Scope {
	var scope dto.Scope
	if u := s.User(); u != nil && u.Id != "" {
		id := u.Id
		scope.UserId = &id
	}
	if p := s.CurrentProject(); p != nil && p.Id != "" {
		id := p.Id
		scope.ProjectId = &id
	}
	return scope
}

// ClearSession forgets the token, the user and the current project.
func (s *State) ClearSession() error {
	return errors.Join(
		storage.Remove(s.store, KeyToken),
		storage.Remove(s.store, KeyUser),
		storage.Remove(s.store, KeyCurrentProject),
	)
}
