package panel

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

// ThirdPartyStage is a sub-screen of the 3rd Party API step.
type ThirdPartyStage int

const (
	StageAPIs ThirdPartyStage = iota
	StageProviders
	StageKeys
	StageDone
)

func (s ThirdPartyStage) String() string {
	switch s {
	case StageAPIs:
		return "apis"
	case StageProviders:
		return "providers"
	case StageKeys:
		return "keys"
	default:
		return "done"
	}
}

// ThirdParty walks API selection, provider selection and key entry. Each
// stage hands its result to the next through appstate, so a later stage can
// also be resumed on its own.
type ThirdParty struct {
	deps  *Deps
	stage ThirdPartyStage

	apis         []dto.ThirdPartyAPI
	selectedAPIs []string

	recommendations   []dto.ProviderRecommendation
	selectedProviders map[string]string

	requirements []dto.APIKeyRequirement
	keys         map[string]string
}

func NewThirdParty(deps *Deps) *ThirdParty {
	return &ThirdParty{
		deps:              deps,
		selectedProviders: make(map[string]string),
		keys:              make(map[string]string),
	}
}

func (t *ThirdParty) Stage() ThirdPartyStage {
	return t.stage
}

// APIID is the id an API is selected by.
func APIID(index int, category string) string {
	return fmt.Sprintf("api-%d-%s", index, category)
}

// LoadAPIs fetches the APIs the PRD calls for. An empty result means the
// project needs none.
func (t *ThirdParty) LoadAPIs(act wizard.Activation) ([]dto.ThirdPartyAPI, error) {
	catalog, err := t.deps.Workspace.ThirdPartyCatalog(act.Ctx, t.deps.State.Scope())
	if err != nil {
		return nil, err
	}
	if err := live(act.Ctx); err != nil {
		return nil, err
	}

	t.apis = make([]dto.ThirdPartyAPI, len(catalog.APIs))
	for i, api := range catalog.APIs {
		api.Id = APIID(i, api.Category)
		t.apis[i] = api
	}
	t.selectedAPIs = nil
	t.stage = StageAPIs
	return t.apis, nil
}

func (t *ThirdParty) APIs() []dto.ThirdPartyAPI {
	return t.apis
}

func (t *ThirdParty) ToggleAPI(id string) error {
	if t.findAPI(id) == nil {
		return invalid("api", fmt.Sprintf("Unknown API %q", id))
	}
	for i, sel := range t.selectedAPIs {
		if sel == id {
			t.selectedAPIs = append(t.selectedAPIs[:i:i], t.selectedAPIs[i+1:]...)
			return nil
		}
	}
	t.selectedAPIs = append(t.selectedAPIs, id)
	return nil
}

func (t *ThirdParty) IsAPISelected(id string) bool {
	for _, sel := range t.selectedAPIs {
		if sel == id {
			return true
		}
	}
	return false
}

// SubmitAPIs uploads the selected APIs and moves to provider selection. With
// nothing to integrate the whole step is complete.
func (t *ThirdParty) SubmitAPIs(act wizard.Activation) ([]dto.ProviderRecommendation, error) {
	if len(t.apis) == 0 {
		t.stage = StageDone
		act.Advance()
		return nil, nil
	}
	if len(t.selectedAPIs) == 0 {
		return nil, invalid("api", "Please select at least one API to continue")
	}

	selected := make([]dto.ThirdPartyAPI, 0, len(t.selectedAPIs))
	for _, id := range t.selectedAPIs {
		selected = append(selected, *t.findAPI(id))
	}

	raw, err := t.deps.Workspace.UploadThirdParty(act.Ctx, &dto.ThirdPartyUploadRequest{
		SelectedAPIs: selected,
		Scope:        t.deps.State.Scope(),
	})
	if err != nil {
		return nil, err
	}
	if err := live(act.Ctx); err != nil {
		return nil, err
	}

	recs, err := ExtractRecommendations(raw)
	if err != nil {
		return nil, err
	}
	if err := t.deps.State.SetProviderRecommendations(recs); err != nil {
		return nil, fmt.Errorf("save provider recommendations: %w", err)
	}
	t.useRecommendations(recs)
	t.stage = StageProviders
	return recs, nil
}

// ExtractRecommendations reads data.provider_recommendations, or derives
// them from data.apis_saved when the backend only returns the saved APIs.
func ExtractRecommendations(raw []byte) ([]dto.ProviderRecommendation, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("third-party upload: invalid response body")
	}

	recs := []dto.ProviderRecommendation{}
	if r := gjson.GetBytes(raw, "data.provider_recommendations"); r.IsArray() {
		if err := json.Unmarshal([]byte(r.Raw), &recs); err != nil {
			return nil, fmt.Errorf("third-party upload: %w", err)
		}
		return recs, nil
	}

	gjson.GetBytes(raw, "data.apis_saved").ForEach(func(_, api gjson.Result) bool {
		rec := dto.ProviderRecommendation{
			APICategory: api.Get("name").String(),
			Category:    api.Get("category").String(),
			Description: api.Get("description").String(),
			Providers:   []dto.ProviderOption{},
		}
		api.Get("providers").ForEach(func(_, p gjson.Result) bool {
			rec.Providers = append(rec.Providers, dto.ProviderOption{
				Name:        p.Get("name").String(),
				Description: p.Get("description").String(),
				Pricing:     p.Get("pricing").String(),
				Website:     p.Get("website").String(),
				Recommended: p.Get("recommended").Bool(),
			})
			return true
		})
		recs = append(recs, rec)
		return true
	})
	return recs, nil
}

// LoadProviders resumes provider selection from stored recommendations.
func (t *ThirdParty) LoadProviders() []dto.ProviderRecommendation {
	t.useRecommendations(t.deps.State.ProviderRecommendations())
	t.stage = StageProviders
	return t.recommendations
}

func (t *ThirdParty) useRecommendations(recs []dto.ProviderRecommendation) {
	t.recommendations = recs
	t.selectedProviders = make(map[string]string)
	for _, rec := range recs {
		if len(rec.Providers) > 0 {
			t.selectedProviders[rec.Category] = rec.Providers[0].Name
		}
	}
}

func (t *ThirdParty) Recommendations() []dto.ProviderRecommendation {
	return t.recommendations
}

// SelectedProviders maps category to provider name.
func (t *ThirdParty) SelectedProviders() map[string]string {
	out := make(map[string]string, len(t.selectedProviders))
	for k, v := range t.selectedProviders {
		out[k] = v
	}
	return out
}

func (t *ThirdParty) SelectProvider(category, name string) error {
	for _, rec := range t.recommendations {
		if rec.Category != category {
			continue
		}
		for _, p := range rec.Providers {
			if p.Name == name {
				t.selectedProviders[category] = name
				return nil
			}
		}
		return invalid("provider", fmt.Sprintf("%q is not offered for %s", name, category))
	}
	return invalid("provider", fmt.Sprintf("Unknown category %q", category))
}

// SubmitProviders uploads the provider choice and moves to key entry.
func (t *ThirdParty) SubmitProviders(act wizard.Activation) ([]dto.APIKeyRequirement, error) {
	if len(t.selectedProviders) == 0 {
		return nil, invalid("provider", "Please select at least one provider to continue")
	}

	raw, err := t.deps.Workspace.UploadProviders(act.Ctx, &dto.ProviderUploadRequest{
		SelectedProviders: t.SelectedProviders(),
		Scope:             t.deps.State.Scope(),
	})
	if err != nil {
		return nil, err
	}
	if err := live(act.Ctx); err != nil {
		return nil, err
	}

	reqs := []dto.APIKeyRequirement{}
	if r := gjson.GetBytes(raw, "data.api_key_requirements"); r.IsArray() {
		if err := json.Unmarshal([]byte(r.Raw), &reqs); err != nil {
			return nil, fmt.Errorf("provider upload: %w", err)
		}
	} else {
		t.deps.log().Warn(logModule, "No API key requirements in provider response", nil)
	}

	if err := t.deps.State.SetAPIKeyRequirements(reqs); err != nil {
		return nil, fmt.Errorf("save key requirements: %w", err)
	}
	t.useRequirements(reqs)
	t.stage = StageKeys
	return reqs, nil
}

// LoadKeyRequirements resumes key entry from stored requirements.
func (t *ThirdParty) LoadKeyRequirements() []dto.APIKeyRequirement {
	t.useRequirements(t.deps.State.APIKeyRequirements())
	t.stage = StageKeys
	return t.requirements
}

func (t *ThirdParty) useRequirements(reqs []dto.APIKeyRequirement) {
	t.requirements = reqs
	t.keys = make(map[string]string)
	for _, req := range reqs {
		for _, k := range req.KeysRequired {
			t.keys[k.Field] = ""
		}
	}
}

func (t *ThirdParty) Requirements() []dto.APIKeyRequirement {
	return t.requirements
}

func (t *ThirdParty) SetKey(field, value string) error {
	if _, ok := t.keys[field]; !ok {
		return invalid("key", fmt.Sprintf("Unknown key field %q", field))
	}
	t.keys[field] = value
	return nil
}

// MissingKeys lists required fields that are still blank, sorted.
func (t *ThirdParty) MissingKeys() []string {
	var missing []string
	for field, value := range t.keys {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}

// SubmitKeys stores the entered keys locally and completes the step. Keys
// are never sent to the backend.
func (t *ThirdParty) SubmitKeys(act wizard.Activation) error {
	if len(t.MissingKeys()) > 0 {
		return invalid("key", "Please fill in all API keys to continue")
	}
	if err := live(act.Ctx); err != nil {
		return err
	}

	keys := make(map[string]string, len(t.keys))
	for k, v := range t.keys {
		keys[k] = strings.TrimSpace(v)
	}
	if err := t.deps.State.SetThirdPartyAPIKeys(keys); err != nil {
		return fmt.Errorf("save api keys: %w", err)
	}
	t.stage = StageDone
	act.Advance()
	return nil
}

func (t *ThirdParty) findAPI(id string) *dto.ThirdPartyAPI {
	for i := range t.apis {
		if t.apis[i].Id == id {
			return &t.apis[i]
		}
	}
	return nil
}
