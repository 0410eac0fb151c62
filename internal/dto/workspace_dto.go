package dto

import "time"

// Envelope is the {success, message, data} wrapper used by the feature endpoints.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Scope ties a feature document to a user/project pair. Nil ids are sent as
// JSON null and mean "no existing record".
type Scope struct {
	UserId    *string `json:"user_id" query:"user_id"`
	ProjectId *string `json:"project_id" query:"project_id"`
}

// --- Requirements (PRD) ---

type PRDUploadRequest struct {
	Text   string `json:"text" validate:"required"`
	Source string `json:"source"`
	Scope
}

type PRDAnalysis struct {
	ContainsFeatures     bool   `json:"contains_features"`
	ContainsRequirements bool   `json:"contains_requirements"`
	ContainsGoals        bool   `json:"contains_goals"`
	EstimatedComplexity  string `json:"estimated_complexity"`
}

type PRDSections struct {
	Overview              string   `json:"overview"`
	TargetUsers           []string `json:"target_users"`
	KeyFeatures           []string `json:"key_features"`
	TechnicalRequirements []string `json:"technical_requirements"`
}

type PRDUploadData struct {
	PRDId             string      `json:"prd_id"`
	UserId            *string     `json:"user_id"`
	ProjectId         *string     `json:"project_id"`
	TextLength        int         `json:"text_length"`
	WordCount         int         `json:"word_count"`
	Source            string      `json:"source"`
	Analysis          PRDAnalysis `json:"analysis"`
	ExtractedSections PRDSections `json:"extracted_sections"`
	NextSteps         []string    `json:"next_steps"`
	Timestamp         time.Time   `json:"timestamp"`
}

// --- User personas ---

type Persona struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Goals       []string `json:"goals"`
	PainPoints  []string `json:"painPoints"`
	KeyFeatures []string `json:"keyFeatures"`
}

type PersonaListResponse struct {
	Success  bool      `json:"success"`
	Personas []Persona `json:"personas"`
	Message  string    `json:"message"`
}

type PersonaUploadRequest struct {
	SelectedPersonas []Persona `json:"selected_personas" validate:"required,min=1"`
	Scope
}

type PersonaUploadData struct {
	PersonasSaved []Persona `json:"personas_saved"`
	Count         int       `json:"count"`
	UserId        *string   `json:"user_id"`
	ProjectId     *string   `json:"project_id"`
	SavedAt       time.Time `json:"saved_at"`
	NextStep      string    `json:"next_step"`
}

// --- Brand design ---

type BrandColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

func (c BrandColors) IsZero() bool {
	return c == BrandColors{}
}

type BrandDesign struct {
	BrandName  string      `json:"brandName"`
	LogoURL    *string     `json:"logoUrl"`
	Colors     BrandColors `json:"colors"`
	FontFamily string      `json:"fontFamily"`
	BrandVoice string      `json:"brandVoice"`
	Tone       string      `json:"tone"`
}

type BrandDesignUploadRequest struct {
	BrandDesign
	Scope
}

type BrandDesignUploadData struct {
	BrandDesign
	UserId    *string   `json:"user_id"`
	ProjectId *string   `json:"project_id"`
	SavedAt   time.Time `json:"saved_at"`
	NextStep  string    `json:"next_step"`
}

// --- Third-party APIs ---

type ThirdPartyAPI struct {
	Id            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Provider      string   `json:"provider"`
	Description   string   `json:"description"`
	Purpose       string   `json:"purpose"`
	Required      bool     `json:"required"`
	Features      []string `json:"features"`
	Endpoints     []string `json:"endpoints"`
	Documentation string   `json:"documentation"`
}

type ThirdPartySummary struct {
	Total      int      `json:"total"`
	Required   int      `json:"required"`
	Optional   int      `json:"optional"`
	Categories []string `json:"categories"`
}

// ThirdPartyCatalog is returned by get_thirdparty; an empty object means no APIs are needed.
type ThirdPartyCatalog struct {
	APIs       []ThirdPartyAPI    `json:"apis,omitempty"`
	Summary    *ThirdPartySummary `json:"summary,omitempty"`
	AnalyzedAt *time.Time         `json:"analyzed_at,omitempty"`
	PRDVersion string             `json:"prd_version,omitempty"`
}

type ThirdPartyUploadRequest struct {
	SelectedAPIs []ThirdPartyAPI `json:"selected_apis" validate:"required,min=1"`
	Scope
}

type ProviderOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Pricing     string `json:"pricing,omitempty"`
	Website     string `json:"website,omitempty"`
	Recommended bool   `json:"recommended"`
}

type ProviderRecommendation struct {
	APICategory string           `json:"api_category"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Providers   []ProviderOption `json:"providers"`
}

type SavedAPI struct {
	ThirdPartyAPI
	Providers []ProviderOption `json:"providers"`
}

type ThirdPartyUploadData struct {
	APIsSaved               []SavedAPI               `json:"apis_saved"`
	ProviderRecommendations []ProviderRecommendation `json:"provider_recommendations"`
	Count                   int                      `json:"count"`
	SavedAt                 time.Time                `json:"saved_at"`
	NextStep                string                   `json:"next_step"`
}

type ProviderUploadRequest struct {
	// category -> provider name
	SelectedProviders map[string]string `json:"selected_providers" validate:"required,min=1"`
	Scope
}

type APIKeyField struct {
	Field       string `json:"field"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

type APIKeyRequirement struct {
	Provider     string        `json:"provider"`
	Category     string        `json:"category"`
	KeysRequired []APIKeyField `json:"keys_required"`
}

type ProviderUploadData struct {
	ProvidersSaved     map[string]string   `json:"providers_saved"`
	APIKeyRequirements []APIKeyRequirement `json:"api_key_requirements"`
	SavedAt            time.Time           `json:"saved_at"`
	NextStep           string              `json:"next_step"`
}

// --- Business logic preview ---

type PreviewRequest struct {
	Description     string   `json:"description" validate:"required"`
	BusinessRules   []string `json:"business_rules"`
	DataConstraints []string `json:"data_constraints"`
	Scope
}

// PreviewResponse carries the raw generated text. It may still be wrapped in
// markdown code fences; the client strips them before rendering.
type PreviewResponse struct {
	Content     string    `json:"content"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}
