package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"codebenders/internal/constant"
	"codebenders/internal/dto"
	"codebenders/internal/entity"
	"codebenders/internal/pkg/logger"
	"codebenders/internal/repository/contract"
	"codebenders/pkg/llm"

	"github.com/google/uuid"
)

const catalogVersion = "1.0.0"

// IWorkspaceService backs the wizard's feature endpoints. Every call is
// scoped to the caller's project when a project id is given and to the
// caller otherwise.
type IWorkspaceService interface {
	UploadPRD(ctx context.Context, callerId uuid.UUID, req *dto.PRDUploadRequest) (*dto.Envelope[dto.PRDUploadData], error)
	Personas(ctx context.Context, callerId uuid.UUID, scope dto.Scope) (*dto.PersonaListResponse, error)
	UploadPersonas(ctx context.Context, callerId uuid.UUID, req *dto.PersonaUploadRequest) (*dto.Envelope[dto.PersonaUploadData], error)
	BrandDesign(ctx context.Context, callerId uuid.UUID, scope dto.Scope) (*dto.BrandDesign, error)
	UploadBrandDesign(ctx context.Context, callerId uuid.UUID, req *dto.BrandDesignUploadRequest) (*dto.Envelope[dto.BrandDesignUploadData], error)
	ThirdParty(ctx context.Context, callerId uuid.UUID, scope dto.Scope) (*dto.ThirdPartyCatalog, error)
	UploadThirdParty(ctx context.Context, callerId uuid.UUID, req *dto.ThirdPartyUploadRequest) (*dto.Envelope[dto.ThirdPartyUploadData], error)
	UploadProviders(ctx context.Context, callerId uuid.UUID, req *dto.ProviderUploadRequest) (*dto.Envelope[dto.ProviderUploadData], error)
	GeneratePreview(ctx context.Context, callerId uuid.UUID, req *dto.PreviewRequest) (*dto.PreviewResponse, error)
}

type workspaceService struct {
	workspaces contract.WorkspaceRepository
	projects   IProjectService
	llm        llm.LLMProvider
	llmOptions []llm.Option
	logger     logger.ILogger
	now        func() time.Time
}

func NewWorkspaceService(
	workspaces contract.WorkspaceRepository,
	projects IProjectService,
	provider llm.LLMProvider,
	temperature float64,
	maxTokens int,
	log logger.ILogger,
) IWorkspaceService {
	return &workspaceService{
		workspaces: workspaces,
		projects:   projects,
		llm:        provider,
		llmOptions: []llm.Option{llm.WithTemperature(temperature), llm.WithMaxTokens(maxTokens)},
		logger:     log,
		now:        time.Now,
	}
}

// load resolves the scope to a workspace. A project id must name one of the
// caller's projects.
func (s *workspaceService) load(ctx context.Context, callerId uuid.UUID, scope dto.Scope) (*entity.Workspace, error) {
	key := UserWorkspaceKey(callerId)
	if scope.ProjectId != nil && *scope.ProjectId != "" {
		project, err := s.projects.Get(ctx, callerId, *scope.ProjectId)
		if err != nil {
			return nil, err
		}
		key = ProjectWorkspaceKey(project.Id)
	}
	return s.workspaces.Get(ctx, key)
}

func (s *workspaceService) UploadPRD(ctx context.Context, callerId uuid.UUID, req *dto.PRDUploadRequest) (*dto.Envelope[dto.PRDUploadData], error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyPRD
	}
	ws, err := s.load(ctx, callerId, req.Scope)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = "textarea"
	}
	analysis, words := analyzePRD(req.Text)
	now := s.now()
	doc := &entity.PRDDocument{
		Id:        "prd_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		Text:      req.Text,
		Source:    source,
		WordCount: words,
		CreatedAt: now,
	}
	ws.PRD = doc
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return nil, err
	}

	s.logger.Info("WORKSPACE", "PRD uploaded", map[string]interface{}{
		"workspace":  ws.Key,
		"prd_id":     doc.Id,
		"word_count": words,
		"source":     source,
	})
	return &dto.Envelope[dto.PRDUploadData]{
		Success: true,
		Message: "PRD processed successfully",
		Data: dto.PRDUploadData{
			PRDId:             doc.Id,
			UserId:            req.UserId,
			ProjectId:         req.ProjectId,
			TextLength:        utf8.RuneCountInString(req.Text),
			WordCount:         words,
			Source:            source,
			Analysis:          analysis,
			ExtractedSections: extractSections(req.Text),
			NextSteps:         append([]string(nil), prdNextSteps...),
			Timestamp:         now,
		},
	}, nil
}

// Personas offers the catalog once requirements exist for the scope.
func (s *workspaceService) Personas(ctx context.Context, callerId uuid.UUID, scope dto.Scope) (*dto.PersonaListResponse, error) {
	ws, err := s.load(ctx, callerId, scope)
	if err != nil {
		return nil, err
	}
	if ws.PRD == nil {
		return &dto.PersonaListResponse{Success: true, Personas: []dto.Persona{}, Message: "No user personas found"}, nil
	}
	return &dto.PersonaListResponse{
		Success:  true,
		Personas: append([]dto.Persona(nil), constant.PersonaCatalog...),
		Message:  "User personas retrieved successfully",
	}, nil
}

func (s *workspaceService) UploadPersonas(ctx context.Context, callerId uuid.UUID, req *dto.PersonaUploadRequest) (*dto.Envelope[dto.PersonaUploadData], error) {
	if len(req.SelectedPersonas) == 0 {
		return nil, ErrNoPersonas
	}
	ws, err := s.load(ctx, callerId, req.Scope)
	if err != nil {
		return nil, err
	}
	ws.Personas = req.SelectedPersonas
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return nil, err
	}

	return &dto.Envelope[dto.PersonaUploadData]{
		Success: true,
		Message: fmt.Sprintf("Successfully saved %d user persona(s)", len(req.SelectedPersonas)),
		Data: dto.PersonaUploadData{
			PersonasSaved: req.SelectedPersonas,
			Count:         len(req.SelectedPersonas),
			UserId:        req.UserId,
			ProjectId:     req.ProjectId,
			SavedAt:       s.now(),
			NextStep:      "brand_design",
		},
	}, nil
}

// BrandDesign returns nil when nothing was saved for the scope.
func (s *workspaceService) BrandDesign(ctx context.Context, callerId uuid.UUID, scope dto.Scope) (*dto.BrandDesign, error) {
	ws, err := s.load(ctx, callerId, scope)
	if err != nil {
		return nil, err
	}
	return ws.Brand, nil
}

func (s *workspaceService) UploadBrandDesign(ctx context.Context, callerId uuid.UUID, req *dto.BrandDesignUploadRequest) (*dto.Envelope[dto.BrandDesignUploadData], error) {
	if strings.TrimSpace(req.BrandName) == "" {
		return nil, ErrBrandNameRequired
	}
	if req.Colors.IsZero() {
		return nil, ErrBrandColors
	}
	ws, err := s.load(ctx, callerId, req.Scope)
	if err != nil {
		return nil, err
	}
	brand := req.BrandDesign
	ws.Brand = &brand
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return nil, err
	}

	return &dto.Envelope[dto.BrandDesignUploadData]{
		Success: true,
		Message: "Brand design saved successfully",
		Data: dto.BrandDesignUploadData{
			BrandDesign: brand,
			UserId:      req.UserId,
			ProjectId:   req.ProjectId,
			SavedAt:     s.now(),
			NextStep:    "business_logic",
		},
	}, nil
}

// ThirdParty lists the catalog APIs the stored requirements mention. An
// empty catalog means the project needs none.
func (s *workspaceService) ThirdParty(ctx context.Context, callerId uuid.UUID, scope dto.Scope) (*dto.ThirdPartyCatalog, error) {
	ws, err := s.load(ctx, callerId, scope)
	if err != nil {
		return nil, err
	}
	if ws.PRD == nil {
		return &dto.ThirdPartyCatalog{}, nil
	}

	apis := matchAPIs(ws.PRD.Text)
	if len(apis) == 0 {
		return &dto.ThirdPartyCatalog{}, nil
	}

	summary := &dto.ThirdPartySummary{Total: len(apis), Categories: []string{}}
	for _, api := range apis {
		if api.Required {
			summary.Required++
		} else {
			summary.Optional++
		}
		summary.Categories = append(summary.Categories, api.Category)
	}
	now := s.now()
	return &dto.ThirdPartyCatalog{
		APIs:       apis,
		Summary:    summary,
		AnalyzedAt: &now,
		PRDVersion: catalogVersion,
	}, nil
}

func matchAPIs(text string) []dto.ThirdPartyAPI {
	lower := strings.ToLower(text)
	var apis []dto.ThirdPartyAPI
	for _, api := range constant.ThirdPartyCatalog {
		if containsAny(lower, constant.ThirdPartyKeywords[api.Category]...) {
			apis = append(apis, api)
		}
	}
	return apis
}

// providersFor falls back to the API's own vendor for unknown categories.
func providersFor(api dto.ThirdPartyAPI) []dto.ProviderOption {
	if opts, ok := constant.ProviderCatalog[api.Category]; ok {
		return append([]dto.ProviderOption(nil), opts...)
	}
	name := api.Name
	if name == "" {
		name = api.Provider
	}
	return []dto.ProviderOption{{Name: name, Description: api.Description, Website: api.Documentation, Recommended: true}}
}

func (s *workspaceService) UploadThirdParty(ctx context.Context, callerId uuid.UUID, req *dto.ThirdPartyUploadRequest) (*dto.Envelope[dto.ThirdPartyUploadData], error) {
	if len(req.SelectedAPIs) == 0 {
		return nil, ErrNoAPIs
	}
	ws, err := s.load(ctx, callerId, req.Scope)
	if err != nil {
		return nil, err
	}

	saved := make([]dto.SavedAPI, 0, len(req.SelectedAPIs))
	recs := make([]dto.ProviderRecommendation, 0, len(req.SelectedAPIs))
	for _, api := range req.SelectedAPIs {
		providers := providersFor(api)
		saved = append(saved, dto.SavedAPI{ThirdPartyAPI: api, Providers: providers})
		recs = append(recs, dto.ProviderRecommendation{
			APICategory: api.Name,
			Category:    api.Category,
			Description: api.Description,
			Providers:   providers,
		})
	}
	ws.APIs = req.SelectedAPIs
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return nil, err
	}

	return &dto.Envelope[dto.ThirdPartyUploadData]{
		Success: true,
		Message: fmt.Sprintf("Successfully saved %d third-party API(s)", len(saved)),
		Data: dto.ThirdPartyUploadData{
			APIsSaved:               saved,
			ProviderRecommendations: recs,
			Count:                   len(saved),
			SavedAt:                 s.now(),
			NextStep:                "provider_selection",
		},
	}, nil
}

// keysFor returns a single API key field for providers outside the catalog.
func keysFor(provider string) []dto.APIKeyField {
	if keys, ok := constant.ProviderKeys[provider]; ok {
		return append([]dto.APIKeyField(nil), keys...)
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(provider) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	field := strings.Trim(b.String(), "_") + "_API_KEY"
	return []dto.APIKeyField{{Field: field, Label: provider + " API key"}}
}

func (s *workspaceService) UploadProviders(ctx context.Context, callerId uuid.UUID, req *dto.ProviderUploadRequest) (*dto.Envelope[dto.ProviderUploadData], error) {
	if len(req.SelectedProviders) == 0 {
		return nil, ErrNoProviders
	}
	ws, err := s.load(ctx, callerId, req.Scope)
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(req.SelectedProviders))
	for category := range req.SelectedProviders {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	reqs := make([]dto.APIKeyRequirement, 0, len(categories))
	for _, category := range categories {
		provider := req.SelectedProviders[category]
		reqs = append(reqs, dto.APIKeyRequirement{
			Provider:     provider,
			Category:     category,
			KeysRequired: keysFor(provider),
		})
	}
	ws.Providers = req.SelectedProviders
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return nil, err
	}

	return &dto.Envelope[dto.ProviderUploadData]{
		Success: true,
		Message: "Providers saved successfully",
		Data: dto.ProviderUploadData{
			ProvidersSaved:     req.SelectedProviders,
			APIKeyRequirements: reqs,
			SavedAt:            s.now(),
			NextStep:           "api_keys",
		},
	}, nil
}

// GeneratePreview asks the model for an HTML mock-up of one screen. The
// saved brand design of the scope styles the page.
func (s *workspaceService) GeneratePreview(ctx context.Context, callerId uuid.UUID, req *dto.PreviewRequest) (*dto.PreviewResponse, error) {
	ws, err := s.load(ctx, callerId, req.Scope)
	if err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: constant.LLMRoleSystem, Content: constant.PreviewSystemPrompt},
		{Role: constant.LLMRoleUser, Content: previewPrompt(req, ws.Brand)},
	}
	start := s.now()
	content, err := s.llm.Chat(ctx, history, s.llmOptions...)
	if err != nil {
		s.logger.Error("WORKSPACE", "Preview generation failed", map[string]interface{}{
			"workspace": ws.Key,
			"model":     s.llm.Model(),
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrPreviewFailed, err)
	}

	ws.PreviewsGenerated++
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return nil, err
	}
	s.logger.Info("WORKSPACE", "Preview generated", map[string]interface{}{
		"workspace": ws.Key,
		"model":     s.llm.Model(),
		"duration":  s.now().Sub(start).String(),
		"chars":     len(content),
	})
	return &dto.PreviewResponse{Content: content, Model: s.llm.Model(), GeneratedAt: s.now()}, nil
}

func previewPrompt(req *dto.PreviewRequest, brand *dto.BrandDesign) string {
	brandSection := constant.PreviewNoBrandSection
	if brand != nil {
		brandSection = fmt.Sprintf(constant.PreviewBrandSection,
			brand.BrandName,
			brand.Colors.Primary, brand.Colors.Secondary, brand.Colors.Accent,
			brand.Colors.Background, brand.Colors.Foreground,
			brand.FontFamily, brand.BrandVoice, brand.Tone,
		)
	}
	return fmt.Sprintf(constant.PreviewUserPrompt,
		strings.TrimSpace(req.Description),
		bulletList(req.BusinessRules),
		bulletList(req.DataConstraints),
		brandSection,
	)
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			b.WriteString("- " + item + "\n")
		}
	}
	if b.Len() == 0 {
		return "- none"
	}
	return strings.TrimRight(b.String(), "\n")
}
