package service

import (
	"context"
	"encoding/json"

	"codebenders/internal/client/endpoint"
	"codebenders/internal/dto"
)

// IWorkspaceService covers the wizard feature endpoints.
type IWorkspaceService interface {
	UploadPRD(ctx context.Context, req *dto.PRDUploadRequest) (*dto.Envelope[dto.PRDUploadData], error)
	Personas(ctx context.Context, scope dto.Scope) (*dto.PersonaListResponse, error)
	UploadPersonas(ctx context.Context, req *dto.PersonaUploadRequest) (*dto.Envelope[dto.PersonaUploadData], error)
	ThirdPartyCatalog(ctx context.Context, scope dto.Scope) (*dto.ThirdPartyCatalog, error)
	// UploadThirdParty and UploadProviders return the raw response body; the
	// shape of "data" has varied between backend versions.
	UploadThirdParty(ctx context.Context, req *dto.ThirdPartyUploadRequest) (json.RawMessage, error)
	UploadProviders(ctx context.Context, req *dto.ProviderUploadRequest) (json.RawMessage, error)
	GeneratePreview(ctx context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, error)
}

type workspaceService struct {
	api Requester
}

func NewWorkspaceService(api Requester) IWorkspaceService {
	return &workspaceService{api: api}
}

func (s *workspaceService) UploadPRD(ctx context.Context, req *dto.PRDUploadRequest) (*dto.Envelope[dto.PRDUploadData], error) {
	var res dto.Envelope[dto.PRDUploadData]
	if err := s.api.Post(ctx, endpoint.UploadPRD, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *workspaceService) Personas(ctx context.Context, scope dto.Scope) (*dto.PersonaListResponse, error) {
	var res dto.PersonaListResponse
	if err := s.api.Get(ctx, endpoint.GetUserPersonas, scopeQuery(scope), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *workspaceService) UploadPersonas(ctx context.Context, req *dto.PersonaUploadRequest) (*dto.Envelope[dto.PersonaUploadData], error) {
	var res dto.Envelope[dto.PersonaUploadData]
	if err := s.api.Post(ctx, endpoint.UploadUserPersonas, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *workspaceService) ThirdPartyCatalog(ctx context.Context, scope dto.Scope) (*dto.ThirdPartyCatalog, error) {
	var res dto.ThirdPartyCatalog
	if err := s.api.Get(ctx, endpoint.GetThirdParty, scopeQuery(scope), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *workspaceService) UploadThirdParty(ctx context.Context, req *dto.ThirdPartyUploadRequest) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, endpoint.UploadThirdParty, req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *workspaceService) UploadProviders(ctx context.Context, req *dto.ProviderUploadRequest) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, endpoint.UploadThirdPartyProviders, req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *workspaceService) GeneratePreview(ctx context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, error) {
	var res dto.PreviewResponse
	if err := s.api.Post(ctx, endpoint.GeneratePreview, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
