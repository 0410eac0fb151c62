package service

import (
	"context"

	"codebenders/internal/client/endpoint"
	"codebenders/internal/dto"
)

type IBrandService interface {
	// Get returns the saved design, or nil when nothing was saved yet.
	Get(ctx context.Context, scope dto.Scope) (*dto.BrandDesign, error)
	Upload(ctx context.Context, req *dto.BrandDesignUploadRequest) (*dto.BrandDesignUploadData, error)
}

type brandService struct {
	api Requester
}

func NewBrandService(api Requester) IBrandService {
	return &brandService{api: api}
}

func (s *brandService) Get(ctx context.Context, scope dto.Scope) (*dto.BrandDesign, error) {
	var design dto.BrandDesign
	if err := s.api.Get(ctx, endpoint.GetBrandDesign, scopeQuery(scope), &design); err != nil {
		return nil, err
	}
	// An empty object means "use the defaults".
	if design.BrandName == "" && design.Colors.IsZero() {
		return nil, nil
	}
	return &design, nil
}

func (s *brandService) Upload(ctx context.Context, req *dto.BrandDesignUploadRequest) (*dto.BrandDesignUploadData, error) {
	var res dto.Envelope[dto.BrandDesignUploadData]
	if err := s.api.Post(ctx, endpoint.UploadBrandDesign, req, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}
