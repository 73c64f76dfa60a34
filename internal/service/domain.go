package service

import (
	"context"

	"user-backend/internal/api"
	"user-backend/internal/biz"
)

// domainService implements the domain operations behind the API.
type domainService struct {
	domains *biz.DomainUsecase
}

// NewDomainService creates a DomainService.
func NewDomainService(domains *biz.DomainUsecase) api.DomainService {
	return &domainService{domains: domains}
}

func (s *domainService) GetDomain(ctx context.Context, domainID string) (*api.DomainResponse, error) {
	domain, err := s.domains.GetByID(ctx, domainID)
	if err != nil {
		return nil, err
	}
	return convertDomain(domain), nil
}

func (s *domainService) ListDomains(ctx context.Context, name string, pageNumber, pageSize int) (*api.PagingResponse[api.DomainResponse], error) {
	page, err := s.domains.List(ctx, name, pageNumber, pageSize)
	if err != nil {
		return nil, err
	}

	content := make([]api.DomainResponse, 0, len(page.Content))
	for _, d := range page.Content {
		content = append(content, *convertDomain(&d))
	}
	return &api.PagingResponse[api.DomainResponse]{
		TotalPages:       page.TotalPages,
		TotalElements:    page.TotalElements,
		Number:           page.Number,
		Size:             page.Size,
		NumberOfElements: page.NumberOfElements,
		First:            page.First,
		Last:             page.Last,
		Content:          content,
	}, nil
}

func (s *domainService) CreateDomain(ctx context.Context, req *api.DomainCreateRequest) (string, error) {
	return s.domains.Create(ctx, req.Name, req.Description)
}

func (s *domainService) UpdateDomain(ctx context.Context, domainID string, req *api.DomainUpdateRequest) error {
	return s.domains.Update(ctx, domainID, &biz.DomainUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
}

func (s *domainService) DeleteDomain(ctx context.Context, domainID string) error {
	return s.domains.Delete(ctx, domainID)
}

func convertDomain(d *biz.Domain) *api.DomainResponse {
	return &api.DomainResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
}
