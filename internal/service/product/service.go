package product

import (
	"context"
	"errors"

	"storefront-backend/internal/domain"
)

type Service struct {
	repo repo
}

type repo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListVariantsByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error)
}

func New(repo repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Product not found: " + id)
		}
		return nil, err
	}
	return product, nil
}

func (s *Service) ListVariantsByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error) {
	return s.repo.ListVariantsByProduct(ctx, productID)
}
