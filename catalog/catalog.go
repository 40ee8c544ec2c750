// Package catalog is the read path over the product table: filtering,
// sorting, search and related-product lookups. No side effects.
package catalog

import (
	"context"
	"errors"

	"github.com/aayushsiwach/fruit-seller/errs"
	"github.com/aayushsiwach/fruit-seller/models"
	"github.com/aayushsiwach/fruit-seller/repository"
)

// Repository is the slice of the inventory repository the catalog needs.
type Repository interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, q repository.ListQuery) ([]models.Product, error)
}

// Query mirrors the catalog read endpoint's parameters.
type Query struct {
	Category  string
	PriceSort string // "asc" / "desc"
	Featured  bool
	Search    string
	RelatedTo string // product id; resolves to "same category, excluding it"
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.Get(ctx, id)
}

// List translates the query into repository calls. RelatedTo resolves the
// referenced product first; an unresolvable reference is a caller-visible
// InvalidReferenceError, never an empty list.
func (s *Service) List(ctx context.Context, q Query) ([]models.Product, error) {
	lq := repository.ListQuery{
		Category:  q.Category,
		Featured:  q.Featured,
		Search:    q.Search,
		PriceSort: q.PriceSort,
	}

	if q.RelatedTo != "" {
		ref, err := s.repo.Get(ctx, q.RelatedTo)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil, &errs.InvalidReferenceError{ID: q.RelatedTo}
			}
			return nil, err
		}
		lq.Category = ref.Category
		lq.ExcludeID = ref.ID
	}

	return s.repo.List(ctx, lq)
}
