// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carterperez-dev/templates/storefront/internal/core"
)

var ErrCategoryExists = errors.New("category already exists")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)

	_, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil:
		return nil, ErrCategoryExists
	case !errors.Is(err, core.ErrNotFound):
		return nil, fmt.Errorf("lookup category: %w", err)
	}

	c := &Category{Name: name, Slug: slug.Make(name)}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(
	ctx context.Context,
	id, name string,
) (*Category, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	c, err := s.repo.Update(ctx, oid, name, slug.Make(name))
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, categorySlug string) (*Category, error) {
	return s.repo.GetBySlug(ctx, categorySlug)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

// ByIDs resolves category references for population. Unknown ids are
// absent from the result.
func (s *Service) ByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) (map[primitive.ObjectID]Category, error) {
	categories, err := s.repo.ListByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]Category, len(categories))
	for _, c := range categories {
		out[c.ID] = c
	}
	return out, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
