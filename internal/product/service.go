// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carterperez-dev/templates/storefront/internal/category"
	"github.com/carterperez-dev/templates/storefront/internal/core"
)

type CategoryLookup interface {
	ByIDs(
		ctx context.Context,
		ids []primitive.ObjectID,
	) (map[primitive.ObjectID]category.Category, error)
	GetBySlug(ctx context.Context, slug string) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryLookup
}

func NewService(repo Repository, categories CategoryLookup) *Service {
	return &Service{repo: repo, categories: categories}
}

func fromInput(in *ProductInput) *Product {
	return &Product{
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Shipping:    in.Shipping,
		Photo:       in.Photo,
	}
}

func (s *Service) Create(ctx context.Context, in *ProductInput) (*Product, error) {
	p := fromInput(in)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces every editable field and re-derives the slug. The photo
// only changes when in carries one.
func (s *Service) Update(
	ctx context.Context,
	id string,
	in *ProductInput,
) (*Product, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, oid, fromInput(in))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

// Latest returns the newest products up to the listing cap.
func (s *Service) Latest(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.repo.Find(ctx, ListQuery{Filter: bson.M{}, Limit: ListingCap})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, products)
}

func (s *Service) Page(ctx context.Context, page int) ([]ProductResponse, error) {
	products, err := s.repo.Find(ctx, PageQuery(page))
	if err != nil {
		return nil, err
	}
	return ToProductResponseList(products), nil
}

func (s *Service) Search(ctx context.Context, keyword string) ([]ProductResponse, error) {
	products, err := s.repo.Find(ctx, ListQuery{Filter: SearchFilter(keyword)})
	if err != nil {
		return nil, err
	}
	return ToProductResponseList(products), nil
}

func (s *Service) Filter(
	ctx context.Context,
	req FilterRequest,
) ([]ProductResponse, error) {
	if len(req.Radio) > 2 {
		return nil, fmt.Errorf("filter: price range has %d bounds: %w", len(req.Radio), core.ErrInvalidInput)
	}

	checked, err := core.ParseObjectIDs(req.Checked)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.Find(ctx, ListQuery{Filter: BuildFilter(checked, req.Radio)})
	if err != nil {
		return nil, err
	}
	return ToProductResponseList(products), nil
}

func (s *Service) Related(
	ctx context.Context,
	productID, categoryID string,
) ([]ProductResponse, error) {
	pid, err := core.ParseObjectID(productID)
	if err != nil {
		return nil, err
	}
	cid, err := core.ParseObjectID(categoryID)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.Find(ctx, ListQuery{
		Filter: RelatedFilter(pid, cid),
		Limit:  RelatedLimit,
	})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, products)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.EstimatedCount(ctx)
}

func (s *Service) ByCategorySlug(
	ctx context.Context,
	categorySlug string,
) (*category.Category, []ProductResponse, error) {
	c, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, nil, err
	}

	products, err := s.repo.Find(ctx, ListQuery{Filter: bson.M{"category": c.ID}})
	if err != nil {
		return nil, nil, err
	}

	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toPopulatedResponse(&products[i], c))
	}
	return c, out, nil
}

func (s *Service) GetBySlug(ctx context.Context, productSlug string) (*ProductResponse, error) {
	p, err := s.repo.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	populated, err := s.populate(ctx, []Product{*p})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// Photo returns nil with no error when the product has no stored photo.
func (s *Service) Photo(ctx context.Context, id string) (*Photo, error) {
	oid, err := core.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	photo, err := s.repo.GetPhoto(ctx, oid)
	if err != nil {
		return nil, err
	}
	if photo.IsEmpty() {
		return nil, nil
	}
	return photo, nil
}

// Prices reports the catalog price of each known id. Unknown ids are left
// out of the result.
func (s *Service) Prices(ctx context.Context, ids []string) (map[string]float64, error) {
	oids, err := core.ParseObjectIDs(ids)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.Find(ctx, ListQuery{Filter: bson.M{"_id": bson.M{"$in": oids}}})
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.ID.Hex()] = p.Price
	}
	return prices, nil
}

// Summaries resolves product references for order population.
func (s *Service) Summaries(
	ctx context.Context,
	ids []primitive.ObjectID,
) (map[primitive.ObjectID]ProductResponse, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]ProductResponse{}, nil
	}

	products, err := s.repo.Find(ctx, ListQuery{Filter: bson.M{"_id": bson.M{"$in": ids}}})
	if err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]ProductResponse, len(products))
	for i := range products {
		out[products[i].ID] = ToProductResponse(&products[i])
	}
	return out, nil
}

func (s *Service) populate(
	ctx context.Context,
	products []Product,
) ([]ProductResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.Category)
	}

	categories, err := s.categories.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("populate categories: %w", err)
	}

	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		var c *category.Category
		if found, ok := categories[products[i].Category]; ok {
			c = &found
		}
		out = append(out, toPopulatedResponse(&products[i], c))
	}
	return out, nil
}
