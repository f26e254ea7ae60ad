// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carterperez-dev/templates/storefront/internal/core"
)

var withoutPhoto = bson.M{"photo": 0}

type Repository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id primitive.ObjectID, p *Product) (*Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetPhoto(ctx context.Context, id primitive.ObjectID) (*Photo, error)
	Find(ctx context.Context, q ListQuery) ([]Product, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

type repository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{
		coll: db.Collection(core.ProductsCollection),
		now:  time.Now,
	}
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	now := r.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return core.MapMongoError("create product", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

// Update overwrites the editable fields. The stored photo is kept unless p
// carries a new one.
func (r *repository) Update(
	ctx context.Context,
	id primitive.ObjectID,
	p *Product,
) (*Product, error) {
	set := bson.M{
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"quantity":    p.Quantity,
		"shipping":    p.Shipping,
		"updatedAt":   r.now().UTC(),
	}
	if !p.Photo.IsEmpty() {
		set["photo"] = p.Photo
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPhoto)

	var updated Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		return nil, core.MapMongoError("update product", err)
	}
	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return core.MapMongoError("delete product", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}
	return nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	opts := options.FindOne().SetProjection(withoutPhoto)

	var p Product
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}, opts).Decode(&p); err != nil {
		return nil, core.MapMongoError("get product", err)
	}
	return &p, nil
}

func (r *repository) GetPhoto(
	ctx context.Context,
	id primitive.ObjectID,
) (*Photo, error) {
	opts := options.FindOne().SetProjection(bson.M{"photo": 1})

	var doc struct {
		Photo *Photo `bson:"photo"`
	}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		return nil, core.MapMongoError("get product photo", err)
	}
	return doc.Photo, nil
}

func (r *repository) Find(ctx context.Context, q ListQuery) ([]Product, error) {
	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find().
		SetProjection(withoutPhoto).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, core.MapMongoError("find products", err)
	}

	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, core.MapMongoError("decode products", err)
	}
	return products, nil
}

func (r *repository) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, core.MapMongoError("count products", err)
	}
	return n, nil
}
