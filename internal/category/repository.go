// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carterperez-dev/templates/storefront/internal/core"
)

type Repository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, c *Category) error
	GetByName(ctx context.Context, name string) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Category, error)
	Update(ctx context.Context, id primitive.ObjectID, name, slug string) (*Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type repository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{coll: db.Collection(core.CategoriesCollection)}
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("name_unique"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug"),
		},
	})
	if err != nil {
		return fmt.Errorf("create category indexes: %w", err)
	}
	return nil
}

func (r *repository) Create(ctx context.Context, c *Category) error {
	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return core.MapMongoError("create category", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Category, error) {
	return r.findOne(ctx, "get category by name", bson.M{"name": name})
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return r.findOne(ctx, "get category by slug", bson.M{"slug": slug})
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	return r.find(ctx, "list categories", bson.M{})
}

func (r *repository) ListByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) ([]Category, error) {
	if len(ids) == 0 {
		return []Category{}, nil
	}
	return r.find(ctx, "list categories by id", bson.M{"_id": bson.M{"$in": ids}})
}

func (r *repository) Update(
	ctx context.Context,
	id primitive.ObjectID,
	name, slug string,
) (*Category, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c Category
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "slug": slug}},
		opts,
	).Decode(&c)
	if err != nil {
		return nil, core.MapMongoError("update category", err)
	}
	return &c, nil
}

func (r *repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return core.MapMongoError("delete category", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}
	return nil
}

func (r *repository) findOne(
	ctx context.Context,
	op string,
	filter bson.M,
) (*Category, error) {
	var c Category
	if err := r.coll.FindOne(ctx, filter).Decode(&c); err != nil {
		return nil, core.MapMongoError(op, err)
	}
	return &c, nil
}

func (r *repository) find(
	ctx context.Context,
	op string,
	filter bson.M,
) ([]Category, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, core.MapMongoError(op, err)
	}

	categories := []Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, core.MapMongoError(op, err)
	}
	return categories, nil
}
