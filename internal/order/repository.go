// AngelaMos | 2026
// repository.go

package order

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

type Repository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, o *Order) error
	ListByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status Status) (*Order, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

type repository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{
		coll: db.Collection(core.OrdersCollection),
		now:  time.Now,
	}
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "buyer", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("buyer_created"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created"),
		},
	})
	if err != nil {
		return fmt.Errorf("create order indexes: %w", err)
	}
	return nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	now := r.now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = StatusNotProcess
	}

	res, err := r.coll.InsertOne(ctx, o)
	if err != nil {
		return core.MapMongoError("create order", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = id
	}
	return nil
}

func (r *repository) ListByBuyer(
	ctx context.Context,
	buyer primitive.ObjectID,
) ([]Order, error) {
	return r.find(ctx, "list orders by buyer", bson.M{"buyer": buyer})
}

func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	return r.find(ctx, "list orders", bson.M{})
}

// UpdateStatus overwrites the status with whatever it is given.
func (r *repository) UpdateStatus(
	ctx context.Context,
	id primitive.ObjectID,
	status Status,
) (*Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o Order
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": r.now().UTC()}},
		opts,
	).Decode(&o)
	if err != nil {
		return nil, core.MapMongoError("update order status", err)
	}
	return &o, nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, core.MapMongoError("count orders by status", err)
	}

	var rows []struct {
		Status Status `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, core.MapMongoError("count orders by status", err)
	}

	counts := make(map[Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repository) find(
	ctx context.Context,
	op string,
	filter bson.M,
) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, core.MapMongoError(op, err)
	}

	orders := []Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, core.MapMongoError(op, err)
	}
	return orders, nil
}
