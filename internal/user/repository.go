// AngelaMos | 2026
// repository.go

package user

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
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailAndAnswer(ctx context.Context, email, answer string) (*User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, changes ProfileChanges) (*User, error)
	SetRoleByEmail(ctx context.Context, email string, role int) (*User, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]User, error)
}

type repository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{
		coll: db.Collection(core.UsersCollection),
		now:  time.Now,
	}
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *repository) Create(ctx context.Context, user *User) error {
	now := r.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return core.MapMongoError("create user", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*User, error) {
	return r.findOne(ctx, "get user", bson.M{"_id": id})
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "get user by email", bson.M{"email": email})
}

// GetByEmailAndAnswer matches the security answer exactly as stored.
func (r *repository) GetByEmailAndAnswer(
	ctx context.Context,
	email, answer string,
) (*User, error) {
	return r.findOne(ctx, "get user by answer", bson.M{
		"email":  email,
		"answer": answer,
	})
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id primitive.ObjectID,
	passwordHash string,
) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": r.now().UTC(),
	}})
	if err != nil {
		return core.MapMongoError("update password", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	return nil
}

func (r *repository) UpdateProfile(
	ctx context.Context,
	id primitive.ObjectID,
	changes ProfileChanges,
) (*User, error) {
	set := bson.M{"updatedAt": r.now().UTC()}
	if changes.Name != "" {
		set["name"] = changes.Name
	}
	if changes.Phone != "" {
		set["phone"] = changes.Phone
	}
	if changes.Address != "" {
		set["address"] = changes.Address
	}
	if changes.PasswordHash != "" {
		set["password"] = changes.PasswordHash
	}

	return r.findOneAndSet(ctx, "update profile", bson.M{"_id": id}, set)
}

func (r *repository) SetRoleByEmail(
	ctx context.Context,
	email string,
	role int,
) (*User, error) {
	return r.findOneAndSet(ctx, "set role", bson.M{"email": email}, bson.M{
		"role":      role,
		"updatedAt": r.now().UTC(),
	})
}

// ListByIDs loads only id and name. It backs buyer population on orders.
func (r *repository) ListByIDs(
	ctx context.Context,
	ids []primitive.ObjectID,
) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, core.MapMongoError("list users by id", err)
	}

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, core.MapMongoError("list users by id", err)
	}
	return users, nil
}

func (r *repository) findOne(
	ctx context.Context,
	op string,
	filter bson.M,
) (*User, error) {
	var user User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, core.MapMongoError(op, err)
	}
	return &user, nil
}

func (r *repository) findOneAndSet(
	ctx context.Context,
	op string,
	filter, set bson.M,
) (*User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).
		Decode(&user)
	if err != nil {
		return nil, core.MapMongoError(op, err)
	}
	return &user, nil
}
