// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = 0
	RoleAdmin    = 1
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Phone        string             `bson:"phone"`
	Address      string             `bson:"address"`
	Answer       string             `bson:"answer"`
	Role         int                `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileChanges holds the fields a profile update may overwrite. Empty
// strings leave the stored value alone.
type ProfileChanges struct {
	Name         string
	Phone        string
	Address      string
	PasswordHash string
}

func (c ProfileChanges) IsEmpty() bool {
	return c.Name == "" && c.Phone == "" && c.Address == "" && c.PasswordHash == ""
}
