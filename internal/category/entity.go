// AngelaMos | 2026
// entity.go

package category

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"name"          json:"name"`
	Slug string             `bson:"slug"          json:"slug"`
}
