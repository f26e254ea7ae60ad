// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PerPage       = 6
	ListingCap    = 12
	RelatedLimit  = 3
	MaxPhotoBytes = 1_000_000
)

// Photo is stored inline on the product document.
type Photo struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"contentType"`
}

func (p *Photo) IsEmpty() bool {
	return p == nil || len(p.Data) == 0
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    primitive.ObjectID `bson:"category"`
	Quantity    int                `bson:"quantity"`
	Shipping    bool               `bson:"shipping"`
	Photo       *Photo             `bson:"photo,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// ListQuery selects products newest-first with the photo excluded.
type ListQuery struct {
	Filter primitive.M
	Skip   int64
	Limit  int64
}
