// AngelaMos | 2026
// filter.go

package product

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildFilter returns the faceted filter document. Each clause is present
// only when its input is non-empty. A single radio bound sets the floor.
func BuildFilter(checked []primitive.ObjectID, radio []float64) bson.M {
	filter := bson.M{}

	if len(checked) > 0 {
		filter["category"] = bson.M{"$in": checked}
	}

	switch {
	case len(radio) >= 2:
		filter["price"] = bson.M{"$gte": radio[0], "$lte": radio[1]}
	case len(radio) == 1:
		filter["price"] = bson.M{"$gte": radio[0]}
	}

	return filter
}

// SearchFilter matches keyword case-insensitively and literally against
// name or description.
func SearchFilter(keyword string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}
}

func RelatedFilter(productID, categoryID primitive.ObjectID) bson.M {
	return bson.M{
		"category": categoryID,
		"_id":      bson.M{"$ne": productID},
	}
}

// PageQuery converts a 1-indexed page into skip and limit. Pages below 1
// are treated as 1.
func PageQuery(page int) ListQuery {
	if page < 1 {
		page = 1
	}
	return ListQuery{
		Filter: bson.M{},
		Skip:   int64((page - 1) * PerPage),
		Limit:  PerPage,
	}
}
