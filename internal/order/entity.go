// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusNotProcess Status = "Not Process"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var knownStatuses = []Status{
	StatusNotProcess,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// KnownStatuses lists the fulfilment states in workflow order.
func KnownStatuses() []Status {
	out := make([]Status, len(knownStatuses))
	copy(out, knownStatuses)
	return out
}

func IsKnownStatus(s string) bool {
	for _, known := range knownStatuses {
		if string(known) == s {
			return true
		}
	}
	return false
}

// Payment is the gateway outcome stored on the order.
type Payment struct {
	Success       bool      `bson:"success"       json:"success"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	Status        string    `bson:"status"        json:"status"`
	Amount        string    `bson:"amount"        json:"amount"`
	Currency      string    `bson:"currency"      json:"currency,omitempty"`
	Message       string    `bson:"message"       json:"message,omitempty"`
	ProcessedAt   time.Time `bson:"processedAt"   json:"processedAt"`
}

type Order struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Products  []primitive.ObjectID `bson:"products"`
	Payment   Payment              `bson:"payment"`
	Buyer     primitive.ObjectID   `bson:"buyer"`
	Status    Status               `bson:"status"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}
