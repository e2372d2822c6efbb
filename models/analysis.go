package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bloomwatch/bloom"
)

// Analysis mirrors documents written to the "reports" collection: one stored
// run of the analysis pipeline for a saved region. Field names and tags are
// the persistence contract.
type Analysis struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"  json:"-"`
	OperationID string             `bson:"operation_id"   json:"operation_id"`
	RegionID    primitive.ObjectID `bson:"regionId"       json:"regionId"`
	OwnerID     primitive.ObjectID `bson:"ownerId"        json:"-"`
	Status      RegionStatus       `bson:"status"         json:"status"`
	CreatedAt   time.Time          `bson:"created_at"     json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"     json:"updated_at"`

	StartDate string `bson:"start_date" json:"start_date"`
	EndDate   string `bson:"end_date"   json:"end_date"`

	Report       *bloom.Report `bson:"report,omitempty"       json:"report,omitempty"`
	Formatted    string        `bson:"formatted,omitempty"    json:"formatted,omitempty"`
	ErrorMessage string        `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
}
