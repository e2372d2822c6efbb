package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegionStatus tracks whether a saved region has an analysis report yet.
type RegionStatus string

const (
	RegionStatusNew        RegionStatus = "new"
	RegionStatusProcessing RegionStatus = "processing"
	RegionStatusReady      RegionStatus = "ready"
	RegionStatusError      RegionStatus = "error"
)

// Region — a saved point of interest with its ROI and analysis parameters.
// Analysis reports are NOT stored here; they live in the "reports"
// collection (see models/analysis.go).
type Region struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId"       json:"ownerId"`
	Name      string             `bson:"name"          json:"name"`
	Latitude  float64            `bson:"latitude"      json:"latitude"`
	Longitude float64            `bson:"longitude"     json:"longitude"`
	ROIDeg    float64            `bson:"roiSizeDegrees" json:"roiSizeDegrees"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`

	Status RegionStatus `bson:"status" json:"status"`

	// Injected-only (NOT stored in Mongo): latest analysis, when requested.
	LatestAnalysis *Analysis `bson:"-" json:"latestAnalysis,omitempty"`
}
