package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityDetailsDocument mirrors entity.ActivityDetails.
type ActivityDetailsDocument struct {
	IP        string         `bson:"ip,omitempty"`
	UserAgent string         `bson:"user_agent,omitempty"`
	Extra     map[string]any `bson:"extra,omitempty"`
}

// ActivityDocument represents one audit-log record in MongoDB.
// Records are append-only; the application never updates or deletes them.
type ActivityDocument struct {
	ID        primitive.ObjectID      `bson:"_id,omitempty"`
	NumericID uint                    `bson:"numeric_id"`
	UserID    uint                    `bson:"user_id"`
	Action    string                  `bson:"action"`
	Details   ActivityDetailsDocument `bson:"details"`
	CreatedAt time.Time               `bson:"created_at"`
}

// CollectionName returns the MongoDB collection name for activities.
func (ActivityDocument) CollectionName() string {
	return "user_activities"
}

// ImportErrorDocument represents one failed CSV row in MongoDB.
type ImportErrorDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	NumericID        uint               `bson:"numeric_id"`
	SessionStartedAt time.Time          `bson:"session_started_at"`
	File             string             `bson:"file"`
	Row              int                `bson:"row"`
	Error            string             `bson:"error"`
	Data             map[string]string  `bson:"data,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
}

// CollectionName returns the MongoDB collection name for import errors.
func (ImportErrorDocument) CollectionName() string {
	return "import_errors"
}
