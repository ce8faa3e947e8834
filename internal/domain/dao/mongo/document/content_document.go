package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SourceFlagsDocument mirrors entity.SourceFlags.
type SourceFlagsDocument struct {
	InHouse      bool `bson:"in_house"`
	Commissioned bool `bson:"commissioned"`
	CoProduction bool `bson:"co_production"`
}

// ContentDocument represents a catalog entry in MongoDB. The dubbing map
// is stored as a sub-document keyed by language so aggregation pipelines
// can address individual flags as "dubbing.<lang>".
type ContentDocument struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty"`
	NumericID          uint                `bson:"numeric_id"`
	Platform           string              `bson:"platform"`
	Title              string              `bson:"title"`
	PrimaryLanguage    string              `bson:"primary_language"`
	Year               int                 `bson:"year"`
	SelfDeclaredGenre  string              `bson:"self_declared_genre,omitempty"`
	AssignedGenre      string              `bson:"assigned_genre,omitempty"`
	SelfDeclaredFormat string              `bson:"self_declared_format,omitempty"`
	AssignedFormat     string              `bson:"assigned_format,omitempty"`
	Source             string              `bson:"source,omitempty"`
	AgeRating          string              `bson:"age_rating,omitempty"`
	Seasons            *int                `bson:"seasons,omitempty"`
	Episodes           *int                `bson:"episodes,omitempty"`
	DurationHours      *float64            `bson:"duration_hours,omitempty"`
	ReleaseDate        *time.Time          `bson:"release_date,omitempty"`
	SourceFlags        SourceFlagsDocument `bson:"source_flags"`
	Dubbing            map[string]bool     `bson:"dubbing"`
	TotalDubbings      int                 `bson:"total_dubbings"`
	CreatedBy          uint                `bson:"created_by"`
	CreatedAt          time.Time           `bson:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at"`
}

// CollectionName returns the MongoDB collection name for catalog entries.
func (ContentDocument) CollectionName() string {
	return "contents"
}
