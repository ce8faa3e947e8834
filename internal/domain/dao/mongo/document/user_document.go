// Package document defines MongoDB document structs for persistence.
// These structs are separate from domain entities to allow for MongoDB-specific
// optimizations and to maintain clean separation of concerns.
package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDocument represents a user in MongoDB.
type UserDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	NumericID uint               `bson:"numeric_id"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	IsActive  bool               `bson:"is_active"`
	LastLogin *time.Time         `bson:"last_login,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
	DeletedAt *time.Time         `bson:"deleted_at,omitempty"`
}

// CollectionName returns the MongoDB collection name for users.
func (UserDocument) CollectionName() string {
	return "users"
}

// IsDeleted returns true if the document has been soft-deleted.
func (d *UserDocument) IsDeleted() bool {
	return d.DeletedAt != nil
}

// RefreshTokenDocument represents a refresh token in MongoDB.
type RefreshTokenDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	NumericID uint               `bson:"numeric_id"`
	UserID    uint               `bson:"user_id"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expires_at"`
	Revoked   bool               `bson:"revoked"`
	CreatedAt time.Time          `bson:"created_at"`
}

// CollectionName returns the MongoDB collection name for refresh tokens.
func (RefreshTokenDocument) CollectionName() string {
	return "refresh_tokens"
}
