// Package mapper provides conversion functions between domain entities and MongoDB documents.
package mapper

import (
	"github.com/jrjohn/streamlens-go/internal/domain/dao/mongo/document"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// UserMapper converts between User entity and UserDocument.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDocument converts a User entity to a UserDocument.
func (m *UserMapper) ToDocument(user *entity.User) *document.UserDocument {
	if user == nil {
		return nil
	}

	return &document.UserDocument{
		NumericID: user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.Password,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		DeletedAt: user.DeletedAt,
	}
}

// ToEntity converts a UserDocument to a User entity.
func (m *UserMapper) ToEntity(doc *document.UserDocument) *entity.User {
	if doc == nil {
		return nil
	}

	return &entity.User{
		ID:        doc.NumericID,
		Username:  doc.Username,
		Email:     doc.Email,
		Password:  doc.Password,
		Role:      entity.UserRole(doc.Role),
		IsActive:  doc.IsActive,
		LastLogin: doc.LastLogin,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		DeletedAt: doc.DeletedAt,
	}
}

// ToEntities converts a slice of UserDocument to a slice of User entities.
func (m *UserMapper) ToEntities(docs []*document.UserDocument) []*entity.User {
	if docs == nil {
		return nil
	}

	users := make([]*entity.User, len(docs))
	for i, doc := range docs {
		users[i] = m.ToEntity(doc)
	}
	return users
}

// RefreshTokenMapper converts between RefreshToken entity and RefreshTokenDocument.
type RefreshTokenMapper struct{}

// NewRefreshTokenMapper creates a new RefreshTokenMapper instance.
func NewRefreshTokenMapper() *RefreshTokenMapper {
	return &RefreshTokenMapper{}
}

// ToDocument converts a RefreshToken entity to a RefreshTokenDocument.
func (m *RefreshTokenMapper) ToDocument(token *entity.RefreshToken) *document.RefreshTokenDocument {
	if token == nil {
		return nil
	}

	return &document.RefreshTokenDocument{
		NumericID: token.ID,
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		Revoked:   token.Revoked,
		CreatedAt: token.CreatedAt,
	}
}

// ToEntity converts a RefreshTokenDocument to a RefreshToken entity.
func (m *RefreshTokenMapper) ToEntity(doc *document.RefreshTokenDocument) *entity.RefreshToken {
	if doc == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:        doc.NumericID,
		UserID:    doc.UserID,
		Token:     doc.Token,
		ExpiresAt: doc.ExpiresAt,
		Revoked:   doc.Revoked,
		CreatedAt: doc.CreatedAt,
	}
}
