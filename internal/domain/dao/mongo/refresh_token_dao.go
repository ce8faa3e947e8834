package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/dao/mongo/document"
	"github.com/jrjohn/streamlens-go/internal/domain/dao/mongo/mapper"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

// refreshTokenDAO implements dao.RefreshTokenDAO using MongoDB.
type refreshTokenDAO struct {
	*baseMongoDAO[entity.RefreshToken, document.RefreshTokenDocument]
	mapper *mapper.RefreshTokenMapper
}

// NewRefreshTokenDAO creates a new MongoDB-based RefreshTokenDAO.
func NewRefreshTokenDAO(db *mongo.Database, idCounter *IDCounter) dao.RefreshTokenDAO {
	return &refreshTokenDAO{
		baseMongoDAO: newBaseMongoDAO[entity.RefreshToken, document.RefreshTokenDocument](
			db,
			document.RefreshTokenDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewRefreshTokenMapper(),
	}
}

// Create inserts a new refresh token.
func (d *refreshTokenDAO) Create(ctx context.Context, token *entity.RefreshToken) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	token.ID = id
	token.CreatedAt = time.Now()

	doc := d.mapper.ToDocument(token)
	return d.insertOne(ctx, doc)
}

// FindByToken retrieves a refresh token by its token string.
func (d *refreshTokenDAO) FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	var doc document.RefreshTokenDocument
	err := d.findOneByFilter(ctx, bson.M{"token": token}, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// RevokeByToken marks a single token revoked.
func (d *refreshTokenDAO) RevokeByToken(ctx context.Context, token string) error {
	filter := bson.M{"token": token}
	update := bson.M{"$set": bson.M{"revoked": true}}
	return d.updateOne(ctx, filter, update)
}

// RevokeAllByUserID revokes every token belonging to a user.
func (d *refreshTokenDAO) RevokeAllByUserID(ctx context.Context, userID uint) error {
	filter := bson.M{"user_id": userID, "revoked": false}
	update := bson.M{"$set": bson.M{"revoked": true}}
	_, _, err := d.updateMany(ctx, filter, update)
	return err
}

// DeleteExpired removes tokens that expired before the cutoff.
func (d *refreshTokenDAO) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	filter := bson.M{"expires_at": bson.M{"$lt": before}}
	return d.deleteMany(ctx, filter)
}
