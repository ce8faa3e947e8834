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

// userDAO implements dao.UserDAO using MongoDB.
type userDAO struct {
	*baseMongoDAO[entity.User, document.UserDocument]
	mapper *mapper.UserMapper
}

// NewUserDAO creates a new MongoDB-based UserDAO.
func NewUserDAO(db *mongo.Database, idCounter *IDCounter) dao.UserDAO {
	return &userDAO{
		baseMongoDAO: newBaseMongoDAO[entity.User, document.UserDocument](
			db,
			document.UserDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewUserMapper(),
	}
}

// Create inserts a new user into MongoDB.
func (d *userDAO) Create(ctx context.Context, user *entity.User) error {
	// Generate numeric ID for compatibility
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	user.ID = id
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	doc := d.mapper.ToDocument(user)
	return d.insertOne(ctx, doc)
}

// FindByID retrieves a user by their numeric ID.
func (d *userDAO) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})

	var doc document.UserDocument
	err := d.findOneByFilter(ctx, filter, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// Update modifies an existing user in MongoDB.
func (d *userDAO) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	doc := d.mapper.ToDocument(user)

	filter := bson.M{"numeric_id": user.ID}
	update := bson.M{"$set": doc}
	return d.updateOne(ctx, filter, update)
}

// Delete performs a soft delete on a user.
func (d *userDAO) Delete(ctx context.Context, id uint) error {
	now := time.Now()
	filter := bson.M{"numeric_id": id}
	update := bson.M{"$set": bson.M{"deleted_at": now}}
	return d.updateOne(ctx, filter, update)
}

// Count returns the total number of users.
func (d *userDAO) Count(ctx context.Context) (int64, error) {
	return d.count(ctx, notDeletedFilter())
}

// ExistsBy checks if a user exists by a field value.
func (d *userDAO) ExistsBy(ctx context.Context, field string, value any) (bool, error) {
	return d.existsBy(ctx, withNotDeleted(bson.M{field: value}))
}

// FindByUsername retrieves a user by their username.
func (d *userDAO) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return d.findOne(ctx, withNotDeleted(bson.M{"username": username}))
}

// FindByEmail retrieves a user by their email.
func (d *userDAO) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return d.findOne(ctx, withNotDeleted(bson.M{"email": email}))
}

// FindWithFilter retrieves users matching the filter with pagination.
func (d *userDAO) FindWithFilter(ctx context.Context, filter *dao.UserFilter) ([]*entity.User, int64, error) {
	match := userMatch(filter)

	var docs []*document.UserDocument
	total, err := d.findPage(ctx, match, userSort(filter), filter.Page, filter.Limit, &docs)
	if err != nil {
		return nil, 0, err
	}
	return d.mapper.ToEntities(docs), total, nil
}

// ExistsByUsername checks if a user with the given username exists.
func (d *userDAO) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return d.existsBy(ctx, withNotDeleted(bson.M{"username": username}))
}

// ExistsByEmail checks if a user with the given email exists.
func (d *userDAO) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return d.existsBy(ctx, withNotDeleted(bson.M{"email": email}))
}

// UpdateLastLogin stamps the user's last successful login time.
func (d *userDAO) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	filter := bson.M{"numeric_id": id}
	update := bson.M{"$set": bson.M{"last_login": at, "updated_at": time.Now()}}
	return d.updateOne(ctx, filter, update)
}

// UpdateMany applies the same field updates to every listed user.
func (d *userDAO) UpdateMany(ctx context.Context, ids []uint, fields map[string]any) (int64, int64, error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	filter := withNotDeleted(bson.M{"numeric_id": bson.M{"$in": ids}})
	return d.updateMany(ctx, filter, bson.M{"$set": set})
}

// findOne decodes a single user document, mapping not-found to nil.
func (d *userDAO) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc document.UserDocument
	err := d.findOneByFilter(ctx, filter, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}
