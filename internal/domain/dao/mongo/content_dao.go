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

// contentDAO implements dao.ContentDAO using MongoDB.
// Catalog entries are hard-deleted; the filter helpers therefore never
// add a deleted_at condition here.
type contentDAO struct {
	*baseMongoDAO[entity.Content, document.ContentDocument]
	mapper *mapper.ContentMapper
}

// NewContentDAO creates a new MongoDB-based ContentDAO.
func NewContentDAO(db *mongo.Database, idCounter *IDCounter) dao.ContentDAO {
	return &contentDAO{
		baseMongoDAO: newBaseMongoDAO[entity.Content, document.ContentDocument](
			db,
			document.ContentDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewContentMapper(),
	}
}

// Create inserts a new catalog entry into MongoDB.
func (d *contentDAO) Create(ctx context.Context, content *entity.Content) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	content.ID = id
	content.CreatedAt = time.Now()
	content.UpdatedAt = time.Now()

	doc := d.mapper.ToDocument(content)
	return d.insertOne(ctx, doc)
}

// FindByID retrieves a catalog entry by its numeric ID.
func (d *contentDAO) FindByID(ctx context.Context, id uint) (*entity.Content, error) {
	var doc document.ContentDocument
	err := d.findOneByFilter(ctx, bson.M{"numeric_id": id}, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// Update replaces an existing catalog entry in MongoDB.
func (d *contentDAO) Update(ctx context.Context, content *entity.Content) error {
	content.UpdatedAt = time.Now()
	doc := d.mapper.ToDocument(content)

	filter := bson.M{"numeric_id": content.ID}
	update := bson.M{"$set": doc}
	return d.updateOne(ctx, filter, update)
}

// Delete removes a catalog entry.
func (d *contentDAO) Delete(ctx context.Context, id uint) error {
	return d.deleteOne(ctx, bson.M{"numeric_id": id})
}

// Count returns the total number of catalog entries.
func (d *contentDAO) Count(ctx context.Context) (int64, error) {
	return d.count(ctx, bson.M{})
}

// ExistsBy checks if a catalog entry exists by a field value.
func (d *contentDAO) ExistsBy(ctx context.Context, field string, value any) (bool, error) {
	return d.existsBy(ctx, bson.M{field: value})
}

// FindWithFilter retrieves catalog entries matching the filter with
// pagination.
func (d *contentDAO) FindWithFilter(ctx context.Context, filter *dao.ContentFilter) ([]*entity.Content, int64, error) {
	match := contentMatch(filter)

	var docs []*document.ContentDocument
	total, err := d.findPage(ctx, match, contentSort(filter), filter.Page, filter.Limit, &docs)
	if err != nil {
		return nil, 0, err
	}
	return d.mapper.ToEntities(docs), total, nil
}

// ExistsByNaturalKey checks whether an entry already exists for
// (platform, title, year).
func (d *contentDAO) ExistsByNaturalKey(ctx context.Context, platform, title string, year int) (bool, error) {
	filter := bson.M{
		"platform": platform,
		"title":    title,
		"year":     year,
	}
	return d.existsBy(ctx, filter)
}
