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

// activityDAO implements dao.ActivityDAO using MongoDB.
// The collection is append-only; no update or delete paths exist.
type activityDAO struct {
	*baseMongoDAO[entity.UserActivity, document.ActivityDocument]
	mapper *mapper.ActivityMapper
}

// NewActivityDAO creates a new MongoDB-based ActivityDAO.
func NewActivityDAO(db *mongo.Database, idCounter *IDCounter) dao.ActivityDAO {
	return &activityDAO{
		baseMongoDAO: newBaseMongoDAO[entity.UserActivity, document.ActivityDocument](
			db,
			document.ActivityDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewActivityMapper(),
	}
}

// Create appends an activity record.
func (d *activityDAO) Create(ctx context.Context, activity *entity.UserActivity) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	activity.ID = id
	activity.CreatedAt = time.Now()

	doc := d.mapper.ToDocument(activity)
	return d.insertOne(ctx, doc)
}

// FindWithFilter retrieves activity records matching the filter with
// pagination, newest first.
func (d *activityDAO) FindWithFilter(ctx context.Context, filter *dao.ActivityFilter) ([]*entity.UserActivity, int64, error) {
	match := activityMatch(filter)
	sort := bson.D{{Key: "created_at", Value: -1}}

	var docs []*document.ActivityDocument
	total, err := d.findPage(ctx, match, sort, filter.Page, filter.Limit, &docs)
	if err != nil {
		return nil, 0, err
	}
	return d.mapper.ToEntities(docs), total, nil
}
