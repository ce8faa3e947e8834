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

// importErrorDAO implements dao.ImportErrorDAO using MongoDB.
type importErrorDAO struct {
	*baseMongoDAO[entity.ImportError, document.ImportErrorDocument]
	mapper *mapper.ImportErrorMapper
}

// NewImportErrorDAO creates a new MongoDB-based ImportErrorDAO.
func NewImportErrorDAO(db *mongo.Database, idCounter *IDCounter) dao.ImportErrorDAO {
	return &importErrorDAO{
		baseMongoDAO: newBaseMongoDAO[entity.ImportError, document.ImportErrorDocument](
			db,
			document.ImportErrorDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewImportErrorMapper(),
	}
}

// Create records a single row failure.
func (d *importErrorDAO) Create(ctx context.Context, importError *entity.ImportError) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	importError.ID = id
	importError.CreatedAt = time.Now()

	doc := d.mapper.ToDocument(importError)
	return d.insertOne(ctx, doc)
}

// sessionRow is the decoded shape of one $group result.
type sessionRow struct {
	ID struct {
		StartedAt time.Time `bson:"started_at"`
		File      string    `bson:"file"`
	} `bson:"_id"`
	ErrorCount int64 `bson:"error_count"`
}

// FindSessions lists import sessions, derived by grouping error rows on
// (session_started_at, file), most recent first.
func (d *importErrorDAO) FindSessions(ctx context.Context, page, limit int) ([]dao.ImportSession, int64, error) {
	if page < 1 {
		page = 1
	}

	groupStage := bson.D{{Key: "$group", Value: bson.M{
		"_id": bson.M{
			"started_at": "$session_started_at",
			"file":       "$file",
		},
		"error_count": bson.M{"$sum": 1},
	}}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.started_at", Value: -1}}}}

	countPipeline := mongo.Pipeline{
		groupStage,
		bson.D{{Key: "$count", Value: "total"}},
	}
	var countRows []struct {
		Total int64 `bson:"total"`
	}
	if err := d.aggregate(ctx, countPipeline, &countRows); err != nil {
		return nil, 0, err
	}
	var total int64
	if len(countRows) > 0 {
		total = countRows[0].Total
	}

	pipeline := mongo.Pipeline{
		groupStage,
		sortStage,
		bson.D{{Key: "$skip", Value: int64((page - 1) * limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	}
	var rows []sessionRow
	if err := d.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, 0, err
	}

	sessions := make([]dao.ImportSession, 0, len(rows))
	for _, r := range rows {
		sessions = append(sessions, dao.ImportSession{
			StartedAt:  r.ID.StartedAt,
			File:       r.ID.File,
			ErrorCount: r.ErrorCount,
		})
	}
	return sessions, total, nil
}

// FindWithFilter retrieves error rows, optionally scoped to one session.
func (d *importErrorDAO) FindWithFilter(ctx context.Context, filter *dao.ImportErrorFilter) ([]*entity.ImportError, int64, error) {
	if filter == nil {
		filter = &dao.ImportErrorFilter{}
	}

	match := bson.M{}
	if filter.StartedAt != nil {
		match["session_started_at"] = *filter.StartedAt
	}
	if filter.File != "" {
		match["file"] = filter.File
	}
	sort := bson.D{{Key: "row", Value: 1}}

	var docs []*document.ImportErrorDocument
	total, err := d.findPage(ctx, match, sort, filter.Page, filter.Limit, &docs)
	if err != nil {
		return nil, 0, err
	}
	return d.mapper.ToEntities(docs), total, nil
}
