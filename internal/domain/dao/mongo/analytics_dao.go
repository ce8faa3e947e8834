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

// analyticsDAO implements dao.AnalyticsDAO with aggregation pipelines
// over the contents collection.
type analyticsDAO struct {
	contents *mongo.Collection
	users    *mongo.Collection
	mapper   *mapper.ContentMapper
}

// NewAnalyticsDAO creates a new MongoDB-based AnalyticsDAO.
func NewAnalyticsDAO(db *mongo.Database) dao.AnalyticsDAO {
	return &analyticsDAO{
		contents: db.Collection(document.ContentDocument{}.CollectionName()),
		users:    db.Collection(document.UserDocument{}.CollectionName()),
		mapper:   mapper.NewContentMapper(),
	}
}

// dimensionExpr returns the aggregation expression that produces the
// string key for a dimension. Year is stored as an int and the month
// key is derived from release_date, so both need conversion.
func dimensionExpr(dim dao.Dimension) any {
	switch dim {
	case dao.DimensionYear:
		return bson.M{"$toString": "$year"}
	case dao.DimensionMonth:
		return bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$release_date"}}
	case dao.DimensionGenre:
		return "$assigned_genre"
	case dao.DimensionLanguage:
		return "$primary_language"
	case dao.DimensionAgeRating:
		return "$age_rating"
	case dao.DimensionFormat:
		return "$assigned_format"
	case dao.DimensionSource:
		return "$source"
	default:
		return "$platform"
	}
}

// dimensionMatch restricts the pipeline to documents that can produce a
// key for the dimension. Only the month dimension needs this: entries
// without a release date have no month.
func dimensionMatch(match bson.M, dims ...dao.Dimension) bson.M {
	for _, dim := range dims {
		if dim == dao.DimensionMonth {
			// Merge with any release_date range the filter set.
			if rd, ok := match["release_date"].(bson.M); ok {
				rd["$ne"] = nil
			} else {
				match["release_date"] = bson.M{"$ne": nil}
			}
		}
	}
	return match
}

// keyExpr wraps a dimension expression so missing values group under
// the empty string instead of BSON null.
func keyExpr(dim dao.Dimension) any {
	return bson.M{"$ifNull": bson.A{dimensionExpr(dim), ""}}
}

// CountByDimension groups matching entries by one dimension.
func (d *analyticsDAO) CountByDimension(ctx context.Context, filter *dao.ContentFilter, dim dao.Dimension) ([]dao.DimensionCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: dimensionMatch(contentMatch(filter), dim)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   keyExpr(dim),
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "count", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := d.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}

	out := make([]dao.DimensionCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, dao.DimensionCount{Key: r.Key, Count: r.Count})
	}
	return out, nil
}

// CountByDimensions groups matching entries by two dimensions,
// returning flat (row, col, count) triples sorted by key.
func (d *analyticsDAO) CountByDimensions(ctx context.Context, filter *dao.ContentFilter, row, col dao.Dimension) ([]dao.CrossTabCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: dimensionMatch(contentMatch(filter), row, col)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"row": keyExpr(row),
				"col": keyExpr(col),
			},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "_id.row", Value: 1},
			{Key: "_id.col", Value: 1},
		}}},
	}

	var rows []struct {
		ID struct {
			Row string `bson:"row"`
			Col string `bson:"col"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := d.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}

	out := make([]dao.CrossTabCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, dao.CrossTabCount{Row: r.ID.Row, Col: r.ID.Col, Count: r.Count})
	}
	return out, nil
}

// DubbingCounts counts matching entries with each dubbing flag set.
// Every tracked language appears in the result, including zero counts.
func (d *analyticsDAO) DubbingCounts(ctx context.Context, filter *dao.ContentFilter) ([]dao.DimensionCount, error) {
	group := bson.M{"_id": nil}
	for _, lang := range entity.DubbingLanguages {
		group[lang] = bson.M{"$sum": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$dubbing." + lang, true}}, 1, 0,
		}}}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: contentMatch(filter)}},
		bson.D{{Key: "$group", Value: group}},
	}

	var rows []bson.M
	if err := d.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}

	out := make([]dao.DimensionCount, 0, len(entity.DubbingLanguages))
	for _, lang := range entity.DubbingLanguages {
		var count int64
		if len(rows) > 0 {
			count = toInt64(rows[0][lang])
		}
		out = append(out, dao.DimensionCount{Key: lang, Count: count})
	}
	return out, nil
}

// DurationStats computes avg/min/max duration hours per (row, col)
// cell. Entries without a duration are excluded.
func (d *analyticsDAO) DurationStats(ctx context.Context, filter *dao.ContentFilter, row, col dao.Dimension) ([]dao.DurationStat, error) {
	match := dimensionMatch(contentMatch(filter), row, col)
	match["duration_hours"] = bson.M{"$ne": nil}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"row": keyExpr(row),
				"col": keyExpr(col),
			},
			"count": bson.M{"$sum": 1},
			"avg":   bson.M{"$avg": "$duration_hours"},
			"min":   bson.M{"$min": "$duration_hours"},
			"max":   bson.M{"$max": "$duration_hours"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "_id.row", Value: 1},
			{Key: "_id.col", Value: 1},
		}}},
	}

	var rows []struct {
		ID struct {
			Row string `bson:"row"`
			Col string `bson:"col"`
		} `bson:"_id"`
		Count int64   `bson:"count"`
		Avg   float64 `bson:"avg"`
		Min   float64 `bson:"min"`
		Max   float64 `bson:"max"`
	}
	if err := d.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}

	out := make([]dao.DurationStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, dao.DurationStat{
			Row:         r.ID.Row,
			Col:         r.ID.Col,
			Count:       r.Count,
			AvgDuration: r.Avg,
			MinDuration: r.Min,
			MaxDuration: r.Max,
		})
	}
	return out, nil
}

// Summary computes the dashboard header numbers and the five most
// recently created entries joined with their creator's username.
func (d *analyticsDAO) Summary(ctx context.Context) (*dao.SummaryStats, error) {
	stats := &dao.SummaryStats{}

	total, err := d.contents.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.TotalContent = total

	thisYear, err := d.contents.CountDocuments(ctx, bson.M{"year": time.Now().Year()})
	if err != nil {
		return nil, err
	}
	stats.ContentThisYear = thisYear

	platforms, err := d.contents.Distinct(ctx, "platform", bson.M{})
	if err != nil {
		return nil, err
	}
	stats.TotalPlatforms = int64(len(platforms))

	genres, err := d.contents.Distinct(ctx, "assigned_genre", bson.M{"assigned_genre": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}
	stats.TotalGenres = int64(len(genres))

	recent, err := d.recentWithCreators(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.Recent = recent

	return stats, nil
}

// recentWithCreators looks up the newest entries joined with the
// creating user's username. Entries whose creator was removed keep an
// empty username.
func (d *analyticsDAO) recentWithCreators(ctx context.Context, limit int) ([]dao.RecentContent, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         d.users.Name(),
			"localField":   "created_by",
			"foreignField": "numeric_id",
			"as":           "creator",
		}}},
	}

	var rows []struct {
		document.ContentDocument `bson:",inline"`
		Creator                  []document.UserDocument `bson:"creator"`
	}
	if err := d.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}

	out := make([]dao.RecentContent, 0, len(rows))
	for _, r := range rows {
		rc := dao.RecentContent{Content: d.mapper.ToEntity(&r.ContentDocument)}
		if len(r.Creator) > 0 {
			rc.Username = r.Creator[0].Username
		}
		out = append(out, rc)
	}
	return out, nil
}

// aggregate runs a pipeline over the contents collection.
func (d *analyticsDAO) aggregate(ctx context.Context, pipeline mongo.Pipeline, results any) error {
	cursor, err := d.contents.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

// toInt64 normalizes the numeric types the driver may decode a
// pipeline $sum into.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
