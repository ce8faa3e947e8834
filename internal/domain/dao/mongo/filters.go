package mongo

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
)

// contentMatch translates a ContentFilter into a $match document.
// Empty slices and nil pointers contribute nothing, so an empty filter
// yields an empty match that selects the whole collection.
func contentMatch(f *dao.ContentFilter) bson.M {
	match := bson.M{}
	if f == nil {
		return match
	}

	addIn(match, "platform", f.Platforms)
	addIn(match, "assigned_genre", f.Genres)
	addIn(match, "primary_language", f.Languages)
	addIn(match, "age_rating", f.AgeRatings)
	addIn(match, "source", f.Sources)
	addIn(match, "assigned_format", f.Formats)

	switch {
	case f.YearExact != nil:
		match["year"] = *f.YearExact
	case len(f.YearSet) > 0:
		match["year"] = bson.M{"$in": f.YearSet}
	case f.YearMin != nil || f.YearMax != nil:
		yr := bson.M{}
		if f.YearMin != nil {
			yr["$gte"] = *f.YearMin
		}
		if f.YearMax != nil {
			yr["$lte"] = *f.YearMax
		}
		match["year"] = yr
	}

	if f.StartDate != nil || f.EndDate != nil {
		rd := bson.M{}
		if f.StartDate != nil {
			rd["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			rd["$lte"] = *f.EndDate
		}
		match["release_date"] = rd
	}

	addRangeF(match, "duration_hours", f.MinDuration, f.MaxDuration)
	addRangeI(match, "total_dubbings", f.MinPopularity, f.MaxPopularity)
	addRangeI(match, "seasons", f.MinSeasons, f.MaxSeasons)

	if len(f.DubbingLanguages) == 1 {
		match["dubbing."+f.DubbingLanguages[0]] = true
	} else if len(f.DubbingLanguages) > 1 {
		or := make([]bson.M, 0, len(f.DubbingLanguages))
		for _, lang := range f.DubbingLanguages {
			or = append(or, bson.M{"dubbing." + lang: true})
		}
		match["$or"] = or
	}

	// Merge with the popularity range above rather than replacing it.
	if f.HasDubbing != nil {
		dubbed, ok := match["total_dubbings"].(bson.M)
		if !ok {
			dubbed = bson.M{}
			match["total_dubbings"] = dubbed
		}
		if *f.HasDubbing {
			dubbed["$gt"] = 0
		} else {
			dubbed["$eq"] = 0
		}
	}

	return match
}

// contentSortFields maps client sort keys to document fields.
var contentSortFields = map[string]string{
	"title":         "title",
	"platform":      "platform",
	"year":          "year",
	"releaseDate":   "release_date",
	"totalDubbings": "total_dubbings",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

// contentSort builds the sort document for a content listing.
// Unknown sort keys fall back to newest-first by numeric ID.
func contentSort(f *dao.ContentFilter) bson.D {
	if f != nil {
		if field, ok := contentSortFields[f.SortBy]; ok {
			return bson.D{{Key: field, Value: sortDirection(f.SortDesc)}}
		}
	}
	return bson.D{{Key: "numeric_id", Value: -1}}
}

// userMatch translates a UserFilter into a $match document.
// Soft-deleted users are always excluded.
func userMatch(f *dao.UserFilter) bson.M {
	match := notDeletedFilter()
	if f == nil {
		return match
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		match["$or"] = []bson.M{
			{"username": pattern},
			{"email": pattern},
		}
	}
	if f.Role != nil {
		match["role"] = string(*f.Role)
	}
	if f.IsActive != nil {
		match["is_active"] = *f.IsActive
	}
	if f.CreatedAfter != nil || f.CreatedBefore != nil {
		rng := bson.M{}
		if f.CreatedAfter != nil {
			rng["$gte"] = *f.CreatedAfter
		}
		if f.CreatedBefore != nil {
			rng["$lte"] = *f.CreatedBefore
		}
		match["created_at"] = rng
	}
	if f.LastLoginAfter != nil || f.LastLoginBefore != nil {
		rng := bson.M{}
		if f.LastLoginAfter != nil {
			rng["$gte"] = *f.LastLoginAfter
		}
		if f.LastLoginBefore != nil {
			rng["$lte"] = *f.LastLoginBefore
		}
		match["last_login"] = rng
	}

	return match
}

var userSortFields = map[string]string{
	"username":  "username",
	"email":     "email",
	"role":      "role",
	"lastLogin": "last_login",
	"createdAt": "created_at",
}

func userSort(f *dao.UserFilter) bson.D {
	if f != nil {
		if field, ok := userSortFields[f.SortBy]; ok {
			return bson.D{{Key: field, Value: sortDirection(f.SortDesc)}}
		}
	}
	return bson.D{{Key: "numeric_id", Value: -1}}
}

// activityMatch translates an ActivityFilter into a $match document.
func activityMatch(f *dao.ActivityFilter) bson.M {
	match := bson.M{}
	if f == nil {
		return match
	}

	if f.UserID != nil {
		match["user_id"] = *f.UserID
	}
	if f.Action != nil {
		match["action"] = string(*f.Action)
	}
	if f.After != nil || f.Before != nil {
		rng := bson.M{}
		if f.After != nil {
			rng["$gte"] = *f.After
		}
		if f.Before != nil {
			rng["$lte"] = *f.Before
		}
		match["created_at"] = rng
	}

	return match
}

// addIn sets a $in condition when values are present.
func addIn(match bson.M, field string, values []string) {
	if len(values) > 0 {
		match[field] = bson.M{"$in": values}
	}
}

func addRangeF(match bson.M, field string, min, max *float64) {
	if min == nil && max == nil {
		return
	}
	rng := bson.M{}
	if min != nil {
		rng["$gte"] = *min
	}
	if max != nil {
		rng["$lte"] = *max
	}
	match[field] = rng
}

func addRangeI(match bson.M, field string, min, max *int) {
	if min == nil && max == nil {
		return
	}
	rng := bson.M{}
	if min != nil {
		rng["$gte"] = *min
	}
	if max != nil {
		rng["$lte"] = *max
	}
	match[field] = rng
}

func sortDirection(desc bool) int {
	if desc {
		return -1
	}
	return 1
}
