package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/jrjohn/streamlens-go/internal/domain/dao"
	"github.com/jrjohn/streamlens-go/internal/domain/entity"
)

func TestContentMatch_Empty(t *testing.T) {
	match := contentMatch(&dao.ContentFilter{})
	if len(match) != 0 {
		t.Errorf("empty filter should produce empty match, got %v", match)
	}
	if m := contentMatch(nil); len(m) != 0 {
		t.Errorf("nil filter should produce empty match, got %v", m)
	}
}

func TestContentMatch_Sets(t *testing.T) {
	f := &dao.ContentFilter{
		Platforms: []string{"HotStream", "CineMax"},
		Genres:    []string{"drama"},
		Languages: []string{"hindi", "tamil"},
	}
	match := contentMatch(f)

	in, ok := match["platform"].(bson.M)
	if !ok {
		t.Fatalf("platform condition missing: %v", match)
	}
	vals := in["$in"].([]string)
	if len(vals) != 2 || vals[0] != "HotStream" {
		t.Errorf("platform $in = %v", vals)
	}
	if _, ok := match["assigned_genre"]; !ok {
		t.Error("genre condition missing")
	}
	if _, ok := match["primary_language"]; !ok {
		t.Error("language condition missing")
	}
}

func TestContentMatch_YearForms(t *testing.T) {
	exact := 2022
	f := &dao.ContentFilter{YearExact: &exact}
	if got := contentMatch(f)["year"]; got != 2022 {
		t.Errorf("exact year = %v, want 2022", got)
	}

	lo, hi := 2020, 2022
	f = &dao.ContentFilter{YearMin: &lo, YearMax: &hi}
	rng := contentMatch(f)["year"].(bson.M)
	if rng["$gte"] != 2020 || rng["$lte"] != 2022 {
		t.Errorf("year range = %v", rng)
	}

	f = &dao.ContentFilter{YearSet: []int{2019, 2021}}
	set := contentMatch(f)["year"].(bson.M)
	if got := set["$in"].([]int); len(got) != 2 {
		t.Errorf("year set = %v", got)
	}
}

func TestContentMatch_Dubbing(t *testing.T) {
	f := &dao.ContentFilter{DubbingLanguages: []string{"tamil"}}
	if got := contentMatch(f)["dubbing.tamil"]; got != true {
		t.Errorf("single dubbing language = %v", got)
	}

	f = &dao.ContentFilter{DubbingLanguages: []string{"tamil", "telugu"}}
	or, ok := contentMatch(f)["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("multi dubbing language should build $or, got %v", contentMatch(f))
	}

	yes := true
	f = &dao.ContentFilter{HasDubbing: &yes}
	gt := contentMatch(f)["total_dubbings"].(bson.M)
	if gt["$gt"] != 0 {
		t.Errorf("hasDubbing=true → %v", gt)
	}

	no := false
	f = &dao.ContentFilter{HasDubbing: &no}
	eq := contentMatch(f)["total_dubbings"].(bson.M)
	if eq["$eq"] != 0 {
		t.Errorf("hasDubbing=false → %v", eq)
	}
}

func TestContentMatch_HasDubbingKeepsPopularityRange(t *testing.T) {
	lo, hi := 3, 10
	yes := true
	f := &dao.ContentFilter{MinPopularity: &lo, MaxPopularity: &hi, HasDubbing: &yes}

	dubbed := contentMatch(f)["total_dubbings"].(bson.M)
	if dubbed["$gte"] != 3 || dubbed["$lte"] != 10 {
		t.Errorf("popularity range lost when combined with hasDubbing: %v", dubbed)
	}
	if dubbed["$gt"] != 0 {
		t.Errorf("hasDubbing condition missing: %v", dubbed)
	}

	no := false
	f = &dao.ContentFilter{MinPopularity: &lo, HasDubbing: &no}
	dubbed = contentMatch(f)["total_dubbings"].(bson.M)
	if dubbed["$gte"] != 3 || dubbed["$eq"] != 0 {
		t.Errorf("range and hasDubbing=false must both survive: %v", dubbed)
	}
}

func TestContentSort(t *testing.T) {
	f := &dao.ContentFilter{SortBy: "year", SortDesc: true}
	sort := contentSort(f)
	if sort[0].Key != "year" || sort[0].Value != -1 {
		t.Errorf("sort = %v", sort)
	}

	f = &dao.ContentFilter{SortBy: "bogus"}
	sort = contentSort(f)
	if sort[0].Key != "numeric_id" || sort[0].Value != -1 {
		t.Errorf("unknown sort key should fall back, got %v", sort)
	}
}

func TestUserMatch(t *testing.T) {
	match := userMatch(nil)
	if _, ok := match["deleted_at"]; !ok {
		t.Error("user match must always exclude soft-deleted users")
	}

	role := entity.RoleAdmin
	active := true
	f := &dao.UserFilter{Search: "ali", Role: &role, IsActive: &active}
	match = userMatch(f)
	if match["role"] != "admin" {
		t.Errorf("role = %v", match["role"])
	}
	if match["is_active"] != true {
		t.Errorf("is_active = %v", match["is_active"])
	}
	or, ok := match["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("search should match username or email, got %v", match)
	}
}

func TestActivityMatch(t *testing.T) {
	uid := uint(7)
	action := entity.ActionLogin
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &dao.ActivityFilter{UserID: &uid, Action: &action, After: &after}

	match := activityMatch(f)
	if match["user_id"] != uint(7) {
		t.Errorf("user_id = %v", match["user_id"])
	}
	if match["action"] != "login" {
		t.Errorf("action = %v", match["action"])
	}
	rng := match["created_at"].(bson.M)
	if !rng["$gte"].(time.Time).Equal(after) {
		t.Errorf("created_at range = %v", rng)
	}
}

func TestDimensionExpr(t *testing.T) {
	if got := dimensionExpr(dao.DimensionGenre); got != "$assigned_genre" {
		t.Errorf("genre expr = %v", got)
	}
	if got := dimensionExpr(dao.DimensionPlatform); got != "$platform" {
		t.Errorf("platform expr = %v", got)
	}
	if _, ok := dimensionExpr(dao.DimensionYear).(bson.M); !ok {
		t.Error("year expr should be a conversion expression")
	}
	if _, ok := dimensionExpr(dao.DimensionMonth).(bson.M); !ok {
		t.Error("month expr should be a date formatting expression")
	}
}

func TestDimensionMatch_MonthKeepsDateRange(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	f := &dao.ContentFilter{StartDate: &start, EndDate: &end}

	match := dimensionMatch(contentMatch(f), dao.DimensionMonth)
	rd := match["release_date"].(bson.M)
	if rd["$gte"] != start || rd["$lte"] != end {
		t.Errorf("date range lost for month dimension: %v", rd)
	}
	if _, ok := rd["$ne"]; !ok {
		t.Errorf("month dimension must still exclude null release dates: %v", rd)
	}

	// Without a date filter the null guard stands alone.
	match = dimensionMatch(contentMatch(&dao.ContentFilter{}), dao.DimensionMonth)
	rd = match["release_date"].(bson.M)
	if _, ok := rd["$ne"]; !ok {
		t.Errorf("null guard missing: %v", rd)
	}

	// Other dimensions leave the match untouched.
	match = dimensionMatch(contentMatch(&dao.ContentFilter{}), dao.DimensionPlatform)
	if len(match) != 0 {
		t.Errorf("platform dimension should not constrain release_date: %v", match)
	}
}
