package mongo

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// An unconnected client makes collection calls fail fast, which is
// enough to exercise the filter handling ahead of them.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	client, err := mongo.NewClient(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	if err != nil {
		t.Fatalf("mongo.NewClient() error = %v", err)
	}
	return client.Database("streamlens_test")
}

func TestImportErrorDAO_FindWithFilter_NilFilter(t *testing.T) {
	db := testDatabase(t)
	d := NewImportErrorDAO(db, NewIDCounter(db))

	// A nil filter must default pagination instead of dereferencing it.
	_, _, err := d.FindWithFilter(context.Background(), nil)
	if err == nil {
		t.Error("expected an error from the unconnected client")
	}
}
