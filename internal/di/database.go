package di

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/config"
)

// MongoDatabase wraps the application database handle together with
// the client it was opened from.
type MongoDatabase struct {
	DB     *mongo.Database
	Client *mongo.Client
}

// DatabaseModule provides MongoDB dependencies
var DatabaseModule = fx.Module("database",
	fx.Provide(
		provideMongoDatabase,
		provideMongoClient,
	),
	fx.Invoke(createMongoIndexes),
)

// provideMongoDatabase creates a MongoDB database connection.
func provideMongoDatabase(lc fx.Lifecycle, cfg *config.DatabaseConfig, logger *zap.Logger) (*MongoDatabase, error) {
	logger.Info("Connecting to MongoDB",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
	)

	clientOpts := options.Client().ApplyURI(cfg.MongoURI())
	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(context.Background(), nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Name)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})

	return &MongoDatabase{DB: db, Client: client}, nil
}

// provideMongoClient exposes the raw client for health probes.
func provideMongoClient(mongoDB *MongoDatabase) *mongo.Client {
	return mongoDB.Client
}

// createMongoIndexes creates necessary indexes for MongoDB collections.
func createMongoIndexes(mongoDB *MongoDatabase, logger *zap.Logger) error {
	ctx := context.Background()
	db := mongoDB.DB

	// Users collection indexes
	usersCollection := db.Collection("users")
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "numeric_id", Value: 1}},
		},
	}
	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		logger.Error("Failed to create user indexes", zap.Error(err))
		return err
	}

	// Refresh tokens collection indexes
	tokensCollection := db.Collection("refresh_tokens")
	tokenIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
		},
	}
	if _, err := tokensCollection.Indexes().CreateMany(ctx, tokenIndexes); err != nil {
		logger.Error("Failed to create refresh token indexes", zap.Error(err))
		return err
	}

	// Catalog collection indexes. The (platform, title, year) index
	// backs the duplicate check but is deliberately not unique: the
	// check is advisory and imports resolve duplicates row by row.
	contentsCollection := db.Collection("contents")
	contentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "platform", Value: 1},
				{Key: "title", Value: 1},
				{Key: "year", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "numeric_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "year", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "primary_language", Value: 1}},
		},
	}
	if _, err := contentsCollection.Indexes().CreateMany(ctx, contentIndexes); err != nil {
		logger.Error("Failed to create content indexes", zap.Error(err))
		return err
	}

	// Import errors collection indexes, session lookup is (started_at, file)
	importErrorsCollection := db.Collection("import_errors")
	importErrorIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "session_started_at", Value: 1},
				{Key: "file", Value: 1},
			},
		},
	}
	if _, err := importErrorsCollection.Indexes().CreateMany(ctx, importErrorIndexes); err != nil {
		logger.Error("Failed to create import error indexes", zap.Error(err))
		return err
	}

	// Audit log collection indexes
	activitiesCollection := db.Collection("user_activities")
	activityIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "action", Value: 1}},
		},
	}
	if _, err := activitiesCollection.Indexes().CreateMany(ctx, activityIndexes); err != nil {
		logger.Error("Failed to create activity indexes", zap.Error(err))
		return err
	}

	// Counters collection for auto-increment IDs
	countersCollection := db.Collection("counters")
	counterIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := countersCollection.Indexes().CreateMany(ctx, counterIndexes); err != nil {
		logger.Error("Failed to create counter indexes", zap.Error(err))
		return err
	}

	logger.Info("MongoDB indexes created successfully")
	return nil
}
