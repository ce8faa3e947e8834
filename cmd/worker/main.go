package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/jrjohn/streamlens-go/internal/cache"
	"github.com/jrjohn/streamlens-go/internal/config"
	"github.com/jrjohn/streamlens-go/internal/csvio"
	mongodao "github.com/jrjohn/streamlens-go/internal/domain/dao/mongo"
	"github.com/jrjohn/streamlens-go/internal/domain/repository/impl"
	serviceimpl "github.com/jrjohn/streamlens-go/internal/domain/service/impl"
	"github.com/jrjohn/streamlens-go/internal/scheduler"
	"github.com/jrjohn/streamlens-go/pkg/logger"
)

// The worker runs the maintenance jobs (token purge, import sweep) and
// the CSV drop-directory watcher without serving the API. It shares the
// Redis job locks with any API instances, so running both is safe.
func main() {
	cfg, log := mustLoadConfig()
	defer log.Sync()

	log.Info("Starting StreamLens Worker",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()
	redisClient := mustConnectRedis(ctx, cfg, log)
	defer redisClient.Close()

	mongoClient, db := mustConnectMongo(ctx, cfg, log)
	defer mongoClient.Disconnect(context.Background())

	idCounter := mongodao.NewIDCounter(db)
	refreshTokenRepo := impl.NewRefreshTokenRepository(mongodao.NewRefreshTokenDAO(db, idCounter))
	contentRepo := impl.NewContentRepository(mongodao.NewContentDAO(db, idCounter))
	importErrorRepo := impl.NewImportErrorRepository(mongodao.NewImportErrorDAO(db, idCounter))
	activityRepo := impl.NewActivityRepository(mongodao.NewActivityDAO(db, idCounter))
	contentService := serviceimpl.NewContentService(contentRepo, importErrorRepo, activityRepo, cfg, nil, log)

	store := cache.NewStore(redisClient)
	sched := scheduler.NewScheduler(store, log)

	if err := sched.RegisterJob(scheduler.NewTokenPurgeJob(refreshTokenRepo, log)); err != nil {
		log.Fatal("Failed to register token purge job", zap.Error(err))
	}
	if job := scheduler.NewImportSweepJob(cfg, contentService, log); job.Name != "" {
		if err := sched.RegisterJob(job); err != nil {
			log.Fatal("Failed to register import sweep job", zap.Error(err))
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := sched.Start(runCtx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}

	watcher := csvio.NewWatcher(cfg, contentService, log)
	if err := watcher.Start(runCtx); err != nil {
		log.Fatal("Failed to start CSV watcher", zap.Error(err))
	}

	go startHealthServer(sched, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received, stopping worker...")
	cancel()
	watcher.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping scheduler", zap.Error(err))
	}
	log.Info("Worker stopped")
}

func mustLoadConfig() (*config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: cfg.App.Debug,
		Encoding:    "json",
	})
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, log
}

func mustConnectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr()))
	return client
}

func mustConnectMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*mongo.Client, *mongo.Database) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.MongoURI()))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	log.Info("Connected to MongoDB", zap.String("database", cfg.Database.Name))
	return client, client.Database(cfg.Database.Name)
}

func startHealthServer(sched *scheduler.Scheduler, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","jobs":%d}`, len(sched.ListJobs()))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	})

	port := os.Getenv("WORKER_HEALTH_PORT")
	if port == "" {
		port = "9100"
	}
	log.Info("Starting worker health server", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Error("Worker health server error", zap.Error(err))
	}
}
