package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/launchpool/launchpool/config"
	"github.com/launchpool/launchpool/internal/api/handlers"
	"github.com/launchpool/launchpool/internal/api/middleware"
	"github.com/launchpool/launchpool/internal/api/routes"
	"github.com/launchpool/launchpool/internal/cache"
	"github.com/launchpool/launchpool/internal/logger"
	"github.com/launchpool/launchpool/internal/matching"
	mongorepo "github.com/launchpool/launchpool/internal/repositories/mongo"
	pgrepo "github.com/launchpool/launchpool/internal/repositories/postgres"
	"github.com/launchpool/launchpool/internal/services"
	"github.com/launchpool/launchpool/internal/workers"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	l.Info("MongoDB connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "launchpool"
	}
	mongoDB := config.MongoClient.Database(dbName)

	// Repositories
	users := pgrepo.NewUserRepo(config.PostgresDB)
	projects := pgrepo.NewProjectRepo(config.PostgresDB)
	history := mongorepo.NewMatchHistoryRepo(mongoDB)

	// Services
	recorder := services.NewStreamRecorder(config.RedisClient, l)
	engine := matching.NewEngine(matching.DefaultConfig())
	matchSvc := services.NewMatchService(services.MatchServiceDeps{
		Users:    users,
		Projects: projects,
		History:  history,
		Recorder: recorder,
		Engine:   engine,
		Cache:    cache.NewRedisCache(config.RedisClient),
		Logger:   l,
	})

	// History pipeline
	ctx := context.Background()
	pool := &workers.HistoryWorkerPool{
		Redis:   config.RedisClient,
		History: history,
		Logger:  l,
	}
	if err := pool.Start(ctx); err != nil {
		log.Fatalf("history worker start error: %v", err)
	}

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Match: handlers.NewMatchHandler(matchSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
