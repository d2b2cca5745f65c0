package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blogicum-backend/internal/config"
	"blogicum-backend/internal/infrastructure/cache"
	"blogicum-backend/internal/infrastructure/database"
	"blogicum-backend/internal/infrastructure/storage"
	"blogicum-backend/pkg/jwt"

	"blogicum-backend/internal/domains/category"
	categoryHandler "blogicum-backend/internal/domains/category/handler"
	categoryRepo "blogicum-backend/internal/domains/category/repository"
	commentHandler "blogicum-backend/internal/domains/comment/handler"
	commentRepo "blogicum-backend/internal/domains/comment/repository"
	commentService "blogicum-backend/internal/domains/comment/service"
	"blogicum-backend/internal/domains/location"
	locationHandler "blogicum-backend/internal/domains/location/handler"
	locationRepo "blogicum-backend/internal/domains/location/repository"
	postHandler "blogicum-backend/internal/domains/post/handler"
	postRepo "blogicum-backend/internal/domains/post/repository"
	postService "blogicum-backend/internal/domains/post/service"
	userHandler "blogicum-backend/internal/domains/user/handler"
	userRepo "blogicum-backend/internal/domains/user/repository"
	userService "blogicum-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; construction order is config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	// =====================================================
	// INFRASTRUCTURE
	// =====================================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     storage.ObjectStorage
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// =====================================================
	// REPOSITORIES
	// =====================================================
	UserRepo     userRepo.UserRepository
	PostRepo     postRepo.PostRepository
	CommentRepo  commentRepo.CommentRepository
	CategoryRepo category.Repository
	LocationRepo location.Repository

	// =====================================================
	// SERVICES
	// =====================================================
	UserService     userService.UserService
	PostService     postService.PostService
	ImageService    postService.ImageService
	CommentService  commentService.CommentService
	CategoryService category.Service
	LocationService location.Service

	// =====================================================
	// HANDLERS
	// =====================================================
	UserHandler     *userHandler.Handler
	PostHandler     *postHandler.Handler
	CommentHandler  *commentHandler.Handler
	CategoryHandler *categoryHandler.Handler
	LocationHandler *locationHandler.Handler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// Step 2: database
	db := database.NewPostgresDB(&database.DBConfig{
		Host:              cfg.Database.Host,
		Port:              cfg.Database.Port,
		Username:          cfg.Database.User,
		Password:          cfg.Database.Password,
		DBName:            cfg.Database.Database,
		SSLMode:           cfg.Database.SSLMode,
		MaxConns:          int32(cfg.Database.MaxConns),
		MinConns:          int32(cfg.Database.MinConns),
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
		MaxRetries:        5,
		RetryDelay:        2 * time.Second,
		ConnectTimeout:    30 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	log.Info().Msg("Database connected")

	// Step 3: cache
	redisClient := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisClient
	log.Info().Msg("Redis connected")

	// Step 4: object storage
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio: %w", err)
	}
	c.Storage = minioStorage
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("Object storage ready")

	// Step 5: task queue client
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Step 6: JWT
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Step 7: repositories
	c.UserRepo = userRepo.NewPostgresUserRepository(db.Pool)
	c.PostRepo = postRepo.NewPostgresPostRepository(db.Pool)
	c.CommentRepo = commentRepo.NewPostgresCommentRepository(db.Pool)
	c.CategoryRepo = categoryRepo.NewPostgresCategoryRepository(db.Pool)
	c.LocationRepo = locationRepo.NewPostgresLocationRepository(db.Pool)

	// Step 8: services
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.PostService = postService.NewPostService(c.PostRepo, c.CommentRepo, c.CategoryRepo, c.LocationRepo, c.AsynqClient)
	c.ImageService = postService.NewImageService(c.PostRepo, c.Storage, storage.NewImageProcessor(), c.AsynqClient)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.PostRepo)
	c.CategoryService = category.NewService(c.CategoryRepo, c.Cache)
	c.LocationService = location.NewService(c.LocationRepo)

	// Step 9: handlers
	c.UserHandler = userHandler.NewHandler(c.UserService, c.PostService)
	c.PostHandler = postHandler.NewHandler(c.PostService, c.ImageService)
	c.CommentHandler = commentHandler.NewHandler(c.CommentService)
	c.CategoryHandler = categoryHandler.NewHandler(c.CategoryService, c.PostService)
	c.LocationHandler = locationHandler.NewHandler(c.LocationService)

	log.Info().Msg("Container initialized")
	return c, nil
}

// Cleanup releases every held connection. Call on shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close asynq client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	if redisClient, ok := c.Cache.(*cache.RedisClient); ok && redisClient != nil {
		if err := redisClient.Client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
		}
	}
	log.Info().Msg("Container cleaned up")
}
