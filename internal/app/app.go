package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	postboardHTTP "postboard/internal/controller/http"
	"postboard/internal/repo/cache"
	"postboard/internal/repo/persistent"
	"postboard/internal/usecase"
	pkgcache "postboard/pkg/cache"
	"postboard/pkg/config"
	"postboard/pkg/database"
	"postboard/pkg/jwt"
	"postboard/pkg/lifecycle"
	"postboard/pkg/logger"
	"postboard/pkg/middleware"
	"postboard/pkg/queue"
	"postboard/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "postboard/docs" // Swagger docs
)

var _ usecase.ImageStore = (*s3.Client)(nil)

// Dependencies are the storage and integration backends the usecases run on.
// PostCache, ImageStore and Publisher are optional.
type Dependencies struct {
	Users      persistent.UserRepository
	Posts      persistent.PostRepository
	Profiles   persistent.ProfileRepository
	PostCache  cache.PostCache
	ImageStore usecase.ImageStore
	Publisher  queue.EventPublisher
}

type Services struct {
	Notifier    *lifecycle.Notifier
	Provisioner *usecase.ProfileProvisioner
	Auth        usecase.AuthUseCase
	Posts       usecase.PostUseCase
	Profiles    usecase.ProfileUseCase
}

// NewServices builds the usecases and subscribes the account lifecycle
// handlers: the profile provisioner first, then the post cache evictor, then
// the broker forwarder.
func NewServices(cfg *config.Config, log *logger.Logger, jwtService *jwt.Service, deps Dependencies) *Services {
	notifier := lifecycle.NewNotifier()

	provisioner := usecase.NewProfileProvisioner(deps.Profiles, cfg.DefaultProfileImage, log.WithField("component", "provisioner"))
	notifier.Subscribe("profile provisioner", provisioner)

	if deps.PostCache != nil {
		notifier.Subscribe("post cache evictor", usecase.NewPostCacheEvictor(deps.PostCache, log.WithField("component", "evictor")))
	}

	if deps.Publisher != nil {
		notifier.Subscribe("event forwarder", queue.NewForwarder(deps.Publisher, log.WithField("component", "forwarder")))
	}

	return &Services{
		Notifier:    notifier,
		Provisioner: provisioner,
		Auth:        usecase.NewAuthUseCase(deps.Users, jwtService, notifier, log),
		Posts:       usecase.NewPostUseCase(deps.Posts, deps.PostCache, log),
		Profiles:    usecase.NewProfileUseCase(deps.Profiles, deps.ImageStore, log),
	}
}

// NewRouter wires the HTTP surface. redisClient may be nil, which disables
// rate limiting.
func NewRouter(cfg *config.Config, log *logger.Logger, jwtService *jwt.Service, services *Services, redisClient *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("")
	api.Use(middleware.Authenticate(jwtService))
	if redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimit, cfg.RateLimitWindow, log))
	}

	postboardHTTP.RegisterRoutes(api,
		postboardHTTP.NewPostHandler(services.Posts, log),
		postboardHTTP.NewProfileHandler(services.Profiles, log),
		postboardHTTP.NewAuthHandler(services.Auth, log),
	)

	return r
}

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithOutput(os.Stdout, cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := pkgcache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache and rate limiting)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		queueClient: queueClient,
		jwtService:  jwt.NewService(cfg.JWTSecret, cfg.JWTTokenTTL),
	}, nil
}

func (a *App) dependencies() Dependencies {
	deps := Dependencies{
		Users:      persistent.NewUserRepository(a.db),
		Posts:      persistent.NewPostRepository(a.db),
		Profiles:   persistent.NewProfileRepository(a.db),
		ImageStore: a.s3Client,
	}
	if a.redisClient != nil {
		deps.PostCache = cache.NewPostCache(a.redisClient, a.cfg.PostCacheTTL)
	}
	if a.queueClient != nil {
		deps.Publisher = a.queueClient
	}
	return deps
}

func (a *App) Run() error {
	services := NewServices(a.cfg, a.log, a.jwtService, a.dependencies())
	router := NewRouter(a.cfg, a.log, a.jwtService, services, a.redisClient)

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Postboard API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down postboard API...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("Postboard API exited")
	return nil
}
