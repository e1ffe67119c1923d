package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"unispattes/internal/config"
	infraCache "unispattes/internal/infrastructure/cache"
	"unispattes/internal/infrastructure/database"
	"unispattes/internal/infrastructure/queue"
	"unispattes/internal/infrastructure/storage"
	"unispattes/internal/shared/session"
	"unispattes/internal/web"
	"unispattes/pkg/cache"
	"unispattes/pkg/jwt"

	accountHandler "unispattes/internal/domains/account/handler"
	accountJob "unispattes/internal/domains/account/job"
	accountRepo "unispattes/internal/domains/account/repository"
	accountService "unispattes/internal/domains/account/service"

	adoptionHandler "unispattes/internal/domains/adoption/handler"
	adoptionRepo "unispattes/internal/domains/adoption/repository"
	adoptionService "unispattes/internal/domains/adoption/service"

	animalHandler "unispattes/internal/domains/animal/handler"
	animalRepo "unispattes/internal/domains/animal/repository"
	animalService "unispattes/internal/domains/animal/service"
)

// Container holds the dependency graph, built in order:
// config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Redis       *infraCache.RedisClient // nil when running on the in-memory cache
	Storage     *storage.MinIOStorage   // nil when MinIO is disabled
	AsynqClient *asynq.Client           // nil when the queue is disabled
	JWTManager  *jwt.Manager
	Sessions    *session.Manager

	// Repositories
	AnimalRepo   animalRepo.AnimalRepository
	AdoptionRepo adoptionRepo.AdoptionRepository
	AccountRepo  accountRepo.AccountRepository

	// Services
	AnimalService   animalService.ServiceInterface
	AdoptionService adoptionService.ServiceInterface
	AccountService  accountService.ServiceInterface

	// Jobs
	FailedLoginHandler *accountJob.FailedLoginHandler
	LoginTracker       *accountJob.Tracker

	// Handlers (admin JSON API)
	AnimalHandler   *animalHandler.AnimalHandler
	AdoptionHandler *adoptionHandler.AdoptionHandler
	AccountHandler  *accountHandler.AccountHandler

	// Public HTML site
	WebHandler *web.Handler
	Renderer   *web.Renderer
}

// NewContainer builds everything the API and the worker need.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing container...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	if err := c.initDatabase(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initCache()

	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	if cfg.Queue.Enabled {
		c.AsynqClient = queue.NewClient(cfg.Redis)
		log.Info().Msg("Asynq client ready")
	}

	c.JWTManager = jwt.NewManager(cfg.Session.Secret, cfg.App.Name)
	c.Sessions = session.NewManager(session.NewCacheStore(c.Cache), c.JWTManager, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})

	c.initRepositories()
	c.initServices()
	if err := c.initHandlers(); err != nil {
		c.Cleanup()
		return nil, err
	}

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.App.RunMigrations {
		if err := database.Migrate(ctx, dbConfig.DSN()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	return nil
}

// initCache falls back to the in-memory cache when Redis is unreachable.
// Sessions then live only as long as the process.
func (c *Container) initCache() {
	redisClient := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory cache")
		_ = redisClient.Close()
		c.Cache = cache.NewMemoryCache()
		return
	}

	c.Redis = redisClient
	c.Cache = redisClient
}

func (c *Container) initStorage() error {
	if !c.Config.MinIO.Enabled {
		log.Info().Msg("MinIO disabled, photo uploads unavailable")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init MinIO: %w", err)
	}
	c.Storage = s
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AnimalRepo = animalRepo.NewPostgresAnimalRepository(pool)
	c.AdoptionRepo = adoptionRepo.NewPostgresAdoptionRepository(pool)
	c.AccountRepo = accountRepo.NewPostgresAccountRepository(pool)
}

func (c *Container) initServices() {
	// A nil *MinIOStorage must not become a non-nil interface
	var photos animalService.PhotoStorage
	if c.Storage != nil {
		photos = c.Storage
	}
	c.AnimalService = animalService.NewAnimalService(c.AnimalRepo, photos, storage.NewImageProcessor())

	c.AdoptionService = adoptionService.NewAdoptionService(c.AdoptionRepo, c.AnimalRepo)

	c.FailedLoginHandler = accountJob.NewFailedLoginHandler(c.Cache, c.AccountRepo)
	var enqueuer accountJob.Enqueuer
	if c.AsynqClient != nil {
		enqueuer = c.AsynqClient
	}
	c.LoginTracker = accountJob.NewTracker(c.FailedLoginHandler, enqueuer)
	c.AccountService = accountService.NewAccountService(c.AccountRepo, c.LoginTracker)
}

func (c *Container) initHandlers() error {
	c.AnimalHandler = animalHandler.NewAnimalHandler(c.AnimalService)
	c.AdoptionHandler = adoptionHandler.NewAdoptionHandler(c.AdoptionService)
	c.AccountHandler = accountHandler.NewAccountHandler(c.AccountService)

	renderer, err := web.NewRenderer(c.Config.App.TemplatesDir)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	c.Renderer = renderer
	c.WebHandler = web.NewHandler(c.AnimalService, c.AdoptionService, c.AccountService, c.Sessions)
	return nil
}

// LoadPrincipal resolves a session's account. Deactivated accounts are rejected.
func (c *Container) LoadPrincipal(ctx context.Context, accountID int64) (*session.Principal, error) {
	account, err := c.AccountService.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("account %d is inactive", accountID)
	}
	return &session.Principal{
		AccountID: account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		IsStaff:   account.IsStaff,
	}, nil
}

// HealthCheck pings the database and the cache.
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"database": "up", "cache": "up"}

	if err := c.DB.HealthCheck(ctx); err != nil {
		status["database"] = "down"
	}
	if err := c.Cache.Ping(ctx); err != nil {
		status["cache"] = "down"
	}
	if c.Redis == nil {
		status["cache"] = "memory"
	}
	if c.Storage != nil {
		if err := c.Storage.HealthCheck(ctx); err != nil {
			status["storage"] = "down"
		} else {
			status["storage"] = "up"
		}
	}
	return status
}

// Cleanup releases connections; safe on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleanup completed")
}
