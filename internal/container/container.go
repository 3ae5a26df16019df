package container

import (
	"context"

	"vote-be/internal/config"
	"vote-be/internal/repository"
	"vote-be/internal/service"
	"vote-be/internal/service/auth"
	"vote-be/pkg/database"
	"vote-be/pkg/logger"
	"vote-be/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.MongoDB
	RedisClient *redis.Client

	Companies repository.CompanyRepository
	Sessions  repository.SessionRepository
	Votes     repository.VoteRepository

	VotingService *service.VotingService
	AdminService  *service.AdminService
	AuthService   *auth.Service
}

// New wires repositories and services. Redis is optional: without it the
// service runs uncached and admin tokens live in process memory.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	companies := repository.NewCompanyRepository(db)
	sessions := repository.NewSessionRepository(db)
	votes := repository.NewVoteRepository(db)

	throttle := service.NewRevoteThrottle(votes, service.DefaultRevoteWindow)

	var tokenStore auth.TokenStore
	if redisClient != nil {
		tokenStore = auth.NewRedisTokenStore(redisClient)
	} else {
		tokenStore = auth.NewMemoryTokenStore()
	}

	return &Container{
		Config:        cfg,
		Logger:        log,
		DB:            db,
		RedisClient:   redisClient,
		Companies:     companies,
		Sessions:      sessions,
		Votes:         votes,
		VotingService: service.NewVotingService(companies, sessions, votes, throttle, redisClient, log.Logger),
		AdminService:  service.NewAdminService(companies, sessions, votes, redisClient, log.Logger),
		AuthService:   auth.NewService(cfg.AdminPassword, tokenStore, log),
	}, nil
}

// Close releases external connections.
func (c *Container) Close(ctx context.Context) error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.WithError(err).Error("Failed to close Redis connection")
		}
	}
	return c.DB.Close(ctx)
}
