package main

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"servicehub/internal/config"
	"servicehub/internal/geo"
	"servicehub/internal/handlers"
	"servicehub/internal/repositories"
	"servicehub/internal/services"
	"servicehub/utils"
)

type application struct {
	log       zerolog.Logger
	db        *sql.DB
	rdb       *redis.Client
	jwtSecret string

	accountHandler *handlers.AccountHandler
	serviceHandler *handlers.ServiceHandler
	reviewHandler  *handlers.ReviewHandler
	hashtagHandler *handlers.HashtagHandler
	searchHandler  *handlers.SearchHandler

	reviewService *services.ReviewService
	ratingHub     *RatingHub
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, tokens *utils.Manager, log zerolog.Logger) *application {
	// Repositories
	accountRepo := &repositories.AccountRepository{DB: db}
	serviceRepo := &repositories.ServiceRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	hashtagRepo := &repositories.HashtagRepository{DB: db}
	sessionRepo := &repositories.SessionRepository{RDB: rdb}
	recordStore := &repositories.RecordStore{Services: serviceRepo, Reviews: reviewRepo, Hashtags: hashtagRepo}

	ratingHub := NewRatingHub(log)

	// Services
	accountService := &services.AccountService{
		AccountRepo: accountRepo,
		Sessions:    sessionRepo,
		Locator:     geo.NewAccountLocator(rdb, log),
		Tokens:      tokens,
		AccessTTL:   cfg.AccessTokenTTL(),
		RefreshTTL:  cfg.RefreshTokenTTL(),
		Log:         log,
	}
	serviceService := &services.ServiceService{ServiceRepo: serviceRepo}
	reviewService := &services.ReviewService{
		ReviewRepo:  reviewRepo,
		ServiceRepo: serviceRepo,
		Notifier:    ratingHub,
		Log:         log,
	}
	hashtagService := &services.HashtagService{HashtagRepo: hashtagRepo}
	searchService := services.NewSearchService(recordStore)

	return &application{
		log:       log,
		db:        db,
		rdb:       rdb,
		jwtSecret: cfg.Auth.JWTSecret,

		accountHandler: &handlers.AccountHandler{Service: accountService},
		serviceHandler: &handlers.ServiceHandler{Service: serviceService},
		reviewHandler:  &handlers.ReviewHandler{Service: reviewService},
		hashtagHandler: &handlers.HashtagHandler{Service: hashtagService},
		searchHandler:  &handlers.SearchHandler{Service: searchService},

		reviewService: reviewService,
		ratingHub:     ratingHub,
	}
}
