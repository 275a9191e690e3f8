package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"staybook/internal/config"
	"staybook/internal/database"
	"staybook/internal/middleware"
	"staybook/internal/modules/auth"
	"staybook/internal/modules/booking"
	"staybook/internal/modules/favorite"
	"staybook/internal/modules/property"
	"staybook/internal/notify"
	jwtsvc "staybook/internal/pkg/jwt"
	"staybook/internal/pkg/obs"
	"staybook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := obs.NewLogger(cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(db); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	queue := notify.NewRedisQueue(rdb, cfg.NotifyQueue)
	dispatcher := notify.NewDispatcher(queue, log)

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	jwt := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.RefreshTTL)

	authH := auth.NewHandler(auth.NewService(userRepo, jwt))
	propertyH := property.NewHandler(property.NewService(propertyRepo))
	bookingH := booking.NewHandler(booking.NewService(bookingRepo, dispatcher, log))
	favoriteH := favorite.NewHandler(favorite.NewService(favoriteRepo, propertyRepo))

	if cfg.AppEnv != "dev" && cfg.AppEnv != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	authH.RegisterRoutes(api)
	propertyH.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwt))
	propertyH.RegisterRoutes(protected)
	bookingH.RegisterRoutes(protected)
	favoriteH.RegisterRoutes(protected)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
