package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/Cheertaboi/delivery-date-service/internal/api"
	"github.com/Cheertaboi/delivery-date-service/internal/api/middleware"
	"github.com/Cheertaboi/delivery-date-service/internal/cache"
	"github.com/Cheertaboi/delivery-date-service/internal/config"
	"github.com/Cheertaboi/delivery-date-service/internal/delivery"
	"github.com/Cheertaboi/delivery-date-service/internal/repository"
	"github.com/Cheertaboi/delivery-date-service/internal/service"
	"github.com/Cheertaboi/delivery-date-service/internal/token"
	"github.com/Cheertaboi/delivery-date-service/pkg/db"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	dbCfg, err := db.LoadPostgresConfig()
	if err != nil {
		config.Exitf("db config: %v", err)
	}
	conn, err := db.NewPostgresConnection(dbCfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer conn.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = db.Migrate(migrateCtx, conn)
	cancelMigrate()
	if err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var settingsCache cache.SettingsCache = cache.NewMemorySettingsCache(cfg.SettingsCacheTTL)
	if cfg.RedisURL != "" {
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(pingCtx, cfg.RedisURL)
		cancelPing()
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer client.Close()
		settingsCache = cache.NewRedisSettingsCache(client, cfg.SettingsCacheTTL)
	}

	signer, err := token.NewSigner(cfg.TokenSecret, cfg.TokenTTL, nil)
	if err != nil {
		config.Exitf("token: %v", err)
	}

	// create service with repos
	svc := service.NewDeliveryService(
		repository.NewSettingsRepo(conn),
		repository.NewProductRepo(conn),
		repository.NewOrderRepo(conn),
		settingsCache,
		delivery.NewResolver(loc, cfg.FastCategory, cfg.CutoffHour),
		nil,
	)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Mount("/", api.NewRouter(svc, signer, cfg.InternalAPIKey))

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("starting delivery-date-service on %s (timezone %s)", cfg.HTTPAddr, loc)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %s\n", err)
	}

	<-idleConnsClosed
	log.Println("server stopped")
}
