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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"newshub/config"
	"newshub/database"
	"newshub/handlers"
	"newshub/logger"
	"newshub/mail"
	"newshub/routes"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, cleanup := logger.New(cfg.Log)
	defer cleanup()
	zap.ReplaceGlobals(log)

	log.Info("starting NewsHub API", zap.String("env", cfg.Env))

	// Mongo sometimes needs a moment on cold deploys, so retry the
	// initial connection a few times before giving up.
	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.ConnectMongo(cfg.Mongo); err != nil {
			dbErr = err
			log.Warn("mongodb connection attempt failed", zap.Int("attempt", i), zap.Error(err))
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(dbErr))
	}
	log.Info("mongodb connected", zap.String("database", cfg.Mongo.Database))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal("failed to create indexes", zap.Error(err))
	}
	cancel()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers.SetConfig(cfg)
	handlers.SetMailer(mail.New(cfg.SMTP))

	router := routes.SetupRouter(cfg, log)

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTP.IdleTimeoutSec) * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.HTTP.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	if err := database.DisconnectMongo(); err != nil {
		log.Error("mongodb disconnect", zap.Error(err))
	}

	log.Info("server stopped gracefully")
}
