package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ganiszulfa/okblog/internal/auth"
	"github.com/ganiszulfa/okblog/internal/config"
	"github.com/ganiszulfa/okblog/internal/file"
	"github.com/ganiszulfa/okblog/internal/logger"
	"github.com/ganiszulfa/okblog/internal/server"
	"github.com/ganiszulfa/okblog/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.Init()
	if err != nil {
		panic("init logger: " + err.Error())
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	minioClient, err := storage.NewMinIOClient(cfg.Storage)
	if err != nil {
		log.Fatal("connect object store", zap.Error(err))
	}

	if err := storage.EnsureBucket(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		log.Fatal("ensure bucket", zap.Error(err))
	}
	log.Info("object store ready",
		zap.String("bucket", cfg.Storage.Bucket),
		zap.String("endpoint", cfg.Storage.Endpoint),
	)

	var verifier auth.Verifier = auth.Unverified{}
	if cfg.Auth.VerifySignature {
		verifier = auth.NewHMACVerifier(cfg.Auth.Secret)
		log.Info("token signature verification enabled")
	}

	fileStore := file.NewMinIOStore(minioClient)
	fileService := file.NewService(fileStore, cfg.Storage.Bucket, log)

	router := server.NewRouter(server.Dependencies{
		Config:      cfg,
		Logger:      log,
		ObjectStore: minioClient,
		Verifier:    verifier,
		FileService: fileService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("file service listening", zap.String("address", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
