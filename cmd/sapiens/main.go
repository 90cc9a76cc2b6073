package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/database"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/email"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/filestore"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/logging"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/payments"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/push"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/server"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := logging.Setup(os.Getenv("SAPIENS_LOG_LEVEL"), os.Getenv("SAPIENS_LOG_FORMAT"))

	port := envOr("SAPIENS_PORT", "8080")
	dbPath := envOr("SAPIENS_DB_PATH", "sapiens.db")

	secret := os.Getenv("SAPIENS_SESSION_SECRET")
	if secret == "" {
		logger.Error("SAPIENS_SESSION_SECRET is required")
		os.Exit(1)
	}

	sessionTTL := 7 * 24 * time.Hour
	if v := os.Getenv("SAPIENS_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logger.Error("invalid SAPIENS_SESSION_TTL", "value", v, "error", err)
			os.Exit(1)
		}
		sessionTTL = d
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	paymentsClient := payments.NewClient(payments.Config{
		SecretKey:  os.Getenv("SAPIENS_STRIPE_SECRET_KEY"),
		SuccessURL: os.Getenv("SAPIENS_STRIPE_SUCCESS_URL"),
		CancelURL:  os.Getenv("SAPIENS_STRIPE_CANCEL_URL"),
	})

	emailClient := email.NewClient(
		os.Getenv("SAPIENS_POSTMARK_TOKEN"),
		os.Getenv("SAPIENS_FROM_EMAIL"),
	)

	files := filestore.New(filestore.Config{
		Endpoint:  os.Getenv("SAPIENS_S3_ENDPOINT"),
		Bucket:    os.Getenv("SAPIENS_S3_BUCKET"),
		Region:    envOr("SAPIENS_S3_REGION", "auto"),
		AccessKey: os.Getenv("SAPIENS_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("SAPIENS_S3_SECRET_KEY"),
	})

	pushSvc := push.NewService(
		os.Getenv("SAPIENS_VAPID_PUBLIC_KEY"),
		os.Getenv("SAPIENS_VAPID_PRIVATE_KEY"),
		envOr("SAPIENS_VAPID_SUBSCRIBER", "mailto:admin@localhost"),
	)

	srv := server.New(server.Config{
		SessionSecret: []byte(secret),
		SessionTTL:    sessionTTL,
	}, db, paymentsClient, emailClient, files, pushSvc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sched := srv.PushScheduler(); sched != nil {
		sched.Start(ctx)
		defer sched.Stop()
	}

	// Purge stale rate-limit windows in the background.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Sapiens running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
