// Command upload_token mints a bearer token for POST /api/upload when AUTH_ENABLED is set.
// The secret is read from JWT_SECRET (environment or .env), like the server does.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/credit_tracking_app/internal/platform/config"
	"github.com/SscSPs/credit_tracking_app/internal/utils"
)

func main() {
	subject := flag.String("subject", "", "who the token is issued to, e.g. the shop's uploader")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !cfg.AuthEnabled {
		logger.Warn("AUTH_ENABLED is false, the server will not check this token")
	}

	token, err := utils.GenerateUploadToken(*subject, cfg.JWTSecret, *ttl)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
