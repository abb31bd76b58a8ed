// Command ledger_token prints a bearer token for local use against the API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/auth"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/config"
)

func main() {
	userID := flag.String("user", "", "user id placed in the token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := auth.SignAccessToken(*userID, cfg.JWTSecret, cfg.JWTIssuer, *ttl, time.Now())
	if err != nil {
		slog.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
