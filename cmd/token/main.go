// Command token mints bearer or share tokens signed with the configured secret.
//
//	token -user <uuid> [-role admin|user]
//	token -share <website uuid>
package main

import (
	"flag"
	"fmt"
	"os"

	"website-stats-service/internal/auth"
	"website-stats-service/internal/platform/config"

	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	userID := flag.String("user", "", "user id for a bearer token")
	role := flag.String("role", auth.RoleUser, "role claim of the bearer token (admin or user)")
	shareWebsite := flag.String("share", "", "website id for a share token")
	flag.Parse()

	if err := run(*configPath, *userID, *role, *shareWebsite); err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, userID, role, shareWebsite string) error {
	if (userID == "") == (shareWebsite == "") {
		return fmt.Errorf("exactly one of -user or -share is required")
	}

	cfg, err := config.Read(configPath)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth jwt secret is not set")
	}
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var token string
	if shareWebsite != "" {
		if err := uuid.Validate(shareWebsite); err != nil {
			return fmt.Errorf("invalid website id: %w", err)
		}
		token, err = tokens.IssueShareToken(shareWebsite)
	} else {
		if role != auth.RoleAdmin && role != auth.RoleUser {
			return fmt.Errorf("unknown role %q", role)
		}
		token, err = tokens.IssueUserToken(userID, role)
	}
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
