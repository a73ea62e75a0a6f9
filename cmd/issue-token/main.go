// issue-token はローカル検証用にアクタートークンを発行します。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"github.com/ogurasousui/exit-formality/internal/platform/auth"
	"github.com/ogurasousui/exit-formality/internal/platform/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		subject    = flag.String("sub", "", "actor id (employee id)")
		role       = flag.String("role", string(exit.RoleEmployee), "actor role: employee, team-lead, project-manager, hr, admin, clearance-officer")
		department = flag.String("department", "", "department a clearance-officer signs off")
		ttl        = flag.Duration("ttl", 0, "token lifetime, defaults to auth.token_ttl")
	)
	flag.Parse()

	_ = godotenv.Load()

	if *subject == "" {
		log.Fatal("-sub is required")
	}
	parsedRole, ok := exit.ParseRole(*role)
	if !ok {
		log.Fatalf("unknown role %q", *role)
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "assets/local.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lifetime := cfg.Auth.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, expiresAt, err := auth.NewTokenManager(cfg.Auth.JWTSecret, lifetime).Issue(*subject, string(parsedRole), *department)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
}
