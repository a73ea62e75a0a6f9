package postgres

import (
	"testing"
	"time"

	"github.com/ogurasousui/exit-formality/internal/platform/config"
)

func TestBuildPoolConfig(t *testing.T) {
	t.Parallel()

	dbCfg := config.DatabaseConfig{
		Host:            "localhost",
		Port:            15432,
		User:            "user",
		Password:        "pass",
		Name:            "db",
		SSLMode:         "disable",
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
		ApplicationName: "exit-formality",
		LockTimeout:     1500 * time.Millisecond,
	}

	poolCfg, err := BuildPoolConfig(dbCfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != 20 {
		t.Errorf("expected MaxConns 20, got %d", poolCfg.MaxConns)
	}

	if poolCfg.MinConns != 5 {
		t.Errorf("expected MinConns 5, got %d", poolCfg.MinConns)
	}

	if poolCfg.MaxConnLifetime != 30*time.Minute {
		t.Errorf("unexpected MaxConnLifetime: %v", poolCfg.MaxConnLifetime)
	}

	if poolCfg.MaxConnIdleTime != 10*time.Minute {
		t.Errorf("unexpected MaxConnIdleTime: %v", poolCfg.MaxConnIdleTime)
	}

	if poolCfg.ConnConfig.Database != "db" {
		t.Errorf("expected database db, got %s", poolCfg.ConnConfig.Database)
	}

	params := poolCfg.ConnConfig.RuntimeParams
	if params["application_name"] != "exit-formality" {
		t.Errorf("unexpected application_name: %q", params["application_name"])
	}
	if params["lock_timeout"] != "1500" {
		t.Errorf("expected lock_timeout 1500ms, got %q", params["lock_timeout"])
	}
}

func TestBuildPoolConfig_OmitsUnsetSessionParams(t *testing.T) {
	t.Parallel()

	poolCfg, err := BuildPoolConfig(config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "user",
		Password: "p@ss:word",
		Name:     "db",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if _, ok := poolCfg.ConnConfig.RuntimeParams["lock_timeout"]; ok {
		t.Errorf("lock_timeout must not be set when zero")
	}
	if poolCfg.ConnConfig.Password != "p@ss:word" {
		t.Errorf("password was not preserved through DSN escaping: %q", poolCfg.ConnConfig.Password)
	}
}
