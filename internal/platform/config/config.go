package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultProfileTTL      = 10 * time.Minute
	defaultTokenTTL        = time.Hour
	defaultLockTimeout     = 5 * time.Second
	defaultApplicationName = "exit-formality"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Exit     ExitConfig     `yaml:"exit"`
	Company  CompanyConfig  `yaml:"company"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
	ApplicationName    string        `yaml:"application_name"`
	// LockTimeout は申請の行ロック待ちの上限です。超過した更新は競合として扱われます。
	LockTimeout    time.Duration `yaml:"-"`
	LockTimeoutRaw string        `yaml:"lock_timeout"`
}

// RedisConfig は社員情報キャッシュ用 Redis の設定です。Addr が空の場合はキャッシュを使いません。
type RedisConfig struct {
	Addr          string        `yaml:"addr"`
	Password      string        `yaml:"password"`
	DB            int           `yaml:"db"`
	ProfileTTL    time.Duration `yaml:"-"`
	ProfileTTLRaw string        `yaml:"profile_ttl"`
}

// Enabled は Redis が設定されているかを返します。
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// AuthConfig はアクター認証用 JWT の設定です。
type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"`
	TokenTTL    time.Duration `yaml:"-"`
	TokenTTLRaw string        `yaml:"token_ttl"`
}

// LogConfig はロガーの設定です。Format は json または console です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ExitConfig は退職手続きの設定です。
type ExitConfig struct {
	ClearanceDepartments []string `yaml:"clearance_departments"`
}

// CompanyConfig は書面に差し込む会社情報です。
type CompanyConfig struct {
	Name           string `yaml:"name"`
	Address        string `yaml:"address"`
	City           string `yaml:"city"`
	SignatoryName  string `yaml:"signatory_name"`
	SignatoryTitle string `yaml:"signatory_title"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
// auth.jwt_secret と database.password は環境変数 AUTH_JWT_SECRET / DATABASE_PASSWORD で上書きできます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AUTH_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	db := &c.Database
	if err := db.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Redis.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Auth.validateAndNormalize(); err != nil {
		return err
	}

	c.Log.normalize()
	c.Exit.normalize()

	if strings.TrimSpace(c.Company.Name) == "" {
		return fmt.Errorf("config: company.name must be set")
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	lockTimeout, err := parseDurationAllowEmpty(d.LockTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: database.lock_timeout: %w", err)
	}
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	d.LockTimeout = lockTimeout

	if strings.TrimSpace(d.ApplicationName) == "" {
		d.ApplicationName = defaultApplicationName
	}

	return nil
}

func (r *RedisConfig) validateAndNormalize() error {
	if r.DB < 0 {
		return fmt.Errorf("config: redis.db must not be negative")
	}
	ttl, err := parseDurationAllowEmpty(r.ProfileTTLRaw)
	if err != nil {
		return fmt.Errorf("config: redis.profile_ttl: %w", err)
	}
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	r.ProfileTTL = ttl
	return nil
}

func (a *AuthConfig) validateAndNormalize() error {
	if a.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret must be set")
	}
	ttl, err := parseDurationAllowEmpty(a.TokenTTLRaw)
	if err != nil {
		return fmt.Errorf("config: auth.token_ttl: %w", err)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	a.TokenTTL = ttl
	return nil
}

func (l *LogConfig) normalize() {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Level == "" {
		l.Level = "info"
	}
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	if l.Format != "console" {
		l.Format = "json"
	}
}

func (e *ExitConfig) normalize() {
	departments := make([]string, 0, len(e.ClearanceDepartments))
	for _, d := range e.ClearanceDepartments {
		if trimmed := strings.TrimSpace(d); trimmed != "" {
			departments = append(departments, trimmed)
		}
	}
	e.ClearanceDepartments = departments
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。ユーザー名とパスワードはエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}
