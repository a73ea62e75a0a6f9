package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ogurasousui/exit-formality/internal/core/profile"
	"github.com/ogurasousui/exit-formality/internal/platform/config"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const profileKeyPrefix = "exit-formality:profile:"

// NewClient は redis 設定から go-redis クライアントを生成し疎通確認を行います。
// 疎通できない場合も起動は継続し、キャッシュは都度フォールバックします。
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *goredis.Client {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}
	return client
}

// store は ProfileCache が利用する go-redis コマンドの部分集合です。
type store interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// ProfileCache は profile.Repository を Redis で読み取りキャッシュするデコレーターです。
type ProfileCache struct {
	next   profile.Repository
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

// NewProfileCache は ProfileCache を生成します。
func NewProfileCache(next profile.Repository, client store, ttl time.Duration, logger *zap.Logger) *ProfileCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileCache{next: next, store: client, ttl: ttl, logger: logger}
}

type cachedProfile struct {
	EmployeeID    string     `json:"employee_id"`
	Name          string     `json:"name"`
	Gender        string     `json:"gender"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`
	Department    string     `json:"department"`
	Position      string     `json:"position"`
	Address       string     `json:"address"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FindByEmployeeID はキャッシュを優先し、ミス時は委譲先から取得して保存します。
// Redis の障害は警告ログのみとし、委譲先の結果を返します。
func (c *ProfileCache) FindByEmployeeID(ctx context.Context, employeeID string) (*profile.Profile, error) {
	key := profileKeyPrefix + employeeID

	raw, err := c.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedProfile
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached.toProfile(), nil
		}
		c.logger.Warn("discarding malformed cached profile", zap.String("key", key))
	case errors.Is(err, goredis.Nil):
	default:
		c.logger.Warn("profile cache read failed", zap.String("key", key), zap.Error(err))
	}

	found, err := c.next.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(fromProfile(found))
	if err != nil {
		return found, nil
	}
	if err := c.store.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("profile cache write failed", zap.String("key", key), zap.Error(err))
	}
	return found, nil
}

func fromProfile(p *profile.Profile) cachedProfile {
	return cachedProfile{
		EmployeeID:    p.EmployeeID,
		Name:          p.Name,
		Gender:        string(p.Gender),
		DateOfJoining: p.DateOfJoining,
		Department:    p.Department,
		Position:      p.Position,
		Address:       p.Address,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (c cachedProfile) toProfile() *profile.Profile {
	return &profile.Profile{
		EmployeeID:    c.EmployeeID,
		Name:          c.Name,
		Gender:        profile.Gender(c.Gender),
		DateOfJoining: c.DateOfJoining,
		Department:    c.Department,
		Position:      c.Position,
		Address:       c.Address,
		UpdatedAt:     c.UpdatedAt,
	}
}
