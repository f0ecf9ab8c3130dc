// Package redis はRedisクライアントの生成と接続確認を提供します。
package redis

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured はRedis接続情報が環境変数に設定されていないことを示します。
// 呼び出し側はこれを合図にキャッシュなしで動作を続けられます。
var ErrNotConfigured = errors.New("redis: REDIS_HOST is not set")

// NewRedisClient は環境変数 (REDIS_HOST, REDIS_PORT, REDIS_PASSWORD) から
// クライアントを生成し、Pingで疎通を確認してから返します。
func NewRedisClient() (*redis.Client, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil, ErrNotConfigured
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	addr := host + ":" + port

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
