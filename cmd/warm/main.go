package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"userdir_backend/internal/app/di"
	"userdir_backend/internal/feature/directory/usecase"
	"userdir_backend/internal/platform/cache"
	platformredis "userdir_backend/internal/platform/redis"
	"userdir_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// 温める先は共有のRedisキャッシュなので、Redisが無ければやることがない
	rdb, err := platformredis.NewRedisClient()
	if err != nil {
		log.Fatal("[ERROR] Redis is required for warming:", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	src := di.NewDirectorySource()
	cached := cache.NewCachingSource(rdb, cache.TTLFromEnv(), src, "directory")

	// リモートAPIを叩きすぎないよう呼び出し間隔を制限する
	limiter := ratelimiter.New(30, time.Minute)
	uc := usecase.NewWarmUsecase(cached, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// 古いエントリを消してから詰め直す
	if err := cached.Invalidate(ctx); err != nil {
		log.Fatal("failed to invalidate cache:", err)
	}

	warmed, err := uc.WarmAll(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("warm ok: %d users cached", warmed)
}
