package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"userdir_backend/internal/app/di"
	"userdir_backend/internal/app/router"
	"userdir_backend/internal/feature/directory/transport/handler"
	"userdir_backend/internal/feature/directory/usecase"
	"userdir_backend/internal/platform/cache"
	platformredis "userdir_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without source cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Source（リモートAPIクライアント）
	src := di.NewDirectorySource()

	// Redisキャッシュでラップ（rdbがnilなら素通し）
	cachedSrc := cache.NewCachingSource(rdb, cache.TTLFromEnv(), src, "directory")

	// Store（セッション寿命の共有状態）
	store := usecase.NewStore(cachedSrc)
	defer store.Close()

	// Handler
	directoryH := handler.NewDirectoryHandler(store)

	// ルータ生成
	r := router.NewRouter(directoryH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
