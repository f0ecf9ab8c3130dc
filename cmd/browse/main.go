package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"userdir_backend/internal/app/di"
	"userdir_backend/internal/browse"
	"userdir_backend/internal/feature/directory/usecase"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	src := di.NewDirectorySource()
	store := usecase.NewStore(src)
	defer store.Close()

	app := browse.NewApp(store)
	app.Run(context.Background())
}
