// Package router はゲートウェイの全ルートを組み立てます。
package router

import (
	"os"
	"strings"

	"userdir_backend/internal/feature/directory/transport/handler"
	platformhandler "userdir_backend/internal/platform/http/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter はディレクトリゲートウェイのルータを生成します。
// 認証は持たないため全ルートが公開です。
func NewRouter(directory *handler.DirectoryHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザのフロントエンドから直接呼ばれるためCORSを許可する。
	// ルート登録より先にミドルウェアを積むこと。
	r.Use(cors.New(corsConfig()))

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	// ユーザー一覧（?q= で絞り込み、?refresh=true で再取得）
	r.GET("/users", directory.ListUsers)
	// ユーザー詳細（選択中ユーザーを更新する）
	r.GET("/users/:id", directory.GetUserByID)
	// 選択中ユーザーの直接設定・解除
	r.PUT("/selected", directory.PutSelected)
	r.DELETE("/selected", directory.DeleteSelected)
	// エラーの確認。クライアントは再試行の前にこれを呼ぶ
	r.DELETE("/error", directory.DeleteError)
	// ストア概況のスナップショット
	r.GET("/state", directory.GetState)
	// ストア状態のリアルタイム配信
	r.GET("/ws/state", directory.StateFeed)

	return r
}

// corsConfig は ALLOWED_ORIGINS（カンマ区切り）からCORS設定を構築します。
// 未設定または "*" を含む場合は全オリジンを許可します（開発時のデフォルト）。
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()

	raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	if raw == "" {
		cfg.AllowAllOrigins = true
		return cfg
	}

	origins := make([]string, 0)
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
