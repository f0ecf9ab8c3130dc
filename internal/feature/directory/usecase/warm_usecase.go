package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

// RateLimiter は連続するリモート呼び出しの間隔を制御します。
// インターフェースは提供側ではなく利用側(usecase)で定義します。
type RateLimiter interface {
	Wait()
}

// WarmUsecase はソースキャッシュを事前に温めるユースケースです。
// キャッシュ付きソースを通して一覧と各ユーザー詳細を一度ずつ取得することで、
// 以降の読み取りをキャッシュヒットにします。
type WarmUsecase struct {
	source  Source
	limiter RateLimiter
}

// NewWarmUsecase は WarmUsecase を生成します。
func NewWarmUsecase(source Source, limiter RateLimiter) *WarmUsecase {
	return &WarmUsecase{source: source, limiter: limiter}
}

// WarmAll はユーザー一覧と各ユーザーの詳細を順に取得し、温めた件数を返します。
// 個別ユーザーの失敗はログに残して続行し、一覧の取得失敗だけをエラーとして返します。
func (u *WarmUsecase) WarmAll(ctx context.Context) (int, error) {
	users, err := u.source.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("warm user list: %w", err)
	}

	warmed := 0
	for _, usr := range users {
		u.limiter.Wait()
		if _, err := u.source.GetUser(ctx, usr.ID); err != nil {
			slog.Error("directory: warm fetch failed", "user_id", usr.ID, "error", err)
			continue
		}
		warmed++
	}
	return warmed, nil
}
