package browse

import (
	"context"
	"fmt"
	"strings"

	"userdir_backend/internal/feature/directory/domain/entity"
)

// List はユーザーグリッドを表示します。一覧が未取得なら先に取得します
// （初回表示での取得はビューの責務）。
func (a *App) List(ctx context.Context) {
	a.showList(ctx, "")
}

// Search は検索語で絞り込んだグリッドを表示します。絞り込みはこのビューの
// 手元で行い、ストアの状態には触れません。
func (a *App) Search(ctx context.Context, term string) {
	a.showList(ctx, term)
}

// Refresh は一覧を無条件に取り直します。
func (a *App) Refresh(ctx context.Context) {
	a.refreshList(ctx, "")
}

func (a *App) showList(ctx context.Context, term string) {
	if len(a.dir.Snapshot().Users) == 0 {
		a.refreshList(ctx, term)
		return
	}
	a.renderList(term)
}

// refreshList は一覧の取得と表示をretry用のクロージャとして組み立てて実行します。
func (a *App) refreshList(ctx context.Context, term string) {
	a.lastFetch = func(ctx context.Context) {
		a.dir.FetchAllUsers(ctx)
		a.renderList(term)
	}
	a.lastFetch(ctx)
}

func (a *App) renderList(term string) {
	snap := a.dir.Snapshot()
	if snap.Error != "" {
		printlnFn("Error:", snap.Error)
		printlnFn("Type 'retry' to try again.")
		return
	}

	users := filterUsers(snap.Users, term)
	if len(users) == 0 {
		printlnFn("No users to show.")
		return
	}
	printlnFn(fmt.Sprintf("%-4s %-14s %-22s %-30s %s", "ID", "USERNAME", "NAME", "EMAIL", "CITY"))
	for _, u := range users {
		printlnFn(fmt.Sprintf("%-4d %-14s %-22s %-30s %s",
			u.ID, u.Username, u.Name.Firstname+" "+u.Name.Lastname, u.Email, u.Address.City))
	}
}

// filterUsers はユーザー名・メール・氏名への大文字小文字を無視した部分一致で絞り込みます。
// 空の検索語はそのまま全件を返します。
func filterUsers(users []entity.User, term string) []entity.User {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		return users
	}
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Name.Firstname), q) ||
			strings.Contains(strings.ToLower(u.Name.Lastname), q) {
			out = append(out, u)
		}
	}
	return out
}
