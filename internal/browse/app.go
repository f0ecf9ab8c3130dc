// Package browse はユーザーディレクトリを端末上で閲覧するREPLビューです。
// 一覧の初回表示での取得、数値でないIDの拒否、エラーの表示と再試行といった
// ビュー側の責務をここで担い、状態はすべてストアに委ねます。
package browse

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"userdir_backend/internal/feature/directory/domain/entity"
	"userdir_backend/internal/feature/directory/usecase"
)

// Directory はブラウザが操作するディレクトリストアのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (browse), not the provider (usecase).
type Directory interface {
	FetchAllUsers(ctx context.Context)
	FetchUserByID(ctx context.Context, id int)
	ClearError()
	SetSelectedUser(u *entity.User)
	Snapshot() usecase.Snapshot
}

// App はディレクトリブラウザ本体です。直前の取得操作を覚えておき、
// retry コマンドで同じ取得をやり直せるようにします。
type App struct {
	dir       Directory
	lastFetch func(ctx context.Context)
}

// NewApp は指定されたストアの上にブラウザを生成します。
func NewApp(dir Directory) *App {
	return &App{dir: dir}
}

// Run は標準入力からコマンドを読み取るループを開始します。
// 入力のEOF、または exit/quit コマンドで戻ります。
func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to the user directory (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runBrowse(ctx, a, a.getStatus, scanner)
}

// getStatus はプロンプトに埋め込む現在状態の短い表記を返します。
func (a *App) getStatus() string {
	snap := a.dir.Snapshot()
	if snap.Loading {
		return "(loading)"
	}
	if snap.Error != "" {
		return "(error)"
	}
	s := fmt.Sprintf("%d users", len(snap.Users))
	if snap.SelectedUser != nil {
		s = fmt.Sprintf("%s, #%d", s, snap.SelectedUser.ID)
	}
	return "(" + s + ")"
}
