package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"userdir_backend/internal/feature/directory/domain/entity"

	"github.com/google/uuid"
)

// ユーザー向けに表示する固定の失敗メッセージです。
// 失敗原因(ネットワーク、不正なレスポンス、非2xx)による出し分けはしません。
const listFetchFailedMessage = "Failed to fetch users. Please try again."

const userFetchFailedFormat = "Failed to fetch user with ID %d. Please try again."

// Source はディレクトリの取得元(リモートAPI)を表します。
// インターフェースは提供側ではなく利用側(usecase)で定義します。
type Source interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id int) (entity.User, error)
}

// Snapshot はある瞬間のストア状態のコピーです。
// スライスと選択中ユーザーは呼び出し側が自由に保持・変更できます。
type Snapshot struct {
	Users        []entity.User
	SelectedUser *entity.User
	Loading      bool
	Error        string
}

// Store はユーザーディレクトリの共有状態を保持します。
//
// ミューテックスは個々の状態遷移を直列化するだけで、取得オペレーション全体を
// 排他しません。同じストアに対して複数の取得が同時に走ると loading と error は
// 共有スロットとして上書きし合い、後に完了した方の結果が残ります。
// 呼び出し側での重複抑止は行いません。
type Store struct {
	source Source

	mu       sync.Mutex
	users    []entity.User
	index    map[int]int // user ID -> position in users
	selected *entity.User
	loading  bool
	errMsg   string
	subs     map[int]chan Snapshot
	nextSub  int
	closed   bool
}

// NewStore は空の状態(ユーザーなし、選択なし、エラーなし)のストアを生成します。
func NewStore(source Source) *Store {
	return &Store{
		source: source,
		index:  map[int]int{},
		subs:   map[int]chan Snapshot{},
	}
}

// FetchAllUsers はユーザー一覧をリモートAPIから取得してローカル状態を丸ごと
// 置き換えます。呼び出したゴルーチンをブロックし、エラーは返さずエラースロット
// に固定メッセージとして記録します。失敗時は既存の一覧を変更しません。
func (s *Store) FetchAllUsers(ctx context.Context) {
	opID := uuid.NewString()
	if !s.beginFetch() {
		return
	}
	users, err := s.source.ListUsers(ctx)
	if err != nil {
		slog.Error("directory: list fetch failed", "op_id", opID, "error", err)
		s.failFetch(listFetchFailedMessage)
		return
	}
	s.commitUsers(users)
	slog.Debug("directory: user list replaced", "op_id", opID, "count", len(users))
}

// FetchUserByID は指定IDのユーザーを選択中ユーザーに設定します。
// ローカルの一覧に既にあればそれを使い、リモートへのリクエストは発行しません
// (リードスルー)。取得結果を一覧へ書き戻すことはありません。
func (s *Store) FetchUserByID(ctx context.Context, id int) {
	opID := uuid.NewString()
	if !s.beginFetch() {
		return
	}
	if u, ok := s.lookup(id); ok {
		s.commitSelected(u)
		slog.Debug("directory: user served from local list", "op_id", opID, "user_id", id)
		return
	}
	u, err := s.source.GetUser(ctx, id)
	if err != nil {
		slog.Error("directory: user fetch failed", "op_id", opID, "user_id", id, "error", err)
		s.failSelected(fmt.Sprintf(userFetchFailedFormat, id))
		return
	}
	s.commitSelected(u)
	slog.Debug("directory: user fetched", "op_id", opID, "user_id", id)
}

// ClearError はエラースロットを空にします。既に空なら何もしません。
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.errMsg == "" {
		return
	}
	s.errMsg = ""
	s.publishLocked()
}

// SetSelectedUser は選択中ユーザーを直接設定します。nil で選択を解除します。
// 渡された値は検証せず、一覧に存在するかどうかも確認しません。
func (s *Store) SetSelectedUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if u == nil {
		s.selected = nil
	} else {
		cp := *u
		s.selected = &cp
	}
	s.publishLocked()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Users returns a copy of the current user list in remote order.
func (s *Store) Users() []entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]entity.User, len(s.users))
	copy(users, s.users)
	return users
}

// SelectedUser returns a copy of the selected user, or nil when none is selected.
func (s *Store) SelectedUser() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	cp := *s.selected
	return &cp
}

// Loading reports whether a fetch operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ErrorMessage returns the current error message, or "" when the slot is empty.
func (s *Store) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Subscribe は状態変化の通知チャネルと購読解除関数を返します。
// チャネルは容量1で、受信が追いつかない場合は古いスナップショットを捨てて
// 常に最新だけを保持します。購読直後に現在のスナップショットが届きます。
// クローズ済みのストアではクローズ済みチャネルを返します。
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		ch := make(chan Snapshot)
		close(ch)
		return ch, func() {}
	}
	ch := make(chan Snapshot, 1)
	ch <- s.snapshotLocked()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close は全購読チャネルを閉じ、以降の操作を no-op にします。
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// beginFetch marks the store as loading and clears any previous error.
// It reports false when the store is already closed.
func (s *Store) beginFetch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.loading = true
	s.errMsg = ""
	s.publishLocked()
	return true
}

func (s *Store) lookup(id int) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return entity.User{}, false
	}
	return s.users[i], true
}

func (s *Store) commitUsers(users []entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.users = make([]entity.User, len(users))
	copy(s.users, users)
	s.index = make(map[int]int, len(users))
	for i, u := range s.users {
		s.index[u.ID] = i
	}
	s.loading = false
	s.publishLocked()
}

func (s *Store) commitSelected(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.selected = &u
	s.loading = false
	s.publishLocked()
}

func (s *Store) failFetch(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.loading = false
	s.errMsg = msg
	s.publishLocked()
}

// failSelected は取得に失敗したとき選択中ユーザーも合わせてクリアします。
func (s *Store) failSelected(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.selected = nil
	s.loading = false
	s.errMsg = msg
	s.publishLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Users:   make([]entity.User, len(s.users)),
		Loading: s.loading,
		Error:   s.errMsg,
	}
	copy(snap.Users, s.users)
	if s.selected != nil {
		cp := *s.selected
		snap.SelectedUser = &cp
	}
	return snap
}

func (s *Store) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// 滞留している古いスナップショットを捨てて最新に差し替える
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
