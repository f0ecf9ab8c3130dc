// Package handler はdirectoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"userdir_backend/internal/feature/directory/domain/entity"
	"userdir_backend/internal/feature/directory/transport/http/dto"
	"userdir_backend/internal/feature/directory/usecase"

	"github.com/gin-gonic/gin"
)

// DirectoryStore はディレクトリストアの操作インターフェースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type DirectoryStore interface {
	FetchAllUsers(ctx context.Context)
	FetchUserByID(ctx context.Context, id int)
	ClearError()
	SetSelectedUser(u *entity.User)
	Snapshot() usecase.Snapshot
	Subscribe() (<-chan usecase.Snapshot, func())
}

// DirectoryHandler はユーザーディレクトリのHTTPリクエストを処理します。
type DirectoryHandler struct {
	store DirectoryStore
}

// NewDirectoryHandler は指定されたストアでDirectoryHandlerの新しいインスタンスを生成します。
func NewDirectoryHandler(store DirectoryStore) *DirectoryHandler {
	return &DirectoryHandler{store: store}
}

// ListUsers はユーザー一覧を返すAPIです。
// 一覧が未取得のとき、または refresh=true が指定されたときだけストアに取得させます。
// q= が指定された場合は表示側の関心事としてここで絞り込み、ストアの状態は変えません。
//
// エンドポイント例:
// GET /users?q=john&refresh=true
func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	fetched := false
	if refresh || len(h.store.Snapshot().Users) == 0 {
		h.store.FetchAllUsers(c.Request.Context())
		fetched = true
	}

	snap := h.store.Snapshot()
	if fetched && snap.Error != "" {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: snap.Error})
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	out := make([]dto.UserItem, 0, len(snap.Users))
	for _, u := range snap.Users {
		if q != "" && !matchesQuery(u, q) {
			continue
		}
		out = append(out, toUserItem(u))
	}
	c.JSON(http.StatusOK, out)
}

// GetUserByID は指定IDのユーザーを選択中ユーザーに設定して返すAPIです。
// IDが数値でない、または正の整数でない場合はストアに触れずに400を返します。
//
// エンドポイント例:
// GET /users/42
func (h *DirectoryHandler) GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid user id"})
		return
	}

	h.store.FetchUserByID(c.Request.Context(), id)

	snap := h.store.Snapshot()
	if snap.Error != "" {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: snap.Error})
		return
	}
	if snap.SelectedUser == nil {
		// 並行する選択解除と重なった場合のみ起こり得る
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "user unavailable"})
		return
	}
	c.JSON(http.StatusOK, toUserItem(*snap.SelectedUser))
}

// PutSelected は選択中ユーザーを直接設定するAPIです。
// ボディのユーザーは一覧に存在するかを確認せず、そのままストアに渡します。
func (h *DirectoryHandler) PutSelected(c *gin.Context) {
	var req dto.SelectUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	u := fromSelectRequest(req)
	h.store.SetSelectedUser(&u)
	c.Status(http.StatusNoContent)
}

// DeleteSelected は選択を解除するAPIです。
func (h *DirectoryHandler) DeleteSelected(c *gin.Context) {
	h.store.SetSelectedUser(nil)
	c.Status(http.StatusNoContent)
}

// DeleteError はエラースロットを空にするAPIです。再試行の前に呼び出します。
func (h *DirectoryHandler) DeleteError(c *gin.Context) {
	h.store.ClearError()
	c.Status(http.StatusNoContent)
}

// GetState はストアの概況(読み込み中か・エラー・件数・選択中ID)を返すAPIです。
func (h *DirectoryHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, toStateResponse(h.store.Snapshot()))
}

// matchesQuery はユーザー名・メール・氏名に対する大文字小文字を無視した部分一致です。
// q は小文字化済みであること。
func matchesQuery(u entity.User, q string) bool {
	return strings.Contains(strings.ToLower(u.Username), q) ||
		strings.Contains(strings.ToLower(u.Email), q) ||
		strings.Contains(strings.ToLower(u.Name.Firstname), q) ||
		strings.Contains(strings.ToLower(u.Name.Lastname), q)
}

func toUserItem(u entity.User) dto.UserItem {
	return dto.UserItem{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Name: dto.NamePayload{
			Firstname: u.Name.Firstname,
			Lastname:  u.Name.Lastname,
		},
		Address: dto.AddressPayload{
			City:    u.Address.City,
			Street:  u.Address.Street,
			Number:  u.Address.Number,
			Zipcode: u.Address.Zipcode,
			Geolocation: dto.GeolocationPayload{
				Lat:  u.Address.Geolocation.Lat,
				Long: u.Address.Geolocation.Long,
			},
		},
		Phone: u.Phone,
	}
}

func fromSelectRequest(req dto.SelectUserRequest) entity.User {
	return entity.User{
		ID:       req.ID,
		Email:    req.Email,
		Username: req.Username,
		Name: entity.Name{
			Firstname: req.Name.Firstname,
			Lastname:  req.Name.Lastname,
		},
		Address: entity.Address{
			City:    req.Address.City,
			Street:  req.Address.Street,
			Number:  req.Address.Number,
			Zipcode: req.Address.Zipcode,
			Geolocation: entity.Geolocation{
				Lat:  req.Address.Geolocation.Lat,
				Long: req.Address.Geolocation.Long,
			},
		},
		Phone: req.Phone,
	}
}

func toStateResponse(snap usecase.Snapshot) dto.StateResponse {
	out := dto.StateResponse{
		Loading:   snap.Loading,
		Error:     snap.Error,
		UserCount: len(snap.Users),
	}
	if snap.SelectedUser != nil {
		id := snap.SelectedUser.ID
		out.SelectedID = &id
	}
	return out
}
