package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"userdir_backend/internal/feature/directory/adapters/fakestore/dto"
	"userdir_backend/internal/feature/directory/domain/entity"
	"userdir_backend/internal/feature/directory/usecase"
)

// Client はFake Store APIからユーザーデータを取得するSource実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがSourceを実装していることをコンパイル時に検証します。
var _ usecase.Source = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// ListUsers は GET {base}/users で全ユーザーを取得し、
// entity.Userのスライスとしてレスポンス順のまま返します。
func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	u := fmt.Sprintf("%s/users", c.cfg.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("fakestore http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body []dto.UserResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	users := make([]entity.User, 0, len(body))
	for _, v := range body {
		users = append(users, toEntity(v))
	}
	return users, nil
}

// GetUser は GET {base}/users/{id} で1ユーザーを取得します。
// 存在しないIDに対してAPIはボディ無しの200を返すことがあるため、
// デコード結果が空のときもエラーとして扱います。
func (c *Client) GetUser(ctx context.Context, id int) (entity.User, error) {
	u := fmt.Sprintf("%s/users/%d", c.cfg.BaseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.User{}, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return entity.User{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.User{}, fmt.Errorf("fakestore http %d", res.StatusCode)
	}

	var body dto.UserResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.User{}, err
	}
	if body.ID == 0 {
		return entity.User{}, fmt.Errorf("fakestore: empty response for user %d", id)
	}
	return toEntity(body), nil
}

// toEntity はDTOをドメインエンティティに変換します。
func toEntity(v dto.UserResponse) entity.User {
	return entity.User{
		ID:       v.ID,
		Email:    v.Email,
		Username: v.Username,
		Password: v.Password,
		Name: entity.Name{
			Firstname: v.Name.Firstname,
			Lastname:  v.Name.Lastname,
		},
		Address: entity.Address{
			City:    v.Address.City,
			Street:  v.Address.Street,
			Number:  v.Address.Number,
			Zipcode: v.Address.Zipcode,
			Geolocation: entity.Geolocation{
				Lat:  v.Address.Geolocation.Lat,
				Long: v.Address.Geolocation.Long,
			},
		},
		Phone: v.Phone,
	}
}
