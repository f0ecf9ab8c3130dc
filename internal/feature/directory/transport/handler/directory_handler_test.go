package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"userdir_backend/internal/feature/directory/domain/entity"
	"userdir_backend/internal/feature/directory/transport/handler"
	"userdir_backend/internal/feature/directory/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// mockStore はDirectoryStoreインターフェースのモック実装です。
// onFetchAll / onFetchByID でスナップショットを書き換えて取得の成否を演出します。
type mockStore struct {
	snap usecase.Snapshot

	fetchAllCalls  int
	fetchByIDCalls []int
	clearCalls     int
	setSelected    []*entity.User

	onFetchAll  func()
	onFetchByID func(id int)
}

func (m *mockStore) FetchAllUsers(ctx context.Context) {
	m.fetchAllCalls++
	if m.onFetchAll != nil {
		m.onFetchAll()
	}
}

func (m *mockStore) FetchUserByID(ctx context.Context, id int) {
	m.fetchByIDCalls = append(m.fetchByIDCalls, id)
	if m.onFetchByID != nil {
		m.onFetchByID(id)
	}
}

func (m *mockStore) ClearError() {
	m.clearCalls++
	m.snap.Error = ""
}

func (m *mockStore) SetSelectedUser(u *entity.User) {
	m.setSelected = append(m.setSelected, u)
	m.snap.SelectedUser = u
}

func (m *mockStore) Snapshot() usecase.Snapshot { return m.snap }

func (m *mockStore) Subscribe() (<-chan usecase.Snapshot, func()) {
	ch := make(chan usecase.Snapshot, 1)
	ch <- m.snap
	return ch, func() {}
}

func johnd() entity.User {
	return entity.User{
		ID: 1, Email: "john@gmail.com", Username: "johnd",
		Name: entity.Name{Firstname: "john", Lastname: "doe"},
		Address: entity.Address{
			City: "kilcoole", Street: "new road", Number: 7682, Zipcode: "12926-3874",
			Geolocation: entity.Geolocation{Lat: "-37.3159", Long: "81.1496"},
		},
		Phone: "1-570-236-7033",
	}
}

func morrison() entity.User {
	return entity.User{
		ID: 2, Email: "morrison@gmail.com", Username: "mor_2314",
		Name: entity.Name{Firstname: "david", Lastname: "morrison"},
	}
}

const johndJSON = `{
	"id": 1, "email": "john@gmail.com", "username": "johnd",
	"name": {"firstname": "john", "lastname": "doe"},
	"address": {
		"city": "kilcoole", "street": "new road", "number": 7682, "zipcode": "12926-3874",
		"geolocation": {"lat": "-37.3159", "long": "81.1496"}
	},
	"phone": "1-570-236-7033"
}`

const morrisonJSON = `{
	"id": 2, "email": "morrison@gmail.com", "username": "mor_2314",
	"name": {"firstname": "david", "lastname": "morrison"},
	"address": {
		"city": "", "street": "", "number": 0, "zipcode": "",
		"geolocation": {"lat": "", "long": ""}
	},
	"phone": ""
}`

// TestDirectoryHandler_ListUsers はListUsersのHTTPリクエスト/レスポンス処理をテストします。
func TestDirectoryHandler_ListUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		store          func() *mockStore
		expectedStatus int
		expectedBody   string // JSON文字列として比較
		expectedFetch  int
	}{
		{
			name: "first display triggers the list fetch",
			url:  "/users",
			store: func() *mockStore {
				m := &mockStore{}
				m.onFetchAll = func() { m.snap.Users = []entity.User{johnd(), morrison()} }
				return m
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[` + johndJSON + `,` + morrisonJSON + `]`,
			expectedFetch:  1,
		},
		{
			name: "loaded list is served without a refetch",
			url:  "/users",
			store: func() *mockStore {
				return &mockStore{snap: usecase.Snapshot{Users: []entity.User{morrison()}}}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[` + morrisonJSON + `]`,
			expectedFetch:  0,
		},
		{
			name: "refresh=true forces a refetch",
			url:  "/users?refresh=true",
			store: func() *mockStore {
				m := &mockStore{snap: usecase.Snapshot{Users: []entity.User{johnd()}}}
				m.onFetchAll = func() { m.snap.Users = []entity.User{morrison()} }
				return m
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[` + morrisonJSON + `]`,
			expectedFetch:  1,
		},
		{
			name: "q filters the rendered list only",
			url:  "/users?q=MOR",
			store: func() *mockStore {
				return &mockStore{snap: usecase.Snapshot{Users: []entity.User{johnd(), morrison()}}}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[` + morrisonJSON + `]`,
			expectedFetch:  0,
		},
		{
			name: "q matching nothing yields an empty list",
			url:  "/users?q=nosuchuser",
			store: func() *mockStore {
				return &mockStore{snap: usecase.Snapshot{Users: []entity.User{johnd(), morrison()}}}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
			expectedFetch:  0,
		},
		{
			name: "failed fetch maps to 502 with the store message",
			url:  "/users",
			store: func() *mockStore {
				m := &mockStore{}
				m.onFetchAll = func() { m.snap.Error = "Failed to fetch users. Please try again." }
				return m
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"Failed to fetch users. Please try again."}`,
			expectedFetch:  1,
		},
		{
			name: "stale error does not block a loaded list",
			url:  "/users",
			store: func() *mockStore {
				// 前回の詳細取得の失敗が残っていても、一覧表示は取得を伴わないので成功する
				return &mockStore{snap: usecase.Snapshot{
					Users: []entity.User{morrison()},
					Error: "Failed to fetch user with ID 99. Please try again.",
				}}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[` + morrisonJSON + `]`,
			expectedFetch:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tt.store()
			h := handler.NewDirectoryHandler(store)

			router := gin.New()
			router.GET("/users", h.ListUsers)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedFetch, store.fetchAllCalls)
		})
	}
}

// TestDirectoryHandler_GetUserByID はGetUserByIDのHTTPリクエスト/レスポンス処理をテストします。
func TestDirectoryHandler_GetUserByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		onFetchByID    func(m *mockStore) func(id int)
		expectedStatus int
		expectedBody   string
		expectedCalls  []int
	}{
		{
			name: "found user is rendered as the selection",
			url:  "/users/1",
			onFetchByID: func(m *mockStore) func(id int) {
				return func(id int) {
					u := johnd()
					m.snap.SelectedUser = &u
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   johndJSON,
			expectedCalls:  []int{1},
		},
		{
			name: "store failure maps to 502 with the id in the message",
			url:  "/users/99",
			onFetchByID: func(m *mockStore) func(id int) {
				return func(id int) {
					m.snap.SelectedUser = nil
					m.snap.Error = "Failed to fetch user with ID 99. Please try again."
				}
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"Failed to fetch user with ID 99. Please try again."}`,
			expectedCalls:  []int{99},
		},
		{
			name:           "non-numeric id is rejected without touching the store",
			url:            "/users/abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid user id"}`,
			expectedCalls:  nil,
		},
		{
			name:           "zero id is rejected without touching the store",
			url:            "/users/0",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid user id"}`,
			expectedCalls:  nil,
		},
		{
			name:           "negative id is rejected without touching the store",
			url:            "/users/-3",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid user id"}`,
			expectedCalls:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			if tt.onFetchByID != nil {
				store.onFetchByID = tt.onFetchByID(store)
			}
			h := handler.NewDirectoryHandler(store)

			router := gin.New()
			router.GET("/users/:id", h.GetUserByID)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedCalls, store.fetchByIDCalls)
		})
	}
}

// TestDirectoryHandler_PutSelected は選択中ユーザーの直接設定をテストします。
func TestDirectoryHandler_PutSelected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedSets   int
		expectedID     int
	}{
		{
			name:           "valid user body replaces the selection",
			body:           johndJSON,
			expectedStatus: http.StatusNoContent,
			expectedSets:   1,
			expectedID:     1,
		},
		{
			name:           "missing id is rejected",
			body:           `{"username":"ghost"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSets:   0,
		},
		{
			name:           "malformed json is rejected",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
			expectedSets:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			h := handler.NewDirectoryHandler(store)

			router := gin.New()
			router.PUT("/selected", h.PutSelected)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPut, "/selected", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Len(t, store.setSelected, tt.expectedSets)
			if tt.expectedSets > 0 {
				assert.Equal(t, tt.expectedID, store.setSelected[0].ID)
			}
		})
	}
}

// TestDirectoryHandler_DeleteSelected は選択解除をテストします。
func TestDirectoryHandler_DeleteSelected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	u := morrison()
	store := &mockStore{snap: usecase.Snapshot{SelectedUser: &u}}
	h := handler.NewDirectoryHandler(store)

	router := gin.New()
	router.DELETE("/selected", h.DeleteSelected)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/selected", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	if assert.Len(t, store.setSelected, 1) {
		assert.Nil(t, store.setSelected[0])
	}
}

// TestDirectoryHandler_DeleteError はエラー確認をテストします。
func TestDirectoryHandler_DeleteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &mockStore{snap: usecase.Snapshot{Error: "Failed to fetch users. Please try again."}}
	h := handler.NewDirectoryHandler(store)

	router := gin.New()
	router.DELETE("/error", h.DeleteError)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/error", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, store.clearCalls)
}

// TestDirectoryHandler_GetState はストア概況のレンダリングをテストします。
func TestDirectoryHandler_GetState(t *testing.T) {
	gin.SetMode(gin.TestMode)

	u := morrison()

	tests := []struct {
		name         string
		snap         usecase.Snapshot
		expectedBody string
	}{
		{
			name:         "empty store",
			snap:         usecase.Snapshot{},
			expectedBody: `{"loading":false,"error":"","user_count":0,"selected_id":null}`,
		},
		{
			name:         "loaded store with a selection",
			snap:         usecase.Snapshot{Users: []entity.User{johnd(), morrison()}, SelectedUser: &u},
			expectedBody: `{"loading":false,"error":"","user_count":2,"selected_id":2}`,
		},
		{
			name:         "failing store",
			snap:         usecase.Snapshot{Loading: true, Error: "Failed to fetch users. Please try again."},
			expectedBody: `{"loading":true,"error":"Failed to fetch users. Please try again.","user_count":0,"selected_id":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{snap: tt.snap}
			h := handler.NewDirectoryHandler(store)

			router := gin.New()
			router.GET("/state", h.GetState)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/state", nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
