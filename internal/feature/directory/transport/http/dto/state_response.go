package dto

// StateResponse summarises the store for monitoring views and the
// websocket state feed.
type StateResponse struct {
	Loading    bool   `json:"loading"`
	Error      string `json:"error"`
	UserCount  int    `json:"user_count"`
	SelectedID *int   `json:"selected_id"`
}
