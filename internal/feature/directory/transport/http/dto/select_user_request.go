package dto

// SelectUserRequest is the body of PUT /selected.
// Only the id is validated; the remaining fields are taken as provided.
type SelectUserRequest struct {
	ID       int            `json:"id" binding:"required,gt=0"`
	Email    string         `json:"email"`
	Username string         `json:"username"`
	Name     NamePayload    `json:"name"`
	Address  AddressPayload `json:"address"`
	Phone    string         `json:"phone"`
}
