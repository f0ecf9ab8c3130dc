// Package dto defines data transfer objects for the directory HTTP API.
package dto

// NamePayload is the nested name object shared by requests and responses.
type NamePayload struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// GeolocationPayload keeps coordinates as strings, mirroring the upstream API.
type GeolocationPayload struct {
	Lat  string `json:"lat"`
	Long string `json:"long"`
}

// AddressPayload is the nested address object shared by requests and responses.
type AddressPayload struct {
	City        string             `json:"city"`
	Street      string             `json:"street"`
	Number      int                `json:"number"`
	Zipcode     string             `json:"zipcode"`
	Geolocation GeolocationPayload `json:"geolocation"`
}

// UserItem represents a user in API responses.
// It contains only the public-facing fields needed by clients; the password
// carried by the upstream payload is never re-exposed here.
type UserItem struct {
	ID       int            `json:"id"`
	Email    string         `json:"email"`
	Username string         `json:"username"`
	Name     NamePayload    `json:"name"`
	Address  AddressPayload `json:"address"`
	Phone    string         `json:"phone"`
}
