// Package dto defines data transfer objects for the Fake Store API responses.
package dto

// UserResponse represents one user object as returned by the /users endpoints.
// The geolocation coordinates are strings in the upstream payload and are
// kept as strings here.
type UserResponse struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     struct {
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
	} `json:"name"`
	Address struct {
		City        string `json:"city"`
		Street      string `json:"street"`
		Number      int    `json:"number"`
		Zipcode     string `json:"zipcode"`
		Geolocation struct {
			Lat  string `json:"lat"`
			Long string `json:"long"`
		} `json:"geolocation"`
	} `json:"address"`
	Phone string `json:"phone"`
}
