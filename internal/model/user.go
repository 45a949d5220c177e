package model

// User is the acting identity a search runs on behalf of.
// A nil *User is an anonymous visitor.
type User struct {
	ID    string `json:"id"`
	Admin bool   `json:"admin,omitempty"`
}
