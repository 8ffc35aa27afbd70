// Package servicedef has the wire types of the ReqRes API (https://reqres.in).
package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	PathUsers    = "/users"
	PathLogin    = "/login"
	PathRegister = "/register"

	// APIKeyHeader carries the ReqRes API key. The free key is "reqres-free-v1".
	APIKeyHeader = "x-api-key"

	ErrorMissingPassword = "Missing password"
)

type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

type UserList struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Data       []User `json:"data"`
}

type SingleUser struct {
	Data User `json:"data"`
}

type UserParams struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type CreatedUser struct {
	Name      string `json:"name"`
	Job       string `json:"job"`
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

type UpdatedUser struct {
	Name      string `json:"name"`
	Job       string `json:"job"`
	UpdatedAt string `json:"updatedAt"`
}

type LoginParams struct {
	Email    string                 `json:"email"`
	Password ldvalue.OptionalString `json:"password,omitempty"`
}

// AuthResult is returned by login and register. On failure only Error is set.
type AuthResult struct {
	ID    ldvalue.OptionalInt    `json:"id,omitempty"`
	Token ldvalue.OptionalString `json:"token,omitempty"`
	Error ldvalue.OptionalString `json:"error,omitempty"`
}
