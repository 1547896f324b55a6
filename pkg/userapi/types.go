// Package userapi defines the data model and wire types for the fake
// user-management API.
package userapi

import "strconv"

// Rank represents a user's privilege level.
type Rank string

// User ranks.
const (
	RankRegular Rank = "Regular"
	RankAdmin   Rank = "Admin"
	RankBanned  Rank = "Banned"
)

// Valid reports whether r is one of the known ranks.
func (r Rank) Valid() bool {
	switch r {
	case RankRegular, RankAdmin, RankBanned:
		return true
	default:
		return false
	}
}

// Sentinel tokens issued on successful authentication. They carry no
// cryptographic meaning; authorization is a plain string comparison.
// The admin token shares the regular token as a prefix, so a prefix
// check against TokenUser accepts both.
const (
	TokenUser  = "fake-jwt-token"
	TokenAdmin = "fake-jwt-token-admin"
)

// TokenFor returns the sentinel token issued for a rank.
func TokenFor(r Rank) string {
	if r == RankAdmin {
		return TokenAdmin
	}
	return TokenUser
}

// User is a stored user record. The password is plaintext: this layer
// simulates a backend for demos and never sees real credentials.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Rank      Rank   `json:"rank"`
}

// Public projects the record to its public shape: the id is stringified
// and the password is excluded.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        strconv.Itoa(u.ID),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Rank:      u.Rank,
	}
}

// PublicUser is the password-free projection returned by list and
// get-by-id.
type PublicUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Rank      Rank   `json:"rank"`
}

// Credentials is the authenticate request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewUser is the register request body.
type NewUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Rank      Rank   `json:"rank"`
}

// UserEdit is the update request body. A blank password means "keep the
// current one"; every other field overwrites unconditionally.
type UserEdit struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Rank      Rank   `json:"rank"`
}

// AuthResponse is returned by a successful authenticate call.
type AuthResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Rank      Rank   `json:"rank"`
	Token     string `json:"token"`
}

// ErrorResponse is the body of every 400 and 401 response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// NextID returns the id for a newly registered user: one more than the
// current maximum, or 1 for an empty collection. Ids are never reused
// or renumbered.
func NextID(users []User) int {
	max := 0
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}
