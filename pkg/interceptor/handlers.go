package interceptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/beminee/mockauth/pkg/userapi"
)

// authenticate handles POST /users/authenticate. Credentials are
// compared case-sensitively against the stored plaintext values.
func (i *Interceptor) authenticate(req *http.Request, users []userapi.User) (*http.Response, error) {
	var creds userapi.Credentials
	if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
		return nil, fmt.Errorf("failed to decode authenticate body: %w", err)
	}

	var user *userapi.User
	for idx := range users {
		if users[idx].Username == creds.Username && users[idx].Password == creds.Password {
			user = &users[idx]
			break
		}
	}
	if user == nil {
		return i.badRequest(req, "Username or password is incorrect")
	}
	if user.Rank == userapi.RankBanned {
		return i.badRequest(req, "User is banned.")
	}

	return i.ok(req, userapi.AuthResponse{
		ID:        strconv.Itoa(user.ID),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Rank:      user.Rank,
		Token:     userapi.TokenFor(user.Rank),
	})
}

// register handles POST /users/register. No authorization is required;
// anyone can create an account.
func (i *Interceptor) register(req *http.Request, users []userapi.User) (*http.Response, error) {
	var body userapi.NewUser
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode register body: %w", err)
	}

	for _, u := range users {
		if u.Username == body.Username {
			return i.badRequest(req, fmt.Sprintf("Username '%s' is already taken", body.Username))
		}
	}

	users = append(users, userapi.User{
		ID:        userapi.NextID(users),
		Username:  body.Username,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Rank:      body.Rank,
	})
	if err := i.users.Save(req.Context(), users); err != nil {
		return nil, err
	}
	return i.ok(req, nil)
}

// list handles GET /users.
func (i *Interceptor) list(req *http.Request, users []userapi.User) (*http.Response, error) {
	if !isLoggedIn(req) {
		return i.unauthorized(req)
	}
	out := make([]userapi.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return i.ok(req, out)
}

// getByID handles GET /users/{id}. A missing id yields 200 with a null
// body rather than 404; front-ends built against this API expect the
// null, so it stays.
func (i *Interceptor) getByID(req *http.Request, users []userapi.User, id int) (*http.Response, error) {
	if !isLoggedIn(req) {
		return i.unauthorized(req)
	}
	for _, u := range users {
		if u.ID == id {
			return i.ok(req, u.Public())
		}
	}
	return i.ok(req, (*userapi.PublicUser)(nil))
}

// update handles PUT /users/{id}. Admin only.
func (i *Interceptor) update(req *http.Request, users []userapi.User, id int) (*http.Response, error) {
	if !isLoggedIn(req) || !isAdmin(req) {
		return i.unauthorized(req)
	}

	var body userapi.UserEdit
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode update body: %w", err)
	}

	var user *userapi.User
	for idx := range users {
		if users[idx].ID == id {
			user = &users[idx]
			break
		}
	}
	// Shouldn't happen unless the request is forged.
	if user == nil {
		return i.badRequest(req, "User is null")
	}

	// If the username is changing, check the new one isn't taken.
	if user.Username != body.Username {
		for _, u := range users {
			if u.Username == body.Username {
				return i.badRequest(req, fmt.Sprintf("Username '%s' is already taken", body.Username))
			}
		}
	}

	// Only update the password if one was entered.
	if strings.TrimSpace(body.Password) != "" {
		user.Password = body.Password
	}
	user.Username = body.Username
	user.FirstName = body.FirstName
	user.LastName = body.LastName
	user.Rank = body.Rank

	if err := i.users.Save(req.Context(), users); err != nil {
		return nil, err
	}
	return i.ok(req, nil)
}

// delete handles DELETE /users/{id}. Admin only. Removes every record
// matching the id (expected cardinality 0 or 1) and succeeds either
// way.
func (i *Interceptor) delete(req *http.Request, users []userapi.User, id int) (*http.Response, error) {
	if !isLoggedIn(req) || !isAdmin(req) {
		return i.unauthorized(req)
	}

	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if err := i.users.Save(req.Context(), kept); err != nil {
		return nil, err
	}
	return i.ok(req, nil)
}
