package api

import (
	"context"
	"net/http"
)

// AuthResult is the payload returned by login and register.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var result AuthResult
	if err := c.send(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return AuthResult{}, err
	}
	return result, nil
}

// Register provisions a new account and returns its token and identity.
func (c *Client) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Username: username, Email: email, Password: password}

	var result AuthResult
	if err := c.send(ctx, http.MethodPost, "/auth/register", body, &result); err != nil {
		return AuthResult{}, err
	}
	return result, nil
}

// Profile fetches the identity behind the current bearer token.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "/users/profile", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateProfile changes the username and email of the current user and
// returns the updated identity.
func (c *Client) UpdateProfile(ctx context.Context, username, email string) (User, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}{Username: username, Email: email}

	var user User
	if err := c.send(ctx, http.MethodPut, "/users/profile", body, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
