package api

import (
	"context"
	"net/http"
)

// RegisterRequest represents the admin registration request body
type RegisterRequest struct {
	FullName    string `json:"fullname"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// AuthResult is the data returned by a successful registration/login
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`

	// Message is the server's human readable confirmation
	Message string `json:"-"`
}

// Register creates (or signs in) an admin account and returns its session token.
// The caller is responsible for storing the credentials.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var result AuthResult
	msg, err := c.doJSON(ctx, http.MethodPost, pathAdminRegister, req, &result)
	if err != nil {
		return nil, err
	}
	result.Message = msg
	return &result, nil
}

// Logout ends the server-side session and returns the server's message.
// It does not touch local credentials.
func (c *Client) Logout(ctx context.Context) (string, error) {
	return c.doJSON(ctx, http.MethodPost, pathAdminLogout, nil, nil)
}

// ListUsers returns every registered user
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if _, err := c.doJSON(ctx, http.MethodGet, pathAllUsers, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddAddress attaches an address to a user
func (c *Client) AddAddress(ctx context.Context, userID string, addr Address) (*Address, error) {
	var saved Address
	if _, err := c.doJSON(ctx, http.MethodPost, pathAddAddress(userID), addr, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
