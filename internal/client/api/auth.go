package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// AuthService talks to /auth.
type AuthService struct {
	client *Client
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token. The response carries the
// user profile when the backend provides it.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := s.client.post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. It does not log in.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := s.client.post(ctx, "/auth/register", registerRequest{Username: username, Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the current user. Both {"user": {...}} and a bare profile
// object are accepted.
func (s *AuthService) Profile(ctx context.Context) (*UserProfile, error) {
	var raw json.RawMessage
	if err := s.client.get(ctx, "/auth/profile", nil, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		User *UserProfile `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if wrapped.User != nil {
		return wrapped.User, nil
	}

	var profile UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}
