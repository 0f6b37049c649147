package api

import "context"

type HealthService struct {
	client *Client
}

// Check pings the backend and returns its reported status.
func (s *HealthService) Check(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := s.client.get(ctx, "/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
