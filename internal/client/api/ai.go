package api

import (
	"context"
)

// DefaultForecastDays is the horizon used when none is given.
const DefaultForecastDays = 7

// AIService talks to /ai.
type AIService struct {
	client *Client
}

type chatRequest struct {
	Query string `json:"query"`
}

type forecastRequest struct {
	ItemID int64 `json:"item_id"`
	Days   int   `json:"days"`
}

// Chat sends a free-form question to the assistant.
func (s *AIService) Chat(ctx context.Context, query string) (*ChatResponse, error) {
	var resp ChatResponse
	if err := s.client.post(ctx, "/ai/chat", chatRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Forecast requests a demand forecast for an item over days days.
func (s *AIService) Forecast(ctx context.Context, itemID int64, days int) (*Forecast, error) {
	if days <= 0 {
		days = DefaultForecastDays
	}
	var resp Forecast
	if err := s.client.post(ctx, "/ai/forecast", forecastRequest{ItemID: itemID, Days: days}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modes lists the assistant capabilities keyed by mode id.
func (s *AIService) Modes(ctx context.Context) (map[string]Mode, error) {
	var resp map[string]Mode
	if err := s.client.get(ctx, "/ai/modes", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
