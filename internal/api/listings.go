package api

import (
	"context"
	"net/http"
)

type Event struct {
	ID           int64  `json:"event_id"`
	Name         string `json:"name"`
	Description  string `json:"desc"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Capacity     int64  `json:"capacity"`
	FilledSpots  int64  `json:"filled_spots"`
	Image        string `json:"image"`
	Location     string `json:"location"`
	IsRegistered bool   `json:"isRegistered"`
	IsWaitlisted bool   `json:"isWaitlisted"`
	InPast       bool   `json:"inPast"`
}

type Community struct {
	ID           int64  `json:"group_id"`
	Name         string `json:"name"`
	Description  string `json:"desc"`
	Count        int64  `json:"count"`
	Image        string `json:"image"`
	IsRegistered bool   `json:"isRegistered"`
}

type eventList struct {
	Results []Event `json:"results"`
}

type communityList struct {
	Results []Community `json:"results"`
}

func (c *Client) RegisteredEvents(ctx context.Context, creds Credentials) ([]Event, error) {
	return c.events(ctx, creds, "/get-registered-events")
}

func (c *Client) AvailableEvents(ctx context.Context, creds Credentials) ([]Event, error) {
	return c.events(ctx, creds, "/get-available-events")
}

func (c *Client) RegisteredCommunities(ctx context.Context, creds Credentials) ([]Community, error) {
	return c.communities(ctx, creds, "/get-registered-communities")
}

func (c *Client) AvailableCommunities(ctx context.Context, creds Credentials) ([]Community, error) {
	return c.communities(ctx, creds, "/api/get-available-communities")
}

func (c *Client) events(ctx context.Context, creds Credentials, path string) ([]Event, error) {
	var out eventList
	if _, err := c.call(ctx, creds, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) communities(ctx context.Context, creds Credentials, path string) ([]Community, error) {
	var out communityList
	if _, err := c.call(ctx, creds, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
