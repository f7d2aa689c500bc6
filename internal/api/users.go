package api

import (
	"context"
	"net/http"
)

// UserData is the body of GET /user-data. For a signed-in identity that has
// not created a profile yet the API only sends name and email, and IsAdmin
// is absent.
type UserData struct {
	Name               string `json:"name,omitempty"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	IsAdmin            *bool  `json:"is_admin,omitempty"`
	Address            string `json:"address"`
	PreferredName      string `json:"preferred_name"`
	Pronouns           string `json:"pronouns"`
	PhoneNumber        string `json:"phone_number"`
	MaritalStatus      string `json:"marital_status"`
	FamilyCircumstance string `json:"family_circumstance"`
	CommunityStatus    string `json:"community_status"`
	Interests          string `json:"interests"`
	PersonalIdentity   string `json:"personal_identity"`
	Picture            string `json:"picture"`
}

// HasProfile reports whether the API returned a stored profile rather than
// a bare identity.
func (u *UserData) HasProfile() bool {
	return u != nil && u.IsAdmin != nil && u.Email != ""
}

// ProfileRequest is sent to /add-user and /update-user.
type ProfileRequest struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	PreferredName      string `json:"preferred_name"`
	Pronouns           string `json:"pronouns"`
	PhoneNumber        string `json:"phone_number"`
	MaritalStatus      string `json:"marital_status"`
	FamilyCircumstance string `json:"family_circumstance"`
	CommunityStatus    string `json:"community_status"`
	Interests          string `json:"interests"`
	PersonalIdentity   string `json:"personal_identity"`
}

// UserData fetches the profile tied to the forwarded session.
func (c *Client) UserData(ctx context.Context, creds Credentials) (*UserData, error) {
	var out UserData
	if _, err := c.call(ctx, creds, http.MethodGet, "/user-data", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddUser creates the profile for a new identity.
func (c *Client) AddUser(ctx context.Context, creds Credentials, req ProfileRequest) error {
	_, err := c.call(ctx, creds, http.MethodPost, "/add-user", req, nil)
	return err
}

// UpdateUser saves changes to an existing profile.
func (c *Client) UpdateUser(ctx context.Context, creds Credentials, req ProfileRequest) error {
	_, err := c.call(ctx, creds, http.MethodPost, "/update-user", req, nil)
	return err
}
