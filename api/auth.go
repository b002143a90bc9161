// File: travelgo/api/auth.go
package api

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"travelgo/models"
)

// Token exchanges user credentials for a bearer token via the OAuth2
// password grant, using the fixed application client id.
func (c *Client) Token(ctx context.Context, username, password string) (string, error) {
	conf := &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + epToken,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	return tok.AccessToken, nil
}

// CurrentUser fetches the identity behind the given credential. It
// doubles as token validation: a 401 means the credential is stale.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, epCurrentUser, nil, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterForm is the multipart payload for account creation.
type RegisterForm struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	Email     string
	Avatar    *Upload
}

func (f RegisterForm) fields() []formField {
	return []formField{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"username", f.Username},
		{"password", f.Password},
		{"email", f.Email},
	}
}

// Register creates a new customer account.
func (c *Client) Register(ctx context.Context, form RegisterForm) (*models.User, error) {
	body, contentType, err := encodeMultipart(form.fields(), "avatar", form.Avatar)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, epRegister, "", body, contentType)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := c.roundTrip(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileForm is the multipart payload for a partial profile update.
// Only the avatar is optional client-side; empty text fields are
// omitted from the PATCH.
type ProfileForm struct {
	FirstName string
	LastName  string
	Email     string
	Avatar    *Upload
}

// UpdateProfile patches the current user and returns the refreshed record.
func (c *Client) UpdateProfile(ctx context.Context, token string, form ProfileForm) (*models.User, error) {
	fields := []formField{
		{"first_name", form.FirstName},
		{"last_name", form.LastName},
		{"email", form.Email},
	}
	body, contentType, err := encodeMultipart(fields, "avatar", form.Avatar)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPatch, epCurrentUser, token, body, contentType)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := c.roundTrip(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
