package emby

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetUser looks up username in the public user list. Names are matched
// exactly; if the server lists the same name twice the first entry wins.
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, EndpointPublicUsers, nil, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, newAPIError(ErrTransport, EndpointPublicUsers, status, body)
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, transportError("failed to parse user list: %w", err)
	}

	user, ok := usersByName(users)[username]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}

	c.logger.Debug().Str("user", user.Name).Str("user_id", user.ID).Msg("Resolved Emby user")
	return &user, nil
}

// usersByName indexes users by name, keeping the first entry for duplicates
func usersByName(users []User) map[string]User {
	byName := make(map[string]User, len(users))
	for _, user := range users {
		if _, seen := byName[user.Name]; seen {
			continue
		}
		byName[user.Name] = user
	}
	return byName
}

// GetToken exchanges the password digests for a session token. headers must
// not carry a token yet.
func (c *Client) GetToken(ctx context.Context, headers Headers, auth PasswordData) (string, error) {
	status, body, err := c.doRequest(ctx, http.MethodPost, EndpointAuthenticate, headers, auth.Form())
	if err != nil {
		return "", err
	}

	switch {
	case status == http.StatusOK:
	case status >= 400 && status < 500:
		// 4xx: credentials rejected
		return "", newAPIError(ErrAuthentication, EndpointAuthenticate, status, body)
	default:
		return "", newAPIError(ErrTransport, EndpointAuthenticate, status, body)
	}

	var response authResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", transportError("failed to parse authentication response: %w", err)
	}
	if response.AccessToken == "" {
		return "", transportError("authentication response has no AccessToken")
	}

	return response.AccessToken, nil
}
