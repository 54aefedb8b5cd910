package emby

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

var errMissingToken = errors.New("library refresh requires a session token")

// RefreshLibrary asks the server to rescan the whole library. Only 204 No
// Content counts as accepted.
func (c *Client) RefreshLibrary(ctx context.Context, headers Headers) error {
	if !headers.HasToken() {
		return errMissingToken
	}

	status, body, err := c.doRequest(ctx, http.MethodPost, EndpointRefresh, headers, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return newAPIError(ErrTransport, EndpointRefresh, status, body)
	}

	return nil
}

// UpdateLibrary runs the full refresh workflow: resolve the user, exchange
// credentials for a fresh token and send the refresh. It stops at the first
// failure and never retries.
func (c *Client) UpdateLibrary(ctx context.Context, creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	auth, err := NewPasswordData(creds.Username, creds.Password)
	if err != nil {
		return err
	}

	user, err := c.GetUser(ctx, creds.Username)
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}

	token, err := c.GetToken(ctx, CreateHeaders(user.ID, ""), auth)
	if err != nil {
		return fmt.Errorf("acquire token: %w", err)
	}

	if err := c.RefreshLibrary(ctx, CreateHeaders(user.ID, token)); err != nil {
		return fmt.Errorf("refresh library: %w", err)
	}

	c.logger.Debug().Str("user_id", user.ID).Msg("Library refresh accepted")
	return nil
}

// Update connects to host:port and runs UpdateLibrary as username.
func Update(ctx context.Context, host string, port int, username, password string, logger zerolog.Logger, opts ...Option) error {
	client, err := NewClient(host, port, logger, opts...)
	if err != nil {
		return err
	}
	return client.UpdateLibrary(ctx, Credentials{Username: username, Password: password})
}
