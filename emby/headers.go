package emby

import "net/http"

// Header names sent to Emby
const (
	HeaderAuthorization = "Authorization"
	HeaderUserID        = "UserId"
	HeaderClient        = "Client"
	HeaderDevice        = "Device"
	HeaderDeviceID      = "DeviceId"
	HeaderVersion       = "Version"
	HeaderToken         = "X-MediaBrowser-Token"
)

// Device identity of this client. Must stay identical across a workflow run.
const (
	AuthorizationScheme = "MediaBrowser"
	ClientName          = "other"
	DeviceName          = "empy"
	DeviceID            = "beets"
	ClientVersion       = "0.0.0"
)

// Headers is a set of request headers
type Headers map[string]string

// CreateHeaders returns a new header set for userID. The token header is only
// added when token is not empty.
func CreateHeaders(userID, token string) Headers {
	headers := Headers{
		HeaderAuthorization: AuthorizationScheme,
		HeaderUserID:        userID,
		HeaderClient:        ClientName,
		HeaderDevice:        DeviceName,
		HeaderDeviceID:      DeviceID,
		HeaderVersion:       ClientVersion,
	}

	if token != "" {
		headers[HeaderToken] = token
	}

	return headers
}

// Apply sets the headers on req
func (h Headers) Apply(req *http.Request) {
	for key, value := range h {
		req.Header.Set(key, value)
	}
}

// HasToken reports whether the session token header is present
func (h Headers) HasToken() bool {
	_, ok := h[HeaderToken]
	return ok
}
