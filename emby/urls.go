package emby

import (
	"net/url"
)

// Endpoints used by the refresh workflow
const (
	EndpointPublicUsers  = "/Users/Public"
	EndpointAuthenticate = "/Users/AuthenticateByName"
	EndpointRefresh      = "/Library/Refresh"
)

// APIURL joins host, port and endpoint into a request URL. Any query already
// present on endpoint is kept and format is always forced to json.
func APIURL(host string, port int, endpoint string) (string, error) {
	loc := ServerLocation{Host: host, Port: port}
	if err := loc.Validate(); err != nil {
		return "", err
	}

	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", configError("invalid endpoint %q: %v", endpoint, err)
	}

	base := &url.URL{Scheme: "http", Host: loc.String(), Path: "/"}
	joined := base.ResolveReference(ref)

	params := joined.Query()
	params.Set("format", "json")
	joined.RawQuery = params.Encode()

	return joined.String(), nil
}
