package emby

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIURL(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		endpoint string
		expected string
	}{
		{
			name:     "refresh endpoint",
			host:     "localhost",
			port:     8096,
			endpoint: "/Library/Refresh",
			expected: "http://localhost:8096/Library/Refresh?format=json",
		},
		{
			name:     "relative endpoint",
			host:     "localhost",
			port:     8096,
			endpoint: "Users/Public",
			expected: "http://localhost:8096/Users/Public?format=json",
		},
		{
			name:     "existing query is kept",
			host:     "emby.lan",
			port:     8920,
			endpoint: "/Items?ParentId=12",
			expected: "http://emby.lan:8920/Items?ParentId=12&format=json",
		},
		{
			name:     "multi-valued parameter",
			host:     "localhost",
			port:     8096,
			endpoint: "/Items?Fields=Path&Fields=Genres",
			expected: "http://localhost:8096/Items?Fields=Path&Fields=Genres&format=json",
		},
		{
			name:     "format is overwritten",
			host:     "localhost",
			port:     8096,
			endpoint: "/Items?format=xml&format=jsonp",
			expected: "http://localhost:8096/Items?format=json",
		},
		{
			name:     "ipv6 host",
			host:     "::1",
			port:     8096,
			endpoint: "/Library/Refresh",
			expected: "http://[::1]:8096/Library/Refresh?format=json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := APIURL(tt.host, tt.port, tt.endpoint)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAPIURLReapplied(t *testing.T) {
	first, err := APIURL("localhost", 8096, "/Items?ParentId=12&Recursive=true")
	require.NoError(t, err)

	current := first
	for i := 0; i < 3; i++ {
		u, err := url.Parse(current)
		require.NoError(t, err)

		current, err = APIURL("localhost", 8096, u.RequestURI())
		require.NoError(t, err)
	}

	assert.Equal(t, first, current)
	assert.Equal(t, 1, strings.Count(current, "format=json"))
}

func TestAPIURLInvalid(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		endpoint string
	}{
		{name: "empty host", host: "", port: 8096, endpoint: "/Library/Refresh"},
		{name: "zero port", host: "localhost", port: 0, endpoint: "/Library/Refresh"},
		{name: "negative port", host: "localhost", port: -1, endpoint: "/Library/Refresh"},
		{name: "port out of range", host: "localhost", port: 70000, endpoint: "/Library/Refresh"},
		{name: "bad endpoint", host: "localhost", port: 8096, endpoint: "/Ite%zzms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := APIURL(tt.host, tt.port, tt.endpoint)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
