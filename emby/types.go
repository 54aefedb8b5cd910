package emby

import (
	"net"
	"strconv"
)

// ServerLocation identifies the Emby server to talk to
type ServerLocation struct {
	Host string
	Port int
}

// String returns host:port, bracketing IPv6 literals
func (l ServerLocation) String() string {
	return net.JoinHostPort(l.Host, strconv.Itoa(l.Port))
}

// Validate checks the location is usable for building request URLs
func (l ServerLocation) Validate() error {
	if l.Host == "" {
		return configError("host is required")
	}
	if l.Port <= 0 || l.Port > 65535 {
		return configError("port %d is out of range", l.Port)
	}
	return nil
}

// Credentials are the login details for the user whose session triggers the refresh.
// They only live for the duration of a single UpdateLibrary call.
type Credentials struct {
	Username string
	Password string
}

// Validate checks both fields are present
func (c Credentials) Validate() error {
	if c.Username == "" {
		return configError("username is required")
	}
	if c.Password == "" {
		return configError("password is required")
	}
	return nil
}

// User represents an entry of the public user list
type User struct {
	ID                    string `json:"Id"`
	Name                  string `json:"Name"`
	ServerID              string `json:"ServerId,omitempty"`
	HasPassword           bool   `json:"HasPassword"`
	HasConfiguredPassword bool   `json:"HasConfiguredPassword"`
}

// authResponse is the subset of the AuthenticateByName response we need
type authResponse struct {
	AccessToken string `json:"AccessToken"`
	ServerID    string `json:"ServerId,omitempty"`
	User        *User  `json:"User,omitempty"`
}
