package emby

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// PasswordData is the body expected by the legacy AuthenticateByName endpoint.
// Older servers check the SHA-1 digest and newer ones the MD5 digest, so both
// are always sent.
type PasswordData struct {
	Username    string
	Password    string
	PasswordMD5 string
}

// NewPasswordData derives the password digests for username
func NewPasswordData(username, password string) (PasswordData, error) {
	if !utf8.ValidString(password) {
		return PasswordData{}, configError("password is not a valid UTF-8 string")
	}

	sha := sha1.Sum([]byte(password))
	sum := md5.Sum([]byte(password))

	return PasswordData{
		Username:    username,
		Password:    hex.EncodeToString(sha[:]),
		PasswordMD5: hex.EncodeToString(sum[:]),
	}, nil
}

// Form returns the data as form values
func (p PasswordData) Form() url.Values {
	return url.Values{
		"username":    {p.Username},
		"password":    {p.Password},
		"passwordMd5": {p.PasswordMD5},
	}
}

// String hides the digests
func (p PasswordData) String() string {
	return fmt.Sprintf("PasswordData{Username: %q, Password: [redacted]}", p.Username)
}

// MarshalZerologObject logs the username only
func (p PasswordData) MarshalZerologObject(e *zerolog.Event) {
	e.Str("username", p.Username)
}
