// Package credential models the "user:pass" credentials a service may authenticate with.
package credential

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/strand-dl/strand/auth"
	"github.com/strand-dl/strand/key"
)

// Credential holds one username/password pair.
type Credential struct {
	Username string
	Password string
}

// Parse splits a "user:pass" string. The password may itself contain colons;
// only the first separator is significant.
func Parse(s string) (Credential, error) {
	user, pass, found := strings.Cut(s, ":")
	if !found || user == "" || pass == "" {
		return Credential{}, fmt.Errorf("credential: want \"user:pass\", got %q", redact(s))
	}
	return Credential{Username: user, Password: pass}, nil
}

// ID returns a stable hex digest of the pair, used to scope cached
// authentication state to the credential that produced it.
func (c Credential) ID() string {
	sum := sha1.Sum([]byte(c.Username + ":" + c.Password))
	return hex.EncodeToString(sum[:])
}

// String renders the credential with the password masked.
func (c Credential) String() string {
	return c.Username + ":" + strings.Repeat("*", len(c.Password))
}

// Get resolves the credential of one service: an inline config entry
// (credentials.<TAG>) takes precedence; the OS keyring is consulted next
// when enabled. Absence is not an error.
func Get(tag string) mo.Option[Credential] {
	if inline := viper.GetString(key.CredentialsPrefix + "." + tag); inline != "" {
		if c, err := Parse(inline); err == nil {
			return mo.Some(c)
		}
	}

	if viper.GetBool(key.CredentialsKeyring) {
		if secret, err := auth.Get(tag); err == nil {
			if c, err := Parse(secret); err == nil {
				return mo.Some(c)
			}
		}
	}

	return mo.None[Credential]()
}

func redact(s string) string {
	if len(s) <= 2 {
		return "**"
	}
	return s[:1] + strings.Repeat("*", len(s)-2) + s[len(s)-1:]
}
