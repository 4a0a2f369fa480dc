package balanz

import (
	"encoding/json"
	"os"
	"time"
)

// tokenTimestampFormat is the textual timestamp format used in the cache
// file. It predates this implementation, so it stays as-is.
const tokenTimestampFormat = "02-01-2006 15:04:05"

// TokenCache persists the session token between runs so that repeated
// invocations inside the validity window skip the login handshake.
type TokenCache struct {
	path string
}

// NewTokenCache creates a token cache backed by the given file path.
func NewTokenCache(path string) *TokenCache {
	return &TokenCache{path: path}
}

// Path returns the cache file location.
func (c *TokenCache) Path() string {
	return c.path
}

type cachedToken struct {
	Token     string `json:"token"`
	Timestamp string `json:"timestamp"`
}

// Load returns the cached token, if any. A missing, unreadable or
// malformed cache file is a cache miss, never an error.
func (c *TokenCache) Load() (Token, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return Token{}, false
	}

	var rec cachedToken
	if err := json.Unmarshal(data, &rec); err != nil {
		return Token{}, false
	}
	if rec.Token == "" {
		return Token{}, false
	}

	issued, err := time.ParseInLocation(tokenTimestampFormat, rec.Timestamp, time.Local)
	if err != nil {
		return Token{}, false
	}

	return Token{Value: rec.Token, IssuedAt: issued}, true
}

// Save writes the token and its issuance timestamp, replacing any
// previous value.
func (c *TokenCache) Save(t Token) error {
	rec := cachedToken{
		Token:     t.Value,
		Timestamp: t.IssuedAt.In(time.Local).Format(tokenTimestampFormat),
	}

	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0600)
}
