package balanz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testCache(t *testing.T) *TokenCache {
	t.Helper()
	return NewTokenCache(filepath.Join(t.TempDir(), "balanz_token.json"))
}

func TestTokenCache_RoundTrip_YieldsEquivalentToken(t *testing.T) {
	cache := testCache(t)
	issued := time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local)

	if err := cache.Save(Token{Value: "abc123", IssuedAt: issued}); err != nil {
		t.Fatalf("Save() error = %v, want nil", err)
	}

	got, ok := cache.Load()
	if !ok {
		t.Fatal("Load() returned miss after Save()")
	}
	if got.Value != "abc123" {
		t.Errorf("Load() token = %q, want %q", got.Value, "abc123")
	}
	if !got.IssuedAt.Equal(issued) {
		t.Errorf("Load() issued at = %v, want %v", got.IssuedAt, issued)
	}
}

func TestTokenCache_SaveWritesTextualTimestamp(t *testing.T) {
	cache := testCache(t)
	issued := time.Date(2024, 3, 5, 10, 30, 45, 0, time.Local)

	if err := cache.Save(Token{Value: "abc", IssuedAt: issued}); err != nil {
		t.Fatalf("Save() error = %v, want nil", err)
	}

	data, err := os.ReadFile(cache.Path())
	if err != nil {
		t.Fatalf("reading cache file: %v", err)
	}
	want := `"timestamp": "05-03-2024 10:30:45"`
	if !strings.Contains(string(data), want) {
		t.Errorf("cache file %s does not contain %s", data, want)
	}
}

func TestTokenCache_MissingFile_IsCacheMiss(t *testing.T) {
	cache := NewTokenCache(filepath.Join(t.TempDir(), "does-not-exist.json"))

	if _, ok := cache.Load(); ok {
		t.Error("Load() ok = true for missing file, want miss")
	}
}

func TestTokenCache_MalformedJSON_IsCacheMiss(t *testing.T) {
	cache := testCache(t)
	if err := os.WriteFile(cache.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Load(); ok {
		t.Error("Load() ok = true for malformed JSON, want miss")
	}
}

func TestTokenCache_BadTimestamp_IsCacheMiss(t *testing.T) {
	cache := testCache(t)
	if err := os.WriteFile(cache.Path(), []byte(`{"token":"abc","timestamp":"2024-03-05T10:30:00Z"}`), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Load(); ok {
		t.Error("Load() ok = true for unparseable timestamp, want miss")
	}
}

func TestTokenCache_EmptyToken_IsCacheMiss(t *testing.T) {
	cache := testCache(t)
	if err := os.WriteFile(cache.Path(), []byte(`{"token":"","timestamp":"05-03-2024 10:30:45"}`), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Load(); ok {
		t.Error("Load() ok = true for empty token, want miss")
	}
}

func TestToken_ValidAt_WindowBoundaries(t *testing.T) {
	issued := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	tok := Token{Value: "abc", IssuedAt: issued}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"at issuance", issued, true},
		{"one second before expiry", issued.Add(899 * time.Second), true},
		{"exactly at expiry", issued.Add(900 * time.Second), false},
		{"after expiry", issued.Add(901 * time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tok.ValidAt(tc.now); got != tc.want {
				t.Errorf("ValidAt(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}
