// Package watchlist loads the ticker watch-list consumed by an export run.
package watchlist

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a JSON array of ticker symbols from the given file.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading watch-list: %w", err)
	}

	var tickers []string
	if err := json.Unmarshal(data, &tickers); err != nil {
		return nil, fmt.Errorf("parsing watch-list %s: %w", path, err)
	}

	return tickers, nil
}
