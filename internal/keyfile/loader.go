// Package keyfile loads application key lists from newline-delimited files.
package keyfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads application keys from a file, one per line. Blank lines and
// lines starting with '#' are discarded; surrounding whitespace is trimmed.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file %s: %w", path, err)
	}
	defer f.Close()

	keys := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read key file %s: %w", path, err)
	}

	return keys, nil
}
