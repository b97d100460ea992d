package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// maxDomainLineSize bounds a single line of the domain list file.
const maxDomainLineSize = 1024 * 1024

// LoadDomains reads a domain list file: one domain per line, surrounding
// whitespace trimmed, blank lines dropped. File order is kept and
// duplicates are not removed, so a domain listed twice is processed twice.
//
// A file that cannot be opened wraps ErrDomainsFile. A readable file with
// no domains returns ErrNoDomains.
func LoadDomains(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDomainsFile, err)
	}
	defer f.Close()

	var domains []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxDomainLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		domains = append(domains, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDomainsFile, err)
	}

	if len(domains) == 0 {
		return nil, ErrNoDomains
	}
	return domains, nil
}
