package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/medflow/arztliste/pkg/errors"
)

// LoadExclusions reads one entry per line from path. An empty path yields an empty set.
func LoadExclusions(path string) (domain.Set[string], error) {
	if path == "" {
		return domain.NewSet[string](), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.InputNotFound(path, err)
	}
	defer f.Close()

	set, err := ParseExclusions(f)
	if err != nil {
		return nil, errors.InputNotFound(path, err)
	}
	return set, nil
}

// ParseExclusions trims every line and skips blank ones
func ParseExclusions(r io.Reader) (domain.Set[string], error) {
	set := domain.NewSet[string]()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			set[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read exclusions: %w", err)
	}
	return set, nil
}
