package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finburn/internal/model"
)

// resolveID expands a (possibly shortened) ID against the known IDs. The
// prefix must match exactly one record.
func resolveID(kind, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: %s id is required", model.ErrInvalidInput, kind)
	}

	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %s id %q is ambiguous", model.ErrInvalidInput, kind, prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s %q", model.ErrNotFound, kind, prefix)
	}
	return match, nil
}

func idsOf[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}
