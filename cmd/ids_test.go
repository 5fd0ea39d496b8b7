package cmd

import (
	"errors"
	"testing"

	"github.com/theirongolddev/finburn/internal/model"
)

func TestResolveID(t *testing.T) {
	ids := []string{"abc12345-0000", "abd99999-0000", "ffff0000-1111"}

	got, err := resolveID("bill", "abc", ids)
	if err != nil || got != "abc12345-0000" {
		t.Fatalf("got %q, %v, want abc12345-0000", got, err)
	}

	got, err = resolveID("bill", "ffff0000-1111", ids)
	if err != nil || got != "ffff0000-1111" {
		t.Fatalf("exact match: got %q, %v", got, err)
	}

	if _, err := resolveID("bill", "ab", ids); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("ambiguous prefix: got %v, want ErrInvalidInput", err)
	}
	if _, err := resolveID("bill", "zz", ids); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing prefix: got %v, want ErrNotFound", err)
	}
	if _, err := resolveID("bill", " ", ids); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("empty prefix: got %v, want ErrInvalidInput", err)
	}
}
