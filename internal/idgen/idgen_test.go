package idgen

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	pattern := regexp.MustCompile(`^lst-[a-z0-9]{12}$`)
	for i := 0; i < 100; i++ {
		id, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("Generate() = %q, want match for %s", id, pattern)
		}
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	for _, prefix := range []string{"", "adv-", "cpa-"} {
		id, err := GenerateWithPrefix(prefix)
		if err != nil {
			t.Fatalf("GenerateWithPrefix(%q) error: %v", prefix, err)
		}
		if !strings.HasPrefix(id, prefix) {
			t.Errorf("GenerateWithPrefix(%q) = %q, missing prefix", prefix, id)
		}
		if got, want := len(id), len(prefix)+Length; got != want {
			t.Errorf("GenerateWithPrefix(%q) length = %d, want %d", prefix, got, want)
		}
		if strings.ToLower(id) != id {
			t.Errorf("GenerateWithPrefix(%q) = %q, want lower case", prefix, id)
		}
	}
}
