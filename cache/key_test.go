package cache

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "Electronics", want: "electronics"},
		{name: "trims whitespace", input: "  electronics  ", want: "electronics"},
		{name: "trims and lowercases", input: " Electronics ", want: "electronics"},
		{name: "already normalized", input: "electronics", want: "electronics"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeyFilteredNormalizesEquivalentSelectors(t *testing.T) {
	a := KeyFiltered("products", "category", "Electronics")
	b := KeyFiltered("products", "category", " electronics ")
	if a != b {
		t.Errorf("equivalent selectors produced different keys: %q vs %q", a, b)
	}
}

func TestKeyHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "all", got: KeyAll("products"), want: "products::all"},
		{name: "by id", got: KeyByID("products", "42"), want: "products::id::42"},
		{name: "filtered", got: KeyFiltered("products", "Category", "Fruits"), want: "products::filter::category::fruits"},
		{name: "session", got: KeySession("guest"), want: "cart::guest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestKeyDeterminism(t *testing.T) {
	first := Key("products", "filter", "category", "groceries")
	for i := 0; i < 100; i++ {
		if got := Key("products", "filter", "category", "groceries"); got != first {
			t.Fatalf("key changed between calls: %q vs %q", got, first)
		}
	}
}

func TestKeySanitizesHostileSegments(t *testing.T) {
	long := strings.Repeat("x", 200)

	tests := []struct {
		name    string
		segment string
	}{
		{name: "overlong segment", segment: long},
		{name: "embedded separator", segment: "a::b"},
		{name: "whitespace", segment: "has space"},
		{name: "control bytes", segment: "line\nbreak"},
		{name: "non ascii", segment: "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := Key("products", tt.segment)
			if err := ValidateKey(key); err != nil {
				t.Fatalf("sanitized key still invalid: %v", err)
			}
			// Digesting must stay deterministic.
			if again := Key("products", tt.segment); again != key {
				t.Errorf("digest not deterministic: %q vs %q", again, key)
			}
		})
	}
}

func TestKeyEmptySegmentPlaceholder(t *testing.T) {
	if got := Key("products", ""); got != "products::~" {
		t.Errorf("Key with empty segment = %q, want products::~", got)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "valid", key: "products::id::1", wantErr: nil},
		{name: "empty", key: "", wantErr: ErrInvalidKey},
		{name: "blank", key: "   ", wantErr: ErrInvalidKey},
		{name: "newline", key: "a\nb", wantErr: ErrInvalidKey},
		{name: "space", key: "a b", wantErr: ErrInvalidKey},
		{name: "too long", key: strings.Repeat("k", MaxKeyLength+1), wantErr: ErrKeyTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateKey(%q) = %v, want nil", tt.key, err)
				}
				return
			}
			if err != tt.wantErr {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}
