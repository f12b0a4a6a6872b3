package errors

import (
	"strings"
	"testing"
)

func TestValidateIRI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"http", "http://example.org/alice", false},
		{"fragment", "http://www.w3.org/2001/XMLSchema#string", false},
		{"urn", "urn:isbn:0451450523", false},
		{"prefixed", "ex:Alice", false},
		{"unicode", "http://example.org/Zürich", false},

		{"empty", "", true},
		{"too long", "http://x/" + strings.Repeat("a", 5000), true},
		{"space", "http://example.org/a b", true},
		{"newline", "http://example.org/a\nb", true},
		{"angle bracket", "http://example.org/<a>", true},
		{"quote", `http://example.org/"a"`, true},
		{"backslash", `http://example.org\a`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIRI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIRI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidIRI) {
				t.Errorf("ValidateIRI(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateBlankNodeLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "b0", false},
		{"dashes", "node-1.a_b", false},

		{"empty", "", true},
		{"colon", "_:b0", true},
		{"space", "b 0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBlankNodeLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBlankNodeLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeMediaType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "text/html", "text/html", false},
		{"upper case", "Text/HTML", "text/html", false},
		{"with params", "text/html; charset=utf-8", "text/html", false},
		{"svg", "image/svg+xml", "image/svg+xml", false},

		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"no subtype", "html", "", true},
		{"garbage", "text/html;;=", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeMediaType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeMediaType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeMediaType(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("NormalizeMediaType(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidIRI,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeUnsupportedFormat,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeIO,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
