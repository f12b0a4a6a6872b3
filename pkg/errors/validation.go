package errors

import (
	"mime"
	"strings"
	"unicode"
)

// maxIRILength bounds IRIs accepted from untrusted input.
const maxIRILength = 4096

// ValidateIRI validates an IRI read from a graph document.
//
// The rules are deliberately loose; this is not a full RFC 3987 parser:
//   - No empty IRIs
//   - No whitespace or control characters
//   - No characters that are never legal in an IRI (<, >, ", {, }, |, ^, `, \)
//   - Maximum length of 4096 characters
//
// Relative and prefixed forms such as "ex:Alice" are accepted.
func ValidateIRI(iri string) error {
	if iri == "" {
		return New(ErrCodeInvalidIRI, "IRI cannot be empty")
	}

	if len(iri) > maxIRILength {
		return New(ErrCodeInvalidIRI, "IRI too long (max %d characters)", maxIRILength)
	}

	for _, r := range iri {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidIRI, "IRI contains whitespace or control characters: %q", iri)
		}
	}

	if i := strings.IndexAny(iri, "<>\"{}|^`\\"); i >= 0 {
		return New(ErrCodeInvalidIRI, "IRI contains invalid character %q: %q", iri[i], iri)
	}

	return nil
}

// ValidateBlankNodeLabel validates a document-local blank node label
// (the part after "_:").
func ValidateBlankNodeLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "blank node label cannot be empty")
	}
	for _, r := range label {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return New(ErrCodeInvalidInput, "invalid blank node label: %q", label)
		}
	}
	return nil
}

// NormalizeMediaType validates a format identifier and returns its
// canonical form: lower-case type/subtype with parameters removed.
// "Text/HTML; charset=utf-8" becomes "text/html".
func NormalizeMediaType(format string) (string, error) {
	if strings.TrimSpace(format) == "" {
		return "", New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	mt, _, err := mime.ParseMediaType(format)
	if err != nil {
		return "", Wrap(ErrCodeInvalidFormat, err, "invalid format %q", format)
	}
	if !strings.Contains(mt, "/") {
		return "", New(ErrCodeInvalidFormat, "format %q is not a type/subtype media type", format)
	}
	return mt, nil
}
