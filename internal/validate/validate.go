// Package validate performs per-tool syntactic checks on raw user input
// before any backend call is made. All checks are pure functions of the
// input; a rejection carries the user-facing reason.
package validate

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Error is an input rejection. It reaches the user verbatim.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func reject(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// Address is a validated domain or email-address input.
type Address struct {
	// Input is the trimmed, lowercased original input.
	Input string
	// Domain is the domain portion (the whole input for bare domains).
	Domain string
	// LocalPart is the part before '@', empty for bare domains.
	LocalPart string
}

// IsEmail reports whether the input carried a local part.
func (a Address) IsEmail() bool { return a.LocalPart != "" }

var (
	emailRe  = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	domainRe = regexp.MustCompile(`^(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z0-9][a-z0-9-]{0,61}[a-z0-9]$`)
)

// ParseAddress validates a domain or full email address. Matching is
// case-insensitive on trimmed input. The empty-input and malformed-input
// rejections are deliberately distinct messages.
func ParseAddress(input string) (Address, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return Address{}, reject("please enter a domain or email address to analyze")
	}
	switch {
	case emailRe.MatchString(trimmed):
		at := strings.LastIndex(trimmed, "@")
		return Address{Input: trimmed, Domain: trimmed[at+1:], LocalPart: trimmed[:at]}, nil
	case domainRe.MatchString(trimmed):
		return Address{Input: trimmed, Domain: trimmed}, nil
	}
	return Address{}, reject("please enter a valid domain (e.g. example.com) or email address (e.g. user@example.com)")
}

// AbsoluteURL validates a URL input. It must parse with both a scheme and
// an authority component.
func AbsoluteURL(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", reject("please enter a URL to analyze")
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", reject("please enter a valid URL (e.g. https://example.com)")
	}
	return trimmed, nil
}

// Token accepts any non-empty input that is not an http/https URL. URLs are
// redirected to the URL tool; the token tool otherwise imposes no shape.
func Token(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", reject("please enter a token to analyze")
	}
	if u, err := url.Parse(trimmed); err == nil && u.Host != "" &&
		(u.Scheme == "http" || u.Scheme == "https") {
		return "", reject("this appears to be a URL; use the URL tool for a proper analysis")
	}
	return trimmed, nil
}

// FreeText accepts arbitrary text for the secret-scan and raw-email tools.
// The only requirement is a non-empty input after trimming; what gets sent
// to the backend is the original text, untrimmed.
func FreeText(input, what string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", reject("please provide %s to analyze", what)
	}
	return input, nil
}

// Image is a decoded screenshot attachment.
type Image struct {
	MIMEType string
	Data     []byte
}

// ParseDataImage decodes a data:<mediatype>;base64,<payload> string into
// raw image bytes plus the declared media type.
func ParseDataImage(input string) (Image, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Image{}, reject("please provide a screenshot to analyze")
	}
	rest, ok := strings.CutPrefix(trimmed, "data:")
	if !ok {
		return Image{}, reject("invalid image data URL format")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return Image{}, reject("invalid image data URL format")
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		return Image{}, reject("invalid image data URL format")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, reject("invalid base64 image payload")
	}
	if len(data) == 0 {
		return Image{}, reject("image payload is empty")
	}
	return Image{MIMEType: mimeType, Data: data}, nil
}
