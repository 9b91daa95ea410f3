package validate

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestParseAddress(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		wantErr   bool
		domain    string
		localPart string
	}{
		{"bare domain", "example.com", false, "example.com", ""},
		{"subdomain", "mail.example.co.uk", false, "mail.example.co.uk", ""},
		{"email", "user@example.com", false, "example.com", "user"},
		{"email with plus", "user+tag@example.com", false, "example.com", "user+tag"},
		{"uppercase normalized", "  USER@Example.COM ", false, "example.com", "user"},
		{"empty", "", true, "", ""},
		{"whitespace only", "   ", true, "", ""},
		{"no tld", "localhost", true, "", ""},
		{"leading dot", ".example.com", true, "", ""},
		{"double at", "a@b@example.com", true, "", ""},
		{"spaces inside", "exam ple.com", true, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := ParseAddress(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAddress(%q) = %+v, want error", tc.in, addr)
				}
				var verr *Error
				if !errors.As(err, &verr) {
					t.Fatalf("error type = %T, want *Error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddress(%q) error = %v", tc.in, err)
			}
			if addr.Domain != tc.domain || addr.LocalPart != tc.localPart {
				t.Fatalf("ParseAddress(%q) = %+v", tc.in, addr)
			}
			if addr.IsEmail() != (tc.localPart != "") {
				t.Fatalf("IsEmail() = %v for %+v", addr.IsEmail(), addr)
			}
		})
	}
}

func TestParseAddress_DistinctRejections(t *testing.T) {
	_, emptyErr := ParseAddress("")
	_, badErr := ParseAddress("not a domain")
	if emptyErr.Error() == badErr.Error() {
		t.Fatal("empty and malformed inputs should carry distinct messages")
	}
}

func TestAbsoluteURL(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://example.com/path?q=1", false},
		{"ftp://files.example.com", false},
		{"example.com", true},
		{"/relative/path", true},
		{"https://", true},
		{"", true},
		{"not a url at all", true},
	}
	for _, tc := range cases {
		got, err := AbsoluteURL(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("AbsoluteURL(%q) = %q, %v", tc.in, got, err)
		}
		if err == nil && got != strings.TrimSpace(tc.in) {
			t.Fatalf("AbsoluteURL(%q) = %q, want trimmed input", tc.in, got)
		}
	}
}

func TestToken(t *testing.T) {
	if _, err := Token("  eyJhbGciOiJIUzI1NiJ9.e30.sig  "); err != nil {
		t.Fatalf("Token(jwt) error = %v", err)
	}
	if _, err := Token("opaque-session-token-xyz"); err != nil {
		t.Fatalf("Token(opaque) error = %v", err)
	}
	if _, err := Token(""); err == nil {
		t.Fatal("Token(\"\") should be rejected")
	}

	// URLs get redirected to the URL tool.
	for _, u := range []string{"https://example.com/callback?token=abc", "http://example.com"} {
		_, err := Token(u)
		if err == nil {
			t.Fatalf("Token(%q) should be rejected", u)
		}
		if !strings.Contains(err.Error(), "URL tool") {
			t.Fatalf("Token(%q) rejection = %q, should point at the URL tool", u, err)
		}
	}
}

func TestFreeText(t *testing.T) {
	text := "  config with trailing spaces \n"
	got, err := FreeText(text, "text")
	if err != nil {
		t.Fatalf("FreeText error = %v", err)
	}
	// The original text goes to the backend untrimmed; line numbers in
	// findings depend on it.
	if got != text {
		t.Fatalf("FreeText = %q, want input unchanged", got)
	}

	_, err = FreeText("   \n\t", "an email source")
	if err == nil {
		t.Fatal("blank input should be rejected")
	}
	if !strings.Contains(err.Error(), "an email source") {
		t.Fatalf("rejection = %q, should name the expected input", err)
	}
}

func TestParseDataImage(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47})
	img, err := ParseDataImage("data:image/png;base64," + payload)
	if err != nil {
		t.Fatalf("ParseDataImage error = %v", err)
	}
	if img.MIMEType != "image/png" || len(img.Data) != 4 {
		t.Fatalf("img = %+v", img)
	}
}

func TestParseDataImage_Rejections(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no data prefix", "image/png;base64,AAAA"},
		{"no comma", "data:image/png;base64"},
		{"not base64 encoding", "data:image/png,rawbytes"},
		{"missing mime", "data:;base64,AAAA"},
		{"bad base64", "data:image/png;base64,!!!!"},
		{"empty payload", "data:image/png;base64,"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDataImage(tc.in); err == nil {
				t.Fatalf("ParseDataImage(%q) should be rejected", tc.in)
			}
		})
	}
}
