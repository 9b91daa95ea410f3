package normalize

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"phishscope/internal/analysis"
	"phishscope/internal/gemini"
)

func TestDomain_WellFormedPayload(t *testing.T) {
	raw := "```json\n" + `{
	  "legitimacy": "Legitimate",
	  "reputationSummary": "Well-established mail provider.",
	  "commonAliases": ["support@", "abuse@", "noreply@"],
	  "observedFormats": ["firstname.lastname@example.com"],
	  "otherDiscoveredEmails": ["press@example.com", "jobs@example.com"],
	  "sourcesSummary": "Official site and mail security blogs."
	}` + "\n```"

	res := Domain(raw, "example.com")
	if res.Legitimacy != analysis.DomainLegitimate {
		t.Fatalf("Legitimacy = %q, want Legitimate", res.Legitimacy)
	}
	if res.ReputationSummary != "Well-established mail provider." {
		t.Fatalf("ReputationSummary = %q", res.ReputationSummary)
	}
	// Lists come back sorted ascending regardless of payload order.
	wantAliases := []string{"abuse@", "noreply@", "support@"}
	if diff := cmp.Diff(wantAliases, res.CommonAliases); diff != "" {
		t.Fatalf("CommonAliases mismatch (-want +got):\n%s", diff)
	}
	wantOthers := []string{"jobs@example.com", "press@example.com"}
	if diff := cmp.Diff(wantOthers, res.OtherDiscoveredEmails); diff != "" {
		t.Fatalf("OtherDiscoveredEmails mismatch (-want +got):\n%s", diff)
	}
	if res.SpecificEmailAnalysis != nil {
		t.Fatal("SpecificEmailAnalysis should be nil when the payload has none")
	}
}

func TestDomain_RefusalFallsBack(t *testing.T) {
	raw := "Sorry, I cannot comply with that request."

	res := Domain(raw, "example.com")
	if res.Legitimacy != analysis.DomainUnknown {
		t.Fatalf("Legitimacy = %q, want Unknown", res.Legitimacy)
	}
	if !strings.Contains(res.ReputationSummary, raw) {
		t.Fatalf("summary should embed the raw output, got %q", res.ReputationSummary)
	}
	for name, list := range map[string][]string{
		"CommonAliases":         res.CommonAliases,
		"ObservedFormats":       res.ObservedFormats,
		"OtherDiscoveredEmails": res.OtherDiscoveredEmails,
	} {
		if list == nil || len(list) != 0 {
			t.Fatalf("%s = %v, want empty non-nil slice", name, list)
		}
	}
	if res.Sources == nil {
		t.Fatal("Sources should never be nil")
	}
}

func TestDomain_SpecificEmailUsesOriginalInput(t *testing.T) {
	raw := `{
	  "legitimacy": "Potentially Malicious",
	  "reputationSummary": "Address not found; a similar one exists.",
	  "commonAliases": [],
	  "observedFormats": [],
	  "otherDiscoveredEmails": [],
	  "specificEmailAnalysis": {
	    "isVerified": false,
	    "summary": "The address appears to be typosquatted.",
	    "foundSuggestion": "support@example.com"
	  }
	}`

	res := Domain(raw, "suport@example.com")
	sea := res.SpecificEmailAnalysis
	if sea == nil {
		t.Fatal("SpecificEmailAnalysis missing")
	}
	// The echoed address must be the analyzed input, never backend text.
	if sea.Email != "suport@example.com" {
		t.Fatalf("Email = %q, want the original input", sea.Email)
	}
	if sea.IsVerified {
		t.Fatal("IsVerified = true, want false")
	}
	if sea.FoundSuggestion != "support@example.com" {
		t.Fatalf("FoundSuggestion = %q", sea.FoundSuggestion)
	}
}

func TestDomain_MalformedOptionalBlockDropped(t *testing.T) {
	raw := `{
	  "legitimacy": "Legitimate",
	  "reputationSummary": "ok",
	  "specificEmailAnalysis": "definitely verified"
	}`

	res := Domain(raw, "user@example.com")
	if res.SpecificEmailAnalysis != nil {
		t.Fatal("a non-object specificEmailAnalysis must be dropped, not coerced")
	}
	if res.Legitimacy != analysis.DomainLegitimate {
		t.Fatalf("Legitimacy = %q, want Legitimate", res.Legitimacy)
	}
}

func TestDomain_UnknownVerdictCoerced(t *testing.T) {
	for _, bad := range []string{"LEGITIMATE", "legit", "Trustworthy", "", "42"} {
		raw := `{"legitimacy": "` + bad + `", "reputationSummary": "x"}`
		res := Domain(raw, "example.com")
		if !res.Legitimacy.Valid() {
			t.Fatalf("verdict %q escaped normalization as %q", bad, res.Legitimacy)
		}
		if res.Legitimacy != analysis.DomainUnknown {
			t.Fatalf("verdict %q coerced to %q, want Unknown", bad, res.Legitimacy)
		}
	}
}

func TestScreenshot_ChattyPreamble(t *testing.T) {
	raw := `Here is the analysis you asked for:

{"overallVerdict": "Malicious", "analysisSummary": "Credential phishing page impersonating a bank.", "redFlags": ["Urgent deadline", "Mismatched sender"], "grammaticalAnalysis": {"summary": "Multiple errors.", "errors": ["recieve"]}}

Stay safe out there!`

	res := Screenshot(raw)
	if res.OverallVerdict != analysis.ScreenshotMalicious {
		t.Fatalf("OverallVerdict = %q, want Malicious", res.OverallVerdict)
	}
	if len(res.RedFlags) != 2 {
		t.Fatalf("RedFlags = %v, want 2 entries", res.RedFlags)
	}
	ga := res.GrammaticalAnalysis
	if ga == nil || len(ga.Errors) != 1 || ga.Errors[0] != "recieve" {
		t.Fatalf("GrammaticalAnalysis = %+v", ga)
	}
}

func TestScreenshot_MissingSummaryDefaulted(t *testing.T) {
	res := Screenshot(`{"overallVerdict": "Safe", "redFlags": []}`)
	if res.AnalysisSummary != missingSummary {
		t.Fatalf("AnalysisSummary = %q, want the placeholder", res.AnalysisSummary)
	}
}

func TestURL_CertificateBlock(t *testing.T) {
	raw := `{
	  "overallVerdict": "Suspicious",
	  "analysisSummary": "Recently registered domain with a mismatched certificate.",
	  "redFlags": ["Domain registered 3 days ago"],
	  "certificateAnalysis": {
	    "issuer": "R3",
	    "subject": "login-example.net",
	    "validFrom": "2026-08-28",
	    "validTo": "2026-11-26",
	    "protocol": "TLS 1.3",
	    "summary": "Certificate subject does not match the impersonated brand."
	  }
	}`

	res := URL(raw)
	if res.OverallVerdict != analysis.URLSuspicious {
		t.Fatalf("OverallVerdict = %q, want Suspicious", res.OverallVerdict)
	}
	cert := res.CertificateAnalysis
	if cert == nil {
		t.Fatal("CertificateAnalysis missing")
	}
	if cert.Issuer != "R3" || cert.Protocol != "TLS 1.3" {
		t.Fatalf("certificate = %+v", cert)
	}
}

func TestURL_PlainHTTPOmitsCertificate(t *testing.T) {
	res := URL(`{"overallVerdict": "Safe", "analysisSummary": "Plain HTTP informational page.", "redFlags": []}`)
	if res.CertificateAnalysis != nil {
		t.Fatal("CertificateAnalysis should stay nil when omitted")
	}
	if res.Sources == nil {
		t.Fatal("Sources should never be nil")
	}
}

func TestToken_FallbackIsInvalid(t *testing.T) {
	res := Token("this is not json at all")
	// The token enumeration has no neutral member.
	if res.OverallVerdict != analysis.TokenInvalid {
		t.Fatalf("OverallVerdict = %q, want Invalid / Malformed", res.OverallVerdict)
	}
	if res.DecodedHeader == nil || res.DecodedPayload == nil || res.SecurityRisks == nil {
		t.Fatal("claim and risk slices must be non-nil on fallback")
	}
}

func TestToken_ClaimsDecoded(t *testing.T) {
	raw := `{
	  "overallVerdict": "Valid & Potentially Risky",
	  "analysisSummary": "No expiry claim present.",
	  "securityRisks": ["Missing exp claim"],
	  "decodedHeader": [{"key": "alg", "value": "HS256"}, "garbage", {"key": "typ", "value": "JWT"}],
	  "decodedPayload": [{"key": "sub", "value": "1234567890"}, {"key": "admin", "value": true}]
	}`

	res := Token(raw)
	if res.OverallVerdict != analysis.TokenValidRisky {
		t.Fatalf("OverallVerdict = %q", res.OverallVerdict)
	}
	// The non-object element is dropped, the rest survive in order.
	if len(res.DecodedHeader) != 2 || res.DecodedHeader[0].Key != "alg" || res.DecodedHeader[1].Key != "typ" {
		t.Fatalf("DecodedHeader = %+v", res.DecodedHeader)
	}
	if v, ok := res.DecodedPayload[1].Value.(bool); !ok || !v {
		t.Fatalf("boolean claim value lost: %+v", res.DecodedPayload[1])
	}
}

func TestSecrets_CriticalFinding(t *testing.T) {
	raw := `{
	  "overallVerdict": "Secrets Found",
	  "analysisSummary": "One hardcoded AWS key.",
	  "foundSecrets": [
	    {"line": 12, "type": "AWS Access Key ID", "snippet": "aws_access_key_id = AKIA...", "risk": "Critical", "suggestion": "Revoke this key and move it to a secrets manager."}
	  ]
	}`

	res := Secrets(raw)
	if res.OverallVerdict != analysis.SecretsFound {
		t.Fatalf("OverallVerdict = %q, want Secrets Found", res.OverallVerdict)
	}
	if len(res.FoundSecrets) != 1 {
		t.Fatalf("FoundSecrets = %+v", res.FoundSecrets)
	}
	fs := res.FoundSecrets[0]
	if fs.Line != 12 || fs.Risk != analysis.RiskCritical {
		t.Fatalf("finding = %+v", fs)
	}
}

func TestSecrets_LineNumberShapes(t *testing.T) {
	// A generative backend reports line numbers as numbers, floats or
	// numeric strings depending on its mood.
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"integer", `{"overallVerdict": "Secrets Found", "analysisSummary": "x", "foundSecrets": [{"line": 7, "type": "t", "snippet": "s", "risk": "Low", "suggestion": "y"}]}`, 7},
		{"float", `{"overallVerdict": "Secrets Found", "analysisSummary": "x", "foundSecrets": [{"line": 7.0, "type": "t", "snippet": "s", "risk": "Low", "suggestion": "y"}]}`, 7},
		{"string", `{"overallVerdict": "Secrets Found", "analysisSummary": "x", "foundSecrets": [{"line": "7", "type": "t", "snippet": "s", "risk": "Low", "suggestion": "y"}]}`, 7},
		{"absent", `{"overallVerdict": "Secrets Found", "analysisSummary": "x", "foundSecrets": [{"type": "t", "snippet": "s", "risk": "Low", "suggestion": "y"}]}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Secrets(tc.raw)
			if len(res.FoundSecrets) != 1 {
				t.Fatalf("FoundSecrets = %+v", res.FoundSecrets)
			}
			if got := res.FoundSecrets[0].Line; got != tc.want {
				t.Fatalf("Line = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSecrets_EmptyInputFallsBack(t *testing.T) {
	res := Secrets("")
	if res.OverallVerdict != analysis.SecretsIncomplete {
		t.Fatalf("OverallVerdict = %q, want Analysis Incomplete", res.OverallVerdict)
	}
	if res.FoundSecrets == nil {
		t.Fatal("FoundSecrets must be non-nil on fallback")
	}
}

func TestRawEmail_FullPayload(t *testing.T) {
	raw := `{
	  "overallVerdict": "Malicious",
	  "analysisSummary": "Spoofed sender with a credential harvesting link.",
	  "redFlags": ["SPF fail", "Mismatched anchor text"],
	  "headerAnalysis": {"from": "security@paypa1.com", "subject": "Account Locked", "dkim": "fail", "spf": "fail", "dmarc": "fail", "summary": "All three checks failed."},
	  "links": [{"url": "http://paypa1.com/login", "verdict": "Suspicious", "summary": "Typosquatted domain."}],
	  "attachments": [{"filename": "invoice.pdf.exe", "risk": "High", "summary": "Double extension executable."}]
	}`

	res := RawEmail(raw)
	if res.OverallVerdict != analysis.EmailMalicious {
		t.Fatalf("OverallVerdict = %q, want Malicious", res.OverallVerdict)
	}
	if res.HeaderAnalysis.SPF != "fail" || res.HeaderAnalysis.From != "security@paypa1.com" {
		t.Fatalf("HeaderAnalysis = %+v", res.HeaderAnalysis)
	}
	if len(res.Links) != 1 || res.Links[0].Verdict != "Suspicious" {
		t.Fatalf("Links = %+v", res.Links)
	}
	if len(res.Attachments) != 1 || res.Attachments[0].Risk != "High" {
		t.Fatalf("Attachments = %+v", res.Attachments)
	}
}

func TestRawEmail_MissingHeadersGetPlaceholder(t *testing.T) {
	res := RawEmail(`{"overallVerdict": "Spam", "analysisSummary": "Bulk marketing."}`)
	if res.OverallVerdict != analysis.EmailSpam {
		t.Fatalf("OverallVerdict = %q, want Spam", res.OverallVerdict)
	}
	// The header block is required by the result shape.
	if res.HeaderAnalysis.DKIM != "N/A" || res.HeaderAnalysis.From != "N/A" {
		t.Fatalf("HeaderAnalysis = %+v, want placeholders", res.HeaderAnalysis)
	}
	if res.Links == nil || res.Attachments == nil {
		t.Fatal("Links and Attachments must be non-nil")
	}
}

// TestTotality drives every entry point over degenerate inputs. None may
// panic, and each must land on its kind's fallback verdict.
func TestTotality(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t  ",
		"null",
		"[]",
		`"just a string"`,
		"{",
		`{"unterminated": "`,
		"``````",
		"```json\n```",
		`{"totally": "unrelated", "shape": [1, 2, 3]}`,
		strings.Repeat("{", 5000),
	}
	for _, in := range inputs {
		if got := Domain(in, "example.com"); !got.Legitimacy.Valid() {
			t.Fatalf("Domain(%q) verdict %q invalid", in, got.Legitimacy)
		}
		if got := Screenshot(in); !got.OverallVerdict.Valid() {
			t.Fatalf("Screenshot(%q) verdict %q invalid", in, got.OverallVerdict)
		}
		if got := URL(in); !got.OverallVerdict.Valid() {
			t.Fatalf("URL(%q) verdict %q invalid", in, got.OverallVerdict)
		}
		if got := Token(in); !got.OverallVerdict.Valid() {
			t.Fatalf("Token(%q) verdict %q invalid", in, got.OverallVerdict)
		}
		if got := Secrets(in); !got.OverallVerdict.Valid() {
			t.Fatalf("Secrets(%q) verdict %q invalid", in, got.OverallVerdict)
		}
		if got := RawEmail(in); !got.OverallVerdict.Valid() {
			t.Fatalf("RawEmail(%q) verdict %q invalid", in, got.OverallVerdict)
		}
	}
}

func TestSources(t *testing.T) {
	citations := []gemini.Citation{
		{URI: "https://example.com/about", Title: "About Example"},
		{URI: "", Title: "orphaned title"},
		{URI: "https://blog.example.com/post"},
	}

	got := Sources(citations, "example.com")
	want := []analysis.GroundingSource{
		{URI: "https://example.com/about", Title: "About Example"},
		{URI: "https://blog.example.com/post", Title: "Source from example.com"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Sources mismatch (-want +got):\n%s", diff)
	}
}

func TestSources_NilAndEmpty(t *testing.T) {
	if got := Sources(nil, "example.com"); got == nil || len(got) != 0 {
		t.Fatalf("Sources(nil) = %v, want empty non-nil slice", got)
	}
	if got := Sources([]gemini.Citation{{URI: ""}}, "x"); len(got) != 0 {
		t.Fatalf("Sources dropped nothing: %v", got)
	}
}
