// Package analysis defines the typed result model shared by every tool.
// Each analysis kind carries a closed verdict enumeration; values outside the
// enumeration never survive normalization (see internal/normalize).
package analysis

// Kind identifies one of the six analysis tools.
type Kind string

const (
	KindDomain     Kind = "domain"
	KindScreenshot Kind = "screenshot"
	KindURL        Kind = "url"
	KindToken      Kind = "token"
	KindSecrets    Kind = "secrets"
	KindEmail      Kind = "email"
)

// GroundingSource is a citation the backend used to support its answer.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// =============================================================================
// DOMAIN / ADDRESS
// =============================================================================

// DomainVerdict classifies the legitimacy of a domain or email address.
type DomainVerdict string

const (
	DomainLegitimate           DomainVerdict = "Legitimate"
	DomainSuspicious           DomainVerdict = "Suspicious"
	DomainPotentiallyMalicious DomainVerdict = "Potentially Malicious"
	DomainUnknown              DomainVerdict = "Unknown"
)

// DomainVerdicts returns every member of the enumeration.
func DomainVerdicts() []DomainVerdict {
	return []DomainVerdict{DomainLegitimate, DomainSuspicious, DomainPotentiallyMalicious, DomainUnknown}
}

// Valid reports whether v is a member of the enumeration.
func (v DomainVerdict) Valid() bool {
	switch v {
	case DomainLegitimate, DomainSuspicious, DomainPotentiallyMalicious, DomainUnknown:
		return true
	}
	return false
}

// SpecificEmailAnalysis is the verification result for a full address input.
// Present on DomainResult only when the analyzed input carried a local part.
type SpecificEmailAnalysis struct {
	Email           string `json:"email"`
	IsVerified      bool   `json:"isVerified"`
	Summary         string `json:"summary"`
	FoundSuggestion string `json:"foundSuggestion,omitempty"`
}

// DomainResult is the normalized output of the domain/address tool.
// The three string slices are always non-nil and sorted ascending.
type DomainResult struct {
	Legitimacy            DomainVerdict          `json:"legitimacy"`
	ReputationSummary     string                 `json:"reputationSummary"`
	CommonAliases         []string               `json:"commonAliases"`
	ObservedFormats       []string               `json:"observedFormats"`
	OtherDiscoveredEmails []string               `json:"otherDiscoveredEmails"`
	Sources               []GroundingSource      `json:"sources"`
	SourcesSummary        string                 `json:"sourcesSummary,omitempty"`
	SpecificEmailAnalysis *SpecificEmailAnalysis `json:"specificEmailAnalysis,omitempty"`
}

// =============================================================================
// SCREENSHOT
// =============================================================================

// ScreenshotVerdict classifies an email screenshot.
type ScreenshotVerdict string

const (
	ScreenshotSafe       ScreenshotVerdict = "Safe"
	ScreenshotSuspicious ScreenshotVerdict = "Suspicious"
	ScreenshotMalicious  ScreenshotVerdict = "Malicious"
	ScreenshotUnknown    ScreenshotVerdict = "Unknown"
)

// ScreenshotVerdicts returns every member of the enumeration.
func ScreenshotVerdicts() []ScreenshotVerdict {
	return []ScreenshotVerdict{ScreenshotSafe, ScreenshotSuspicious, ScreenshotMalicious, ScreenshotUnknown}
}

// Valid reports whether v is a member of the enumeration.
func (v ScreenshotVerdict) Valid() bool {
	switch v {
	case ScreenshotSafe, ScreenshotSuspicious, ScreenshotMalicious, ScreenshotUnknown:
		return true
	}
	return false
}

// GrammaticalAnalysis summarizes language-quality findings in a screenshot.
type GrammaticalAnalysis struct {
	Summary string   `json:"summary"`
	Errors  []string `json:"errors"`
}

// ScreenshotResult is the normalized output of the screenshot tool.
type ScreenshotResult struct {
	OverallVerdict      ScreenshotVerdict    `json:"overallVerdict"`
	AnalysisSummary     string               `json:"analysisSummary"`
	RedFlags            []string             `json:"redFlags"`
	GrammaticalAnalysis *GrammaticalAnalysis `json:"grammaticalAnalysis,omitempty"`
}

// =============================================================================
// URL
// =============================================================================

// URLVerdict classifies a URL.
type URLVerdict string

const (
	URLSafe       URLVerdict = "Safe"
	URLSuspicious URLVerdict = "Suspicious"
	URLMalicious  URLVerdict = "Malicious"
	URLUnknown    URLVerdict = "Unknown"
)

// URLVerdicts returns every member of the enumeration.
func URLVerdicts() []URLVerdict {
	return []URLVerdict{URLSafe, URLSuspicious, URLMalicious, URLUnknown}
}

// Valid reports whether v is a member of the enumeration.
func (v URLVerdict) Valid() bool {
	switch v {
	case URLSafe, URLSuspicious, URLMalicious, URLUnknown:
		return true
	}
	return false
}

// CertificateAnalysis describes the TLS certificate of an analyzed URL.
// Absent for URLs where no certificate applies (plain HTTP).
type CertificateAnalysis struct {
	Issuer    string `json:"issuer"`
	Subject   string `json:"subject"`
	ValidFrom string `json:"validFrom"`
	ValidTo   string `json:"validTo"`
	Protocol  string `json:"protocol"`
	Summary   string `json:"summary"`
}

// URLResult is the normalized output of the URL tool.
type URLResult struct {
	OverallVerdict      URLVerdict           `json:"overallVerdict"`
	AnalysisSummary     string               `json:"analysisSummary"`
	RedFlags            []string             `json:"redFlags"`
	CertificateAnalysis *CertificateAnalysis `json:"certificateAnalysis,omitempty"`
	Sources             []GroundingSource    `json:"sources"`
}

// =============================================================================
// AUTH TOKEN
// =============================================================================

// TokenVerdict classifies an auth token. The enumeration has no neutral
// member; the conservative fallback is TokenInvalid.
type TokenVerdict string

const (
	TokenValidSafe  TokenVerdict = "Valid & Safe"
	TokenValidRisky TokenVerdict = "Valid & Potentially Risky"
	TokenInvalid    TokenVerdict = "Invalid / Malformed"
	TokenExpired    TokenVerdict = "Expired"
)

// TokenVerdicts returns every member of the enumeration.
func TokenVerdicts() []TokenVerdict {
	return []TokenVerdict{TokenValidSafe, TokenValidRisky, TokenInvalid, TokenExpired}
}

// Valid reports whether v is a member of the enumeration.
func (v TokenVerdict) Valid() bool {
	switch v {
	case TokenValidSafe, TokenValidRisky, TokenInvalid, TokenExpired:
		return true
	}
	return false
}

// TokenClaim is one decoded header or payload claim. Value keeps whatever
// shape the backend reported (string, number, bool, nested structure).
type TokenClaim struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// TokenResult is the normalized output of the token tool.
type TokenResult struct {
	OverallVerdict  TokenVerdict `json:"overallVerdict"`
	AnalysisSummary string       `json:"analysisSummary"`
	SecurityRisks   []string     `json:"securityRisks"`
	DecodedHeader   []TokenClaim `json:"decodedHeader"`
	DecodedPayload  []TokenClaim `json:"decodedPayload"`
}

// =============================================================================
// SECRET SCAN
// =============================================================================

// SecretVerdict classifies a secret-scan run.
type SecretVerdict string

const (
	SecretsNone       SecretVerdict = "No Secrets Found"
	SecretsFound      SecretVerdict = "Secrets Found"
	SecretsIncomplete SecretVerdict = "Analysis Incomplete"
)

// SecretVerdicts returns every member of the enumeration.
func SecretVerdicts() []SecretVerdict {
	return []SecretVerdict{SecretsNone, SecretsFound, SecretsIncomplete}
}

// Valid reports whether v is a member of the enumeration.
func (v SecretVerdict) Valid() bool {
	switch v {
	case SecretsNone, SecretsFound, SecretsIncomplete:
		return true
	}
	return false
}

// SecretRisk is the risk tier assigned to a discovered secret.
type SecretRisk string

const (
	RiskCritical SecretRisk = "Critical"
	RiskHigh     SecretRisk = "High"
	RiskMedium   SecretRisk = "Medium"
	RiskLow      SecretRisk = "Low"
)

// FoundSecret is one discovered credential or key.
type FoundSecret struct {
	Line       int        `json:"line"` // 1-based
	Type       string     `json:"type"`
	Snippet    string     `json:"snippet"`
	Risk       SecretRisk `json:"risk"`
	Suggestion string     `json:"suggestion"`
}

// SecretResult is the normalized output of the secret scanner.
type SecretResult struct {
	OverallVerdict  SecretVerdict `json:"overallVerdict"`
	AnalysisSummary string        `json:"analysisSummary"`
	FoundSecrets    []FoundSecret `json:"foundSecrets"`
}

// =============================================================================
// RAW EMAIL
// =============================================================================

// EmailVerdict classifies a raw email source.
type EmailVerdict string

const (
	EmailSafe       EmailVerdict = "Safe"
	EmailSuspicious EmailVerdict = "Suspicious"
	EmailMalicious  EmailVerdict = "Malicious"
	EmailSpam       EmailVerdict = "Spam"
	EmailUnknown    EmailVerdict = "Unknown"
)

// EmailVerdicts returns every member of the enumeration.
func EmailVerdicts() []EmailVerdict {
	return []EmailVerdict{EmailSafe, EmailSuspicious, EmailMalicious, EmailSpam, EmailUnknown}
}

// Valid reports whether v is a member of the enumeration.
func (v EmailVerdict) Valid() bool {
	switch v {
	case EmailSafe, EmailSuspicious, EmailMalicious, EmailSpam, EmailUnknown:
		return true
	}
	return false
}

// HeaderAnalysis summarizes the email's authentication headers.
type HeaderAnalysis struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	DKIM    string `json:"dkim"`
	SPF     string `json:"spf"`
	DMARC   string `json:"dmarc"`
	Summary string `json:"summary"`
}

// LinkAnalysis is the judgment for one hyperlink found in the body.
type LinkAnalysis struct {
	URL     string `json:"url"`
	Verdict string `json:"verdict"` // "Safe" or "Suspicious"
	Summary string `json:"summary"`
}

// AttachmentAnalysis is the risk assessment for one declared attachment.
type AttachmentAnalysis struct {
	Filename string `json:"filename"`
	Risk     string `json:"risk"` // "High", "Medium", "Low", or "None"
	Summary  string `json:"summary"`
}

// EmailResult is the normalized output of the raw-email tool.
type EmailResult struct {
	OverallVerdict  EmailVerdict         `json:"overallVerdict"`
	AnalysisSummary string               `json:"analysisSummary"`
	RedFlags        []string             `json:"redFlags"`
	HeaderAnalysis  HeaderAnalysis       `json:"headerAnalysis"`
	Links           []LinkAnalysis       `json:"links"`
	Attachments     []AttachmentAnalysis `json:"attachments"`
}
