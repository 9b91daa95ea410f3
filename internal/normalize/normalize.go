// Package normalize converts raw backend text into the typed results of
// internal/analysis. Every entry point is total: whatever the backend
// returned (fenced JSON, chatty prose, a refusal, an empty string), the
// caller receives a structurally valid result, never an error. Unparseable
// payloads collapse to the kind's fallback verdict with the raw text
// embedded in the summary for inspection.
package normalize

import (
	"fmt"

	"phishscope/internal/analysis"
	"phishscope/internal/gemini"
)

const rawOutputNote = "An error occurred while parsing the analysis. The backend may have responded in an unexpected format. Raw output: %s"

var (
	domainDesc = descriptor{
		verdictField:   "legitimacy",
		verdicts:       verdictSet(analysis.DomainVerdicts()),
		fallback:       string(analysis.DomainUnknown),
		summaryField:   "reputationSummary",
		stringLists:    []string{"commonAliases", "observedFormats", "otherDiscoveredEmails"},
		sortedLists:    []string{"commonAliases", "observedFormats", "otherDiscoveredEmails"},
		optionalBlocks: []string{"specificEmailAnalysis"},
	}
	screenshotDesc = descriptor{
		verdictField:   "overallVerdict",
		verdicts:       verdictSet(analysis.ScreenshotVerdicts()),
		fallback:       string(analysis.ScreenshotUnknown),
		summaryField:   "analysisSummary",
		stringLists:    []string{"redFlags"},
		optionalBlocks: []string{"grammaticalAnalysis"},
	}
	urlDesc = descriptor{
		verdictField:   "overallVerdict",
		verdicts:       verdictSet(analysis.URLVerdicts()),
		fallback:       string(analysis.URLUnknown),
		summaryField:   "analysisSummary",
		stringLists:    []string{"redFlags"},
		optionalBlocks: []string{"certificateAnalysis"},
	}
	tokenDesc = descriptor{
		verdictField: "overallVerdict",
		verdicts:     verdictSet(analysis.TokenVerdicts()),
		fallback:     string(analysis.TokenInvalid),
		summaryField: "analysisSummary",
		stringLists:  []string{"securityRisks"},
		recordLists:  []string{"decodedHeader", "decodedPayload"},
	}
	secretsDesc = descriptor{
		verdictField: "overallVerdict",
		verdicts:     verdictSet(analysis.SecretVerdicts()),
		fallback:     string(analysis.SecretsIncomplete),
		summaryField: "analysisSummary",
		recordLists:  []string{"foundSecrets"},
	}
	emailDesc = descriptor{
		verdictField:   "overallVerdict",
		verdicts:       verdictSet(analysis.EmailVerdicts()),
		fallback:       string(analysis.EmailUnknown),
		summaryField:   "analysisSummary",
		stringLists:    []string{"redFlags"},
		recordLists:    []string{"links", "attachments"},
		optionalBlocks: []string{"headerAnalysis"},
	}
)

func verdictSet[T ~string](members []T) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = string(m)
	}
	return out
}

// Domain normalizes a domain/address payload. originalInput is the user's
// address as analyzed; it overwrites whatever address the backend echoed in
// the specific-email sub-record. Sources are attached separately by the
// caller (they exist independently of the payload parse).
func Domain(raw, originalInput string) *analysis.DomainResult {
	m, ok := parseObject(raw)
	if !ok {
		return &analysis.DomainResult{
			Legitimacy:            analysis.DomainUnknown,
			ReputationSummary:     fmt.Sprintf("An error occurred while parsing the analysis, but here is the raw output: %s", raw),
			CommonAliases:         []string{},
			ObservedFormats:       []string{},
			OtherDiscoveredEmails: []string{},
			Sources:               []analysis.GroundingSource{},
		}
	}
	clean(m, domainDesc)

	res := &analysis.DomainResult{
		Legitimacy:            analysis.DomainVerdict(getString(m, "legitimacy")),
		ReputationSummary:     getString(m, "reputationSummary"),
		CommonAliases:         getStrings(m, "commonAliases"),
		ObservedFormats:       getStrings(m, "observedFormats"),
		OtherDiscoveredEmails: getStrings(m, "otherDiscoveredEmails"),
		Sources:               []analysis.GroundingSource{},
		SourcesSummary:        getString(m, "sourcesSummary"),
	}
	if block, ok := getBlock(m, "specificEmailAnalysis"); ok {
		res.SpecificEmailAnalysis = &analysis.SpecificEmailAnalysis{
			Email:           originalInput,
			IsVerified:      getBool(block, "isVerified"),
			Summary:         getString(block, "summary"),
			FoundSuggestion: getString(block, "foundSuggestion"),
		}
	}
	return res
}

// Screenshot normalizes a screenshot payload.
func Screenshot(raw string) *analysis.ScreenshotResult {
	m, ok := parseObject(raw)
	if !ok {
		return &analysis.ScreenshotResult{
			OverallVerdict:  analysis.ScreenshotUnknown,
			AnalysisSummary: fmt.Sprintf(rawOutputNote, raw),
			RedFlags:        []string{},
		}
	}
	clean(m, screenshotDesc)

	res := &analysis.ScreenshotResult{
		OverallVerdict:  analysis.ScreenshotVerdict(getString(m, "overallVerdict")),
		AnalysisSummary: getString(m, "analysisSummary"),
		RedFlags:        getStrings(m, "redFlags"),
	}
	if block, ok := getBlock(m, "grammaticalAnalysis"); ok {
		res.GrammaticalAnalysis = &analysis.GrammaticalAnalysis{
			Summary: getString(block, "summary"),
			Errors:  toStringSlice(block["errors"]),
		}
	}
	return res
}

// URL normalizes a URL payload. Sources are attached by the caller.
func URL(raw string) *analysis.URLResult {
	m, ok := parseObject(raw)
	if !ok {
		return &analysis.URLResult{
			OverallVerdict:  analysis.URLUnknown,
			AnalysisSummary: fmt.Sprintf(rawOutputNote, raw),
			RedFlags:        []string{},
			Sources:         []analysis.GroundingSource{},
		}
	}
	clean(m, urlDesc)

	res := &analysis.URLResult{
		OverallVerdict:  analysis.URLVerdict(getString(m, "overallVerdict")),
		AnalysisSummary: getString(m, "analysisSummary"),
		RedFlags:        getStrings(m, "redFlags"),
		Sources:         []analysis.GroundingSource{},
	}
	if block, ok := getBlock(m, "certificateAnalysis"); ok {
		res.CertificateAnalysis = &analysis.CertificateAnalysis{
			Issuer:    getString(block, "issuer"),
			Subject:   getString(block, "subject"),
			ValidFrom: getString(block, "validFrom"),
			ValidTo:   getString(block, "validTo"),
			Protocol:  getString(block, "protocol"),
			Summary:   getString(block, "summary"),
		}
	}
	return res
}

// Token normalizes an auth-token payload. The fallback verdict is
// TokenInvalid: the enumeration has no neutral member, so the most
// conservative one stands in.
func Token(raw string) *analysis.TokenResult {
	m, ok := parseObject(raw)
	if !ok {
		return &analysis.TokenResult{
			OverallVerdict:  analysis.TokenInvalid,
			AnalysisSummary: fmt.Sprintf(rawOutputNote, raw),
			SecurityRisks:   []string{},
			DecodedHeader:   []analysis.TokenClaim{},
			DecodedPayload:  []analysis.TokenClaim{},
		}
	}
	clean(m, tokenDesc)

	return &analysis.TokenResult{
		OverallVerdict:  analysis.TokenVerdict(getString(m, "overallVerdict")),
		AnalysisSummary: getString(m, "analysisSummary"),
		SecurityRisks:   getStrings(m, "securityRisks"),
		DecodedHeader:   decodeClaims(getRecords(m, "decodedHeader")),
		DecodedPayload:  decodeClaims(getRecords(m, "decodedPayload")),
	}
}

func decodeClaims(records []map[string]any) []analysis.TokenClaim {
	claims := make([]analysis.TokenClaim, 0, len(records))
	for _, r := range records {
		claims = append(claims, analysis.TokenClaim{
			Key:   getString(r, "key"),
			Value: r["value"],
		})
	}
	return claims
}

// Secrets normalizes a secret-scan payload.
func Secrets(raw string) *analysis.SecretResult {
	m, ok := parseObject(raw)
	if !ok {
		return &analysis.SecretResult{
			OverallVerdict:  analysis.SecretsIncomplete,
			AnalysisSummary: fmt.Sprintf(rawOutputNote, raw),
			FoundSecrets:    []analysis.FoundSecret{},
		}
	}
	clean(m, secretsDesc)

	records := getRecords(m, "foundSecrets")
	secrets := make([]analysis.FoundSecret, 0, len(records))
	for _, r := range records {
		secrets = append(secrets, analysis.FoundSecret{
			Line:       getInt(r, "line"),
			Type:       getString(r, "type"),
			Snippet:    getString(r, "snippet"),
			Risk:       analysis.SecretRisk(getString(r, "risk")),
			Suggestion: getString(r, "suggestion"),
		})
	}
	return &analysis.SecretResult{
		OverallVerdict:  analysis.SecretVerdict(getString(m, "overallVerdict")),
		AnalysisSummary: getString(m, "analysisSummary"),
		FoundSecrets:    secrets,
	}
}

// RawEmail normalizes a raw-email payload. The header sub-record is
// required by the result shape, so a missing or malformed one is replaced
// with an explicit placeholder rather than omitted.
func RawEmail(raw string) *analysis.EmailResult {
	m, ok := parseObject(raw)
	if !ok {
		return &analysis.EmailResult{
			OverallVerdict:  analysis.EmailUnknown,
			AnalysisSummary: fmt.Sprintf(rawOutputNote, raw),
			RedFlags:        []string{},
			HeaderAnalysis:  placeholderHeaders(),
			Links:           []analysis.LinkAnalysis{},
			Attachments:     []analysis.AttachmentAnalysis{},
		}
	}
	clean(m, emailDesc)

	res := &analysis.EmailResult{
		OverallVerdict:  analysis.EmailVerdict(getString(m, "overallVerdict")),
		AnalysisSummary: getString(m, "analysisSummary"),
		RedFlags:        getStrings(m, "redFlags"),
		HeaderAnalysis:  placeholderHeaders(),
	}
	if block, ok := getBlock(m, "headerAnalysis"); ok {
		res.HeaderAnalysis = analysis.HeaderAnalysis{
			From:    getString(block, "from"),
			Subject: getString(block, "subject"),
			DKIM:    getString(block, "dkim"),
			SPF:     getString(block, "spf"),
			DMARC:   getString(block, "dmarc"),
			Summary: getString(block, "summary"),
		}
	}

	links := getRecords(m, "links")
	res.Links = make([]analysis.LinkAnalysis, 0, len(links))
	for _, r := range links {
		res.Links = append(res.Links, analysis.LinkAnalysis{
			URL:     getString(r, "url"),
			Verdict: getString(r, "verdict"),
			Summary: getString(r, "summary"),
		})
	}

	attachments := getRecords(m, "attachments")
	res.Attachments = make([]analysis.AttachmentAnalysis, 0, len(attachments))
	for _, r := range attachments {
		res.Attachments = append(res.Attachments, analysis.AttachmentAnalysis{
			Filename: getString(r, "filename"),
			Risk:     getString(r, "risk"),
			Summary:  getString(r, "summary"),
		})
	}
	return res
}

func placeholderHeaders() analysis.HeaderAnalysis {
	return analysis.HeaderAnalysis{
		From:    "N/A",
		Subject: "N/A",
		DKIM:    "N/A",
		SPF:     "N/A",
		DMARC:   "N/A",
		Summary: "Header analysis was not available.",
	}
}

// Sources maps raw backend citations to grounding sources. Entries without
// a URI are dropped; missing titles are synthesized from the analyzed
// domain. Always returns a non-nil slice.
func Sources(citations []gemini.Citation, domain string) []analysis.GroundingSource {
	out := make([]analysis.GroundingSource, 0, len(citations))
	for _, c := range citations {
		if c.URI == "" {
			continue
		}
		title := c.Title
		if title == "" {
			title = "Source from " + domain
		}
		out = append(out, analysis.GroundingSource{URI: c.URI, Title: title})
	}
	return out
}
