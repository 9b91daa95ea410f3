// Package render maps normalized results to terminal presentation. Each
// verdict enumeration has a complete style table; a member without an
// entry is a defect caught in tests, not a runtime condition.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"phishscope/internal/analysis"
)

// Style is the presentation for one verdict member.
type Style struct {
	Icon  string
	Label string
	Text  lipgloss.Style
}

var (
	styleSafe    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // orange
	styleDanger  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	styleNeutral = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // grey

	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// DomainStyles covers every DomainVerdict member.
var DomainStyles = map[analysis.DomainVerdict]Style{
	analysis.DomainLegitimate:           {Icon: "✔", Label: "Legitimate", Text: styleSafe},
	analysis.DomainSuspicious:           {Icon: "⚠", Label: "Suspicious", Text: styleWarn},
	analysis.DomainPotentiallyMalicious: {Icon: "✘", Label: "Potentially Malicious", Text: styleDanger},
	analysis.DomainUnknown:              {Icon: "?", Label: "Unknown", Text: styleNeutral},
}

// ScreenshotStyles covers every ScreenshotVerdict member.
var ScreenshotStyles = map[analysis.ScreenshotVerdict]Style{
	analysis.ScreenshotSafe:       {Icon: "✔", Label: "Safe", Text: styleSafe},
	analysis.ScreenshotSuspicious: {Icon: "⚠", Label: "Suspicious", Text: styleWarn},
	analysis.ScreenshotMalicious:  {Icon: "✘", Label: "Malicious", Text: styleDanger},
	analysis.ScreenshotUnknown:    {Icon: "?", Label: "Unknown", Text: styleNeutral},
}

// URLStyles covers every URLVerdict member.
var URLStyles = map[analysis.URLVerdict]Style{
	analysis.URLSafe:       {Icon: "✔", Label: "Safe", Text: styleSafe},
	analysis.URLSuspicious: {Icon: "⚠", Label: "Suspicious", Text: styleWarn},
	analysis.URLMalicious:  {Icon: "✘", Label: "Malicious", Text: styleDanger},
	analysis.URLUnknown:    {Icon: "?", Label: "Unknown", Text: styleNeutral},
}

// TokenStyles covers every TokenVerdict member.
var TokenStyles = map[analysis.TokenVerdict]Style{
	analysis.TokenValidSafe:  {Icon: "✔", Label: "Valid & Safe", Text: styleSafe},
	analysis.TokenValidRisky: {Icon: "⚠", Label: "Valid & Potentially Risky", Text: styleWarn},
	analysis.TokenInvalid:    {Icon: "✘", Label: "Invalid / Malformed", Text: styleDanger},
	analysis.TokenExpired:    {Icon: "⌛", Label: "Expired", Text: styleWarn},
}

// SecretStyles covers every SecretVerdict member.
var SecretStyles = map[analysis.SecretVerdict]Style{
	analysis.SecretsNone:       {Icon: "✔", Label: "No Secrets Found", Text: styleSafe},
	analysis.SecretsFound:      {Icon: "✘", Label: "Secrets Found", Text: styleDanger},
	analysis.SecretsIncomplete: {Icon: "?", Label: "Analysis Incomplete", Text: styleNeutral},
}

// EmailStyles covers every EmailVerdict member.
var EmailStyles = map[analysis.EmailVerdict]Style{
	analysis.EmailSafe:       {Icon: "✔", Label: "Safe", Text: styleSafe},
	analysis.EmailSuspicious: {Icon: "⚠", Label: "Suspicious", Text: styleWarn},
	analysis.EmailMalicious:  {Icon: "✘", Label: "Malicious", Text: styleDanger},
	analysis.EmailSpam:       {Icon: "✉", Label: "Spam", Text: styleWarn},
	analysis.EmailUnknown:    {Icon: "?", Label: "Unknown", Text: styleNeutral},
}

func verdictLine(s Style) string {
	return s.Text.Render(fmt.Sprintf("%s %s", s.Icon, s.Label))
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")
}

func bullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "  • %s\n", item)
	}
}

// Domain renders a domain/address result.
func Domain(res *analysis.DomainResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", verdictLine(DomainStyles[res.Legitimacy]))
	fmt.Fprintf(&b, "%s\n", res.ReputationSummary)

	if sea := res.SpecificEmailAnalysis; sea != nil {
		section(&b, "Specific Email Verification")
		status := styleDanger.Render("not verified")
		if sea.IsVerified {
			status = styleSafe.Render("verified")
		}
		fmt.Fprintf(&b, "  %s — %s\n", sea.Email, status)
		fmt.Fprintf(&b, "  %s\n", sea.Summary)
		if sea.FoundSuggestion != "" {
			fmt.Fprintf(&b, "  Did you mean: %s\n", sea.FoundSuggestion)
		}
	}

	if len(res.CommonAliases) > 0 {
		section(&b, "Common Aliases")
		bullets(&b, res.CommonAliases)
	}
	if len(res.ObservedFormats) > 0 {
		section(&b, "Observed Formats")
		bullets(&b, res.ObservedFormats)
	}
	if len(res.OtherDiscoveredEmails) > 0 {
		section(&b, "Other Discovered Emails")
		bullets(&b, res.OtherDiscoveredEmails)
	}
	renderSources(&b, res.Sources, res.SourcesSummary)
	return b.String()
}

// Screenshot renders a screenshot result.
func Screenshot(res *analysis.ScreenshotResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", verdictLine(ScreenshotStyles[res.OverallVerdict]))
	fmt.Fprintf(&b, "%s\n", res.AnalysisSummary)

	if len(res.RedFlags) > 0 {
		section(&b, "Red Flags")
		bullets(&b, res.RedFlags)
	}
	if ga := res.GrammaticalAnalysis; ga != nil {
		section(&b, "Language Quality")
		fmt.Fprintf(&b, "  %s\n", ga.Summary)
		bullets(&b, ga.Errors)
	}
	return b.String()
}

// URL renders a URL result.
func URL(res *analysis.URLResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", verdictLine(URLStyles[res.OverallVerdict]))
	fmt.Fprintf(&b, "%s\n", res.AnalysisSummary)

	if len(res.RedFlags) > 0 {
		section(&b, "Red Flags")
		bullets(&b, res.RedFlags)
	}
	if cert := res.CertificateAnalysis; cert != nil {
		section(&b, "Certificate")
		fmt.Fprintf(&b, "  Issuer:   %s\n", cert.Issuer)
		fmt.Fprintf(&b, "  Subject:  %s\n", cert.Subject)
		fmt.Fprintf(&b, "  Validity: %s — %s\n", cert.ValidFrom, cert.ValidTo)
		fmt.Fprintf(&b, "  Protocol: %s\n", cert.Protocol)
		fmt.Fprintf(&b, "  %s\n", cert.Summary)
	}
	renderSources(&b, res.Sources, "")
	return b.String()
}

// Token renders a token result.
func Token(res *analysis.TokenResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", verdictLine(TokenStyles[res.OverallVerdict]))
	fmt.Fprintf(&b, "%s\n", res.AnalysisSummary)

	if len(res.SecurityRisks) > 0 {
		section(&b, "Security Risks")
		bullets(&b, res.SecurityRisks)
	}
	renderClaims(&b, "Decoded Header", res.DecodedHeader)
	renderClaims(&b, "Decoded Payload", res.DecodedPayload)
	return b.String()
}

func renderClaims(b *strings.Builder, title string, claims []analysis.TokenClaim) {
	if len(claims) == 0 {
		return
	}
	section(b, title)
	for _, c := range claims {
		fmt.Fprintf(b, "  %s: %v\n", c.Key, c.Value)
	}
}

// Secrets renders a secret-scan result.
func Secrets(res *analysis.SecretResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", verdictLine(SecretStyles[res.OverallVerdict]))
	fmt.Fprintf(&b, "%s\n", res.AnalysisSummary)

	if len(res.FoundSecrets) > 0 {
		section(&b, "Findings")
		for _, s := range res.FoundSecrets {
			fmt.Fprintf(&b, "  [%s] line %d — %s\n", riskStyle(string(s.Risk)).Render(string(s.Risk)), s.Line, s.Type)
			fmt.Fprintf(&b, "    %s\n", dimStyle.Render(s.Snippet))
			fmt.Fprintf(&b, "    %s\n", s.Suggestion)
		}
	}
	return b.String()
}

// Email renders a raw-email result.
func Email(res *analysis.EmailResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", verdictLine(EmailStyles[res.OverallVerdict]))
	fmt.Fprintf(&b, "%s\n", res.AnalysisSummary)

	section(&b, "Headers")
	h := res.HeaderAnalysis
	fmt.Fprintf(&b, "  From:    %s\n", h.From)
	fmt.Fprintf(&b, "  Subject: %s\n", h.Subject)
	fmt.Fprintf(&b, "  Auth:    DKIM=%s SPF=%s DMARC=%s\n", h.DKIM, h.SPF, h.DMARC)
	fmt.Fprintf(&b, "  %s\n", h.Summary)

	if len(res.RedFlags) > 0 {
		section(&b, "Red Flags")
		bullets(&b, res.RedFlags)
	}
	if len(res.Links) > 0 {
		section(&b, "Links")
		for _, l := range res.Links {
			fmt.Fprintf(&b, "  [%s] %s — %s\n", riskStyle(l.Verdict).Render(l.Verdict), l.URL, l.Summary)
		}
	}
	if len(res.Attachments) > 0 {
		section(&b, "Attachments")
		for _, a := range res.Attachments {
			fmt.Fprintf(&b, "  [%s] %s — %s\n", riskStyle(a.Risk).Render(a.Risk), a.Filename, a.Summary)
		}
	}
	return b.String()
}

// riskStyle colors the open-ended tier labels (secret risk, link verdicts,
// attachment risk). These are not closed verdict enumerations, so unknown
// labels fall back to the neutral style instead of being a defect.
func riskStyle(tier string) lipgloss.Style {
	switch tier {
	case "Critical", "High", "Malicious":
		return styleDanger
	case "Medium", "Suspicious":
		return styleWarn
	case "Low", "None", "Safe":
		return styleSafe
	}
	return styleNeutral
}

func renderSources(b *strings.Builder, sources []analysis.GroundingSource, summary string) {
	if len(sources) == 0 {
		return
	}
	section(b, "Sources")
	if summary != "" {
		fmt.Fprintf(b, "  %s\n", summary)
	}
	for _, src := range sources {
		fmt.Fprintf(b, "  • %s\n    %s\n", src.Title, dimStyle.Render(src.URI))
	}
}
