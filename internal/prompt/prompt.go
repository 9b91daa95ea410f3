// Package prompt constructs the per-tool backend requests: a task
// description plus an explicit JSON output schema. The field names in the
// schema blocks are the contract internal/normalize decodes against, so
// they must not drift from the analysis result types.
package prompt

import (
	"fmt"

	"phishscope/internal/gemini"
	"phishscope/internal/validate"
)

const jsonOnlyDirective = "Ensure the final output is ONLY the JSON object, without any markdown formatting or extraneous text."

// Domain builds the request for the domain/address tool. When the address
// carries a local part, the specific-email-verification task and its schema
// field are appended; bare domains get neither. Search grounding is always
// enabled for this kind.
func Domain(addr validate.Address) gemini.Request {
	var verifyTask, verifySchema string
	if addr.IsEmail() {
		verifyTask = fmt.Sprintf(`
3. **Specific Email Verification**: the user provided the full address %q. Pay attention to every character; typosquatted addresses on real domains are a primary phishing vector.
   - If the exact address is not publicly documented but a very similar one is, set 'isVerified' to false, set 'legitimacy' to 'Potentially Malicious', explain the mismatch in 'summary', and put the correct address in 'foundSuggestion'.
   - If the exact address is found and verified, set 'isVerified' to true.`, addr.Input)
		verifySchema = fmt.Sprintf(`
  "specificEmailAnalysis": { "isVerified": boolean, "summary": "A concise explanation of the finding for %q.", "foundSuggestion": "The correct address if a typo was detected, otherwise null." },`, addr.Input)
	}

	task := fmt.Sprintf(`Act as an OSINT cybersecurity analyst with access to threat intelligence databases for phishing, malware and spam. Analyze the input %q to uncover its public email footprint and assess its legitimacy.

Your process:
1. **Threat Intelligence Cross-Reference**: check the domain %q against threat databases; any phishing or malware match must push the verdict to 'Potentially Malicious'.
2. **Public Footprint**: analyze the official website for %q and other reputable sources for the organization's legitimacy and email practices.%s

Respond with a single, valid JSON object of this exact structure:
{
  "legitimacy": "One of: 'Legitimate', 'Suspicious', 'Potentially Malicious', 'Unknown'.",
  "reputationSummary": "A concise summary of the domain's reputation, explicitly mentioning any threat database hits.",%s
  "commonAliases": ["Public-facing aliases discovered for this domain (e.g. 'noreply@', 'privacy@'). No private individual addresses."],
  "observedFormats": ["Address formats observed for this organization (e.g. 'firstname.lastname@%s')."],
  "otherDiscoveredEmails": ["Other publicly discoverable addresses for the domain; personal addresses only if clearly public contact points."],
  "sourcesSummary": "A one-sentence summary of the types of sites consulted."
}

%s If a category yields no results, provide an empty array.`,
		addr.Input, addr.Domain, addr.Domain, verifyTask, verifySchema, addr.Domain, jsonOnlyDirective)

	return gemini.Request{Prompt: task, GroundSearch: true}
}

// Screenshot builds the request for the screenshot tool, attaching the
// image as an inline binary part.
func Screenshot(img validate.Image) gemini.Request {
	task := fmt.Sprintf(`You are a cybersecurity expert specializing in phishing and spam detection. Analyze the attached email screenshot for signs of malicious intent.

Check, in order:
1. **Sender**: address and display name; typosquatting, unprofessional names, public domains on supposedly official mail.
2. **Subject line**: unusual urgency, strange characters, generic greetings.
3. **Social engineering**: urgent calls to action, threats, deadlines; alarming geopolitical details (countries, IP addresses, unfamiliar login locations) used to provoke panic.
4. **Links and buttons**: shortened URLs, anchor text that does not match the destination, suspicious calls to action.
5. **Language quality**: spelling mistakes, grammatical errors, awkward phrasing visible in the image.
6. Combine these factors into an overall assessment.

Respond with a single, valid JSON object of this exact structure:
{
  "overallVerdict": "One of: 'Safe', 'Suspicious', 'Malicious', 'Unknown'.",
  "analysisSummary": "A one or two sentence summary of your findings and recommendation.",
  "redFlags": ["Each specific red flag identified in the email."],
  "grammaticalAnalysis": {
    "summary": "A one-sentence summary of the text quality.",
    "errors": ["Each specific spelling or grammar mistake found."]
  }
}

%s If no red flags or errors are found, provide empty arrays.`, jsonOnlyDirective)

	return gemini.Request{
		Prompt: task,
		Image:  &gemini.Image{MIMEType: img.MIMEType, Data: img.Data},
	}
}

// URL builds the request for the URL tool. Search grounding is enabled so
// the backend can consult live reputation data.
func URL(u string) gemini.Request {
	task := fmt.Sprintf(`You are a cybersecurity expert focused on malicious URL detection, with access to threat intelligence databases. Analyze this URL and determine whether it is malicious: %q

Your process:
1. **URL deconstruction**: protocol, subdomains, domain, TLD, path, query parameters; flag IP-address hosts, URL shorteners, excessive subdomains, misleading keywords.
2. **Threat intelligence**: cross-reference the domain and IP against phishing, malware and spam blocklists.
3. **WHOIS and certificate analysis**: registration age (new domains are a red flag) and the TLS certificate. Extract the issuer, the subject, the validity window as 'YYYY-MM-DD' dates, and the protocol version. A subject/domain mismatch, imminent expiry, a self-signed certificate or a disreputable issuer are critical red flags.
4. **Content inference**: based on public information, infer the page's purpose and whether it impersonates a known brand.
5. Synthesize a final verdict.

Respond with a single, valid JSON object of this exact structure:
{
  "overallVerdict": "One of: 'Safe', 'Suspicious', 'Malicious', 'Unknown'.",
  "analysisSummary": "A one or two sentence summary of your findings with a clear recommendation.",
  "redFlags": ["Each specific red flag identified."],
  "certificateAnalysis": {
    "issuer": "The Certificate Authority name.",
    "subject": "The domain the certificate was issued to.",
    "validFrom": "Start date (YYYY-MM-DD).",
    "validTo": "Expiry date (YYYY-MM-DD).",
    "protocol": "The TLS protocol version.",
    "summary": "A one-sentence summary of the certificate's trustworthiness."
  }
}

%s If no red flags are found, provide an empty array. If certificate information does not apply (e.g. a plain HTTP site), omit that field.`, u, jsonOnlyDirective)

	return gemini.Request{Prompt: task, GroundSearch: true}
}

// Token builds the request for the auth-token tool.
func Token(token string) gemini.Request {
	task := fmt.Sprintf(`You are a cybersecurity expert in authentication security with deep knowledge of JSON Web Tokens and related formats. Analyze this token for vulnerabilities and misconfigurations: %q

Your process:
1. **Decode**: the input is likely a JWT (three base64 parts separated by dots). Decode the header and payload; if decoding fails the token is malformed.
2. **Header**: check the 'alg' claim. 'none' is a critical vulnerability; weak algorithms are a concern.
3. **Payload**: check 'exp' (missing expiry is a major risk; compare against the current Unix time), the 'iss'/'aud'/'sub' claims, exposed PII such as names or email addresses, and excessively long lifetimes ('iat' vs 'exp').
4. Formulate a verdict; an 'alg' of 'none', an expired timestamp, or severe PII exposure warrants a harsh one.

Respond with a single, valid JSON object of this exact structure:
{
  "overallVerdict": "One of: 'Valid & Safe', 'Valid & Potentially Risky', 'Invalid / Malformed', 'Expired'.",
  "analysisSummary": "A one or two sentence summary of the token's security posture.",
  "securityRisks": ["Each specific risk identified."],
  "decodedHeader": [ { "key": "alg", "value": "RS256" } ],
  "decodedPayload": [ { "key": "sub", "value": "1234567890" } ]
}

%s If the token cannot be decoded, set the verdict to 'Invalid / Malformed' and explain in the summary. If no risks are found, provide an empty array.`, token, jsonOnlyDirective)

	return gemini.Request{Prompt: task}
}

// Secrets builds the request for the secret scanner.
func Secrets(text string) gemini.Request {
	task := fmt.Sprintf(`You are an expert secrets detection engine. Scan the provided text for exposed credentials, API keys and other sensitive material. Be thorough and accurate.

The text to analyze is:
"""
%s
"""

Your process:
1. **Pattern recognition**, line by line: API keys (Google, AWS, Stripe, GitHub tokens), private keys in PEM format, passwords in configuration or code, connection strings with credentials, OAuth client secrets, high-entropy strings.
2. **Classification**: for each finding, name its type and assign a risk of 'Critical', 'High', 'Medium' or 'Low'.
3. **Context**: report the 1-based line number and a short snippet of the line.
4. **Remediation**: give a clear, actionable suggestion per finding.
5. Summarize with a final verdict.

Respond with a single, valid JSON object of this exact structure:
{
  "overallVerdict": "One of: 'No Secrets Found', 'Secrets Found', 'Analysis Incomplete'.",
  "analysisSummary": "A one or two sentence summary of the findings.",
  "foundSecrets": [
    { "line": 12, "type": "AWS Access Key ID", "snippet": "aws_access_key_id = AKIA...", "risk": "Critical", "suggestion": "Revoke this key and move it to a secrets manager." }
  ]
}

%s If no secrets are found, 'foundSecrets' must be an empty array and the verdict 'No Secrets Found'.`, text, jsonOnlyDirective)

	return gemini.Request{Prompt: task}
}

// RawEmail builds the request for the raw-email tool.
func RawEmail(source string) gemini.Request {
	task := fmt.Sprintf(`You are an expert email forensics analyst. Perform a deep analysis of the provided raw email source (.eml format) for phishing, malware and spam indicators.

Your process:
1. **Headers**: parse 'From', 'To', 'Subject', 'Date', 'Return-Path' and all 'Received' headers. Determine the SPF, DKIM and DMARC results from 'Authentication-Results'; any failure is a major spoofing indicator. Trace the relay path for anomalies.
2. **Links**: extract every hyperlink from the body (HTML anchors and plain text) and judge each for phishing indicators: shorteners, mismatched anchor text, suspicious TLDs, brand impersonation.
3. **Attachments**: identify declared MIME attachments and assess risk from filename and extension (executables, archives, double extensions). You do not have the file content.
4. **Content**: scan for social engineering: urgency, threats, grammar mistakes, unusual requests.
5. Synthesize a final verdict and specific red flags.

The raw email source is:
"""
%s
"""

Respond with a single, valid JSON object of this exact structure:
{
  "overallVerdict": "One of: 'Safe', 'Suspicious', 'Malicious', 'Spam', 'Unknown'.",
  "analysisSummary": "A one or two sentence summary with a clear recommendation.",
  "redFlags": ["Each specific red flag identified."],
  "headerAnalysis": {
    "from": "The full 'From' address.",
    "subject": "The subject line.",
    "dkim": "The DKIM result (e.g. 'pass', 'fail', 'none').",
    "spf": "The SPF result (e.g. 'pass', 'fail', 'softfail', 'none').",
    "dmarc": "The DMARC result (e.g. 'pass', 'fail', 'none').",
    "summary": "A brief summary of the header analysis."
  },
  "links": [ { "url": "https://example.com/login", "verdict": "'Safe' or 'Suspicious'.", "summary": "Reasoning for the verdict." } ],
  "attachments": [ { "filename": "invoice.pdf.exe", "risk": "'High', 'Medium', 'Low', or 'None'.", "summary": "Reasoning for the risk." } ]
}

%s If no links or attachments are found, provide empty arrays for those fields.`, source, jsonOnlyDirective)

	return gemini.Request{Prompt: task}
}
