package normalize

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// missingSummary stands in when the backend omits the summary field from
// an otherwise parseable payload.
const missingSummary = "The analysis backend did not provide a summary."

// descriptor drives the generic cleanup pass for one analysis kind.
// Adding a field to a kind is a table change, not new control flow.
type descriptor struct {
	verdictField string
	verdicts     []string
	fallback     string
	summaryField string
	// stringLists are coerced to []string and never left absent.
	stringLists []string
	// sortedLists is the subset of stringLists sorted ascending after
	// defaulting, for deterministic presentation.
	sortedLists []string
	// recordLists are coerced to []map[string]any, dropping elements that
	// are not JSON objects.
	recordLists []string
	// optionalBlocks are passed through only when structurally a mapping.
	optionalBlocks []string
}

// Defence strips a markdown code-fence wrapper (with optional language
// tag) from around the payload. Applying it to already-defenced text is a
// no-op.
func Defence(s string) string {
	t := strings.TrimSpace(s)
	if after, ok := strings.CutPrefix(t, "```"); ok {
		if nl := strings.IndexByte(after, '\n'); nl >= 0 && isFenceTag(after[:nl]) {
			after = after[nl+1:]
		}
		t = after
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

func isFenceTag(tag string) bool {
	for _, r := range strings.TrimSpace(tag) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseObject turns raw backend text into an untyped mapping. It first
// tries the de-fenced text verbatim, then falls back to scanning for
// embedded JSON objects, preferring the largest that decodes.
func parseObject(raw string) (map[string]any, bool) {
	if m, ok := decodeMap(Defence(raw)); ok {
		return m, true
	}
	candidates := findJSONCandidates(raw)
	sort.Slice(candidates, func(i, j int) bool { return len(candidates[i]) > len(candidates[j]) })
	for _, c := range candidates {
		if m, ok := decodeMap(c); ok {
			return m, true
		}
	}
	return nil, false
}

func decodeMap(s string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// clean applies the descriptor's coercion and defaulting rules to a parsed
// payload in place: verdict closure, summary presence, list defaulting,
// deterministic sorting, and structural checks on optional sub-records.
func clean(m map[string]any, d descriptor) {
	verdict, _ := m[d.verdictField].(string)
	if !contains(d.verdicts, verdict) {
		m[d.verdictField] = d.fallback
	}

	if summary, _ := m[d.summaryField].(string); strings.TrimSpace(summary) == "" {
		m[d.summaryField] = missingSummary
	}

	for _, field := range d.stringLists {
		m[field] = toStringSlice(m[field])
	}
	for _, field := range d.sortedLists {
		if values, ok := m[field].([]string); ok {
			sort.Strings(values)
		}
	}
	for _, field := range d.recordLists {
		m[field] = toRecordSlice(m[field])
	}
	for _, field := range d.optionalBlocks {
		if raw, present := m[field]; present {
			if _, isMap := raw.(map[string]any); !isMap {
				delete(m, field)
			}
		}
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// toStringSlice coerces a raw payload value into a string slice. Anything
// that is not a sequence becomes an empty slice; non-string elements are
// dropped.
func toStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// toRecordSlice coerces a raw payload value into a slice of mappings,
// dropping elements that are not JSON objects.
func toRecordSlice(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if r, ok := item.(map[string]any); ok {
			out = append(out, r)
		}
	}
	return out
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getStrings(m map[string]any, key string) []string {
	if values, ok := m[key].([]string); ok {
		return values
	}
	return []string{}
}

func getRecords(m map[string]any, key string) []map[string]any {
	if records, ok := m[key].([]map[string]any); ok {
		return records
	}
	return []map[string]any{}
}

func getBlock(m map[string]any, key string) (map[string]any, bool) {
	block, ok := m[key].(map[string]any)
	return block, ok
}

func getBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// getInt tolerates the shapes a generative backend plausibly emits for a
// number: JSON numbers (decoded as json.Number) and numeric strings.
func getInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
