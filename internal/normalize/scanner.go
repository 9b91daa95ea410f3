package normalize

// findJSONCandidates scans s for top-level JSON object candidates and
// returns each as a substring. A byte-level state machine tracks brace
// depth and string escaping so that braces inside string values do not
// open or close objects.
//
// Iterating bytes is safe for the ASCII delimiters involved ({, }, ", \)
// because UTF-8 never embeds ASCII bytes inside multi-byte sequences.
func findJSONCandidates(s string) []string {
	var candidates []string
	var depth int
	start := -1
	var inString, escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}

		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					candidates = append(candidates, s[start:i+1])
					start = -1
				}
			}
		}
	}

	return candidates
}
