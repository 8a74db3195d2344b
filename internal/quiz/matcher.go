package quiz

import "strings"

// Normalize lowercases, trims, and strips the punctuation characters
// that answer comparison ignores.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '!', '?', ';', ':':
			return -1
		}
		return r
	}, text)
}

// alternatives splits an answer on ',' or '/' into normalized, non-empty
// variants. Splitting happens before normalization, which strips the
// separators themselves.
func alternatives(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = Normalize(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether a free-text answer matches the accepted answer.
// After normalization an exact match wins. Otherwise multi-valued answers
// are honored on either side: an accepted "run, jog" matches a user "jog",
// and a user "run, sprint" matches an accepted "run".
func Match(userAnswer, acceptedAnswer string) bool {
	user := Normalize(userAnswer)
	accepted := Normalize(acceptedAnswer)

	if user == accepted {
		return true
	}

	userAlts := alternatives(userAnswer)
	acceptedAlts := alternatives(acceptedAnswer)

	if len(acceptedAlts) > 1 {
		for _, ua := range userAlts {
			for _, aa := range acceptedAlts {
				if ua == aa {
					return true
				}
			}
		}
		return false
	}

	if len(userAlts) > 1 {
		for _, ua := range userAlts {
			if ua == accepted {
				return true
			}
		}
	}

	return false
}
