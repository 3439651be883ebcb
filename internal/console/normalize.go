package console

import (
	"strconv"
	"strings"
)

// normaliseInput lower-cases raw and folds punctuation into single spaces.
// Dots survive so that values like 0.5 parse.
func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '=' || r == ':' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// parseValue reads a setting value. A trailing % or a whole number above 2
// is taken as a percentage.
func parseValue(token string) (float32, bool) {
	token = strings.TrimSpace(token)
	pct := strings.HasSuffix(token, "%")
	token = strings.TrimSuffix(token, "%")
	v, err := strconv.ParseFloat(token, 32)
	if err != nil {
		return 0, false
	}
	if pct || (v > 2 && !strings.Contains(token, ".")) {
		v /= 100
	}
	return float32(v), true
}
