package itinerary

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/roamgen/roamgen/internal/api/diagnostics"
	"github.com/roamgen/roamgen/internal/types"
)

var (
	fencedJSONRe = regexp.MustCompile("(?is)```json\\s*(.*?)```")
	fencedAnyRe  = regexp.MustCompile("(?s)```(.*?)```")

	fenceMarkerRe   = regexp.MustCompile("(?i)```[ \t]*(?:json)?")
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe   = regexp.MustCompile(`(?m)(^|[^:])//.*$`)
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

	smartQuotes = strings.NewReplacer(
		"“", `"`, // left double
		"”", `"`, // right double
		"„", `"`, // low double
		"‘", `'`, // left single
		"’", `'`, // right single
	)
)

// RecoverItinerary turns whatever text the model produced into the
// canonical result shape. Strategies run in order and stop at the first
// successful parse; when everything fails the raw text itself becomes the
// itinerary with an empty places list, so the caller always gets exactly
// one result and never an error.
func RecoverItinerary(raw string, sink diagnostics.Sink) (*types.ItineraryResult, bool) {
	if result, ok := parseResult(raw); ok {
		return result, false
	}

	candidate := extractCandidate(raw)
	sanitized := ""
	if candidate != "" {
		sanitized = sanitizeCandidate(candidate)
		if result, ok := parseResult(sanitized); ok {
			return result, false
		}
		if result, ok := parseResult(outerBraces(sanitized)); ok {
			return result, false
		}
	}

	if sink != nil {
		sink.Record(diagnostics.Entry{
			Raw:       raw,
			Extracted: candidate,
			Sanitized: sanitized,
		})
	}
	return &types.ItineraryResult{Itinerary: raw, Places: []types.Place{}}, true
}

// parseResult attempts a strict decode of the candidate into the result
// shape. Only JSON objects qualify; scalars and arrays fall through to
// the next strategy. Places is normalized to a non-nil slice so the
// marshalled response always carries an array.
func parseResult(candidate string) (*types.ItineraryResult, bool) {
	trimmed := strings.TrimSpace(candidate)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var result types.ItineraryResult
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return nil, false
	}
	if result.Places == nil {
		result.Places = []types.Place{}
	}
	return &result, true
}

// extractCandidate pulls the most promising JSON-looking substring out of
// the raw text: an explicitly labelled ```json fence first, then any
// fenced block, then a balanced-brace scan.
func extractCandidate(raw string) string {
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := fencedAnyRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return scanBalancedObject(raw)
}

// scanBalancedObject returns the substring from the first '{' to the
// position where brace nesting first returns to zero. Depth counting is
// suspended inside double-quoted strings; a quote is escaped only when
// preceded by an odd run of backslashes, so `\\"` closes the string.
func scanBalancedObject(raw string) string {
	start := strings.Index(raw, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if c == '"' {
			backslashes := 0
			for j := i - 1; j >= start && raw[j] == '\\'; j-- {
				backslashes++
			}
			if backslashes%2 == 0 {
				inString = !inString
			}
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return "" // never closed
}

// sanitizeCandidate repairs the damage models commonly do to JSON:
// leftover fence markers, smart quotes, comments and trailing commas.
func sanitizeCandidate(candidate string) string {
	s := fenceMarkerRe.ReplaceAllString(candidate, "")
	s = smartQuotes.Replace(s)
	s = blockCommentRe.ReplaceAllString(s, "")
	// Keep "//" when preceded by a colon so URL schemes survive.
	s = lineCommentRe.ReplaceAllString(s, "$1")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// outerBraces truncates the candidate to its first '{' .. last '}' span.
func outerBraces(candidate string) string {
	first := strings.Index(candidate, "{")
	last := strings.LastIndex(candidate, "}")
	if first == -1 || last <= first {
		return ""
	}
	return candidate[first : last+1]
}
