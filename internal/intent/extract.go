package intent

import (
	"regexp"
	"strings"
)

var youtubePattern = regexp.MustCompile(`(https?://)?(www\.)?(youtube\.com|youtu\.be)/(watch\?v=|embed/|v/)?([a-zA-Z0-9_-]{11})`)

// Both destination patterns stop at " for", a number, end of text or
// sentence punctuation. The captured place name is group 1.
var destinationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:to|visit|go to|travel to|trip to)\s+([A-Za-z\s,]+?)(?:\s+for|\s+\d+|$|[.!?])`),
	regexp.MustCompile(`(?i)\b(?:in|at)\s+([A-Za-z\s,]+?)(?:\s+for|\s+\d+|$|[.!?])`),
}

// ContainsYouTubeURL reports whether msg contains a YouTube watch, embed,
// v/ or youtu.be link with an 11 character video id.
func ContainsYouTubeURL(msg string) bool {
	return youtubePattern.MatchString(msg)
}

// YouTubeURLs returns every YouTube link in msg, in order, deduplicated.
func YouTubeURLs(msg string) []string {
	return dedupe(youtubePattern.FindAllString(msg, -1))
}

// Destinations returns candidate place names following "to", "visit",
// "go to", "travel to", "trip to", "in" or "at". Candidates of two
// characters or fewer are dropped.
func Destinations(msg string) []string {
	var out []string
	for _, p := range destinationPatterns {
		for _, m := range p.FindAllStringSubmatch(msg, -1) {
			d := strings.TrimSpace(m[1])
			if len(d) > 2 {
				out = append(out, d)
			}
		}
	}
	return dedupe(out)
}

// Symbols returns the allow-listed tickers found anywhere in msg,
// case-insensitively, in allow-list order.
func Symbols(msg string) []string {
	upper := strings.ToUpper(msg)
	var out []string
	for _, s := range StockSymbols {
		if strings.Contains(upper, s) {
			out = append(out, s)
		}
	}
	return out
}

// Normalize lower-cases and trims msg the way every detector expects.
func Normalize(msg string) string {
	return strings.ToLower(strings.TrimSpace(msg))
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
