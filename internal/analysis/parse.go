package analysis

import (
	"strings"
)

// ParseIssueCards extracts structured issue cards from the model's analysis
// text. Cards are blank-line separated blocks whose first line is a
// "Component – Issue Title" heading followed by "key: value" detail lines.
// Blocks without a recognizable severity are preamble or summary prose and
// are skipped.
func ParseIssueCards(raw string) []IssueCard {
	cards := make([]IssueCard, 0)

	for _, block := range strings.Split(raw, "\n\n") {
		if card := parseCard(block); card != nil {
			cards = append(cards, *card)
		}
	}

	return cards
}

// headingSeparators are the dash variants models put between the component
// and the issue title. The hyphen form requires surrounding spaces so
// hyphenated component names stay intact.
var headingSeparators = []string{"–", "—", " - "}

// splitHeading splits a "Component – Issue Title" line, tolerating markdown
// emphasis and any of the dash variants.
func splitHeading(line string) (component, title string, ok bool) {
	line = strings.Trim(strings.TrimSpace(line), "*# ")
	for _, sep := range headingSeparators {
		if parts := strings.SplitN(line, sep, 2); len(parts) == 2 {
			return strings.TrimSpace(parts[0]), strings.Trim(parts[1], "* "), true
		}
	}
	return "", "", false
}

// parseCard parses a single block into an IssueCard, or nil when the block is
// not an issue card.
func parseCard(block string) *IssueCard {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) == 0 {
		return nil
	}

	component, title, ok := splitHeading(lines[0])
	if !ok {
		return nil
	}
	card := IssueCard{Title: component + " – " + title}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		kv := strings.SplitN(line, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToLower(strings.Trim(kv[0], "* "))
		val := strings.Trim(kv[1], "* ")

		switch {
		case strings.HasPrefix(key, "severity"):
			card.Severity = strings.ToUpper(val)
		case strings.HasPrefix(key, "issue"):
			card.Issue = val
		case strings.HasPrefix(key, "diy estimate"):
			card.DIYEstimate = val
		case strings.HasPrefix(key, "professional estimate"):
			card.ProEstimate = val
		case strings.HasPrefix(key, "remaining"):
			card.RemainingLife = val
		case strings.HasPrefix(key, "diy tutorial"):
			card.YoutubeSearch = val
		}
	}

	if card.Severity == "" {
		return nil
	}
	return &card
}
