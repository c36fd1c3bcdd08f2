// Package deck parses the plain-text deck export format produced by the
// deck site's export feature.
//
// Each data line is "<count> <card name>". A standalone "Sideboard" (or
// "Sideboard:") line switches the current section; blank lines carry no
// meaning. Battlefields and runes have no section markers of their own and
// are classified by content: any name containing "Rune" goes to the runes
// bucket, any name in the closed battlefield set goes to battlefields,
// everything else goes to the current section.
package deck

import (
	"fmt"
	"strconv"
	"strings"

	"riftbound-tracker/internal/domain"
)

const sideboardMarker = "sideboard"

// ParseError reports a data line that does not match the expected
// "<count> <name>" shape. Parsing stops at the first such line; no partial
// deck is returned.
type ParseError struct {
	LineNo int
	Line   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("deck: malformed export line %d: %q", e.LineNo, e.Line)
}

// Parse converts one raw export-text blob into a structured deck.
func Parse(exportText string) (*domain.Deck, error) {
	d := &domain.Deck{}
	section := domain.BucketMain

	for i, raw := range splitLines(exportText) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isSideboardMarker(line) {
			section = domain.BucketSideboard
			continue
		}

		entry, ok := parseLine(line)
		if !ok {
			return nil, &ParseError{LineNo: i + 1, Line: line}
		}
		d.Append(classify(entry.Name, section), entry)
	}

	return d, nil
}

// splitLines splits on \n, \r\n, or bare \r.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func isSideboardMarker(line string) bool {
	line = strings.TrimSuffix(line, ":")
	return strings.EqualFold(line, sideboardMarker)
}

// parseLine extracts the leading digit run as the count and the trimmed
// remainder as the name. Lines without a leading integer, or with nothing
// after it, are malformed.
func parseLine(line string) (domain.CardEntry, bool) {
	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return domain.CardEntry{}, false
	}

	count, err := strconv.Atoi(line[:digits])
	if err != nil {
		return domain.CardEntry{}, false
	}

	name := strings.TrimSpace(line[digits:])
	if name == "" {
		return domain.CardEntry{}, false
	}

	return domain.CardEntry{Name: name, Count: count}, true
}

// classify picks a bucket for the entry. Content rules win over the section
// cursor: rune cards land in runes even inside the sideboard region.
func classify(name string, section domain.Bucket) domain.Bucket {
	if strings.Contains(strings.ToLower(name), "rune") {
		return domain.BucketRunes
	}
	if IsBattlefield(name) {
		return domain.BucketBattlefields
	}
	return section
}
