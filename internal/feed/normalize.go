package feed

import (
	"math"
	"regexp"
	"strings"
	"time"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a stable URL-safe identifier: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens trimmed. Distinct inputs can collide; collisions are
// last-write-wins on the entity row.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeImageURL promotes protocol-relative URLs to https. Other values
// pass through unchanged.
func NormalizeImageURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// Earliest and latest birth years the feed is trusted to report. Epochs
// outside this window are treated as feed garbage and dropped.
const (
	minBirthYear = 1900
	maxBirthYear = 2020
)

// ParseBirthEpoch converts an epoch-milliseconds birth date into a time,
// or nil when the value is missing or falls outside a sane calendar range.
// Negative values are legitimate: they encode dates before 1970.
func ParseBirthEpoch(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	if t.Year() < minBirthYear || t.Year() > maxBirthYear {
		return nil
	}
	return &t
}

// WorthToCents converts a wealth figure in millions of USD into cents.
// Rounding happens once here so re-runs with identical input are stable.
func WorthToCents(millions float64) int64 {
	return int64(math.Round(millions * 1e8))
}

// JoinIndustries flattens the feed's tag list into a single comma-separated
// field, dropping empty entries.
func JoinIndustries(industries []string) string {
	parts := make([]string, 0, len(industries))
	for _, ind := range industries {
		if s := strings.TrimSpace(ind); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// JoinBios flattens bio lines into a single paragraph.
func JoinBios(bios []string) string {
	parts := make([]string, 0, len(bios))
	for _, b := range bios {
		if s := strings.TrimSpace(b); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
