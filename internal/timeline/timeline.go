// Package timeline infers total experience and employment gaps from year ranges in résumé text.
package timeline

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

// Mode selects how detected ranges are ordered before gaps are computed.
type Mode string

const (
	// ModeScanOrder processes every match of each separator pattern in turn (hyphen, "to",
	// en dash) and compares each range with the one processed just before it. Ranges are
	// neither deduplicated nor validated.
	ModeScanOrder Mode = "scan-order"
	// ModeChronological collects all ranges, drops duplicates and inverted ranges, sorts them
	// by start year and compares each start with the latest end seen so far.
	ModeChronological Mode = "chronological"
)

// DefaultMode is used when no mode is configured.
const DefaultMode = ModeChronological

// minGapYears is the smallest start/end distance that is still not a gap.
const minGapYears = 1

// rangePatterns are applied in this order. Each one captures a four digit start year and
// either a four digit end year or an open-ended marker.
var rangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{4})\s*-\s*(\d{4}|present|current)\b`),
	regexp.MustCompile(`(?i)\b(\d{4})\s+to\s+(\d{4}|present|current)\b`),
	regexp.MustCompile(`(?i)\b(\d{4})\s*–\s*(\d{4}|present|current)\b`),
}

// DateRange is a span of years found in the text. Open ranges carry the analysis year as end.
type DateRange struct {
	StartYear int `json:"startYear"`
	EndYear   int `json:"endYear"`
}

// Years returns EndYear - StartYear, which may be negative for inverted ranges.
func (r DateRange) Years() int {
	return r.EndYear - r.StartYear
}

// Result is the outcome of one timeline analysis.
type Result struct {
	TotalExperienceYears int
	Gaps                 []types.Gap
	Ranges               []DateRange
}

// AverageTenureYears is the total experience spread over the counted ranges, to one decimal.
func (r Result) AverageTenureYears() float64 {
	if len(r.Ranges) == 0 {
		return 0
	}
	avg := float64(r.TotalExperienceYears) / float64(len(r.Ranges))
	return math.Round(avg*10) / 10
}

// ParseMode converts a configuration string to a Mode. Empty selects DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMode, nil
	case ModeScanOrder:
		return ModeScanOrder, nil
	case ModeChronological:
		return ModeChronological, nil
	default:
		return "", fmt.Errorf("unknown timeline mode %q (expected %q or %q)", s, ModeScanOrder, ModeChronological)
	}
}

// Analyzer runs timeline analysis in a fixed mode. It holds no mutable state.
type Analyzer struct {
	mode Mode
}

// NewAnalyzer creates an Analyzer. An empty mode selects DefaultMode.
func NewAnalyzer(mode Mode) *Analyzer {
	if mode == "" {
		mode = DefaultMode
	}
	return &Analyzer{mode: mode}
}

// Mode returns the analyzer's mode.
func (a *Analyzer) Mode() Mode {
	return a.mode
}

// Analyze scans text for year ranges. "present" and "current" resolve to currentYear.
func (a *Analyzer) Analyze(text string, currentYear int) Result {
	ranges := FindRanges(text, currentYear)
	if a.mode == ModeScanOrder {
		return analyzeScanOrder(ranges)
	}
	return analyzeChronological(ranges)
}

// FindRanges returns every range matched by the separator patterns, pattern by pattern,
// each pattern's matches in text order.
func FindRanges(text string, currentYear int) []DateRange {
	ranges := make([]DateRange, 0)
	for _, pattern := range rangePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			// Both groups are digit-only or a fixed marker, so conversion cannot fail.
			start, _ := strconv.Atoi(m[1])
			ranges = append(ranges, DateRange{
				StartYear: start,
				EndYear:   resolveEndYear(m[2], currentYear),
			})
		}
	}
	return ranges
}

func resolveEndYear(token string, currentYear int) int {
	switch strings.ToLower(token) {
	case "present", "current":
		return currentYear
	}
	year, _ := strconv.Atoi(token)
	return year
}

func analyzeScanOrder(ranges []DateRange) Result {
	result := Result{Gaps: make([]types.Gap, 0), Ranges: ranges}

	lastEnd, haveLast := 0, false
	for _, r := range ranges {
		if haveLast && r.StartYear-lastEnd > minGapYears {
			result.Gaps = append(result.Gaps, types.NewGap(lastEnd, r.StartYear))
		}
		result.TotalExperienceYears += r.Years()
		lastEnd, haveLast = r.EndYear, true
	}
	return result
}

func analyzeChronological(found []DateRange) Result {
	seen := make(map[DateRange]bool, len(found))
	ranges := make([]DateRange, 0, len(found))
	for _, r := range found {
		if r.EndYear < r.StartYear || seen[r] {
			continue
		}
		seen[r] = true
		ranges = append(ranges, r)
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].StartYear != ranges[j].StartYear {
			return ranges[i].StartYear < ranges[j].StartYear
		}
		return ranges[i].EndYear < ranges[j].EndYear
	})

	result := Result{Gaps: make([]types.Gap, 0), Ranges: ranges}

	// coveredUntil is the latest end year so far, so a short range nested inside a long one
	// does not open a false gap.
	coveredUntil, haveLast := 0, false
	for _, r := range ranges {
		if haveLast && r.StartYear-coveredUntil > minGapYears {
			result.Gaps = append(result.Gaps, types.NewGap(coveredUntil, r.StartYear))
		}
		result.TotalExperienceYears += r.Years()
		if !haveLast || r.EndYear > coveredUntil {
			coveredUntil = r.EndYear
		}
		haveLast = true
	}
	return result
}
