// Package fitment parses free-text compatibility tags into structured
// fitment descriptors ("BMW E46 2001-2006" -> model E46, years 2001-2006).
package fitment

import (
	"regexp"
	"strconv"
	"strings"
)

// Descriptor is the structured form of one fitment tag.
// Invariant: if Universal is true, Model/YearMin/YearMax are zero.
// A zero year means "unset".
type Descriptor struct {
	Model     string
	YearMin   int
	YearMax   int
	Universal bool
}

// Constrains reports whether the descriptor carries any fitment signal at
// all. An unconstrained descriptor must be treated as "does not constrain
// anything", never as an error.
func (d Descriptor) Constrains() bool {
	return d.Universal || d.Model != "" || d.YearMin != 0
}

var (
	universalRe = regexp.MustCompile(`(?i)bmw\s+universal`)
	modelRe     = regexp.MustCompile(`(?i)\b[EFG]\d{2,3}\b`)
	yearRangeRe = regexp.MustCompile(`(\d{4})\s*-\s*(\d{4})`)
	yearRe      = regexp.MustCompile(`\b(\d{4})\b`)
	titleYearRe = regexp.MustCompile(`^(\d{4})\b`)

	// M3, M5, 335i, 540i, X5, Z4 and the like.
	designationRe = regexp.MustCompile(`(?i)\b(M\d|[1-7]\d{2}[A-Za-z]{0,2}|X[1-7]|Z\d)\b`)
)

// Parse extracts a fitment descriptor from a free-text tag. It is total:
// unparseable text degrades to an empty, non-universal descriptor.
func Parse(tag string) Descriptor {
	tag = strings.TrimSpace(tag)

	if universalRe.MatchString(tag) {
		return Descriptor{Universal: true}
	}

	var d Descriptor
	if m := modelRe.FindString(tag); m != "" {
		d.Model = strings.ToUpper(m)
	}

	if m := yearRangeRe.FindStringSubmatch(tag); m != nil {
		d.YearMin, _ = strconv.Atoi(m[1])
		d.YearMax, _ = strconv.Atoi(m[2])
		return d
	}

	if m := yearRe.FindStringSubmatch(tag); m != nil {
		year, _ := strconv.Atoi(m[1])
		d.YearMin, d.YearMax = year, year
	}

	return d
}

// YearFromTitle extracts the model year from a listing title that leads
// with it ("2003 BMW E46 M3" -> 2003). Returns 0 if the title does not
// start with a 4-digit year.
func YearFromTitle(title string) int {
	m := titleYearRe.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return 0
	}
	year, _ := strconv.Atoi(m[1])
	return year
}

// ModelFromTitle extracts the marketing designation from a listing title
// ("2003 BMW E46 M3 Coupe" -> "M3", "2011 BMW 335i" -> "335I"). Returns ""
// when the title carries none.
func ModelFromTitle(title string) string {
	return strings.ToUpper(designationRe.FindString(title))
}

// CompatibilityTags generates the tag set a listing should carry so the
// catalog pre-filter finds its parts: chassis and designation alone and
// combined, year-qualified variants, and the generic "BMW" tag last.
func CompatibilityTags(chassis, title string) []string {
	chassis = strings.ToUpper(strings.TrimSpace(chassis))
	year := YearFromTitle(title)
	model := ModelFromTitle(title)

	var tags []string
	tags = append(tags, chassis)
	if model != "" {
		tags = append(tags, model, chassis+" "+model, "BMW "+model)
	}
	tags = append(tags, "BMW "+chassis)
	if year != 0 {
		y := strconv.Itoa(year)
		tags = append(tags, y+" "+chassis, y+" BMW")
		if model != "" {
			tags = append(tags, y+" "+model)
		}
	}
	tags = append(tags, "BMW")
	return tags
}

// ModelsFromTags collects the unique chassis codes referenced by a set of
// tags, in order of first appearance. Universal tags contribute nothing.
func ModelsFromTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var models []string
	for _, tag := range tags {
		d := Parse(tag)
		if d.Model == "" {
			continue
		}
		if _, ok := seen[d.Model]; ok {
			continue
		}
		seen[d.Model] = struct{}{}
		models = append(models, d.Model)
	}
	return models
}
