package catalog

import (
	"regexp"
	"strings"
)

// Known storefront filter types.
const (
	FilterPattern  = "pattern"
	FilterColor    = "color"
	FilterWindow   = "window"
	FilterRoom     = "room"
	FilterSolution = "solution"
)

var patternTags = map[string][]string{
	"animal":      {"animal", "animal-pattern"},
	"floral":      {"floral", "floral-pattern", "flower"},
	"geometric":   {"geometric", "geometric-pattern"},
	"striped":     {"striped", "stripe", "stripes"},
	"light-wood":  {"light-wood", "lightwood", "light-wood-finish"},
	"medium-wood": {"medium-wood", "mediumwood", "medium-wood-finish"},
	"abstract":    {"abstract", "abstract-pattern"},
}

var colorTags = map[string][]string{
	"white":  {"white", "pacific-white", "snow-white"},
	"black":  {"black", "charcoal", "ebony"},
	"blue":   {"blue", "navy", "sky-blue"},
	"yellow": {"yellow", "gold", "cream"},
	"gold":   {"gold", "golden", "yellow"},
	"green":  {"green", "emerald", "forest-green"},
	"grey":   {"grey", "gray", "silver", "charcoal"},
	"purple": {"purple", "violet", "lavender"},
	"orange": {"orange", "tangerine"},
	"red":    {"red", "crimson", "burgundy"},
	"pink":   {"pink", "rose", "blush"},
}

var windowTags = map[string][]string{
	"bay-window":           {"bay-window", "bay"},
	"conservatory-window":  {"conservatory", "conservatory-window"},
	"tilt-and-turn-window": {"tilt-turn", "tilt-and-turn"},
	"bi-fold-window":       {"bi-fold", "bifold"},
	"french-door":          {"french-door", "french-door-window"},
	"sliding-door":         {"sliding-door", "sliding"},
}

var roomTags = map[string][]string{
	"conservatory": {"conservatory", "conservatory-room"},
	"bedroom":      {"bedroom", "bed"},
	"kitchen":      {"kitchen"},
	"office":       {"office", "study"},
	"bathroom":     {"bathroom", "bath"},
	"living-room":  {"living-room", "living", "lounge"},
	"dining-room":  {"dining-room", "dining"},
	"children":     {"children", "kids", "kids-room", "childrens"},
}

var solutionTags = map[string][]string{
	"thermal-blinds":      {"thermal", "thermal-blinds", "insulated"},
	"better-sleep-blinds": {"blackout", "blackout-blinds", "sleep", "dark"},
	"cordless-blinds":     {"cordless", "cordless-blinds"},
	"no-drill-blinds":     {"no-drill", "no-drill-blinds", "perfect-fit"},
	"blackout-blinds":     {"blackout", "blackout-blinds", "complete-blackout"},
	"waterproof-blinds":   {"waterproof", "water-resistant", "moisture-resistant"},
	"easy-wipe-blinds":    {"easy-wipe", "wipeable", "easy-clean"},
	"taped-blinds":        {"taped", "taped-blinds", "taped-edges"},
}

var tagTables = map[string]map[string][]string{
	FilterPattern:  patternTags,
	FilterColor:    colorTags,
	FilterWindow:   windowTags,
	FilterRoom:     roomTags,
	FilterSolution: solutionTags,
}

// FilterTypes lists the filter types that have a synonym table.
func FilterTypes() []string {
	return []string{FilterPattern, FilterColor, FilterWindow, FilterRoom, FilterSolution}
}

// MapFilterToTagSlugs maps a storefront filter selection to the backend tag slugs
// that should match it. A known filter type with an unknown value maps to the
// normalized value itself; an unknown filter type falls back to slug variants.
func MapFilterToTagSlugs(filterType, filterValue string) []string {
	normalized := strings.ToLower(strings.TrimSpace(filterValue))

	table, ok := tagTables[filterType]
	if !ok {
		return slugVariants(normalized)
	}
	tags, ok := table[normalized]
	if !ok {
		return []string{normalized}
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

var whitespace = regexp.MustCompile(`\s+`)

// slugVariants returns hyphenated, underscored and plain forms, first occurrence wins.
func slugVariants(value string) []string {
	candidates := []string{
		whitespace.ReplaceAllString(value, "-"),
		whitespace.ReplaceAllString(value, "_"),
		value,
	}
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
