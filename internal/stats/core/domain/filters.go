package domain

import "strings"

// Filters narrows the events that contribute to the aggregates.
// Empty strings and a nil URLs slice mean "no filter".
type Filters struct {
	URL      string
	URLs     []string
	Referrer string
	Title    string
	Query    string
	Event    string
	OS       string
	Browser  string
	Device   string
	Country  string
	Region   string
	City     string
}

// ParseURLsFilter splits a "|"-separated path list ("/a|/b/c") into paths.
// It returns nil for an empty input so the filter is skipped.
func ParseURLsFilter(raw string) []string {
	if raw == "" {
		return nil
	}

	var paths []string
	for _, p := range strings.Split(raw, "|") {
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}
