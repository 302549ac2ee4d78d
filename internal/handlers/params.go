package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePageList parses a comma separated list of 1-based page numbers,
// e.g. "1,3,5". Whitespace around entries is ignored.
func parsePageList(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	pages := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid page number %q", f)
		}
		pages = append(pages, n)
	}
	return pages, nil
}

// pageRange is an inclusive 1-based page interval.
type pageRange struct {
	Start int
	End   int
}

// parseRanges parses a comma separated list of page ranges, e.g. "1-3,5,7-9".
// A bare number is a single-page range.
func parseRanges(s string) ([]pageRange, error) {
	fields := strings.Split(s, ",")
	ranges := make([]pageRange, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		start, end, found := strings.Cut(f, "-")
		a, err := strconv.Atoi(strings.TrimSpace(start))
		if err != nil {
			return nil, fmt.Errorf("invalid page range %q", f)
		}
		b := a
		if found {
			b, err = strconv.Atoi(strings.TrimSpace(end))
			if err != nil {
				return nil, fmt.Errorf("invalid page range %q", f)
			}
		}
		if b < a {
			return nil, fmt.Errorf("invalid page range %q", f)
		}
		ranges = append(ranges, pageRange{Start: a, End: b})
	}
	return ranges, nil
}

func parseBoolField(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
