package task

import (
	"net/url"
	"strings"
)

type StatusFilter string

const (
	StatusAll        StatusFilter = "all"
	StatusFinished   StatusFilter = "finished"
	StatusUnfinished StatusFilter = "unfinished"
)

var AllStatuses = []StatusFilter{
	StatusAll,
	StatusFinished,
	StatusUnfinished,
}

func (s StatusFilter) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus maps unknown or empty values to StatusAll.
func ParseStatus(raw string) StatusFilter {
	s := StatusFilter(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return StatusAll
	}
	return s
}

type Filters struct {
	Search string       `json:"search"`
	Status StatusFilter `json:"status"`
}

func FiltersFromQuery(q url.Values) Filters {
	return Filters{
		Search: strings.TrimSpace(q.Get("search")),
		Status: ParseStatus(q.Get("status")),
	}
}

// Query encodes the filters the way pagination links carry them.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" && f.Status != StatusAll {
		q.Set("status", string(f.Status))
	}
	return q
}
