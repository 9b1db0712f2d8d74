package task

import (
	"net/url"
	"strconv"
)

const (
	PreviousLabel = "&laquo; Previous"
	NextLabel     = "Next &raquo;"
	EllipsisLabel = "..."

	onEachSide = 3
)

// LastPage is never below 1, so an empty result still has a page to show.
func LastPage(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func ClampPage(page, last int) int {
	if page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}

func pageURL(basePath string, query url.Values, page int) *string {
	q := url.Values{}
	for k, v := range query {
		if k == "page" {
			continue
		}
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	u := basePath + "?" + q.Encode()
	return &u
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, p)
	}
	return out
}

// pageWindow returns the groups of page numbers to show; groups are
// separated by an ellipsis when rendered.
func pageWindow(current, last int) [][]int {
	if last < onEachSide*2+8 {
		return [][]int{pageRange(1, last)}
	}

	window := onEachSide * 2
	start := pageRange(1, 2)
	finish := pageRange(last-1, last)

	switch {
	case current <= window:
		return [][]int{pageRange(1, window+onEachSide), finish}
	case current > last-window:
		return [][]int{start, pageRange(last-(window+(onEachSide-1)), last)}
	default:
		return [][]int{start, pageRange(current-onEachSide, current+onEachSide), finish}
	}
}

// BuildLinks produces the previous link, the windowed page links and the
// next link. Disabled entries carry a nil URL.
func BuildLinks(basePath string, query url.Values, current, last int) []Link {
	links := []Link{{Label: PreviousLabel}}
	if current > 1 {
		links[0].URL = pageURL(basePath, query, current-1)
	}

	for i, group := range pageWindow(current, last) {
		if i > 0 {
			links = append(links, Link{Label: EllipsisLabel})
		}
		for _, p := range group {
			links = append(links, Link{
				URL:    pageURL(basePath, query, p),
				Label:  strconv.Itoa(p),
				Active: p == current,
			})
		}
	}

	next := Link{Label: NextLabel}
	if current < last {
		next.URL = pageURL(basePath, query, current+1)
	}
	return append(links, next)
}
