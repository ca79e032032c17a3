// Package filter derives the visible slice of a log collection from filter
// criteria and a pagination cursor. Everything here is synchronous and
// pure: the engine never reorders the collection and never mutates entries.
package filter

import (
	"strings"
	"time"

	"github.com/aegisgate/aegis/internal/model"
	"github.com/aegisgate/aegis/internal/normalize"
)

// Page is the derived view of a filtered, paginated collection.
type Page struct {
	Entries    []model.AccessLogEntry
	TotalCount int
	TotalPages int
	// PageNum is the page actually shown after clamping to [1, TotalPages]
	// (1 even when the collection is empty).
	PageNum int
}

// Engine holds the filter criteria and pagination cursor for one log view.
// Changing any criterion resets the cursor to page 1 so a now-out-of-range
// page is never presented.
type Engine struct {
	criteria model.FilterCriteria
	page     int
	pageSize int
}

// NewEngine creates an engine with the given page size (<=0 means
// model.DefaultPageSize).
func NewEngine(pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	return &Engine{page: 1, pageSize: pageSize}
}

// Criteria returns the active criteria.
func (e *Engine) Criteria() model.FilterCriteria { return e.criteria }

// PageNum returns the current cursor.
func (e *Engine) PageNum() int { return e.page }

// PageSize returns the fixed page size.
func (e *Engine) PageSize() int { return e.pageSize }

// SetCriteria replaces the criteria. Any change resets the cursor to 1.
func (e *Engine) SetCriteria(c model.FilterCriteria) {
	if c != e.criteria {
		e.criteria = c
		e.page = 1
	}
}

// SetPage moves the cursor. Values below 1 clamp to 1; upper clamping
// happens against the filtered total in Apply.
func (e *Engine) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	e.page = page
}

// NextPage advances the cursor by one.
func (e *Engine) NextPage() { e.page++ }

// PrevPage moves the cursor back by one, stopping at 1.
func (e *Engine) PrevPage() {
	if e.page > 1 {
		e.page--
	}
}

// Apply runs the filter pipeline over the collection and derives the
// current page, clamping the cursor into range.
func (e *Engine) Apply(entries []model.AccessLogEntry) Page {
	result := Apply(entries, e.criteria, e.page, e.pageSize)
	e.page = result.PageNum
	return result
}

// Apply is the stateless form of the pipeline: search, then date bounds,
// then exact-match predicates, then pagination. Collection order is
// preserved throughout.
func Apply(entries []model.AccessLogEntry, c model.FilterCriteria, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}

	matched := entries
	if !c.Empty() {
		matched = make([]model.AccessLogEntry, 0, len(entries))
		for _, entry := range entries {
			if matches(entry, c) {
				matched = append(matched, entry)
			}
		}
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Entries:    matched[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		PageNum:    page,
	}
}

func matches(entry model.AccessLogEntry, c model.FilterCriteria) bool {
	if c.Search != "" {
		haystack := strings.ToLower(entry.SearchableText())
		if !strings.Contains(haystack, strings.ToLower(c.Search)) {
			return false
		}
	}

	if from, ok := parseBound(c.DateFrom, false); ok && entry.Timestamp.Before(from) {
		return false
	}
	if to, ok := parseBound(c.DateTo, true); ok && entry.Timestamp.After(to) {
		return false
	}

	if c.EmployeeID != "" && entry.PersonID != c.EmployeeID {
		return false
	}
	if c.CameraID != "" && entry.CameraID != c.CameraID {
		return false
	}
	if c.Status != "" && string(entry.AccessResult) != c.Status {
		return false
	}
	return true
}

// parseBound parses a date criterion. A date-only upper bound covers the
// whole day, keeping both bounds inclusive.
func parseBound(value string, upper bool) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	ts, ok := normalize.ParseTimestamp(value)
	if !ok {
		return time.Time{}, false
	}
	if upper && len(value) == len("2006-01-02") {
		ts = ts.Add(24*time.Hour - time.Nanosecond)
	}
	return ts, true
}
