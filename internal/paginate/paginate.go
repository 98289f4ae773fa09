// Package paginate models the offset/limit window the admin list screens keep
// per query response.
package paginate

// Window is a view-local pagination state rebuilt from the latest response:
// Skip/Take describe the requested slice, Size is the server-reported total.
type Window struct {
	Skip int
	Take int
	Size int
}

// New builds a window; a non-positive take falls back to the storefront
// default of 15 elements per page.
func New(skip, take, size int) Window {
	if take <= 0 {
		take = 15
	}
	if skip < 0 {
		skip = 0
	}
	if size < 0 {
		size = 0
	}
	return Window{Skip: skip, Take: take, Size: size}
}

// Pages is the page count, ceil(size/take).
func (w Window) Pages() int {
	return (w.Size + w.Take - 1) / w.Take
}

// Multiple reports whether a paginator is worth rendering. The source
// compared the float size/take against ad hoc thresholds; this is the
// explicit "at least two pages" form.
func (w Window) Multiple() bool { return w.Pages() > 1 }

// Page is the zero-based page the current skip lands on.
func (w Window) Page() int { return w.Skip / w.Take }

// SkipFor returns the skip offset for a zero-based page index.
func (w Window) SkipFor(page int) int {
	if page < 0 {
		page = 0
	}
	return page * w.Take
}
