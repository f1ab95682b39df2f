package pager

// State is the current page of one viewer. It is a plain value: actions return a
// new State instead of mutating shared data, so callers decide its scope
// (one per HTTP session, one per CLI invocation).
type State struct {
	Page int `json:"page"`
}

// NewState returns the state every viewer starts with.
func NewState() State {
	return State{Page: 1}
}

// Current returns the page bounds for this state against the given result size.
func (s State) Current(total, pageSize int) Page {
	return Paginate(total, pageSize, s.Page)
}

// Prev moves one page back when the current page has a previous page.
func (s State) Prev(total, pageSize int) State {
	p := s.Current(total, pageSize)
	if !p.HasPrev {
		return State{Page: p.Number}
	}
	return State{Page: p.Number - 1}
}

// Next moves one page forward when the current page has a next page.
func (s State) Next(total, pageSize int) State {
	p := s.Current(total, pageSize)
	if !p.HasNext {
		return State{Page: p.Number}
	}
	return State{Page: p.Number + 1}
}

// Jump moves straight to page n, clamped into range.
func (s State) Jump(n, total, pageSize int) State {
	return State{Page: Clamp(n, TotalPages(total, pageSize))}
}
