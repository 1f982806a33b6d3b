package page

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a toggle names an entry the list does
// not have.
var ErrIndexOutOfRange = errors.New("index out of range")

// Expansion is the selection state of an expandable list: either nothing is
// expanded, or exactly one entry is. The zero value is Collapsed.
type Expansion struct {
	index int
	open  bool
}

// Collapsed is the state with no entry expanded.
func Collapsed() Expansion { return Expansion{} }

// Expanded is the state with entry i expanded.
func Expanded(i int) Expansion { return Expansion{index: i, open: true} }

// Index returns the expanded entry, if any.
func (e Expansion) Index() (int, bool) {
	return e.index, e.open
}

// IsExpanded reports whether entry i is the expanded one.
func (e Expansion) IsExpanded(i int) bool {
	return e.open && e.index == i
}

func (e Expansion) String() string {
	if !e.open {
		return "collapsed"
	}
	return fmt.Sprintf("expanded(%d)", e.index)
}

// ExpandableList tracks which of a fixed number of entries is expanded.
// It is not safe for concurrent use; PortfolioPage serializes access.
type ExpandableList struct {
	size  int
	state Expansion
}

// NewExpandableList returns a collapsed list of size entries.
func NewExpandableList(size int) *ExpandableList {
	return &ExpandableList{size: size}
}

// Toggle applies a click on entry i's header. Clicking the expanded entry
// collapses the list; clicking any other entry expands it and implicitly
// closes the previous one.
func (l *ExpandableList) Toggle(i int) error {
	if i < 0 || i >= l.size {
		return fmt.Errorf("toggle %d of %d entries: %w", i, l.size, ErrIndexOutOfRange)
	}
	if l.state.IsExpanded(i) {
		l.state = Collapsed()
		return nil
	}
	l.state = Expanded(i)
	return nil
}

// Collapse closes whatever is open.
func (l *ExpandableList) Collapse() {
	l.state = Collapsed()
}

// State returns the current selection.
func (l *ExpandableList) State() Expansion {
	return l.state
}

// Len is the number of entries.
func (l *ExpandableList) Len() int {
	return l.size
}
