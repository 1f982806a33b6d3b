package page

// ScrollThreshold is the offset, in pixels, past which the navigation bar
// switches to its scrolled treatment. The comparison is strict.
const ScrollThreshold = 50.0

// Nav is the navigation bar state.
type Nav struct {
	menuOpen bool
	scrolled bool
	offset   float64
}

// ToggleMenu opens a closed mobile menu and closes an open one.
func (n *Nav) ToggleMenu() {
	n.menuOpen = !n.menuOpen
}

// FollowLink closes the mobile menu after one of its links was clicked.
func (n *Nav) FollowLink() {
	n.menuOpen = false
}

// Scroll records the latest scroll offset.
func (n *Nav) Scroll(offset float64) {
	n.offset = offset
	n.scrolled = offset > ScrollThreshold
}

func (n *Nav) MenuOpen() bool  { return n.menuOpen }
func (n *Nav) Scrolled() bool  { return n.scrolled }
func (n *Nav) Offset() float64 { return n.offset }
