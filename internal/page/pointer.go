package page

import (
	"strconv"
	"strings"
)

// Pointer is the last observed pointer position in viewport coordinates.
type Pointer struct {
	X float64
	Y float64
}

// Move records a new position.
func (p *Pointer) Move(x, y float64) {
	p.X = x
	p.Y = y
}

// FollowerStyle is the inline style that centers the cursor follower on the
// pointer.
func (p Pointer) FollowerStyle() string {
	var b strings.Builder
	b.WriteString("left:")
	b.WriteString(px(p.X))
	b.WriteString(";top:")
	b.WriteString(px(p.Y))
	b.WriteString(";transform:translate(-50%,-50%);transition:transform 0.15s ease-out")
	return b.String()
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
