package physics

// Circle is a ball-shaped collider centred at (X, Y).
type Circle struct {
	X, Y float64
	R    float64
}

// Rect is an axis-aligned rectangle described by its centre and full size.
type Rect struct {
	CX, CY float64
	W, H   float64
}

// Left returns the x of the rectangle's left edge.
func (r Rect) Left() float64 { return r.CX - r.W/2 }

// Right returns the x of the rectangle's right edge.
func (r Rect) Right() float64 { return r.CX + r.W/2 }

// Top returns the y of the upper edge. y points up.
func (r Rect) Top() float64 { return r.CY + r.H/2 }

// Bottom returns the y of the lower edge.
func (r Rect) Bottom() float64 { return r.CY - r.H/2 }

// Intersects reports whether c touches or overlaps r. The circle centre is
// clamped onto the rectangle and the squared distance to that closest point is
// compared against the squared radius, so exact tangency counts as a hit.
func Intersects(c Circle, r Rect) bool {
	closestX := Clamp(c.X, r.Left(), r.Right())
	closestY := Clamp(c.Y, r.Bottom(), r.Top())
	return DistanceSquared(c.X, c.Y, closestX, closestY) <= c.R*c.R
}

// Reflect mirrors v across the surface with normal n: v' = v - 2(v·n̂)n̂.
// n need not be unit length. A zero normal has no orientation, in which case
// the horizontal component is flipped: (-vx, vy).
func Reflect(v, n Vec) Vec {
	unit, ok := n.Normalize()
	if !ok {
		return Vec{X: -v.X, Y: v.Y}
	}
	return v.Sub(unit.Scale(2 * v.Dot(unit)))
}

// Wall identifies one of the four arena boundaries.
type Wall int

const (
	WallNone Wall = iota
	WallRight
	WallLeft
	WallTop
	WallBottom
)

// IsGutter reports whether crossing w ends a rally.
func (w Wall) IsGutter() bool {
	return w == WallRight || w == WallLeft
}

func (w Wall) String() string {
	switch w {
	case WallRight:
		return "right"
	case WallLeft:
		return "left"
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Wall normals, pointing back into the arena.
var (
	NormalRight  = Vec{X: -1, Y: 0}
	NormalLeft   = Vec{X: 1, Y: 0}
	NormalTop    = Vec{X: 0, Y: -1}
	NormalBottom = Vec{X: 0, Y: 1}
)

// WallNormal returns the wall a ball of radius r at (x, y) is touching in an
// arena of the given half extents. Walls are tested right, left, top, bottom
// and the first match wins, so when a corner is breached the gutter (scoring)
// wall takes precedence over the bounce wall. ok is false when the ball is
// strictly inside all four margins.
func WallNormal(x, y, halfW, halfH, r float64) (n Vec, w Wall, ok bool) {
	switch {
	case x+r >= halfW:
		return NormalRight, WallRight, true
	case x-r <= -halfW:
		return NormalLeft, WallLeft, true
	case y+r >= halfH:
		return NormalTop, WallTop, true
	case y-r <= -halfH:
		return NormalBottom, WallBottom, true
	}
	return Vec{}, WallNone, false
}
