package loop

// Terminal rendering constants.

// Render area limits; larger terminals get a centred, bordered arena.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Centre divider, in logical units.
const (
	dividerDash = 20.0
	dividerGap  = 20.0
)
