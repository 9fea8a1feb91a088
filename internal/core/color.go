package core

// Color is a foreground color for a screen cell.
// Values map onto the ANSI 16-color palette plus a couple of 256-color extras.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// paletteRGB holds the reference RGB value used for nearest-color matching.
var paletteRGB = []struct {
	c       Color
	r, g, b int
}{
	{ColorRed, 205, 49, 49},
	{ColorGreen, 13, 188, 121},
	{ColorYellow, 229, 229, 16},
	{ColorBlue, 36, 114, 200},
	{ColorMagenta, 188, 63, 188},
	{ColorCyan, 17, 168, 205},
	{ColorWhite, 229, 229, 229},
	{ColorBrightRed, 241, 76, 76},
	{ColorBrightGreen, 35, 209, 139},
	{ColorBrightYellow, 245, 245, 67},
	{ColorBrightBlue, 59, 142, 234},
	{ColorBrightMagenta, 214, 112, 214},
	{ColorBrightCyan, 41, 184, 219},
	{ColorOrange, 255, 135, 0},
	{ColorGray, 138, 138, 138},
}

// NearestColor maps an RGB triple onto the closest palette color.
// Distance is plain squared euclidean in RGB space.
func NearestColor(r, g, b uint8) Color {
	best := ColorDefault
	bestDist := -1
	for _, p := range paletteRGB {
		dr := int(r) - p.r
		dg := int(g) - p.g
		db := int(b) - p.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = p.c
			bestDist = d
		}
	}
	return best
}
