package layout

// Color is an RGB triple in the 0-255 range
type Color struct {
	R, G, B int
}

// Theme holds the palette shared by every document
type Theme struct {
	Background Color
	Text       Color
	Muted      Color
	Accent     Color
	HeaderFill Color
	HeaderText Color
	ZebraFill  Color
	TotalsFill Color
	Rule       Color
}

// DefaultTheme is a dark-navy header band on an off-white page
var DefaultTheme = Theme{
	Background: Color{252, 252, 249},
	Text:       Color{33, 37, 41},
	Muted:      Color{108, 117, 125},
	Accent:     Color{30, 64, 120},
	HeaderFill: Color{30, 41, 59},
	HeaderText: Color{248, 250, 252},
	ZebraFill:  Color{241, 245, 249},
	TotalsFill: Color{226, 232, 240},
	Rule:       Color{203, 213, 225},
}
