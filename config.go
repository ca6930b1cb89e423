package driftgrid

import (
	"fmt"
	"strconv"
	"strings"
)

// Config is the full configuration surface consumed by a Scene. The zero
// value is usable: empty or invalid fields fall back to the documented
// defaults. Colors accept "rgb(...)"/"rgba(...)" strings, "#hex" notation,
// or a named color; see ParseColor.
type Config struct {
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	HoverColor      string `json:"hoverColor"`
	TextColor       string `json:"textColor"`

	// CellSize is the edge length of one grid cell in world units.
	CellSize float64 `json:"cellSize"`
	// DistortionStrength scales the barrel distortion, clamped to [0, 2].
	// Zero means the default; negative values flatten the grid entirely.
	DistortionStrength float64 `json:"distortionStrength"`
	// ImageScale is the fraction of a cell occupied by the project image.
	ImageScale float64 `json:"imageScale"`
	// ScrollSpeed scales wheel-driven panning.
	ScrollSpeed float64 `json:"scrollSpeed"`

	// DisableHover turns off hover tinting and hover media activation.
	DisableHover bool `json:"disableHover"`
	// OptimizeMobile disables ripple, chromatic aberration, and motion blur
	// for touch devices.
	OptimizeMobile bool `json:"optimizeMobile"`

	// FontData is raw TTF/OTF data for title/year rendering in the text
	// atlas. Nil selects the bundled Go Regular face.
	FontData []byte `json:"-"`
	// FontSize is the title size in atlas pixels (year renders smaller).
	FontSize float64 `json:"fontSize"`
}

// Default configuration values.
const (
	DefaultCellSize           = 0.75
	DefaultDistortionStrength = 1.0
	DefaultImageScale         = 0.6
	DefaultScrollSpeed        = 1.0
	DefaultFontSize           = 28.0
)

// Default colors, matching a dark gallery theme.
var (
	defaultBackgroundColor = Color{0.04, 0.04, 0.05, 1}
	defaultBorderColor     = Color{0.6, 0.6, 0.65, 1}
	defaultHoverColor      = Color{1, 1, 1, 0.35}
	defaultTextColor       = Color{0.92, 0.92, 0.92, 1}
)

// withDefaults returns a copy of c with unset numeric fields replaced by
// defaults and DistortionStrength clamped to its valid range.
func (c Config) withDefaults() Config {
	if c.CellSize <= 0 {
		c.CellSize = DefaultCellSize
	}
	// A zero DistortionStrength means unset; pass a negative value for a
	// flat grid.
	if c.DistortionStrength == 0 {
		c.DistortionStrength = DefaultDistortionStrength
	}
	if c.DistortionStrength < 0 {
		c.DistortionStrength = 0
	}
	if c.DistortionStrength > 2 {
		c.DistortionStrength = 2
	}
	if c.ImageScale <= 0 || c.ImageScale > 1 {
		c.ImageScale = DefaultImageScale
	}
	if c.ScrollSpeed <= 0 {
		c.ScrollSpeed = DefaultScrollSpeed
	}
	if c.FontSize <= 0 {
		c.FontSize = DefaultFontSize
	}
	return c
}

// palette holds the resolved theme colors for uniform submission.
type palette struct {
	background Color
	border     Color
	hover      Color
	text       Color
}

// resolvePalette parses the config's color strings, substituting the default
// for any empty or unparseable value. A bad color string never fails scene
// setup; it logs a diagnostic when debug mode is on.
func resolvePalette(c Config) palette {
	return palette{
		background: resolveColor(c.BackgroundColor, defaultBackgroundColor),
		border:     resolveColor(c.BorderColor, defaultBorderColor),
		hover:      resolveColor(c.HoverColor, defaultHoverColor),
		text:       resolveColor(c.TextColor, defaultTextColor),
	}
}

func resolveColor(s string, fallback Color) Color {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		debugf("driftgrid: %v, using default", err)
		return fallback
	}
	return c
}

// namedColors maps CSS-style color keywords to their RGB values.
var namedColors = map[string]Color{
	"black":       {0, 0, 0, 1},
	"white":       {1, 1, 1, 1},
	"red":         {1, 0, 0, 1},
	"green":       {0, 128.0 / 255.0, 0, 1},
	"lime":        {0, 1, 0, 1},
	"blue":        {0, 0, 1, 1},
	"yellow":      {1, 1, 0, 1},
	"cyan":        {0, 1, 1, 1},
	"magenta":     {1, 0, 1, 1},
	"gray":        {128.0 / 255.0, 128.0 / 255.0, 128.0 / 255.0, 1},
	"grey":        {128.0 / 255.0, 128.0 / 255.0, 128.0 / 255.0, 1},
	"orange":      {1, 165.0 / 255.0, 0, 1},
	"purple":      {128.0 / 255.0, 0, 128.0 / 255.0, 1},
	"transparent": {0, 0, 0, 0},
}

// ParseColor resolves a color string to a Color. Accepted forms:
//
//	rgb(64, 64, 200)        components in 0-255, implicit alpha 1
//	rgba(64, 64, 200, 0.5)  alpha in 0-1
//	#rgb, #rrggbb, #rrggbbaa
//	a named color (e.g. "white", "transparent")
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Color{}, fmt.Errorf("parse color: empty string")
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseFuncColor(s)
	}
	return Color{}, fmt.Errorf("parse color: unrecognized value %q", s)
}

func parseHexColor(hex string) (Color, error) {
	read := func(part string) (float64, error) {
		if len(part) == 1 {
			part = part + part
		}
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return 0, err
		}
		return float64(v) / 255.0, nil
	}

	var parts []string
	switch len(hex) {
	case 3:
		parts = []string{hex[0:1], hex[1:2], hex[2:3]}
	case 6:
		parts = []string{hex[0:2], hex[2:4], hex[4:6]}
	case 8:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], hex[6:8]}
	default:
		return Color{}, fmt.Errorf("parse color: bad hex length %q", hex)
	}

	c := Color{A: 1}
	vals := make([]float64, 0, 4)
	for _, p := range parts {
		v, err := read(p)
		if err != nil {
			return Color{}, fmt.Errorf("parse color: bad hex digit in %q", hex)
		}
		vals = append(vals, v)
	}
	c.R, c.G, c.B = vals[0], vals[1], vals[2]
	if len(vals) == 4 {
		c.A = vals[3]
	}
	return c, nil
}

func parseFuncColor(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return Color{}, fmt.Errorf("parse color: malformed %q", s)
	}
	wantAlpha := strings.HasPrefix(s, "rgba")

	fields := strings.Split(s[open+1:end], ",")
	want := 3
	if wantAlpha {
		want = 4
	}
	if len(fields) != want {
		return Color{}, fmt.Errorf("parse color: %q has %d components, want %d", s, len(fields), want)
	}

	c := Color{A: 1}
	for i, f := range fields[:3] {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("parse color: bad channel %q in %q", f, s)
		}
		switch i {
		case 0:
			c.R = v / 255.0
		case 1:
			c.G = v / 255.0
		case 2:
			c.B = v / 255.0
		}
	}
	if wantAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("parse color: bad alpha %q in %q", fields[3], s)
		}
		c.A = a
	}
	return c, nil
}
