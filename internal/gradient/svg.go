// Package gradient renders linear gradients for stylesheets: as base64 SVG
// data URIs for browsers without CSS gradients, and as the full set of
// prefixed and legacy background-image declarations.
package gradient

import (
	"encoding/base64"
	"math"
	"strings"
)

// Stop is a color stop. Offset should be a percentage so that the SVG
// rendering matches the CSS one.
type Stop struct {
	Color  string
	Offset string
}

// coordinates holds x1 y1 x2 y2 percentages per 45 degree step, 0 meaning "to top".
var coordinates = [9][4]string{
	{"0", "100", "0", "0"},   // 0
	{"0", "100", "100", "0"}, // 45
	{"0", "0", "100", "0"},   // 90
	{"0", "0", "100", "100"}, // 135
	{"0", "0", "0", "100"},   // 180
	{"100", "0", "0", "100"}, // 225
	{"100", "0", "0", "0"},   // 270
	{"100", "100", "0", "0"}, // 315
	{"0", "100", "0", "0"},   // 360
}

// alphaFuncs are the color functions whose last argument is an alpha channel.
var alphaFuncs = []string{"rgba(", "hsla("}

// SVGDataURI returns a data URI of an SVG image filled with a linear gradient.
// The angle is reduced modulo 360 and rounded to the nearest 45 degrees.
func SVGDataURI(angle float64, stops []Stop) string {
	c := coordinates[octant(angle)]

	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?>`)
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg">`)
	b.WriteString(`<defs>`)
	b.WriteString(`<linearGradient id="g" x1="` + c[0] + `%" y1="` + c[1] + `%" x2="` + c[2] + `%" y2="` + c[3] + `%" spreadMethod="pad">`)
	for _, s := range stops {
		color, opacity := splitAlpha(s.Color)
		b.WriteString(`<stop offset="` + s.Offset + `" stop-color="` + color + `" stop-opacity="` + opacity + `"/>`)
	}
	b.WriteString(`</linearGradient>`)
	b.WriteString(`</defs>`)
	b.WriteString(`<rect width="100%" height="100%" style="fill:url(#g);" />`)
	b.WriteString(`</svg>`)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(b.String()))
}

func octant(angle float64) int {
	return int(math.Round(normalize(angle) / 45))
}

// normalize reduces an angle into [0, 360).
func normalize(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// splitAlpha turns rgba()/hsla() colors into their opaque form plus an opacity.
func splitAlpha(color string) (string, string) {
	color = strings.TrimSpace(color)
	lower := strings.ToLower(color)
	for _, fn := range alphaFuncs {
		if !strings.HasPrefix(lower, fn) {
			continue
		}
		i := strings.LastIndex(color, ",")
		if i < 0 {
			break
		}
		opacity := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(color[i+1:]), ")"))
		return fn[:3] + color[len(fn)-1:i] + ")", opacity
	}
	return color, "1"
}
