package gradient

import (
	"math"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ErrUnknownKeyword is returned for a direction keyword outside the keyword table.
var ErrUnknownKeyword = zerr.New("unknown gradient direction keyword")

// keywordDegrees maps direction keywords to the angle the gradient points to.
var keywordDegrees = map[string]float64{
	"top":          0,
	"top right":    45,
	"right top":    45,
	"right":        90,
	"bottom right": 135,
	"right bottom": 135,
	"bottom":       180,
	"bottom left":  225,
	"left bottom":  225,
	"left":         270,
	"top left":     315,
	"left top":     315,
}

// degreeKeywords is the reverse of keywordDegrees used by the legacy webkit syntax.
var degreeKeywords = map[int]string{
	0:   "top",
	45:  "right top",
	90:  "right",
	135: "right bottom",
	180: "bottom",
	225: "left bottom",
	270: "left",
	315: "left top",
}

// vendorPrefixes are emitted in order for the modern syntax, unprefixed last.
var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-", ""}

// Direction is a gradient angle in degrees, 0 pointing to the top, 90 to the right.
type Direction struct {
	Degrees float64
}

// Angle returns the direction for an angle in degrees.
func Angle(deg float64) Direction {
	return Direction{Degrees: deg}
}

// Keyword parses a direction keyword or keyword pair. With a "to " prefix the
// keyword names the end point; without it the keyword names the start point,
// as in the legacy syntax, and the angle is rotated by 180 degrees.
func Keyword(kw string) (Direction, error) {
	kw = strings.ToLower(strings.TrimSpace(kw))
	invert := true
	if rest, ok := strings.CutPrefix(kw, "to "); ok {
		kw = strings.TrimSpace(rest)
		invert = false
	}

	deg, ok := keywordDegrees[kw]
	if !ok {
		return Direction{}, zerr.With(ErrUnknownKeyword, "keyword", kw)
	}
	if invert {
		deg = opposite(deg)
	}
	return Direction{Degrees: deg}, nil
}

// ParseDirection accepts numbers, numeric strings, keywords and Directions.
func ParseDirection(v any) (Direction, error) {
	switch d := v.(type) {
	case Direction:
		return d, nil
	case int:
		return Angle(float64(d)), nil
	case int64:
		return Angle(float64(d)), nil
	case float64:
		return Angle(d), nil
	case float32:
		return Angle(float64(d)), nil
	case string:
		if deg, err := strconv.ParseFloat(strings.TrimSpace(d), 64); err == nil {
			return Angle(deg), nil
		}
		return Keyword(d)
	default:
		return Direction{}, zerr.With(ErrUnknownKeyword, "value", v)
	}
}

// LinearGradient returns background-image declarations, one per line, for an
// SVG fallback, the legacy webkit syntax and the prefixed and standard syntax.
func LinearGradient(dir Direction, stops []Stop) string {
	angle := dir.Degrees
	// The SVG and legacy webkit renderings only know 45 degree steps.
	normalized := math.Floor(angle/45) * 45
	inverted := math.Floor(opposite(angle)/45) * 45

	var b strings.Builder

	b.WriteString("background-image: url(" + SVGDataURI(normalized, stops) + ");\n")

	b.WriteString("background-image: -webkit-gradient(linear," + keywordFor(inverted) + "," + keywordFor(normalized))
	for _, s := range stops {
		b.WriteString(",color-stop(" + s.Offset + "," + s.Color + ")")
	}
	b.WriteString(");\n")

	prop := formatNumber(angle) + "deg"
	for _, s := range stops {
		prop += "," + s.Color + " " + s.Offset
	}
	for _, prefix := range vendorPrefixes {
		b.WriteString("background-image: " + prefix + "linear-gradient(" + prop + ");\n")
	}

	return b.String()
}

// PxSize returns base*factor as a pixel length.
func PxSize(base, factor float64) string {
	return formatNumber(base*factor) + "px"
}

func opposite(angle float64) float64 {
	if angle > 180 {
		return angle - 180
	}
	return angle + 180
}

func keywordFor(angle float64) string {
	return degreeKeywords[int(normalize(angle))]
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
