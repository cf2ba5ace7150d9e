// Package indicator draws the direction preview: a globe whose meridian and
// parallel bend toward a handle placed at the requested yaw/pitch.
package indicator

import (
	"fmt"
	"math"
	"strings"
)

const (
	handleReach = 0.85
	background  = "#0E1117"
	accent      = "#3B82F6"
)

type Point struct {
	X float64
	Y float64
}

// Handle returns where the handle sits on the unit disc for the given angles
// in degrees, with y pointing up.
func Handle(yaw, pitch float64) Point {
	return Point{
		X: handleReach * math.Sin(yaw*math.Pi/180),
		Y: handleReach * math.Sin(pitch*math.Pi/180),
	}
}

// SVG renders the globe as a standalone document of the given pixel size.
func SVG(yaw, pitch float64, size int) string {
	h := Handle(yaw, pitch)

	// SVG y grows downward.
	px, py := h.X, -h.Y

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="-1.2 -1.2 2.4 2.4">`, size, size)
	fmt.Fprintf(&b, `<rect x="-1.2" y="-1.2" width="2.4" height="2.4" fill="%s"/>`, background)
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="0.015" stroke-dasharray="0.06 0.04" opacity="0.8"/>`,
		curves(px, py), accent)
	fmt.Fprintf(&b, `<circle cx="0" cy="0" r="1" fill="none" stroke="%s" stroke-width="0.03"/>`, accent)
	fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="0.05" fill="white"/>`, num(px), num(py))
	b.WriteString(`<circle cx="0" cy="0" r="0.03" fill="white"/>`)
	b.WriteString(`</svg>`)

	return b.String()
}

// Four quadratic curves from the handle to the top, bottom, left and right
// edges of the globe.
func curves(px, py float64) string {
	start := fmt.Sprintf("M %s %s", num(px), num(py))
	return strings.Join([]string{
		fmt.Sprintf("%s Q %s -1 0 -1", start, num(px)),
		fmt.Sprintf("%s Q %s 1 0 1", start, num(px)),
		fmt.Sprintf("%s Q -1 %s -1 0", start, num(py)),
		fmt.Sprintf("%s Q 1 %s 1 0", start, num(py)),
	}, " ")
}

func num(v float64) string {
	if math.Abs(v) < 5e-5 {
		v = 0
	}
	return fmt.Sprintf("%.4f", v)
}
