// Package color derives display colors for tags that do not declare one.
package color

import "fmt"

// Saturation and lightness of derived colors; only the hue varies.
const (
	saturation = 0.45
	lightness  = 0.6
)

// ForTag returns a stable "#RRGGBB" color for a tag id.
func ForTag(id string) string {
	h := 0
	for _, c := range id {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	r, g, b := hsl(float64(h%360), saturation, lightness)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hsl converts hue in degrees plus saturation and lightness in [0,1] to RGB.
func hsl(hue, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	t := hue / 360

	return channel(p, q, t+1.0/3), channel(p, q, t), channel(p, q, t-1.0/3)
}

func channel(p, q, t float64) uint8 {
	switch {
	case t < 0:
		t++
	case t > 1:
		t--
	}

	var v float64
	switch {
	case t < 1.0/6:
		v = p + (q-p)*6*t
	case t < 1.0/2:
		v = q
	case t < 2.0/3:
		v = p + (q-p)*(2.0/3-t)*6
	default:
		v = p
	}
	return uint8(v * 255)
}
