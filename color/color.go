/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package color defines Color, an RGB color with an independent alpha
// channel, and the alpha-compositing operations built on it: mixing a
// translucent foreground over a background, tinting toward white, and
// shading toward black.
//
// A Color holds a single underlying RGB value.  Its HSL representation is a
// view of that same value, so setting a channel through either view is
// immediately visible through the other:
//
//	c := color.MustParse("#6496B9")
//	c.SetR(1)     // G, B and A are unchanged; H, S and L now reflect the new red.
//	c.SetL(.25)   // R, G and B now reflect the darker color.
//
// Hex specifiers are decoded by go-colorful and color names are looked up in
// x/image/colornames.
//
// All channel values, including alpha, are in [0, 1].  Constructors and
// setters clamp out-of-range values into that interval.  Hue is expressed
// in degrees, in [0, 360).
package color

import (
	"errors"
	"fmt"
	stdcolor "image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned when a string names no known color.
var ErrInvalidColor = errors.New("invalid color")

// Color is an RGB color with an alpha channel.  The zero Color is fully
// transparent black.
type Color struct {
	c colorful.Color
	a float64
}

// RGB returns an opaque Color with the provided channel values.
func RGB(r, g, b float64) Color {
	return RGBA(r, g, b, 1)
}

// RGBA returns a Color with the provided channel and alpha values.
func RGBA(r, g, b, a float64) Color {
	return Color{
		c: colorful.Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)},
		a: clamp01(a),
	}
}

// HSL returns an opaque Color from the provided hue (in degrees),
// saturation and lightness.
func HSL(h, s, l float64) Color {
	return Color{
		c: colorful.Hsl(normalizeHue(h), clamp01(s), clamp01(l)),
		a: 1,
	}
}

// FromColor converts a standard library color into a Color, undoing any
// alpha premultiplication.
func FromColor(sc stdcolor.Color) Color {
	n := stdcolor.NRGBA64Model.Convert(sc).(stdcolor.NRGBA64)
	return RGBA(
		float64(n.R)/0xffff,
		float64(n.G)/0xffff,
		float64(n.B)/0xffff,
		float64(n.A)/0xffff,
	)
}

// Parse returns the Color described by the provided string: a hex specifier
// ("#RGB", "#RRGGBB", or "#RRGGBBAA"), or a CSS color name such as "white"
// or "forestgreen".  Only the last hex form carries alpha; all others yield
// opaque colors.  Names are case-insensitive.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return FromColor(named), nil
	}
	return Color{}, fmt.Errorf("%w: %q is neither a hex specifier nor a color name", ErrInvalidColor, s)
}

const hexDigits = "0123456789abcdefABCDEF"

func parseHex(s string) (Color, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: bad alpha in %q", ErrInvalidColor, s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	if len(s) != 4 && len(s) != 7 || strings.Trim(s[1:], hexDigits) != "" {
		return Color{}, fmt.Errorf("%w: malformed hex specifier %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %s", ErrInvalidColor, err)
	}
	return Color{c: c, a: alpha}, nil
}

// MustParse is like Parse, but panics if the provided string cannot be
// parsed.  It is intended for package-level color declarations.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// R returns the receiver's red channel.
func (c Color) R() float64 { return c.c.R }

// G returns the receiver's green channel.
func (c Color) G() float64 { return c.c.G }

// B returns the receiver's blue channel.
func (c Color) B() float64 { return c.c.B }

// A returns the receiver's alpha channel.
func (c Color) A() float64 { return c.a }

// SetR sets the receiver's red channel, leaving green, blue and alpha
// unchanged.
func (c *Color) SetR(r float64) {
	c.setRGB(r, c.c.G, c.c.B)
}

// SetG sets the receiver's green channel, leaving red, blue and alpha
// unchanged.
func (c *Color) SetG(g float64) {
	c.setRGB(c.c.R, g, c.c.B)
}

// SetB sets the receiver's blue channel, leaving red, green and alpha
// unchanged.
func (c *Color) SetB(b float64) {
	c.setRGB(c.c.R, c.c.G, b)
}

// SetA sets the receiver's alpha channel.  It has no effect on RGB or HSL.
func (c *Color) SetA(a float64) {
	c.a = clamp01(a)
}

// setRGB replaces the whole underlying RGB value at once.
func (c *Color) setRGB(r, g, b float64) {
	c.c = colorful.Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
}

// HSL returns the receiver's hue (in degrees), saturation and lightness.
func (c Color) HSL() (h, s, l float64) {
	return c.c.Hsl()
}

// H returns the receiver's hue, in degrees.
func (c Color) H() float64 {
	h, _, _ := c.HSL()
	return h
}

// S returns the receiver's HSL saturation.
func (c Color) S() float64 {
	_, s, _ := c.HSL()
	return s
}

// L returns the receiver's HSL lightness.
func (c Color) L() float64 {
	_, _, l := c.HSL()
	return l
}

// SetH sets the receiver's hue, leaving saturation, lightness and alpha
// unchanged.
func (c *Color) SetH(h float64) {
	_, s, l := c.HSL()
	c.setHSL(h, s, l)
}

// SetS sets the receiver's saturation, leaving hue, lightness and alpha
// unchanged.
func (c *Color) SetS(s float64) {
	h, _, l := c.HSL()
	c.setHSL(h, s, l)
}

// SetL sets the receiver's lightness, leaving hue, saturation and alpha
// unchanged.
func (c *Color) SetL(l float64) {
	h, s, _ := c.HSL()
	c.setHSL(h, s, l)
}

func (c *Color) setHSL(h, s, l float64) {
	c.c = colorful.Hsl(normalizeHue(h), clamp01(s), clamp01(l)).Clamped()
}

// Components returns the receiver's red, green, blue and alpha channels.
func (c Color) Components() (r, g, b, a float64) {
	return c.c.R, c.c.G, c.c.B, c.a
}

// WithAlpha returns a copy of the receiver with its alpha replaced.  The
// receiver is not modified.
func (c Color) WithAlpha(a float64) Color {
	c.SetA(a)
	return c
}

// Hex returns the receiver's RGB as a lowercase "#rrggbb" string.  Alpha is
// not represented.  A channel exactly halfway between two 8-bit steps rounds
// down, so a half tint of 0x64 is 0xb1.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", hex8(c.c.R), hex8(c.c.G), hex8(c.c.B))
}

// String returns the receiver as "#rrggbb" if it is opaque, and as
// "#rrggbbaa" otherwise.  The result can be read back with Parse.
func (c Color) String() string {
	if to8(c.a) == 0xff {
		return c.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Hex(), to8(c.a))
}

// Equal returns true if the receiver and o are the same color at 8-bit
// precision, alpha included.
func (c Color) Equal(o Color) bool {
	return c.EqualRGB(o) && to8(c.a) == to8(o.a)
}

// EqualRGB returns true if the receiver and o have the same RGB value at
// 8-bit precision, regardless of their alpha.
func (c Color) EqualRGB(o Color) bool {
	return c.Hex() == o.Hex()
}

// RGBA implements image/color.Color, returning alpha-premultiplied 16-bit
// channel values.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = to16(c.a)
	return to16(c.c.R * c.a), to16(c.c.G * c.a), to16(c.c.B * c.a), a
}

// hexRoundingBias is subtracted before rounding a channel to 8 bits for Hex.
const hexRoundingBias = 5e-7

func hex8(v float64) uint8 {
	return uint8(clamp01(v)*0xff + .5 - hexRoundingBias)
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*0xff + .5)
}

func to16(v float64) uint32 {
	return uint32(clamp01(v)*0xffff + .5)
}

// clamp01 restricts a value to [0, 1].  NaN becomes 0.
func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
