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

package color

import (
	"iter"

	"github.com/lucasb-eyer/go-colorful"
)

// transparentAlpha is the composited alpha below which a result is treated
// as fully transparent, and its RGB left unset.
const transparentAlpha = 5e-7

var (
	white = MustParse("white")
	black = MustParse("black")
)

// Over composites fg over bg, returning the result.  Neither input is
// modified.
//
// The result's alpha is 1-(1-fgA)*(1-bgA).  If that is effectively zero, the
// result is transparent with zero RGB.  Otherwise each RGB channel X is
//
//	(fgX*fgA + bgX*bgA*(1-fgA)) / resultA
func Over(fg, bg Color) Color {
	ra := 1 - (1-fg.a)*(1-bg.a)
	if ra < transparentAlpha {
		return Color{a: ra}
	}
	over := func(f, b float64) float64 {
		return f*fg.a/ra + b*bg.a*(1-fg.a)/ra
	}
	return Color{
		c: colorful.Color{
			R: over(fg.c.R, bg.c.R),
			G: over(fg.c.G, bg.c.G),
			B: over(fg.c.B, bg.c.B),
		},
		a: ra,
	}
}

// Tint blends c toward white with strength t: c is given alpha t and
// composited over opaque white.  Tint(c, 1) has c's RGB; Tint(c, 0) is
// white.
func Tint(c Color, t float64) Color {
	return Over(c.WithAlpha(t), white)
}

// Shade blends c toward black with strength t: c is given alpha t and
// composited over opaque black.  Shade(c, 1) has c's RGB; Shade(c, 0) is
// black.
func Shade(c Color, t float64) Color {
	return Over(c.WithAlpha(t), black)
}

// Mix composites the receiver over the provided background.
func (c Color) Mix(background Color) Color {
	return Over(c, background)
}

// Tint returns Tint(c, t).
func (c Color) Tint(t float64) Color {
	return Tint(c, t)
}

// Shade returns Shade(c, t).
func (c Color) Shade(t float64) Color {
	return Shade(c, t)
}

// Tints returns a sequence of count tints of the receiver.  The i'th tint
// (from 0) has strength 1-i/count, so the sequence starts at the receiver's
// own RGB and moves toward white.  A count of zero or less yields an empty
// sequence.  The sequence may be ranged over any number of times.
func (c Color) Tints(count int) iter.Seq[Color] {
	return c.blends(count, Tint)
}

// Shades is like Tints, but moves toward black.
func (c Color) Shades(count int) iter.Seq[Color] {
	return c.blends(count, Shade)
}

func (c Color) blends(count int, blend func(Color, float64) Color) iter.Seq[Color] {
	return func(yield func(Color) bool) {
		for i := 0; i < count; i++ {
			if !yield(blend(c, 1-float64(i)/float64(count))) {
				return
			}
		}
	}
}
