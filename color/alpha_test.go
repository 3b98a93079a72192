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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	testRed  = MustParse("#CD5F4B")
	testBlue = MustParse("#6496B9")
)

func TestOver(t *testing.T) {
	for _, test := range []struct {
		description string
		fg, bg      Color
		want        []float64
	}{{
		description: "opaque foreground over itself",
		fg:          testRed,
		bg:          testRed,
		want:        components(testRed),
	}, {
		description: "opaque foreground dominates",
		fg:          testRed,
		bg:          testBlue.WithAlpha(.7),
		want:        components(testRed),
	}, {
		description: "transparent foreground leaves background",
		fg:          testRed.WithAlpha(0),
		bg:          testBlue.WithAlpha(.6),
		want:        components(testBlue.WithAlpha(.6)),
	}, {
		description: "half-transparent over opaque",
		fg:          RGBA(1, 0, 0, .5),
		bg:          RGB(0, 0, 1),
		want:        []float64{.5, 0, .5, 1},
	}, {
		description: "half-transparent over half-transparent",
		fg:          RGBA(1, 0, 0, .5),
		bg:          RGBA(0, 0, 1, .5),
		// resultA = .75; R = .5/.75; B = .25/.75
		want: []float64{2. / 3, 0, 1. / 3, .75},
	}, {
		description: "both transparent",
		fg:          testRed.WithAlpha(0),
		bg:          testBlue.WithAlpha(0),
		want:        []float64{0, 0, 0, 0},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := Over(test.fg, test.bg)
			if diff := cmp.Diff(test.want, components(got), approx); diff != "" {
				t.Errorf("Over(%v, %v) = %v, diff (-want +got):\n%s", test.fg, test.bg, got, diff)
			}
			if mixed := test.fg.Mix(test.bg); !mixed.Equal(got) {
				t.Errorf("Mix() = %v, want %v", mixed, got)
			}
		})
	}
}

func TestTintAndShade(t *testing.T) {
	for _, test := range []struct {
		description string
		got         Color
		want        []float64
	}{{
		description: "full tint keeps the color",
		got:         Tint(testRed, 1),
		want:        components(testRed),
	}, {
		description: "zero tint is white",
		got:         Tint(testRed, 0),
		want:        []float64{1, 1, 1, 1},
	}, {
		description: "half tint",
		got:         testRed.Tint(.5),
		want:        []float64{230. / 255, 175. / 255, 165. / 255, 1},
	}, {
		description: "full shade keeps the color",
		got:         Shade(testBlue, 1),
		want:        components(testBlue),
	}, {
		description: "zero shade is black",
		got:         Shade(testBlue, 0),
		want:        []float64{0, 0, 0, 1},
	}, {
		description: "half shade",
		got:         testBlue.Shade(.5),
		want:        []float64{50. / 255, 75. / 255, 92.5 / 255, 1},
	}, {
		description: "tint ignores the color's own alpha",
		got:         testRed.WithAlpha(.2).Tint(1),
		want:        components(testRed),
	}} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, components(test.got), approx); diff != "" {
				t.Errorf("Got %v, diff (-want +got):\n%s", test.got, diff)
			}
		})
	}
	if got, want := testRed.Tint(.5).Hex(), "#e6afa5"; got != want {
		t.Errorf("Tint(.5).Hex() = %s, want %s", got, want)
	}
}

func collect(seq func(yield func(Color) bool)) []Color {
	var ret []Color
	seq(func(c Color) bool {
		ret = append(ret, c)
		return true
	})
	return ret
}

func TestTintsAndShades(t *testing.T) {
	colorCmp := cmp.Comparer(func(a, b Color) bool {
		return cmp.Equal(components(a), components(b), cmpopts.EquateApprox(0, 1e-9))
	})
	for _, test := range []struct {
		description string
		got         []Color
		want        []Color
	}{{
		description: "four tints",
		got:         collect(testBlue.Tints(4)),
		want: []Color{
			Tint(testBlue, 1),
			Tint(testBlue, .75),
			Tint(testBlue, .5),
			Tint(testBlue, .25),
		},
	}, {
		description: "four shades",
		got:         collect(testBlue.Shades(4)),
		want: []Color{
			Shade(testBlue, 1),
			Shade(testBlue, .75),
			Shade(testBlue, .5),
			Shade(testBlue, .25),
		},
	}, {
		description: "one tint",
		got:         collect(testRed.Tints(1)),
		want:        []Color{testRed},
	}, {
		description: "zero tints",
		got:         collect(testRed.Tints(0)),
	}, {
		description: "negative shades",
		got:         collect(testRed.Shades(-3)),
	}} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, test.got, colorCmp); diff != "" {
				t.Errorf("Got %v, diff (-want +got):\n%s", test.got, diff)
			}
		})
	}
}

func TestTintsRestartAndStop(t *testing.T) {
	tints := testRed.Tints(5)
	first := collect(tints)
	second := collect(tints)
	if len(first) != 5 || len(second) != 5 {
		t.Fatalf("Tints(5) yielded %d, then %d colors; want 5 each time", len(first), len(second))
	}
	for idx := range first {
		if !first[idx].Equal(second[idx]) {
			t.Errorf("Restarted sequence differs at %d: %v vs %v", idx, first[idx], second[idx])
		}
	}
	var seen int
	for range tints {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("Breaking out of Tints() saw %d colors, want 2", seen)
	}
}
