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

// Package palette defines the CRI color palette: a fixed set of named
// colors, and named, ordered lists of those colors.
//
// The exported colors are constants in all but name.  Writing to them is
// unsupported: the registry behind Lookup, List and the list accessors keeps
// its own copies made at package initialization, and does not see such
// writes.  Since color.Color is a value type, every accessor here returns an
// independent working color that may be modified freely.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cri/cricolors/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when a color or list name is not in the palette.
var ErrNotFound = errors.New("not found in palette")

// The palette's colors.
var (
	Black = color.MustParse("#000000")
	White = color.MustParse("#FFFFFF")
	Gray  = color.MustParse("#A0A0A0")

	Red     = color.MustParse("#CD5F4B")
	Green   = color.MustParse("#5AA06E")
	Blue    = color.MustParse("#6496B9")
	Cyan    = color.MustParse("#64B4C8")
	Magenta = color.MustParse("#F9557B")
	Yellow  = color.MustParse("#F5D20F")
	Orange  = color.MustParse("#DC8714")
	Purple  = color.MustParse("#914B96")

	DarkGreen   = color.MustParse("#41825A")
	ForestGreen = color.MustParse("#82A050")
	LightGreen  = color.MustParse("#AAC85F")
	LogoGreen   = color.MustParse("#82B45F")
	PaleGreen   = color.MustParse("#8CBE87")
)

type entry struct {
	name  string
	color color.Color
}

// entries holds every named color, in declaration order.
var entries = []entry{
	{"black", Black},
	{"white", White},
	{"gray", Gray},
	{"red", Red},
	{"green", Green},
	{"blue", Blue},
	{"cyan", Cyan},
	{"magenta", Magenta},
	{"yellow", Yellow},
	{"orange", Orange},
	{"purple", Purple},
	{"dark_green", DarkGreen},
	{"forest_green", ForestGreen},
	{"light_green", LightGreen},
	{"logo_green", LogoGreen},
	{"pale_green", PaleGreen},
}

type list struct {
	name   string
	colors []string
}

// lists holds every named list, in declaration order.  Within a list, order
// is significant.
var lists = []list{
	{"basic", []string{"red", "green", "blue", "cyan", "magenta", "yellow", "orange", "purple"}},
	{"secondary", []string{"red", "blue", "cyan", "magenta", "yellow", "orange", "purple"}},
	{"greens", []string{"green", "dark_green", "light_green", "pale_green", "forest_green"}},
	{"logo", []string{"logo_green", "black", "white"}},
}

var (
	colorsByName = map[string]color.Color{}
	listsByName  = map[string][]string{}
)

func init() {
	for _, e := range entries {
		colorsByName[e.name] = e.color
	}
	for _, l := range lists {
		for _, name := range l.colors {
			if _, ok := colorsByName[name]; !ok {
				panic(fmt.Sprintf("palette list '%s' references unknown color '%s'", l.name, name))
			}
		}
		listsByName[l.name] = l.colors
	}
}

// Lookup returns the palette color with the provided name, such as
// "forest_green".
func Lookup(name string) (color.Color, error) {
	c, ok := colorsByName[name]
	if !ok {
		return color.Color{}, fmt.Errorf("color '%s': %w", name, ErrNotFound)
	}
	return c, nil
}

// Names returns the names of all palette colors, in declaration order.
func Names() []string {
	ret := make([]string, len(entries))
	for idx, e := range entries {
		ret[idx] = e.name
	}
	return ret
}

// List returns the colors in the named list, in order.
func List(name string) ([]color.Color, error) {
	names, ok := listsByName[name]
	if !ok {
		return nil, fmt.Errorf("list '%s': %w", name, ErrNotFound)
	}
	ret := make([]color.Color, len(names))
	for idx, name := range names {
		ret[idx] = colorsByName[name]
	}
	return ret, nil
}

// ListNames returns the names of all palette lists, in declaration order.
func ListNames() []string {
	ret := make([]string, len(lists))
	for idx, l := range lists {
		ret[idx] = l.name
	}
	return ret
}

// ListColorNames returns the names of the colors in the named list, in
// order.
func ListColorNames(name string) ([]string, error) {
	names, ok := listsByName[name]
	if !ok {
		return nil, fmt.Errorf("list '%s': %w", name, ErrNotFound)
	}
	return append([]string(nil), names...), nil
}

func mustList(name string) []color.Color {
	ret, err := List(name)
	if err != nil {
		panic(err)
	}
	return ret
}

// Basic returns red, green, blue, cyan, magenta, yellow, orange and purple.
func Basic() []color.Color { return mustList("basic") }

// Secondary returns red, blue, cyan, magenta, yellow, orange and purple.
func Secondary() []color.Color { return mustList("secondary") }

// Greens returns green, dark green, light green, pale green and forest
// green.
func Greens() []color.Color { return mustList("greens") }

// Logo returns logo green, black and white.
func Logo() []color.Color { return mustList("logo") }

// LabelColor returns the palette color, black or white, that reads best as
// text drawn over c.
func LabelColor(c color.Color) color.Color {
	if c.L() < .5 {
		return colorsByName["white"]
	}
	return colorsByName["black"]
}

// DisplayName returns a human-readable form of a palette name:
// "forest_green" yields "Forest Green".  A Caser carries state, so a new one
// is made for each call.
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
