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

// Package colormap exports palette colors as colormaps: ordered, named lists
// of hex color strings that a plotting frontend maps scalar values onto.
//
// A colormap is handed to the frontend by defining it somewhere in a
// response, and individual Datums are then colored by their position along
// it, from 0.0 (the first color) to 1.0 (the last):
//
//	cmap := colormap.Tab10()
//	series.With(cmap.Define())
//	for idx, item := range items {
//	  series.Child().With(
//	    cmap.PrimaryColor(float64(idx) / float64(cmap.Len()-1)),
//	  )
//	}
//
// Alternatively a Datum may carry a fixed color directly, with Primary,
// Secondary or Stroke.  The three color roles follow Material Design: the
// primary color dominates a rendered item, the secondary color marks
// selection and accents, and the stroke color is used for text and borders.
// A Datum should set each role in only one way.
package colormap

import (
	"github.com/cri/cricolors/color"
	"github.com/cri/cricolors/util"
)

const (
	// colormapNamePrefix prefixes the key a colormap is defined under.
	colormapNamePrefix = "color_space_"

	primaryColormapKey      = "primary_color_space"
	primaryColormapValueKey = "primary_color_space_value"
	primaryColorKey         = "primary_color"

	secondaryColormapKey      = "secondary_color_space"
	secondaryColormapValueKey = "secondary_color_space_value"
	secondaryColorKey         = "secondary_color"

	strokeColormapKey      = "stroke_color_space"
	strokeColormapValueKey = "stroke_color_space_value"
	strokeColorKey         = "stroke_color"
)

// Colormap is a named, ordered list of hex color strings.
type Colormap struct {
	name   string
	colors []string
}

// New returns a Colormap with the provided name and colors, which may be in
// any form the frontend accepts.
func New(name string, colors ...string) *Colormap {
	return &Colormap{
		name:   name,
		colors: append([]string(nil), colors...),
	}
}

// FromColors returns a Colormap of the hex strings of the provided colors.
func FromColors(name string, colors ...color.Color) *Colormap {
	hexes := make([]string, len(colors))
	for idx, c := range colors {
		hexes[idx] = c.Hex()
	}
	return &Colormap{
		name:   name,
		colors: hexes,
	}
}

// Name returns the receiver's name.
func (cm *Colormap) Name() string {
	return cm.name
}

// Colors returns a copy of the receiver's colors, in order.
func (cm *Colormap) Colors() []string {
	return append([]string(nil), cm.colors...)
}

// Len returns the number of colors in the receiver.
func (cm *Colormap) Len() int {
	return len(cm.colors)
}

func (cm *Colormap) key() string {
	return colormapNamePrefix + cm.name
}

// Define annotates a Datum with the receiver's definition.  Redefining a
// colormap of the same name in the same Datum replaces it.
func (cm *Colormap) Define() util.PropertyUpdate {
	return util.StringsProperty(cm.key(), cm.colors...)
}

func (cm *Colormap) position(colormapKey, valueKey string, pos float64) util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(colormapKey, cm.key()),
		util.DoubleProperty(valueKey, pos),
	)
}

// PrimaryColor annotates a Datum with a primary color at the provided
// position along the receiver.
func (cm *Colormap) PrimaryColor(pos float64) util.PropertyUpdate {
	return cm.position(primaryColormapKey, primaryColormapValueKey, pos)
}

// SecondaryColor annotates a Datum with a secondary color at the provided
// position along the receiver.
func (cm *Colormap) SecondaryColor(pos float64) util.PropertyUpdate {
	return cm.position(secondaryColormapKey, secondaryColormapValueKey, pos)
}

// StrokeColor annotates a Datum with a stroke color at the provided
// position along the receiver.
func (cm *Colormap) StrokeColor(pos float64) util.PropertyUpdate {
	return cm.position(strokeColormapKey, strokeColormapValueKey, pos)
}

// Primary annotates a Datum with a fixed primary color.
func Primary(c color.Color) util.PropertyUpdate {
	return util.StringProperty(primaryColorKey, c.String())
}

// Secondary annotates a Datum with a fixed secondary color.
func Secondary(c color.Color) util.PropertyUpdate {
	return util.StringProperty(secondaryColorKey, c.String())
}

// Stroke annotates a Datum with a fixed stroke color.
func Stroke(c color.Color) util.PropertyUpdate {
	return util.StringProperty(strokeColorKey, c.String())
}
