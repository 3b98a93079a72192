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

package colormap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cri/cricolors/color"
	"github.com/cri/cricolors/palette"
)

// ErrNotFound is returned by Get for an unknown colormap name.
var ErrNotFound = errors.New("colormap not found")

// tabTint is the tint strength of the lighter entry of each Tab20 pair.
const tabTint = .5

// tabColorNames names the palette colors of the tab colormaps, in order.
var tabColorNames = []string{
	"blue", "orange", "green", "red", "purple",
	"yellow", "magenta", "gray", "forest_green", "cyan",
}

// TabColors returns the ten colors of the tab colormaps, in order.
func TabColors() []color.Color {
	ret := make([]color.Color, len(tabColorNames))
	for idx, name := range tabColorNames {
		c, err := palette.Lookup(name)
		if err != nil {
			panic(err)
		}
		ret[idx] = c
	}
	return ret
}

// Tab10 returns the "CRI_tab10" colormap: the hex strings of TabColors, in
// order.  Each call returns a new Colormap.
func Tab10() *Colormap {
	return FromColors("CRI_tab10", TabColors()...)
}

// Tab20 returns the "CRI_tab20" colormap: each of TabColors followed by its
// 50% tint, pair by pair.  Each call returns a new Colormap.
func Tab20() *Colormap {
	tabs := TabColors()
	colors := make([]color.Color, 0, 2*len(tabs))
	for _, c := range tabs {
		colors = append(colors, c, c.Tint(tabTint))
	}
	return FromColors("CRI_tab20", colors...)
}

var colormapsByName = map[string]func() *Colormap{
	"tab10": Tab10,
	"tab20": Tab20,
}

// Get returns a new instance of the named colormap, such as "tab10".
func Get(name string) (*Colormap, error) {
	build, ok := colormapsByName[name]
	if !ok {
		return nil, fmt.Errorf("'%s': %w", name, ErrNotFound)
	}
	return build(), nil
}

// Names returns the names Get accepts, sorted.
func Names() []string {
	ret := make([]string, 0, len(colormapsByName))
	for name := range colormapsByName {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}
