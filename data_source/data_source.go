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

// Package datasource provides a data source serving the CRI palette, its
// colormaps, and tint and shade ramps of arbitrary colors.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/cri/cricolors/category"
	"github.com/cri/cricolors/color"
	"github.com/cri/cricolors/colormap"
	"github.com/cri/cricolors/logging"
	"github.com/cri/cricolors/palette"
	"github.com/cri/cricolors/util"
	lru "github.com/hashicorp/golang-lru"
)

const (
	colorsQuery   = "palette.colors"
	colormapQuery = "palette.colormap"
	tintsQuery    = "palette.tints"
	shadesQuery   = "palette.shades"

	paletteNameKey  = "palette_name"
	colorNamesKey   = "color_names"
	colormapNameKey = "colormap_name"
	colorKey        = "color"
	countKey        = "count"

	nameKey        = "name"
	displayNameKey = "display_name"
	hexKey         = "hex"
	alphaKey       = "alpha"
	indexKey       = "index"
	strengthKey    = "strength"

	defaultColormap = "tab10"
	defaultCount    = 5
)

// MaxRampCount is the largest number of tints or shades served for one
// color.
const MaxRampCount = 64

// ErrBadOption is returned for a missing or malformed query option.
var ErrBadOption = errors.New("bad query option")

// DataSource implements querydispatcher.dataSource for palette data.  It
// caches the most recently resolved colors.
type DataSource struct {
	// Resolved colors, keyed by the option string that named them.
	colors *lru.Cache
}

// New returns a new DataSource caching up to cap resolved colors.
func New(cap int) (*DataSource, error) {
	colors, err := lru.New(cap)
	if err != nil {
		return nil, err
	}
	return &DataSource{
		colors: colors,
	}, nil
}

// SupportedDataSeriesQueries returns the query names DataSource answers.
func (ds *DataSource) SupportedDataSeriesQueries() []string {
	return []string{
		colorsQuery,
		colormapQuery,
		tintsQuery,
		shadesQuery,
	}
}

// ResolveColor returns the color named by spec: a palette color name such as
// "forest_green", or anything color.Parse accepts.  Results are cached.
func (ds *DataSource) ResolveColor(spec string) (color.Color, error) {
	if cIf, ok := ds.colors.Get(spec); ok {
		c, ok := cIf.(color.Color)
		if !ok {
			return color.Color{}, fmt.Errorf("cached entry for '%s' wasn't a Color", spec)
		}
		return c, nil
	}
	c, err := palette.Lookup(spec)
	if err != nil {
		if c, err = color.Parse(spec); err != nil {
			return color.Color{}, err
		}
	}
	if evicted := ds.colors.Add(spec, c); evicted {
		logging.Logger().Debug("evicted cached color", "cache_len", ds.colors.Len())
	}
	return c, nil
}

// HandleDataSeriesRequests answers each of reqs with a new DataSeries in drb.
func (ds *DataSource) HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	start := time.Now()
	queryNames := make([]string, 0, len(reqs))
	for _, req := range reqs {
		queryNames = append(queryNames, req.QueryName)
	}
	defer func() {
		logging.Logger().Debug("handled queries", "queries", queryNames, "elapsed", time.Since(start))
	}()
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return err
		}
		series := drb.DataSeries(req)
		var err error
		switch req.QueryName {
		case colorsQuery:
			err = handleColorsQuery(series, req.Options)
		case colormapQuery:
			err = handleColormapQuery(series, req.Options)
		case tintsQuery:
			err = ds.handleRampQuery(series, req.Options, color.Color.Tints)
		case shadesQuery:
			err = ds.handleRampQuery(series, req.Options, color.Color.Shades)
		default:
			err = fmt.Errorf("unsupported data query")
		}
		if err != nil {
			return fmt.Errorf("error handling data query %s: %w", req.QueryName, err)
		}
	}
	return nil
}

func stringOption(opts map[string]*util.V, key, def string) (string, error) {
	val, ok := opts[key]
	if !ok {
		return def, nil
	}
	ret, err := util.ExpectStringValue(val)
	if err != nil {
		return "", fmt.Errorf("%w '%s': %w", ErrBadOption, key, err)
	}
	return ret, nil
}

func stringsOption(opts map[string]*util.V, key string) ([]string, error) {
	val, ok := opts[key]
	if !ok {
		return nil, nil
	}
	ret, err := util.ExpectStringsValue(val)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrBadOption, key, err)
	}
	return ret, nil
}

// integerOption also accepts integral doubles, which is how some clients
// send whole numbers.
func integerOption(opts map[string]*util.V, key string, def int64) (int64, error) {
	val, ok := opts[key]
	if !ok {
		return def, nil
	}
	ret, err := util.ExpectIntegerValue(val)
	if err == nil {
		return ret, nil
	}
	d, dblErr := util.ExpectDoubleValue(val)
	if dblErr != nil {
		return 0, fmt.Errorf("%w '%s': %w", ErrBadOption, key, err)
	}
	if d != math.Trunc(d) || math.Abs(d) > math.MaxInt32 {
		return 0, fmt.Errorf("%w '%s': %v is not a usable integer", ErrBadOption, key, d)
	}
	return int64(d), nil
}

// listCategory returns the Category for the named palette list.
func listCategory(listName string) *category.Category {
	return category.New(
		listName,
		palette.DisplayName(listName),
		fmt.Sprintf("Colors in the %s palette list", palette.DisplayName(listName)),
	)
}

// listCategoriesByColor returns, for each palette color name, the Categories
// of the palette lists containing it, in list declaration order.
func listCategoriesByColor() (map[string][]*category.Category, error) {
	ret := map[string][]*category.Category{}
	for _, listName := range palette.ListNames() {
		cat := listCategory(listName)
		names, err := palette.ListColorNames(listName)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			ret[name] = append(ret[name], cat)
		}
	}
	return ret, nil
}

// handleColorsQuery emits one child per color in the requested palette list,
// per explicitly named color, or per palette color if neither is given.
// Each child is tagged with the lists containing its color.
func handleColorsQuery(series util.DataBuilder, opts map[string]*util.V) error {
	listName, err := stringOption(opts, paletteNameKey, "")
	if err != nil {
		return err
	}
	colorNames, err := stringsOption(opts, colorNamesKey)
	if err != nil {
		return err
	}
	names := palette.Names()
	switch {
	case listName != "" && colorNames != nil:
		return fmt.Errorf("%w: '%s' and '%s' are exclusive", ErrBadOption, paletteNameKey, colorNamesKey)
	case listName != "":
		if names, err = palette.ListColorNames(listName); err != nil {
			return err
		}
	case colorNames != nil:
		names = colorNames
	}
	series.With(util.If(listName != "", listCategory(listName).Define()))
	catsByColor, err := listCategoriesByColor()
	if err != nil {
		return err
	}
	for _, name := range names {
		c, err := palette.Lookup(name)
		if err != nil {
			return err
		}
		series.Child().With(
			util.StringProperty(nameKey, name),
			util.StringProperty(displayNameKey, palette.DisplayName(name)),
			util.StringProperty(hexKey, c.Hex()),
			util.DoubleProperty(alphaKey, c.A()),
			colormap.Primary(c),
			colormap.Stroke(palette.LabelColor(c)),
			category.Tag(catsByColor[name]...),
		)
	}
	return nil
}

// position returns the position of the idx'th of count colors along a
// colormap.
func position(idx, count int) float64 {
	if count < 2 {
		return 0
	}
	return float64(idx) / float64(count-1)
}

// handleColormapQuery defines the requested colormap on the series, and
// emits one child per entry colored by its position along the colormap.
func handleColormapQuery(series util.DataBuilder, opts map[string]*util.V) error {
	name, err := stringOption(opts, colormapNameKey, defaultColormap)
	if err != nil {
		return err
	}
	cmap, err := colormap.Get(name)
	if err != nil {
		return err
	}
	series.With(
		cmap.Define(),
		util.StringProperty(colormapNameKey, cmap.Name()),
	)
	for idx, hex := range cmap.Colors() {
		series.Child().With(
			util.IntegerProperty(indexKey, int64(idx)),
			util.StringProperty(hexKey, hex),
			cmap.PrimaryColor(position(idx, cmap.Len())),
		)
	}
	return nil
}

// handleRampQuery emits one child per element of a tint or shade ramp of the
// requested color.
func (ds *DataSource) handleRampQuery(series util.DataBuilder, opts map[string]*util.V, ramp func(color.Color, int) iter.Seq[color.Color]) error {
	spec, err := stringOption(opts, colorKey, "")
	if err != nil {
		return err
	}
	if spec == "" {
		return fmt.Errorf("%w: missing required option '%s'", ErrBadOption, colorKey)
	}
	count, err := integerOption(opts, countKey, defaultCount)
	if err != nil {
		return err
	}
	if count < 0 || count > MaxRampCount {
		return fmt.Errorf("%w '%s': must be in [0, %d], got %d", ErrBadOption, countKey, MaxRampCount, count)
	}
	base, err := ds.ResolveColor(spec)
	if err != nil {
		return err
	}
	series.With(
		util.StringProperty(colorKey, base.String()),
	)
	idx := 0
	for c := range ramp(base, int(count)) {
		series.Child().With(
			util.IntegerProperty(indexKey, int64(idx)),
			util.DoubleProperty(strengthKey, 1-float64(idx)/float64(count)),
			util.StringProperty(hexKey, c.Hex()),
			colormap.Primary(c),
			colormap.Stroke(palette.LabelColor(c)),
		)
		idx++
	}
	return nil
}
