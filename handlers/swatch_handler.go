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

package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/cri/cricolors/color"
	"github.com/cri/cricolors/colormap"
	datasource "github.com/cri/cricolors/data_source"
	"github.com/cri/cricolors/logging"
	"github.com/cri/cricolors/palette"
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

const (
	swatchPath = "/swatches"

	colorParam = "color"
	countParam = "count"

	defaultRampCount = 5
)

const swatchPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>CRI palette</title>
</head>
<body>
{{range .Rows}}
<h2>{{.Title}}</h2>
<div>
{{range .Swatches}}<span title="{{.Label}}" style="{{.Style}}">{{.Hex}}</span>
{{end}}</div>
{{end}}
</body>
</html>
`

var swatchPage = template.Must(template.New("swatches").Parse(swatchPageTemplate))

type swatch struct {
	Label string
	Hex   string
	Style safehtml.Style
}

func newSwatch(label string, c color.Color) swatch {
	return swatch{
		Label: label,
		Hex:   c.Hex(),
		Style: safehtml.StyleFromProperties(safehtml.StyleProperties{
			BackgroundColor: c.Hex(),
			Color:           palette.LabelColor(c).Hex(),
			Display:         "inline-block",
			Padding:         "1em",
		}),
	}
}

type swatchRow struct {
	Title    string
	Swatches []swatch
}

// ColorResolver returns the color named by a string, such as "red" or
// "#cd5f4b".
type ColorResolver func(spec string) (color.Color, error)

// SwatchHandler serves an HTML page of swatches for every palette list and
// colormap.  With a 'color' query parameter, the page also shows that color's
// tints and shades; 'count' sets their number.
type SwatchHandler struct {
	resolve ColorResolver
}

// NewSwatchHandler returns a new SwatchHandler resolving requested colors
// with resolve.
func NewSwatchHandler(resolve ColorResolver) *SwatchHandler {
	return &SwatchHandler{
		resolve: resolve,
	}
}

// HandlersByPath returns the receiver's handlers keyed by path.
func (sh *SwatchHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	return map[string]func(http.ResponseWriter, *http.Request){
		swatchPath: sh.serveSwatches,
	}
}

func paletteRows() ([]swatchRow, error) {
	var rows []swatchRow
	for _, listName := range palette.ListNames() {
		names, err := palette.ListColorNames(listName)
		if err != nil {
			return nil, err
		}
		row := swatchRow{Title: palette.DisplayName(listName)}
		for _, name := range names {
			c, err := palette.Lookup(name)
			if err != nil {
				return nil, err
			}
			row.Swatches = append(row.Swatches, newSwatch(palette.DisplayName(name), c))
		}
		rows = append(rows, row)
	}
	for _, cmapName := range colormap.Names() {
		cmap, err := colormap.Get(cmapName)
		if err != nil {
			return nil, err
		}
		row := swatchRow{Title: cmap.Name()}
		for idx, hex := range cmap.Colors() {
			c, err := color.Parse(hex)
			if err != nil {
				return nil, err
			}
			row.Swatches = append(row.Swatches, newSwatch(strconv.Itoa(idx), c))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rampRows(base color.Color, count int) []swatchRow {
	ramp := func(title string, colors []color.Color) swatchRow {
		row := swatchRow{Title: title}
		for idx, c := range colors {
			row.Swatches = append(row.Swatches, newSwatch(strconv.Itoa(idx), c))
		}
		return row
	}
	return []swatchRow{
		ramp("Tints of "+base.Hex(), slices.Collect(base.Tints(count))),
		ramp("Shades of "+base.Hex(), slices.Collect(base.Shades(count))),
	}
}

func (sh *SwatchHandler) serveSwatches(w http.ResponseWriter, req *http.Request) {
	rows, err := paletteRows()
	if err != nil {
		http.Error(w, "Failed to list palette: "+err.Error(), http.StatusInternalServerError)
		return
	}
	query := req.URL.Query()
	if spec := query.Get(colorParam); spec != "" {
		count := defaultRampCount
		if countStr := query.Get(countParam); countStr != "" {
			if count, err = strconv.Atoi(countStr); err != nil || count < 0 || count > datasource.MaxRampCount {
				http.Error(w, "Bad count: "+countStr, http.StatusBadRequest)
				return
			}
		}
		base, err := sh.resolve(spec)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, color.ErrInvalidColor) {
				status = http.StatusBadRequest
			}
			logging.Logger().Warn("unresolvable swatch color", "color", spec, "err", err)
			http.Error(w, "Bad color: "+err.Error(), status)
			return
		}
		rows = append(rows, rampRows(base, count)...)
	}
	var buf bytes.Buffer
	if err := swatchPage.Execute(&buf, struct{ Rows []swatchRow }{rows}); err != nil {
		http.Error(w, "Failed to render swatches: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
