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
	"testing"

	"github.com/cri/cricolors/color"
	testutil "github.com/cri/cricolors/test_util"
	"github.com/cri/cricolors/util"
	"github.com/google/go-cmp/cmp"
)

func TestColormapDefinition(t *testing.T) {
	for _, test := range []struct {
		description string
		colormaps   []*Colormap
		wantUpdates []util.PropertyUpdate
	}{{
		description: "single colormap",
		colormaps: []*Colormap{
			New("grays", "#a0a0a0"),
		},
		wantUpdates: []util.PropertyUpdate{
			util.StringsProperty(colormapNamePrefix+"grays", "#a0a0a0"),
		},
	}, {
		description: "multiple colormaps",
		colormaps: []*Colormap{
			New("warm", "#f5d20f", "#cd5f4b"),
			FromColors("cool", color.MustParse("#6496B9"), color.MustParse("#914B96")),
		},
		wantUpdates: []util.PropertyUpdate{
			util.StringsProperty(colormapNamePrefix+"warm", "#f5d20f", "#cd5f4b"),
			util.StringsProperty(colormapNamePrefix+"cool", "#6496b9", "#914b96"),
		},
	}, {
		description: "redefinition overwrites previous",
		colormaps: []*Colormap{
			New("cool", "#6496b9", "#914b96"),
			New("cool", "#914b96", "#6496b9"),
		},
		wantUpdates: []util.PropertyUpdate{
			util.StringsProperty(colormapNamePrefix+"cool", "#914b96", "#6496b9"),
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			testUpdates := []util.PropertyUpdate{}
			for _, cm := range test.colormaps {
				testUpdates = append(testUpdates, cm.Define())
			}
			if msg, failed := testutil.NewUpdateComparator().
				WithTestUpdates(testUpdates...).
				WithWantUpdates(test.wantUpdates...).
				Compare(t); failed {
				t.Fatal(msg)
			}
		})
	}
}

func TestColorDeclarations(t *testing.T) {
	warm := New("warm", "#f5d20f", "#dc8714", "#cd5f4b")
	grays := New("grays", "#ffffff", "#000000")
	for _, test := range []struct {
		description string
		updates     util.PropertyUpdate
		wantUpdates []util.PropertyUpdate
	}{{
		description: "primary from colormap",
		updates:     warm.PrimaryColor(.5),
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(primaryColormapKey, colormapNamePrefix+"warm"),
			util.DoubleProperty(primaryColormapValueKey, .5),
		},
	}, {
		description: "fixed colors",
		updates: util.Chain(
			Primary(color.MustParse("#cd5f4b")),
			Secondary(color.MustParse("#6496b9").WithAlpha(.5)),
			Stroke(color.MustParse("black")),
		),
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(primaryColorKey, "#cd5f4b"),
			util.StringProperty(secondaryColorKey, "#6496b980"),
			util.StringProperty(strokeColorKey, "#000000"),
		},
	}, {
		description: "all defined",
		updates: util.Chain(
			warm.PrimaryColor(.3),
			Secondary(color.MustParse("silver")),
			grays.StrokeColor(.7),
		),
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(primaryColormapKey, colormapNamePrefix+"warm"),
			util.DoubleProperty(primaryColormapValueKey, .3),
			util.StringProperty(secondaryColorKey, "#c0c0c0"),
			util.StringProperty(strokeColormapKey, colormapNamePrefix+"grays"),
			util.DoubleProperty(strokeColormapValueKey, .7),
		},
	}, {
		description: "secondary from colormap",
		updates:     grays.SecondaryColor(1),
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(secondaryColormapKey, colormapNamePrefix+"grays"),
			util.DoubleProperty(secondaryColormapValueKey, 1),
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			if msg, failed := testutil.NewUpdateComparator().
				WithTestUpdates(test.updates).
				WithWantUpdates(test.wantUpdates...).
				Compare(t); failed {
				t.Fatal(msg)
			}
		})
	}
}

func TestColormapAccessors(t *testing.T) {
	src := []string{"#cd5f4b", "#5aa06e"}
	cm := New("pair", src...)
	src[0] = "#000000"
	if got := cm.Colors()[0]; got != "#cd5f4b" {
		t.Errorf("New() aliased its input: Colors()[0] = %s", got)
	}
	cm.Colors()[1] = "#ffffff"
	if diff := cmp.Diff([]string{"#cd5f4b", "#5aa06e"}, cm.Colors()); diff != "" {
		t.Errorf("Colors() returned the internal slice, diff (-want +got):\n%s", diff)
	}
	if cm.Name() != "pair" || cm.Len() != 2 {
		t.Errorf("Got name %q and length %d, want 'pair' and 2", cm.Name(), cm.Len())
	}
}
