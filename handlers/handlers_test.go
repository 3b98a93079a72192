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
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	datasource "github.com/cri/cricolors/data_source"
	querydispatcher "github.com/cri/cricolors/query_dispatcher"
	"github.com/cri/cricolors/util"
	"github.com/google/go-cmp/cmp"
)

func newTestServer(t *testing.T, wrappers ...WrapFunc) *httptest.Server {
	t.Helper()
	ds, err := datasource.New(4)
	if err != nil {
		t.Fatalf("Unexpected failure creating data source: %s", err)
	}
	qd, err := querydispatcher.New(ds)
	if err != nil {
		t.Fatalf("Unexpected failure creating query dispatcher: %s", err)
	}
	mux := http.NewServeMux()
	for _, h := range []Handler{
		NewQueryHandler(qd).Wrap(wrappers...),
		NewSwatchHandler(ds.ResolveColor),
	} {
		for path, handler := range h.HandlersByPath() {
			mux.HandleFunc(path, handler)
		}
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetData(t *testing.T) {
	srv := newTestServer(t)
	for _, test := range []struct {
		description    string
		req            string
		wantStatus     int
		wantSeries     []string
		wantRootLength int
	}{{
		description:    "colormap query",
		req:            `{"SeriesRequests": [{"QueryName": "palette.colormap", "SeriesName": "cmap"}]}`,
		wantStatus:     http.StatusOK,
		wantSeries:     []string{"cmap"},
		wantRootLength: 10,
	}, {
		description:    "tints query",
		req:            `{"SeriesRequests": [{"QueryName": "palette.tints", "SeriesName": "t", "Options": {"color": [1, "#cd5f4b"], "count": [5, 3]}}]}`,
		wantStatus:     http.StatusOK,
		wantSeries:     []string{"t"},
		wantRootLength: 3,
	}, {
		description: "malformed request",
		req:         `{"SeriesRequests": [`,
		wantStatus:  http.StatusBadRequest,
	}, {
		description: "unknown query",
		req:         `{"SeriesRequests": [{"QueryName": "palette.gradient", "SeriesName": "1"}]}`,
		wantStatus:  http.StatusInternalServerError,
	}} {
		t.Run(test.description, func(t *testing.T) {
			resp, err := http.PostForm(srv.URL+dataPath, url.Values{dataRequestField: {test.req}})
			if err != nil {
				t.Fatalf("POST %s failed: %s", dataPath, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != test.wantStatus {
				t.Fatalf("Got status %d, want %d", resp.StatusCode, test.wantStatus)
			}
			if resp.StatusCode != http.StatusOK {
				return
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Got Content-Type %q, want application/json", ct)
			}
			data := &util.Data{}
			if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
				t.Fatalf("Failed to decode response: %s", err)
			}
			gotSeries := []string{}
			for _, series := range data.DataSeries {
				gotSeries = append(gotSeries, series.SeriesName)
			}
			if diff := cmp.Diff(test.wantSeries, gotSeries); diff != "" {
				t.Errorf("Got series %v, diff (-want +got):\n%s", gotSeries, diff)
			}
			if got := len(data.DataSeries[0].Root.Children); got != test.wantRootLength {
				t.Errorf("Got %d children, want %d", got, test.wantRootLength)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	const header = "X-Cricolors-Test"
	var sawRequest bool
	srv := newTestServer(t, func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set(header, "wrapped")
			sawRequest = true
			next(w, req)
		}
	})
	resp, err := http.PostForm(srv.URL+dataPath, url.Values{
		dataRequestField: {`{"SeriesRequests": [{"QueryName": "palette.colors", "SeriesName": "1"}]}`},
	})
	if err != nil {
		t.Fatalf("POST %s failed: %s", dataPath, err)
	}
	defer resp.Body.Close()
	if !sawRequest || resp.Header.Get(header) != "wrapped" {
		t.Errorf("Wrapper was not applied: header %q", resp.Header.Get(header))
	}
}

func TestRequestOf(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/GetData", nil)
	for _, test := range []struct {
		description string
		ctx         context.Context
		want        *http.Request
		wantErr     bool
	}{{
		description: "no request",
		ctx:         context.Background(),
	}, {
		description: "attached request",
		ctx:         context.WithValue(context.Background(), httpReqKey, req),
		want:        req,
	}, {
		description: "something else attached",
		ctx:         context.WithValue(context.Background(), httpReqKey, "req"),
		wantErr:     true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, err := RequestOf(test.ctx)
			if (err != nil) != test.wantErr {
				t.Fatalf("RequestOf() yielded unexpected error %v", err)
			}
			if got != test.want {
				t.Errorf("RequestOf() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestSwatches(t *testing.T) {
	srv := newTestServer(t)
	for _, test := range []struct {
		description   string
		query         string
		wantStatus    int
		wantContent   []string
		wantNoContent []string
	}{{
		description: "palette only",
		wantStatus:  http.StatusOK,
		wantContent: []string{
			"<h2>Basic</h2>",
			"<h2>Greens</h2>",
			"<h2>CRI_tab10</h2>",
			"<h2>CRI_tab20</h2>",
			`title="Forest Green"`,
			"background-color:#cd5f4b;",
			"background-color:#e6afa5;",
		},
		wantNoContent: []string{"Tints of"},
	}, {
		description: "with ramps",
		query:       "?color=red&count=2",
		wantStatus:  http.StatusOK,
		wantContent: []string{
			"<h2>Tints of #cd5f4b</h2>",
			"<h2>Shades of #cd5f4b</h2>",
		},
	}, {
		description: "ramp of a hex color",
		query:       "?color=%23000000",
		wantStatus:  http.StatusOK,
		wantContent: []string{
			"<h2>Tints of #000000</h2>",
			"background-color:#333333;",
		},
	}, {
		description: "bad color",
		query:       "?color=blurple",
		wantStatus:  http.StatusBadRequest,
	}, {
		description: "bad count",
		query:       "?color=red&count=-2",
		wantStatus:  http.StatusBadRequest,
	}, {
		description: "count too large",
		query:       "?color=red&count=65",
		wantStatus:  http.StatusBadRequest,
	}} {
		t.Run(test.description, func(t *testing.T) {
			resp, err := http.Get(srv.URL + swatchPath + test.query)
			if err != nil {
				t.Fatalf("GET %s failed: %s", swatchPath, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != test.wantStatus {
				t.Fatalf("Got status %d, want %d", resp.StatusCode, test.wantStatus)
			}
			if resp.StatusCode != http.StatusOK {
				return
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("Failed to read response: %s", err)
			}
			page := string(body)
			for _, want := range test.wantContent {
				if !strings.Contains(page, want) {
					t.Errorf("Page does not contain %q:\n%s", want, page)
				}
			}
			for _, unwanted := range test.wantNoContent {
				if strings.Contains(page, unwanted) {
					t.Errorf("Page unexpectedly contains %q", unwanted)
				}
			}
		})
	}
}
