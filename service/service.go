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

// Package service assembles the palette server.
package service

import (
	"net/http"

	datasource "github.com/cri/cricolors/data_source"
	"github.com/cri/cricolors/handlers"
	querydispatcher "github.com/cri/cricolors/query_dispatcher"
)

// Service serves palette data queries and swatch pages.
type Service struct {
	handlers []handlers.Handler
}

// New returns a new Service whose data source caches up to cacheSize
// resolved colors.
func New(cacheSize int) (*Service, error) {
	ds, err := datasource.New(cacheSize)
	if err != nil {
		return nil, err
	}
	qd, err := querydispatcher.New(ds)
	if err != nil {
		return nil, err
	}
	return &Service{
		handlers: []handlers.Handler{
			handlers.NewQueryHandler(qd),
			handlers.NewSwatchHandler(ds.ResolveColor),
		},
	}, nil
}

// RegisterHandlers registers the receiver's handlers on mux.
func (s *Service) RegisterHandlers(mux *http.ServeMux) {
	for _, h := range s.handlers {
		for path, handler := range h.HandlersByPath() {
			mux.HandleFunc(path, handler)
		}
	}
}
