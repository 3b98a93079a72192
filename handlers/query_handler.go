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

// Package handlers provides the palette server's HTTP handlers: a JSON data
// query endpoint and an HTML swatch page.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cri/cricolors/logging"
	querydispatcher "github.com/cri/cricolors/query_dispatcher"
	"github.com/cri/cricolors/util"
)

// HandlerFunc is a HTTP handler function.
type HandlerFunc func(http.ResponseWriter, *http.Request)

// WrapFunc rewrites a HandlerFunc, for instance to add headers.
type WrapFunc func(HandlerFunc) HandlerFunc

// Handler serves one or more HTTP paths.
type Handler interface {
	HandlersByPath() map[string]func(http.ResponseWriter, *http.Request)
}

// QueryHandler is a Handler for data queries whose handlers may be wrapped.
type QueryHandler interface {
	Handler
	Wrap(...WrapFunc) Handler
}

// sendJSONResponse encodes resp as JSON on w.
func sendJSONResponse(resp *util.Data, w http.ResponseWriter) {
	respJSON, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Failed to marshal response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.Write(respJSON)
}

type queryHandler struct {
	qd       *querydispatcher.QueryDispatcher
	wrappers []WrapFunc
}

// NewQueryHandler returns a new QueryHandler answering data requests with the
// provided QueryDispatcher.
func NewQueryHandler(qd *querydispatcher.QueryDispatcher) QueryHandler {
	return &queryHandler{
		qd: qd,
	}
}

const (
	dataPath = "/GetData"
	// The form field holding the JSON-encoded DataRequest.
	dataRequestField = "req"
)

type contextKey string

var httpReqKey contextKey = "cricolors_http_req"

// RequestOf returns the *http.Request attached to ctx, or nil if there is
// none.  It returns an error if something other than a request is attached.
func RequestOf(ctx context.Context) (*http.Request, error) {
	reqIf := ctx.Value(httpReqKey)
	if reqIf == nil {
		return nil, nil
	}
	req, ok := reqIf.(*http.Request)
	if !ok {
		return nil, fmt.Errorf("expected *http.Request to be stored in context, got %T", reqIf)
	}
	return req, nil
}

func (qh *queryHandler) Wrap(wrappers ...WrapFunc) Handler {
	qh.wrappers = append(qh.wrappers, wrappers...)
	return qh
}

// HandlersByPath returns the receiver's handlers keyed by path.
func (qh *queryHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	var dh HandlerFunc = qh.getDataHandler
	for _, wrapper := range qh.wrappers {
		dh = wrapper(dh)
	}
	return map[string]func(http.ResponseWriter, *http.Request){
		dataPath: dh,
	}
}

func (qh *queryHandler) getDataHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	dataReq, err := util.DataRequestFromJSON([]byte(req.Form.Get(dataRequestField)))
	if err != nil {
		logging.Logger().Warn("malformed data request", "remote", req.RemoteAddr, "err", err)
		http.Error(w, "Failed to parse DataRequest: "+err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := qh.qd.HandleDataRequest(context.WithValue(req.Context(), httpReqKey, req), dataReq)
	if err != nil {
		http.Error(w, "DataRequest failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSONResponse(resp, w)
}
