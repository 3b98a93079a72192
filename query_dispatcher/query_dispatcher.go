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

// Package querydispatcher provides QueryDispatcher, which routes each series
// in a data request to the data source that answers its query.
package querydispatcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/cri/cricolors/logging"
	"github.com/cri/cricolors/util"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedQuery is returned for a series request whose query no data
// source answers.
var ErrUnsupportedQuery = errors.New("unsupported data query")

// dataSource answers a fixed set of named series queries.  Implementations
// must support concurrent HandleDataSeriesRequests calls.
type dataSource interface {
	// SupportedDataSeriesQueries returns the query names this dataSource
	// answers.  Names must be unique across all dataSources in a dispatcher.
	SupportedDataSeriesQueries() []string
	// HandleDataSeriesRequests adds one DataSeries to drb for each of reqs.
	// Any returned error fails the entire DataRequest.
	HandleDataSeriesRequests(ctx context.Context, globalState map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error
}

// QueryDispatcher fans a DataRequest out across several data sources.
type QueryDispatcher struct {
	dataSources []dataSource
	// Maps query names to indices in dataSources.
	handlersByQuery map[string]int
}

// New returns a *QueryDispatcher over the provided dataSources, or an error if
// two of them claim the same query.
func New(dss ...dataSource) (*QueryDispatcher, error) {
	qd := &QueryDispatcher{
		dataSources:     dss,
		handlersByQuery: map[string]int{},
	}
	for dsIdx, ds := range dss {
		for _, queryName := range ds.SupportedDataSeriesQueries() {
			if _, ok := qd.handlersByQuery[queryName]; ok {
				return nil, fmt.Errorf("multiple data sources handle query '%s'", queryName)
			}
			qd.handlersByQuery[queryName] = dsIdx
		}
	}
	return qd, nil
}

// HandleDataRequest groups req's series requests by data source, runs each
// group concurrently, and assembles the results into one Data.  The first
// failing group cancels the rest.
func (qd *QueryDispatcher) HandleDataRequest(ctx context.Context, req *util.DataRequest) (*util.Data, error) {
	drb := util.NewDataResponseBuilder()
	groupedReqs := map[int][]*util.DataSeriesRequest{}
	for _, seriesReq := range req.SeriesRequests {
		dsIdx, ok := qd.handlersByQuery[seriesReq.QueryName]
		if !ok {
			logging.Logger().Warn("rejected data request", "query", seriesReq.QueryName)
			return nil, fmt.Errorf("%w '%s'", ErrUnsupportedQuery, seriesReq.QueryName)
		}
		groupedReqs[dsIdx] = append(groupedReqs[dsIdx], seriesReq)
	}
	errg, ctx := errgroup.WithContext(ctx)
	for dsIdx, seriesReqs := range groupedReqs {
		ds := qd.dataSources[dsIdx]
		errg.Go(func() error {
			return ds.HandleDataSeriesRequests(ctx, req.GlobalFilters, drb, seriesReqs)
		})
	}
	if err := errg.Wait(); err != nil {
		logging.Logger().Warn("data request failed", "err", err)
		return nil, err
	}
	return drb.Data()
}
