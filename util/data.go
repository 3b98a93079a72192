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

package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Datum is a single node in a data series response: a set of properties
// keyed by string-table index, and any number of children.
type Datum struct {
	Properties map[int64]*V
	Children   []*Datum
}

// sortedKeys returns the receiver's property keys, ordered by less.
func (d *Datum) sortedKeys(less func(a, b int64) bool) []int64 {
	keys := make([]int64, 0, len(d.Properties))
	for k := range d.Properties {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		return less(keys[a], keys[b])
	})
	return keys
}

// PrettyPrint returns the receiver deterministically prettyprinted, with
// properties in alphabetical order of their keys.  Only for use in tests.
func (d *Datum) PrettyPrint(indent string, st []string) string {
	ret := []string{}
	for _, k := range d.sortedKeys(func(a, b int64) bool { return st[a] < st[b] }) {
		ret = append(ret,
			fmt.Sprintf("%sProp '%s': %s", indent, st[k], d.Properties[k].PrettyPrint(st)),
		)
	}
	for _, child := range d.Children {
		ret = append(ret,
			fmt.Sprintf("%sChild:", indent),
			child.PrettyPrint(indent+"  ", st),
		)
	}
	return strings.Join(ret, "\n")
}

// MarshalJSON encodes a Datum as the JS tuple
//
//	type KV = [number, V]
//	type Datum = [
//	  KV[],       ; its Properties, by increasing key
//	  Datum[],    ; its Children
//	]
func (d *Datum) MarshalJSON() ([]byte, error) {
	props := []any{}
	for _, k := range d.sortedKeys(func(a, b int64) bool { return a < b }) {
		props = append(props, []any{k, d.Properties[k]})
	}
	children := make([]any, len(d.Children))
	for idx, child := range d.Children {
		children[idx] = child
	}
	return json.Marshal([]any{props, children})
}

// UnmarshalJSON decodes the encoding produced by MarshalJSON.
func (d *Datum) UnmarshalJSON(data []byte) error {
	var got []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&got); err != nil {
		return err
	}
	return d.fromAny(got)
}

func (d *Datum) fromAny(got []any) error {
	if len(got) != 2 {
		return fmt.Errorf("datum must be a [properties, children] pair")
	}
	props, ok := got[0].([]any)
	if !ok {
		return fmt.Errorf("datum properties must be a list")
	}
	children, ok := got[1].([]any)
	if !ok {
		return fmt.Errorf("datum children must be a list")
	}
	d.Properties = make(map[int64]*V, len(props))
	d.Children = make([]*Datum, len(children))
	for _, prop := range props {
		kv, ok := prop.([]any)
		if !ok || len(kv) != 2 {
			return fmt.Errorf("datum property must be a [key, value] pair")
		}
		k, err := asInt(kv[0])
		if err != nil {
			return err
		}
		val, ok := kv[1].([]any)
		if !ok {
			return fmt.Errorf("datum property value must be a list")
		}
		v := &V{}
		if err := v.fromAny(val); err != nil {
			return err
		}
		d.Properties[k] = v
	}
	for idx, c := range children {
		child, ok := c.([]any)
		if !ok {
			return fmt.Errorf("datum child must be a list")
		}
		d.Children[idx] = &Datum{}
		if err := d.Children[idx].fromAny(child); err != nil {
			return err
		}
	}
	return nil
}

// DataSeriesRequest is a request for a single data series.
type DataSeriesRequest struct {
	QueryName  string
	SeriesName string
	Options    map[string]*V
}

// DataSeries is a complete data series response.
type DataSeries struct {
	SeriesName string
	Root       *Datum
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (ds *DataSeries) PrettyPrint(indent string, st []string) string {
	return strings.Join([]string{
		fmt.Sprintf("%sSeries %s", indent, ds.SeriesName),
		indent + "  Root:",
		ds.Root.PrettyPrint(indent+"    ", st),
	}, "\n")
}

// DataRequest is a request for one or more data series.
type DataRequest struct {
	GlobalFilters  map[string]*V
	SeriesRequests []*DataSeriesRequest
}

// DataRequestFromJSON decodes a DataRequest from the provided JSON.
func DataRequestFromJSON(j []byte) (*DataRequest, error) {
	ret := &DataRequest{}
	if err := json.Unmarshal(j, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Data is a complete response to a DataRequest.
type Data struct {
	StringTable []string
	DataSeries  []*DataSeries
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (d *Data) PrettyPrint() string {
	ret := []string{"Data:"}
	for _, series := range d.DataSeries {
		ret = append(ret, series.PrettyPrint("  ", d.StringTable))
	}
	return strings.Join(ret, "\n")
}

// stringTable interns strings, associating each with a unique index.  It is
// safe for concurrent use.
type stringTable struct {
	mu               sync.RWMutex
	stringsToIndices map[string]int64
	stringsByIndex   []string
}

func newStringTable() *stringTable {
	return &stringTable{
		stringsToIndices: map[string]int64{},
		stringsByIndex:   []string{},
	}
}

// stringIndex returns the index of the provided string, interning it if
// necessary.
func (st *stringTable) stringIndex(str string) int64 {
	st.mu.RLock()
	idx, ok := st.stringsToIndices[str]
	st.mu.RUnlock()
	if ok {
		return idx
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	// Another writer may have interned str since the read lock was released.
	if idx, ok := st.stringsToIndices[str]; ok {
		return idx
	}
	idx = int64(len(st.stringsByIndex))
	st.stringsByIndex = append(st.stringsByIndex, str)
	st.stringsToIndices[str] = idx
	return idx
}

func (st *stringTable) strings() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.stringsByIndex
}

// errorList collects the errors raised while building a response.  It is
// safe for concurrent use.
type errorList struct {
	mu   sync.Mutex
	errs []error
}

func (el *errorList) add(err error) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.errs = append(el.errs, err)
}

func (el *errorList) failed() bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	return len(el.errs) > 0
}

func (el *errorList) err() error {
	el.mu.Lock()
	defer el.mu.Unlock()
	return errors.Join(el.errs...)
}

// DataResponseBuilder assembles the response to a DataRequest.
type DataResponseBuilder struct {
	st   *stringTable
	errs *errorList
	mu   sync.Mutex
	d    *Data
}

// NewDataResponseBuilder returns a new, empty DataResponseBuilder.
func NewDataResponseBuilder() *DataResponseBuilder {
	return &DataResponseBuilder{
		st:   newStringTable(),
		errs: &errorList{},
		d: &Data{
			StringTable: []string{},
			DataSeries:  []*DataSeries{},
		},
	}
}

// DataBuilder is implemented by types that can assemble response Datums.
type DataBuilder interface {
	// With applies the provided updates to the Datum under construction.
	With(updates ...PropertyUpdate) DataBuilder
	// Child adds a child Datum, returning a DataBuilder for it.
	Child() DataBuilder
}

// DataSeries adds a new series answering the provided request, and returns
// a DataBuilder for its root Datum.  It is safe for concurrent use.
func (drb *DataResponseBuilder) DataSeries(req *DataSeriesRequest) DataBuilder {
	ret := newDatumBuilder(drb.errs, drb.st)
	drb.mu.Lock()
	defer drb.mu.Unlock()
	drb.d.DataSeries = append(drb.d.DataSeries, &DataSeries{
		SeriesName: req.SeriesName,
		Root:       ret.d,
	})
	return ret
}

// Data completes and returns the response under construction, or the
// errors encountered while building it.
func (drb *DataResponseBuilder) Data() (*Data, error) {
	if err := drb.errs.err(); err != nil {
		return nil, err
	}
	drb.mu.Lock()
	defer drb.mu.Unlock()
	drb.d.StringTable = drb.st.strings()
	return drb.d, nil
}

// PropertyUpdate updates the Datum under construction.  A nil
// PropertyUpdate does nothing.
type PropertyUpdate func(db *datumBuilder) error

// EmptyUpdate is a PropertyUpdate that does nothing.
var EmptyUpdate PropertyUpdate

type datumBuilder struct {
	errs *errorList
	st   *stringTable
	d    *Datum
}

func newDatumBuilder(errs *errorList, st *stringTable) *datumBuilder {
	return &datumBuilder{
		errs: errs,
		st:   st,
		d: &Datum{
			Properties: map[int64]*V{},
			Children:   []*Datum{},
		},
	}
}

// With applies the provided updates in order, stopping at the first error.
// Once any error has been raised in a response, further updates are
// ignored.
func (db *datumBuilder) With(updates ...PropertyUpdate) DataBuilder {
	if db.errs.failed() {
		return db
	}
	for _, update := range updates {
		if update == nil {
			continue
		}
		if err := update(db); err != nil {
			db.errs.add(err)
			break
		}
	}
	return db
}

func (db *datumBuilder) Child() DataBuilder {
	child := newDatumBuilder(db.errs, db.st)
	db.d.Children = append(db.d.Children, child.d)
	return child
}

func (db *datumBuilder) set(key string, val *V) {
	db.d.Properties[db.st.stringIndex(key)] = val
}

func (db *datumBuilder) internAll(strs []string) []int64 {
	ret := make([]int64, len(strs))
	for idx, str := range strs {
		ret[idx] = db.st.stringIndex(str)
	}
	return ret
}

// appendStrs extends the strings property at key, creating it if needed.
func (db *datumBuilder) appendStrs(key string, strs ...string) error {
	val, ok := db.d.Properties[db.st.stringIndex(key)]
	if !ok {
		db.set(key, StringIndicesValue(db.internAll(strs)...))
		return nil
	}
	strIdxs, err := expectStringIndicesValue(val)
	if err != nil {
		return fmt.Errorf("can't extend property '%s': %w", key, err)
	}
	val.V = append(strIdxs, db.internAll(strs)...)
	return nil
}

// If applies the provided update only if predicate is true.
func If(predicate bool, update PropertyUpdate) PropertyUpdate {
	if predicate {
		return update
	}
	return EmptyUpdate
}

// Chain applies the provided updates in order.
func Chain(updates ...PropertyUpdate) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.With(updates...)
		return nil
	}
}

// StringProperty sets a string property.  Strings are interned in the
// response's string table.
func StringProperty(key, value string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, StringIndexValue(db.st.stringIndex(value)))
		return nil
	}
}

// StringsProperty sets a string-list property.
func StringsProperty(key string, values ...string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, StringIndicesValue(db.internAll(values)...))
		return nil
	}
}

// StringsPropertyExtended appends to a string-list property.
func StringsPropertyExtended(key string, values ...string) PropertyUpdate {
	return func(db *datumBuilder) error {
		return db.appendStrs(key, values...)
	}
}

// IntegerProperty sets an integer property.
func IntegerProperty(key string, value int64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, IntegerValue(value))
		return nil
	}
}

// DoubleProperty sets a double property.
func DoubleProperty(key string, value float64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, DoubleValue(value))
		return nil
	}
}
