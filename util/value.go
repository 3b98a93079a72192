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

// Package util defines the response model shared by palette data sources
// and the frontends that render their colormaps and swatches:
//
// V, a typed value, with {type}Value constructors and Expect{type}Value
// accessors (type={String, Strings, Integer, Integers, Double}) that return
// an error on a type mismatch;
//
// Datum, DataSeries and Data, the response tree, and DataRequest, the
// request that asks for it;
//
// DataResponseBuilder and DataBuilder, for assembling responses from
// PropertyUpdates.
package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type valueType int

// Enumerated value types.  The numbering is part of the wire format.
const (
	unsetValue valueType = iota
	StringValueType
	StringIndexValueType
	StringsValueType
	StringIndicesValueType
	IntegerValueType
	IntegersValueType
	DoubleValueType
)

// V is a single typed value in a request or response.
type V struct {
	V any
	T valueType
}

// StringValue returns a new V wrapping the provided string.
func StringValue(str string) *V {
	return &V{V: str, T: StringValueType}
}

// StringIndexValue returns a new V wrapping the provided string-table index.
func StringIndexValue(strIdx int64) *V {
	return &V{V: strIdx, T: StringIndexValueType}
}

// StringsValue returns a new V wrapping the provided strings.
func StringsValue(strs ...string) *V {
	return &V{V: strs, T: StringsValueType}
}

// StringIndicesValue returns a new V wrapping the provided string-table
// indices.
func StringIndicesValue(strIdxs ...int64) *V {
	return &V{V: strIdxs, T: StringIndicesValueType}
}

// IntegerValue returns a new V wrapping the provided int64.
func IntegerValue(i int64) *V {
	return &V{V: i, T: IntegerValueType}
}

// IntegersValue returns a new V wrapping the provided int64s.
func IntegersValue(ints ...int64) *V {
	return &V{V: ints, T: IntegersValueType}
}

// DoubleValue returns a new V wrapping the provided float64.
func DoubleValue(f float64) *V {
	return &V{V: f, T: DoubleValueType}
}

// ExpectStringValue returns the string in the provided V, or an error if it
// holds something else.  Strings arrive URL-escaped from clients.
func ExpectStringValue(val *V) (string, error) {
	if val.T != StringValueType {
		return "", fmt.Errorf("expected value type 'str'")
	}
	return url.QueryUnescape(val.V.(string))
}

// ExpectStringsValue returns the strings in the provided V, or an error if
// it holds something else.
func ExpectStringsValue(val *V) ([]string, error) {
	if val.T != StringsValueType {
		return nil, fmt.Errorf("expected value type 'strs'")
	}
	return val.V.([]string), nil
}

// ExpectIntegerValue returns the int64 in the provided V, or an error if it
// holds something else.
func ExpectIntegerValue(val *V) (int64, error) {
	if val.T != IntegerValueType {
		return 0, fmt.Errorf("expected value type 'int'")
	}
	return val.V.(int64), nil
}

func expectIntegersValue(val *V) ([]int64, error) {
	if val.T != IntegersValueType {
		return nil, fmt.Errorf("expected value type 'ints'")
	}
	return val.V.([]int64), nil
}

// ExpectDoubleValue returns the float64 in the provided V, or an error if it
// holds something else.
func ExpectDoubleValue(val *V) (float64, error) {
	if val.T != DoubleValueType {
		return 0, fmt.Errorf("expected value type 'dbl'")
	}
	return val.V.(float64), nil
}

func expectStringIndexValue(val *V) (int64, error) {
	if val.T != StringIndexValueType {
		return 0, fmt.Errorf("expected value type 'str_idx'")
	}
	return val.V.(int64), nil
}

func expectStringIndicesValue(val *V) ([]int64, error) {
	if val.T != StringIndicesValueType {
		return nil, fmt.Errorf("expected value type 'str_idxs'")
	}
	return val.V.([]int64), nil
}

// PrettyPrint returns the receiver, deterministically prettyprinted, with
// string indices resolved through st.  Only for use in tests.
func (v *V) PrettyPrint(st []string) string {
	quote := func(strs []string) string {
		return "[ '" + strings.Join(strs, "', '") + "' ]"
	}
	var err error
	var ret string
	switch v.T {
	case unsetValue:
		ret = "unset"
	case StringValueType:
		var str string
		str, err = ExpectStringValue(v)
		ret = "'" + str + "'"
	case StringIndexValueType:
		var strIdx int64
		if strIdx, err = expectStringIndexValue(v); err == nil {
			ret = "'" + st[strIdx] + "'"
		}
	case StringsValueType:
		var strs []string
		if strs, err = ExpectStringsValue(v); err == nil {
			ret = quote(strs)
		}
	case StringIndicesValueType:
		var strIdxs []int64
		if strIdxs, err = expectStringIndicesValue(v); err == nil {
			strs := make([]string, len(strIdxs))
			for idx, strIdx := range strIdxs {
				strs[idx] = st[strIdx]
			}
			ret = quote(strs)
		}
	case IntegerValueType:
		var i int64
		if i, err = ExpectIntegerValue(v); err == nil {
			ret = strconv.FormatInt(i, 10)
		}
	case IntegersValueType:
		var ints []int64
		if ints, err = expectIntegersValue(v); err == nil {
			strs := make([]string, len(ints))
			for idx, i := range ints {
				strs[idx] = strconv.FormatInt(i, 10)
			}
			ret = "[ " + strings.Join(strs, ", ") + " ]"
		}
	case DoubleValueType:
		var d float64
		if d, err = ExpectDoubleValue(v); err == nil {
			ret = fmt.Sprintf("%.6f", d)
		}
	default:
		err = fmt.Errorf("unknown value type %d", v.T)
	}
	if err != nil {
		return "error: " + err.Error()
	}
	return ret
}

// MarshalJSON encodes a V compactly as the JS tuple
//
//	type V = [number,     ; the valueType, above
//	  null     |          ; if unset
//	  string   |          ; if string
//	  number   |          ; if integer, string index, or double
//	  string[] |          ; if strings
//	  number[]            ; if integers or string indices
//	]
func (v *V) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{v.T, v.V})
}

// UnmarshalJSON decodes the encoding produced by MarshalJSON.
func (v *V) UnmarshalJSON(data []byte) error {
	var got []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&got); err != nil {
		return err
	}
	return v.fromAny(got)
}

func (v *V) fromAny(got []any) error {
	if len(got) != 2 {
		return fmt.Errorf("value must be a [type, value] pair")
	}
	typeNum, ok := got[0].(json.Number)
	if !ok {
		return fmt.Errorf("value type must be a number")
	}
	t, err := typeNum.Int64()
	if err != nil {
		return err
	}
	v.T = valueType(t)
	switch v.T {
	case StringIndexValueType, IntegerValueType:
		v.V, err = asInt(got[1])
	case DoubleValueType:
		num, ok := got[1].(json.Number)
		if !ok {
			return fmt.Errorf("expected a number")
		}
		v.V, err = num.Float64()
	case StringsValueType:
		items, ok := got[1].([]any)
		if !ok {
			return fmt.Errorf("expected a list of strings")
		}
		strs := make([]string, len(items))
		for idx, item := range items {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected a list of strings")
			}
			if strs[idx], err = url.QueryUnescape(str); err != nil {
				return err
			}
		}
		v.V = strs
	case StringIndicesValueType, IntegersValueType:
		items, ok := got[1].([]any)
		if !ok {
			return fmt.Errorf("expected a list of numbers")
		}
		ints := make([]int64, len(items))
		for idx, item := range items {
			if ints[idx], err = asInt(item); err != nil {
				return err
			}
		}
		v.V = ints
	default:
		v.V = got[1]
	}
	return err
}

func asInt(item any) (int64, error) {
	num, ok := item.(json.Number)
	if !ok {
		return 0, fmt.Errorf("expected a number")
	}
	return num.Int64()
}
