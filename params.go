// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"fmt"
	"iter"
	"net/url"
	"reflect"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Param is a single parameter bound during a lookup.
type Param struct {
	Key   string
	Value string
}

// Params collects the values bound by a lookup: named parameters in the order they appear in the
// matched route, and the trailing segments captured by a catchall. Values are stored percent-decoded.
//
// A Params is owned by a single lookup at a time and is not safe for concurrent use. The zero value is
// ready to use, and [Params.Reset] allows reusing the same instance for subsequent lookups.
type Params struct {
	values   []Param
	catchall []string
	next     int
}

// Parsable is the set of types supported by [ParamAs] and [NextAs].
type Parsable interface {
	~string | ~bool | constraints.Integer | constraints.Float
}

// Get returns the decoded value bound to name and whether it exists. If a route binds name more than
// once, the last value wins.
func (p *Params) Get(name string) (string, bool) {
	for i := len(p.values) - 1; i >= 0; i-- {
		if p.values[i].Key == name {
			return p.values[i].Value, true
		}
	}
	return "", false
}

// Has checks whether the parameter exists by name.
func (p *Params) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Len returns the number of named parameters.
func (p *Params) Len() int {
	return len(p.values)
}

// Set binds value to name, replacing any previous value bound to name. The value is percent-decoded,
// falling back to the raw value if it's not a valid escape sequence.
func (p *Params) Set(name, value string) {
	value = unescape(value)
	for i := range p.values {
		if p.values[i].Key == name {
			p.values[i].Value = value
			return
		}
	}
	p.values = append(p.values, Param{Key: name, Value: value})
}

// bind appends value to name without replacing earlier bindings, so a lookup can restore p by
// truncating it.
func (p *Params) bind(name, value string) {
	p.values = append(p.values, Param{Key: name, Value: unescape(value)})
}

// Catchall returns the decoded trailing segments matched by a catchall, or an empty slice if the
// lookup did not fall back to a catchall.
func (p *Params) Catchall() []string {
	if p.catchall == nil {
		return []string{}
	}
	return p.catchall
}

// SetCatchall stores segments as the catchall capture, percent-decoding each one.
func (p *Params) SetCatchall(segments []string) {
	p.catchall = p.catchall[:0]
	for _, s := range segments {
		p.catchall = append(p.catchall, unescape(s))
	}
}

// All returns an iterator over the named parameters in binding order.
func (p *Params) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, param := range p.values {
			if !yield(param.Key, param.Value) {
				return
			}
		}
	}
}

// Next pops the next stored parameter, which must be bound to name. Parameters are consumed in the
// order they appear in the matched route. It returns an error that is [ErrNoMoreParams] if every
// parameter was already consumed, or a [ParamMismatchError] if the next parameter has another name.
func (p *Params) Next(name string) (string, error) {
	if p.next >= len(p.values) {
		return "", fmt.Errorf("%w: expected '%s'", ErrNoMoreParams, name)
	}
	param := p.values[p.next]
	if param.Key != name {
		return "", &ParamMismatchError{Expected: name, Got: param.Key}
	}
	p.next++
	return param.Value, nil
}

// Reset clears all bound values so p can be reused for another lookup.
func (p *Params) Reset() {
	clear(p.values)
	p.values = p.values[:0]
	p.catchall = p.catchall[:0]
	p.next = 0
}

// Clone make a copy of Params.
func (p *Params) Clone() *Params {
	cp := &Params{next: p.next}
	if len(p.values) != 0 {
		cp.values = make([]Param, len(p.values))
		copy(cp.values, p.values)
	}
	if len(p.catchall) != 0 {
		cp.catchall = make([]string, len(p.catchall))
		copy(cp.catchall, p.catchall)
	}
	return cp
}

// truncate drops every parameter bound after the first n.
func (p *Params) truncate(n int) {
	if n < len(p.values) {
		clear(p.values[n:])
		p.values = p.values[:n]
	}
}

// ParamAs returns the parameter bound to name converted to V. It returns false if the parameter is
// missing or cannot be converted.
func ParamAs[V Parsable](p *Params, name string) (V, bool) {
	s, ok := p.Get(name)
	if !ok {
		var zero V
		return zero, false
	}
	return parseAs[V](s)
}

// NextAs is like [Params.Next] but converts the value to V. A conversion failure returns an error
// that is [ErrParamInvalid]; the parameter is consumed anyway.
func NextAs[V Parsable](p *Params, name string) (V, error) {
	var zero V
	s, err := p.Next(name)
	if err != nil {
		return zero, err
	}
	v, ok := parseAs[V](s)
	if !ok {
		return zero, fmt.Errorf("%w: '%s' cannot be converted to %T", ErrParamInvalid, name, zero)
	}
	return v, nil
}

func parseAs[V Parsable](s string) (V, bool) {
	var v V
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return v, false
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return v, false
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return v, false
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return v, false
		}
		rv.SetFloat(f)
	default:
		return v, false
	}
	return v, true
}

func unescape(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
