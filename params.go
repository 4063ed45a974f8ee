// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import netcontext "context"

type ctxKey struct{}

// paramsKey is the key that holds the Params in a context.Context.
var paramsKey = ctxKey{}

// Param is a single captured path parameter.
type Param struct {
	Key   string
	Value string
}

// Params holds the parameters captured while matching a route, in path order. A wildcard capture is
// stored under [WildcardKey].
type Params []Param

// Get the matching parameter by name.
func (p Params) Get(name string) string {
	for i := range p {
		if p[i].Key == name {
			return p[i].Value
		}
	}
	return ""
}

// Has checks whether the parameter exists by name.
func (p Params) Has(name string) bool {
	for i := range p {
		if p[i].Key == name {
			return true
		}
	}

	return false
}

// Map returns the params as a map of name to value.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for i := range p {
		m[p[i].Key] = p[i].Value
	}
	return m
}

// Clone make a copy of Params.
func (p Params) Clone() Params {
	cloned := make(Params, len(p))
	copy(cloned, p)
	return cloned
}

// ParamsFromContext allows extracting params from the given context. Params are only stored in the request
// context by the [WrapH] and [WrapF] adapters.
func ParamsFromContext(ctx netcontext.Context) Params {
	p, _ := ctx.Value(paramsKey).(Params)

	return p
}
