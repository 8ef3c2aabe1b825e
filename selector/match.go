// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package selector

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strings"
)

type condition interface {
	match(document map[string]interface{}) bool
}

type andCondition []condition
type orCondition []condition
type norCondition []condition

type notCondition struct {
	c condition
}

type fieldCondition struct {
	path []string
	op   operator
}

func (a andCondition) match(document map[string]interface{}) bool {
	for _, c := range a {
		if !c.match(document) {
			return false
		}
	}
	return true
}

func (o orCondition) match(document map[string]interface{}) bool {
	for _, c := range o {
		if c.match(document) {
			return true
		}
	}
	return false
}

func (n norCondition) match(document map[string]interface{}) bool {
	return !orCondition(n).match(document)
}

func (n notCondition) match(document map[string]interface{}) bool {
	return !n.c.match(document)
}

func (f fieldCondition) match(document map[string]interface{}) bool {
	value, present := lookup(document, f.path)
	return f.op.apply(value, present)
}

// walk a dotted path through nested objects
func lookup(document map[string]interface{}, path []string) (interface{}, bool) {
	var current interface{} = document
	for _, name := range path {
		object, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = object[name]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

type operator interface {
	apply(value interface{}, present bool) bool
}

type comparison int

const (
	opEq comparison = iota
	opNe
	opGt
	opGte
	opLt
	opLte
)

type compare struct {
	op    comparison
	value interface{}
}

func (c compare) apply(value interface{}, present bool) bool {
	if !present {
		return false
	}
	r := collate(value, c.value)
	switch c.op {
	case opEq:
		return 0 == r
	case opNe:
		return 0 != r
	case opGt:
		return r > 0
	case opGte:
		return r >= 0
	case opLt:
		return r < 0
	case opLte:
		return r <= 0
	}
	return false
}

type membership struct {
	values []interface{}
	negate bool
}

func (m membership) apply(value interface{}, present bool) bool {
	if !present {
		return false
	}
	for _, v := range m.values {
		if 0 == collate(value, v) {
			return !m.negate
		}
	}
	return m.negate
}

type exists bool

func (e exists) apply(_ interface{}, present bool) bool {
	return present == bool(e)
}

// ordering rank of each JSON type
func rank(v interface{}) int {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 2
		}
		return 1
	case json.Number, float64, int, int64, uint64:
		return 3
	case string:
		return 4
	case []interface{}:
		return 5
	case map[string]interface{}:
		return 6
	}
	return 7
}

// collate - compare two decoded JSON values, result is -1, 0 or +1
func collate(a interface{}, b interface{}) int {
	ra := rank(a)
	rb := rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch x := a.(type) {
	case json.Number, float64, int, int64, uint64:
		return compareNumbers(x, b)

	case string:
		return strings.Compare(x, b.(string))

	case []interface{}:
		y := b.([]interface{})
		for i := 0; i < len(x) && i < len(y); i += 1 {
			if r := collate(x[i], y[i]); 0 != r {
				return r
			}
		}
		switch {
		case len(x) < len(y):
			return -1
		case len(x) > len(y):
			return 1
		}
		return 0

	case map[string]interface{}:
		if reflect.DeepEqual(x, b) {
			return 0
		}
		// objects only support equality, order by size for stability
		if len(x) < len(b.(map[string]interface{})) {
			return -1
		}
		return 1
	}

	// null, false and true are fully determined by rank
	return 0
}

// compareNumbers - exact comparison, integers beyond 2^53 keep every digit
func compareNumbers(a interface{}, b interface{}) int {
	x, okx := rational(a)
	y, oky := rational(b)
	switch {
	case okx && oky:
		return x.Cmp(y)
	case okx:
		return 1
	case oky:
		return -1
	}
	return 0
}

func rational(v interface{}) (*big.Rat, bool) {
	r := new(big.Rat)
	switch n := v.(type) {
	case json.Number:
		return r.SetString(n.String())
	case float64:
		if nil == r.SetFloat64(n) {
			return nil, false
		}
		return r, true
	case int:
		return r.SetInt64(int64(n)), true
	case int64:
		return r.SetInt64(n), true
	case uint64:
		return r.SetInt(new(big.Int).SetUint64(n)), true
	}
	return nil, false
}
