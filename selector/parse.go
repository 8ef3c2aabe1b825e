// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package selector

import (
	"encoding/json"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/fault"
)

// numbers are kept as json.Number so large integers compare exactly
var codec = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Query - a parsed query document
type Query struct {
	Selector map[string]interface{}
	Limit    int
	Skip     int
	root     condition
}

// Parse - decode and compile a query document
func Parse(document []byte) (*Query, error) {
	var top map[string]interface{}
	if err := codec.Unmarshal(document, &top); err != nil {
		return nil, errors.Wrapf(fault.InvalidQuery, "parse: %s", err)
	}
	if nil == top {
		return nil, errors.Wrap(fault.InvalidQuery, "document is not an object")
	}

	q := &Query{}
	for name, value := range top {
		switch name {
		case "selector":
			s, ok := value.(map[string]interface{})
			if !ok {
				return nil, errors.Wrap(fault.InvalidQuery, "selector is not an object")
			}
			q.Selector = s
		case "limit":
			n, err := count(name, value)
			if err != nil {
				return nil, err
			}
			q.Limit = n
		case "skip":
			n, err := count(name, value)
			if err != nil {
				return nil, err
			}
			q.Skip = n
		default:
			return nil, errors.Wrapf(fault.InvalidQuery, "unsupported member: %q", name)
		}
	}
	if nil == q.Selector {
		return nil, errors.Wrap(fault.InvalidQuery, "missing selector")
	}

	root, err := compileSelector(nil, q.Selector)
	if err != nil {
		return nil, err
	}
	q.root = root
	return q, nil
}

// ParseString - convenience for string documents
func ParseString(document string) (*Query, error) {
	return Parse([]byte(document))
}

// Matches - true if the decoded document satisfies the selector
func (q *Query) Matches(document map[string]interface{}) bool {
	return q.root.match(document)
}

// MatchesJSON - decode a stored record and test it
//
// records that are not JSON objects never match
func (q *Query) MatchesJSON(record []byte) bool {
	var document map[string]interface{}
	if err := codec.Unmarshal(record, &document); err != nil || nil == document {
		return false
	}
	return q.Matches(document)
}

func count(name string, value interface{}) (int, error) {
	number, ok := value.(json.Number)
	if !ok {
		return 0, errors.Wrapf(fault.InvalidQuery, "%s must be a non-negative integer", name)
	}
	n, err := strconv.ParseUint(number.String(), 10, 31)
	if nil != err {
		return 0, errors.Wrapf(fault.InvalidQuery, "%s must be a non-negative integer: %s", name, number)
	}
	return int(n), nil
}

// compile one selector object, prefix holds the enclosing field path
func compileSelector(prefix []string, selector map[string]interface{}) (condition, error) {
	all := make(andCondition, 0, len(selector))

	for name, value := range selector {
		if strings.HasPrefix(name, "$") {
			if nil != prefix {
				return nil, errors.Wrapf(fault.InvalidQuery, "%s not allowed inside field: %q", name, strings.Join(prefix, "."))
			}
			c, err := compileCombination(name, value)
			if err != nil {
				return nil, err
			}
			all = append(all, c)
			continue
		}

		path := append(append([]string{}, prefix...), strings.Split(name, ".")...)
		c, err := compileField(path, value)
		if err != nil {
			return nil, err
		}
		all = append(all, c)
	}
	return all, nil
}

func compileCombination(name string, value interface{}) (condition, error) {
	switch name {
	case "$and", "$or", "$nor":
		list, ok := value.([]interface{})
		if !ok || 0 == len(list) {
			return nil, errors.Wrapf(fault.InvalidQuery, "%s requires a non-empty array", name)
		}
		conditions := make([]condition, 0, len(list))
		for _, item := range list {
			s, ok := item.(map[string]interface{})
			if !ok {
				return nil, errors.Wrapf(fault.InvalidQuery, "%s element is not an object", name)
			}
			c, err := compileSelector(nil, s)
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, c)
		}
		switch name {
		case "$and":
			return andCondition(conditions), nil
		case "$or":
			return orCondition(conditions), nil
		default:
			return norCondition(conditions), nil
		}

	case "$not":
		s, ok := value.(map[string]interface{})
		if !ok {
			return nil, errors.Wrap(fault.InvalidQuery, "$not requires an object")
		}
		c, err := compileSelector(nil, s)
		if err != nil {
			return nil, err
		}
		return notCondition{c}, nil
	}
	return nil, errors.Wrapf(fault.InvalidQuery, "unsupported operator: %q", name)
}

func compileField(path []string, value interface{}) (condition, error) {
	object, ok := value.(map[string]interface{})
	if !ok {
		return fieldCondition{path: path, op: compare{op: opEq, value: value}}, nil
	}

	operators := 0
	for name := range object {
		if strings.HasPrefix(name, "$") {
			operators += 1
		}
	}

	switch {
	case 0 == operators:
		// nested field selector, an empty object means equality with {}
		if 0 == len(object) {
			return fieldCondition{path: path, op: compare{op: opEq, value: object}}, nil
		}
		return compileSelector(path, object)

	case operators != len(object):
		return nil, errors.Wrapf(fault.InvalidQuery, "field %q mixes operators and fields", strings.Join(path, "."))
	}

	all := make(andCondition, 0, len(object))
	for name, argument := range object {
		op, err := compileOperator(name, argument)
		if err != nil {
			return nil, err
		}
		all = append(all, fieldCondition{path: path, op: op})
	}
	return all, nil
}

func compileOperator(name string, argument interface{}) (operator, error) {
	switch name {
	case "$eq":
		return compare{op: opEq, value: argument}, nil
	case "$ne":
		return compare{op: opNe, value: argument}, nil
	case "$gt":
		return compare{op: opGt, value: argument}, nil
	case "$gte":
		return compare{op: opGte, value: argument}, nil
	case "$lt":
		return compare{op: opLt, value: argument}, nil
	case "$lte":
		return compare{op: opLte, value: argument}, nil
	case "$in", "$nin":
		list, ok := argument.([]interface{})
		if !ok {
			return nil, errors.Wrapf(fault.InvalidQuery, "%s requires an array", name)
		}
		return membership{values: list, negate: "$nin" == name}, nil
	case "$exists":
		b, ok := argument.(bool)
		if !ok {
			return nil, errors.Wrap(fault.InvalidQuery, "$exists requires a boolean")
		}
		return exists(b), nil
	}
	return nil, errors.Wrapf(fault.InvalidQuery, "unsupported operator: %q", name)
}
