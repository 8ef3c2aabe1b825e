// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/fault"
)

// KeySeparator - joins the parts of a record key
const KeySeparator = ":"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Header - leading fields of every stored record
type Header struct {
	Class string `json:"class"`
	Key   string `json:"key"`
}

// Entity - a record that can be stored in a List
type Entity interface {
	Class() string
	KeyParts() []interface{}
	Envelope() *Header
}

// MakeKey - join string and integer parts into a record key
func MakeKey(parts ...interface{}) (string, error) {
	if 0 == len(parts) {
		return "", errors.Wrap(fault.InvalidKeyComponent, "no key parts")
	}

	s := make([]string, len(parts))
	for i, p := range parts {
		switch v := p.(type) {
		case string:
			if strings.Contains(v, KeySeparator) {
				return "", errors.Wrapf(fault.InvalidKeyComponent, "part: %d  value: %q contains separator", i, v)
			}
			s[i] = v
		case int:
			s[i] = strconv.FormatInt(int64(v), 10)
		case int8:
			s[i] = strconv.FormatInt(int64(v), 10)
		case int16:
			s[i] = strconv.FormatInt(int64(v), 10)
		case int32:
			s[i] = strconv.FormatInt(int64(v), 10)
		case int64:
			s[i] = strconv.FormatInt(v, 10)
		case uint:
			s[i] = strconv.FormatUint(uint64(v), 10)
		case uint8:
			s[i] = strconv.FormatUint(uint64(v), 10)
		case uint16:
			s[i] = strconv.FormatUint(uint64(v), 10)
		case uint32:
			s[i] = strconv.FormatUint(uint64(v), 10)
		case uint64:
			s[i] = strconv.FormatUint(v, 10)
		default:
			return "", errors.Wrapf(fault.InvalidKeyComponent, "part: %d  unsupported type: %T", i, p)
		}
	}
	return strings.Join(s, KeySeparator), nil
}

// SplitKey - inverse of MakeKey
func SplitKey(key string) []string {
	return strings.Split(key, KeySeparator)
}

// KeyOf - the record key of an entity
func KeyOf(entity Entity) (string, error) {
	return MakeKey(entity.KeyParts()...)
}

// Serialize - stamp the header and encode
//
// struct fields are encoded in declaration order so the result is
// reproducible
func Serialize(entity Entity) ([]byte, error) {
	key, err := KeyOf(entity)
	if nil != err {
		return nil, err
	}
	h := entity.Envelope()
	h.Class = entity.Class()
	h.Key = key
	return json.Marshal(entity)
}

// Deserialize - decode a record of the expected class
func Deserialize[T any, P interface {
	*T
	Entity
}](data []byte, class string) (*T, error) {
	record := new(T)
	if err := json.Unmarshal(data, record); nil != err {
		return nil, errors.Wrapf(fault.MalformedRecord, "decode error: %s", err)
	}
	h := P(record).Envelope()
	if h.Class != class {
		return nil, errors.Wrapf(fault.MalformedRecord, "class: %q  expected: %q", h.Class, class)
	}
	return record, nil
}
