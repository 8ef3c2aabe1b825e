// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/fault"
)

const (
	compositeKeyNamespace = "\x00"
	minUnicodeRuneValue   = 0 // U+0000
)

// CreateCompositeKey - build a ledger key from an object type and attributes
func CreateCompositeKey(objectType string, attributes []string) (string, error) {
	if err := validateCompositeKeyAttribute(objectType); err != nil {
		return "", err
	}
	ck := compositeKeyNamespace + objectType + string(rune(minUnicodeRuneValue))
	for _, att := range attributes {
		if err := validateCompositeKeyAttribute(att); err != nil {
			return "", err
		}
		ck += att + string(rune(minUnicodeRuneValue))
	}
	return ck, nil
}

// SplitCompositeKey - inverse of CreateCompositeKey
func SplitCompositeKey(compositeKey string) (string, []string, error) {
	if !strings.HasPrefix(compositeKey, compositeKeyNamespace) || !strings.HasSuffix(compositeKey, string(rune(minUnicodeRuneValue))) {
		return "", nil, errors.Wrapf(fault.InvalidKeyComponent, "not a composite key: %q", compositeKey)
	}
	parts := strings.Split(compositeKey[1:len(compositeKey)-1], string(rune(minUnicodeRuneValue)))
	return parts[0], parts[1:], nil
}

func validateCompositeKeyAttribute(s string) error {
	if !utf8.ValidString(s) {
		return errors.Wrapf(fault.InvalidKeyComponent, "not a valid utf8 string: %x", s)
	}
	if strings.ContainsRune(s, rune(minUnicodeRuneValue)) {
		return errors.Wrapf(fault.InvalidKeyComponent, "contains U+0000: %q", s)
	}
	return nil
}
