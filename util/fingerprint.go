// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ballotd/fault"
)

// FingerprintBytes - to hold type for fingerprint
type FingerprintBytes [32]byte

// Fingerprint - SHA3-256 of a DER encoded certificate
func Fingerprint(certificate []byte) FingerprintBytes {
	return sha3.Sum256(certificate)
}

// String - lower case hex
func (f FingerprintBytes) String() string {
	return hex.EncodeToString(f[:])
}

// ParseFingerprint - decode a hex fingerprint, colons are ignored
func ParseFingerprint(s string) (FingerprintBytes, error) {
	var f FingerprintBytes

	b, err := hex.DecodeString(strings.ReplaceAll(strings.TrimSpace(s), ":", ""))
	if nil != err {
		return f, errors.Wrapf(fault.InvalidFingerprint, "%q: %s", s, err)
	}
	if len(b) != len(f) {
		return f, errors.Wrapf(fault.InvalidFingerprint, "%q: length: %d  expected: %d", s, len(b), len(f))
	}
	copy(f[:], b)
	return f, nil
}
