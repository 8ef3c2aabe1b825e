// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Context (key, voter, state) is attached by callers with
// github.com/pkg/errors; the IsErrX classifiers and errors.Is still
// see the base instance through the wrapping.
package fault
