// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package selector - parse and evaluate selector query documents
//
// A query document has the form:
//
//	{
//	  "selector": { <field>: <value or operators>, ... },
//	  "limit":    <non-negative integer>,   (optional, 0 = no limit)
//	  "skip":     <non-negative integer>    (optional)
//	}
//
// Field names may be dotted paths into nested objects.  A plain value
// means equality.  Supported operators:
//
//	field level:    $eq $ne $gt $gte $lt $lte $in $nin $exists
//	selector level: $and $or $nor (arrays of selectors) $not (selector)
//
// Values are ordered null < false < true < numbers < strings < arrays
// < objects so that comparisons between different types are stable.
// A field that is absent from a document only matches {"$exists": false}.
package selector
