// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package membership - resolve client certificates to organisations
//
// the membership file is Lua returning a table of organisations, each
// listing the SHA3-256 fingerprints of its members' certificates:
//
//	return {
//	    organisations = {
//	        {
//	            msp = "Org1MSP",
//	            members = {
//	                { name = "voter-one", fingerprint = "5c1f...e2" },
//	            },
//	        },
//	    },
//	}
//
// the file is read again whenever it changes; if the new content is
// invalid the previous members remain in force
package membership
