// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/fault"
)

// CanonicalIPandPort - make the IP:Port canonical
//
// examples:
//
//	IPv4:  127.0.0.1:1234
//	IPv6:  [::1]:1234
func CanonicalIPandPort(hostPort string) (string, error) {

	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return "", errors.Wrapf(fault.InvalidIpAddress, "%q: %s", hostPort, err)
	}

	IP := net.ParseIP(strings.TrimSpace(host))
	if nil == IP {
		return "", errors.Wrapf(fault.InvalidIpAddress, "%q", hostPort)
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err {
		return "", errors.Wrapf(fault.InvalidPortNumber, "%q", hostPort)
	}
	if numericPort < 1 || numericPort > 65535 {
		return "", errors.Wrapf(fault.InvalidPortNumber, "%q", hostPort)
	}

	if nil != IP.To4() {
		return IP.String() + ":" + strconv.Itoa(numericPort), nil
	}
	return "[" + IP.String() + "]:" + strconv.Itoa(numericPort), nil
}
