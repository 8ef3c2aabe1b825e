// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"strings"

	"github.com/bitmark-inc/ballotd/util"
	"github.com/bitmark-inc/logger"
)

const minConnectionCount = 1

// Listener - a started network service
type Listener interface {
	Serve() error
	Close()
}

// validate listen addresses and select the network for each
//
// "*:PORT" becomes "[::]:PORT" on the assumption that this will
// listen on tcp4 and tcp6
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	networks := make([]string, len(addrs))
	canonical := make([]string, len(addrs))
	for i, listen := range addrs {
		listen = strings.TrimSpace(listen)
		wildcard := strings.HasPrefix(listen, "*:")
		if wildcard {
			listen = "[::]" + listen[1:]
		}

		c, err := util.CanonicalIPandPort(listen)
		if nil != err {
			log.Errorf("listen address: %q  error: %s", addrs[i], err)
			return nil, nil, err
		}
		canonical[i] = c

		switch {
		case wildcard:
			networks[i] = "tcp"
		case '[' == c[0]:
			networks[i] = "tcp6"
		default:
			networks[i] = "tcp4"
		}
	}

	return networks, canonical, nil
}
