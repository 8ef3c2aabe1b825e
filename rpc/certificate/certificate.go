// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"os"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/util"
	"github.com/bitmark-inc/logger"
)

// Get - verify a PEM certificate and key and build a server TLS
// configuration that asks clients for their certificates
//
// the fingerprint can be checked with:
//
//	openssl x509 -outform DER -in rpc.crt | sha3sum -a 256
func Get(log *logger.L, name string, certificate string, key string) (*tls.Config, util.FingerprintBytes, error) {
	var fin util.FingerprintBytes

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		ClientAuth: tls.RequestClientCert,
		MinVersion: tls.VersionTLS12,
	}

	fin = util.Fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Load - as Get but read from the named files
func Load(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, util.FingerprintBytes, error) {
	var fin util.FingerprintBytes

	certificate, err := os.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s certificate: %q  error: %s", name, certificateFileName, err)
		return nil, fin, errors.Wrapf(fault.MissingCertificate, "%s: %s", name, err)
	}
	key, err := os.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s private key: %q  error: %s", name, keyFileName, err)
		return nil, fin, errors.Wrapf(fault.MissingParameters, "%s: %s", name, err)
	}
	return Get(log, name, string(certificate), string(key))
}
