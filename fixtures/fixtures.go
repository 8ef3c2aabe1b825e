// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// sample members used by several packages
const (
	Org1MSP = "Org1MSP"
	Org2MSP = "Org2MSP"
	Voter1  = "voter-one"
	Voter2  = "voter-two"
)

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// CertificatePEM - a fresh self signed certificate and key
func CertificatePEM(name string) (string, string, error) {
	certPEM, keyPEM, err := certgen.NewTLSCertPair("ballotd test certificate for: "+name, time.Now().Add(24*time.Hour), false, []string{"127.0.0.1"})
	if nil != err {
		return "", "", err
	}
	return string(certPEM), string(keyPEM), nil
}

// Certificate - a fresh self signed client certificate
func Certificate(name string) (*x509.Certificate, tls.Certificate, error) {
	certPEM, keyPEM, err := CertificatePEM(name)
	if nil != err {
		return nil, tls.Certificate{}, err
	}
	pair, err := tls.X509KeyPair([]byte(certPEM), []byte(keyPEM))
	if nil != err {
		return nil, tls.Certificate{}, err
	}
	cert, err := x509.ParseCertificate(pair.Certificate[0])
	if nil != err {
		return nil, tls.Certificate{}, err
	}
	return cert, pair, nil
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
