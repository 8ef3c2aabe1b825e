// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"crypto/x509"
	"sync"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ballotd/configuration"
	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/util"
	"github.com/bitmark-inc/logger"
)

// MemberConfiguration - one certificate
type MemberConfiguration struct {
	Name        string `gluamapper:"name" json:"name"`
	Fingerprint string `gluamapper:"fingerprint" json:"fingerprint"`
}

// OrganisationConfiguration - the members of one MSP
type OrganisationConfiguration struct {
	MSP     string                `gluamapper:"msp" json:"msp"`
	Members []MemberConfiguration `gluamapper:"members" json:"members"`
}

// FileConfiguration - content of the membership file
type FileConfiguration struct {
	Organisations []OrganisationConfiguration `gluamapper:"organisations" json:"organisations"`
}

// Identity - a resolved caller
//
// implements ledger.ClientIdentity
type Identity struct {
	mspID string
	id    string
}

// NewIdentity - an identity not backed by a certificate
func NewIdentity(mspID string, id string) *Identity {
	return &Identity{
		mspID: mspID,
		id:    id,
	}
}

// GetMSPID - organisation of the caller
func (i *Identity) GetMSPID() (string, error) {
	return i.mspID, nil
}

// GetID - name of the caller within its organisation
func (i *Identity) GetID() (string, error) {
	return i.id, nil
}

// Registry - the current set of members
type Registry struct {
	sync.RWMutex

	log      *logger.L
	fileName string
	members  map[util.FingerprintBytes]*Identity
}

// Load - read a membership file
func Load(fileName string) (*Registry, error) {
	r := &Registry{
		log:      logger.New("membership"),
		fileName: fileName,
	}
	if err := r.Reload(); nil != err {
		return nil, err
	}
	return r, nil
}

// FileName - the file the members were read from
func (r *Registry) FileName() string {
	return r.fileName
}

// Reload - read the file again
//
// on error the existing members are kept
func (r *Registry) Reload() error {
	var file FileConfiguration
	if err := configuration.ParseConfigurationFile(r.fileName, &file, nil); nil != err {
		r.log.Errorf("membership file: %q  error: %s", r.fileName, err)
		return err
	}

	members, err := build(&file)
	if nil != err {
		r.log.Errorf("membership file: %q  error: %s", r.fileName, err)
		return err
	}

	r.Lock()
	r.members = members
	r.Unlock()

	r.log.Infof("membership file: %q  members: %d", r.fileName, len(members))
	return nil
}

func build(file *FileConfiguration) (map[util.FingerprintBytes]*Identity, error) {
	members := make(map[util.FingerprintBytes]*Identity)
	for _, o := range file.Organisations {
		if "" == o.MSP {
			return nil, errors.Wrap(fault.InvalidConfiguration, "organisation without msp")
		}
		for _, m := range o.Members {
			f, err := util.ParseFingerprint(m.Fingerprint)
			if nil != err {
				return nil, errors.Wrapf(err, "msp: %s  member: %q", o.MSP, m.Name)
			}
			if _, ok := members[f]; ok {
				return nil, errors.Wrapf(fault.InvalidConfiguration, "msp: %s  member: %q  duplicate fingerprint: %s", o.MSP, m.Name, f)
			}
			members[f] = &Identity{
				mspID: o.MSP,
				id:    m.Name,
			}
		}
	}
	return members, nil
}

// Count - number of registered certificates
func (r *Registry) Count() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.members)
}

// Lookup - the member owning a DER encoded certificate
func (r *Registry) Lookup(certificate []byte) (*Identity, error) {
	f := util.Fingerprint(certificate)

	r.RLock()
	identity, ok := r.members[f]
	r.RUnlock()

	if !ok {
		return nil, errors.Wrapf(fault.UnknownCertificate, "fingerprint: %s", f)
	}
	return identity, nil
}

// LookupCertificate - the member owning a parsed certificate
func (r *Registry) LookupCertificate(certificate *x509.Certificate) (*Identity, error) {
	if nil == certificate {
		return nil, fault.MissingCertificate
	}
	return r.Lookup(certificate.Raw)
}
