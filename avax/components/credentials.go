// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

// SignatureLen defines byte length of one recoverable signature.
const SignatureLen = 65

// Credential carries signatures for one input, ordered by its sig indices.
type Credential struct {
	TypeID uint32
	Sigs   [][]byte
}

// Bytes returns type id | signature count | signatures.
func (c *Credential) Bytes() []byte {
	b := bintools.AppendUint32(nil, c.TypeID)
	b = bintools.AppendUint32(b, uint32(len(c.Sigs)))
	for _, sig := range c.Sigs {
		b = append(b, sig...)
	}

	return b
}

// FromBytes fills the credential from the reader.
func (c *Credential) FromBytes(r *bytereader.Reader) error {
	var err error
	if c.TypeID, err = r.ReadUint32(); err != nil {
		return err
	}

	numSigs, err := r.ReadUint32()
	if err != nil {
		return err
	}

	c.Sigs = make([][]byte, numSigs)
	for idx := range c.Sigs {
		raw, err := r.Read(SignatureLen)
		if err != nil {
			return err
		}
		c.Sigs[idx] = append([]byte(nil), raw...)
	}

	return nil
}

// Verify checks that every signature has the recoverable length.
func (c *Credential) Verify() error {
	for _, sig := range c.Sigs {
		if len(sig) != SignatureLen {
			return avax.ErrConfig
		}
	}

	return nil
}
