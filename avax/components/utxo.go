// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

// UTXO is one unspent output record. Immutable once created.
type UTXO struct {
	CodecVersion uint16
	UTXOID
	AssetID avax.ID
	Out     Output
}

// NewUTXO is a constructor for UTXO.
func NewUTXO(txID avax.ID, outputIndex uint32, assetID avax.ID, out Output) *UTXO {
	return &UTXO{
		CodecVersion: avax.CodecVersion,
		UTXOID:       UTXOID{TxID: txID, OutputIndex: outputIndex},
		AssetID:      assetID,
		Out:          out,
	}
}

// Bytes returns codec version | txID | output index | assetID | type id | output body.
func (utxo *UTXO) Bytes() []byte {
	b := bintools.AppendUint16(nil, utxo.CodecVersion)
	b = append(b, utxo.UTXOID.Bytes()...)
	b = append(b, utxo.AssetID.Bytes()...)
	b = bintools.AppendUint32(b, utxo.Out.TypeID())

	return append(b, utxo.Out.Bytes()...)
}

// FromBytes fills the UTXO from serialized bytes using the chain registry.
func (utxo *UTXO) FromBytes(registry *Registry, b []byte) error {
	r := bytereader.New(b)

	var err error
	if utxo.CodecVersion, err = r.ReadUint16(); err != nil {
		return err
	}
	if err = utxo.UTXOID.FromBytes(r); err != nil {
		return err
	}

	raw, err := r.Read(avax.IDLen)
	if err != nil {
		return err
	}
	if utxo.AssetID, err = avax.NewID(raw); err != nil {
		return err
	}

	typeID, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if utxo.Out, err = registry.SelectOutput(typeID); err != nil {
		return err
	}

	return utxo.Out.FromBytes(r)
}

// ID returns CB58 form of the serialized UTXO, its identity within a set.
func (utxo *UTXO) ID() string {
	return bintools.CB58Encode(utxo.Bytes())
}

// String returns the UTXO identity.
func (utxo *UTXO) String() string {
	return utxo.ID()
}

// ParseUTXO returns a UTXO decoded from its CB58 form.
func ParseUTXO(registry *Registry, s string) (*UTXO, error) {
	b, err := bintools.CB58Decode(s)
	if err != nil {
		return nil, err
	}

	utxo := &UTXO{}
	if err = utxo.FromBytes(registry, b); err != nil {
		return nil, err
	}

	return utxo, nil
}
