// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

// Input is one variant of the tagged input family.
type Input interface {
	// TypeID returns the codec type id of the variant.
	TypeID() uint32
	// Bytes returns the serialized variant body without the type id.
	Bytes() []byte
	// FromBytes fills the variant from the reader positioned after the type id.
	FromBytes(r *bytereader.Reader) error
	// Sources returns signer addresses recorded at selection time, in sig-index order.
	Sources() []avax.Address
	// Verify checks structural invariants of the variant.
	Verify() error
}

// AmountInput is an input consuming a spendable transfer amount.
type AmountInput interface {
	Input
	// Amount returns the consumed value of the input.
	Amount() uint64
}

// SigIndex points into the referenced output's address list. Source keeps the
// address behind Index for signing and is not serialized.
type SigIndex struct {
	Index  uint32
	Source avax.Address
}

// TransferInput consumes an SECP transfer output in full.
type TransferInput struct {
	Amt     uint64
	SigIdxs []SigIndex // strictly increasing by Index.
}

// TypeID returns the codec type id of the variant.
func (in *TransferInput) TypeID() uint32 {
	return SECPTransferInputID
}

// Amount returns the consumed value of the input.
func (in *TransferInput) Amount() uint64 {
	return in.Amt
}

// Sources returns signer addresses recorded at selection time, in sig-index order.
func (in *TransferInput) Sources() []avax.Address {
	sources := make([]avax.Address, len(in.SigIdxs))
	for idx, sigIdx := range in.SigIdxs {
		sources[idx] = sigIdx.Source
	}

	return sources
}

// Bytes returns the serialized variant body without the type id.
func (in *TransferInput) Bytes() []byte {
	b := bintools.AppendUint64(nil, in.Amt)
	b = bintools.AppendUint32(b, uint32(len(in.SigIdxs)))
	for _, sigIdx := range in.SigIdxs {
		b = bintools.AppendUint32(b, sigIdx.Index)
	}

	return b
}

// FromBytes fills the variant from the reader positioned after the type id.
func (in *TransferInput) FromBytes(r *bytereader.Reader) error {
	var err error
	if in.Amt, err = r.ReadUint64(); err != nil {
		return err
	}

	numIdxs, err := r.ReadUint32()
	if err != nil {
		return err
	}

	in.SigIdxs = make([]SigIndex, numIdxs)
	for idx := range in.SigIdxs {
		if in.SigIdxs[idx].Index, err = r.ReadUint32(); err != nil {
			return err
		}
	}

	return nil
}

// Verify checks structural invariants of the variant.
func (in *TransferInput) Verify() error {
	if in.Amt == 0 || len(in.SigIdxs) == 0 {
		return avax.ErrConfig
	}
	for idx := 1; idx < len(in.SigIdxs); idx++ {
		if in.SigIdxs[idx-1].Index >= in.SigIdxs[idx].Index {
			return avax.ErrConfig
		}
	}

	return nil
}

// StakeableLockIn wraps a transfer input consuming a stakeable locked output.
type StakeableLockIn struct {
	Lock       uint64
	TransferIn *TransferInput
}

// TypeID returns the codec type id of the variant.
func (in *StakeableLockIn) TypeID() uint32 {
	return StakeableLockInID
}

// Amount returns the consumed value of the wrapped input.
func (in *StakeableLockIn) Amount() uint64 {
	return in.TransferIn.Amount()
}

// Sources returns signer addresses of the wrapped input.
func (in *StakeableLockIn) Sources() []avax.Address {
	return in.TransferIn.Sources()
}

// Bytes returns the serialized variant body without the type id.
func (in *StakeableLockIn) Bytes() []byte {
	b := bintools.AppendUint64(nil, in.Lock)
	b = bintools.AppendUint32(b, in.TransferIn.TypeID())

	return append(b, in.TransferIn.Bytes()...)
}

// FromBytes fills the variant from the reader positioned after the type id.
func (in *StakeableLockIn) FromBytes(r *bytereader.Reader) error {
	var err error
	if in.Lock, err = r.ReadUint64(); err != nil {
		return err
	}

	innerTypeID, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if innerTypeID != SECPTransferInputID {
		return avax.ErrUnknownType
	}

	in.TransferIn = &TransferInput{}

	return in.TransferIn.FromBytes(r)
}

// Verify checks structural invariants of the variant.
func (in *StakeableLockIn) Verify() error {
	if in.TransferIn == nil {
		return avax.ErrConfig
	}

	return in.TransferIn.Verify()
}

// EVMInput debits value from a C-chain account. The record is untagged,
// its layout is fixed by the surrounding transaction. The account address
// doubles as the signer lookup key.
type EVMInput struct {
	Address avax.Address
	Amt     uint64
	AssetID avax.ID
	Nonce   uint64
}

// Amount returns the debited value.
func (in *EVMInput) Amount() uint64 {
	return in.Amt
}

// Sources returns the account address as the single signer.
func (in *EVMInput) Sources() []avax.Address {
	return []avax.Address{in.Address}
}

// Bytes returns the serialized record.
func (in *EVMInput) Bytes() []byte {
	b := append([]byte(nil), in.Address.Bytes()...)
	b = bintools.AppendUint64(b, in.Amt)
	b = append(b, in.AssetID.Bytes()...)

	return bintools.AppendUint64(b, in.Nonce)
}

// FromBytes fills the record from the reader.
func (in *EVMInput) FromBytes(r *bytereader.Reader) error {
	raw, err := r.Read(avax.AddressLen)
	if err != nil {
		return err
	}
	if in.Address, err = avax.NewAddress(raw); err != nil {
		return err
	}
	if in.Amt, err = r.ReadUint64(); err != nil {
		return err
	}
	if raw, err = r.Read(avax.IDLen); err != nil {
		return err
	}
	if in.AssetID, err = avax.NewID(raw); err != nil {
		return err
	}
	in.Nonce, err = r.ReadUint64()

	return err
}

// Verify checks structural invariants of the record.
func (in *EVMInput) Verify() error {
	if in.Amt == 0 {
		return avax.ErrConfig
	}

	return nil
}
