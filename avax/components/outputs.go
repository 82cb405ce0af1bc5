// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"bytes"

	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

// Output is one variant of the tagged output family.
type Output interface {
	// TypeID returns the codec type id of the variant.
	TypeID() uint32
	// Bytes returns the serialized variant body without the type id.
	Bytes() []byte
	// FromBytes fills the variant from the reader positioned after the type id.
	FromBytes(r *bytereader.Reader) error
	// Addresses returns owner addresses of the output.
	Addresses() []avax.Address
	// AddressIndex returns position of addr in the owner list, -1 if absent.
	AddressIndex(addr avax.Address) int
	// Spenders returns owner addresses covered by from, in owner-list order,
	// or nil while the output is still locked as of asOf.
	Spenders(from []avax.Address, asOf uint64) []avax.Address
	// MeetsThreshold reports whether from can satisfy the signing threshold as of asOf.
	MeetsThreshold(from []avax.Address, asOf uint64) bool
	// Verify checks structural invariants of the variant.
	Verify() error
}

// AmountOutput is an output carrying a spendable transfer amount.
type AmountOutput interface {
	Output
	// Amount returns the transferable value of the output.
	Amount() uint64
}

// CompareOutputs returns lexicographic ordering of two outputs over their
// type-id-prefixed serialized bytes.
func CompareOutputs(a, b Output) int {
	aBytes := bintools.AppendUint32(nil, a.TypeID())
	bBytes := bintools.AppendUint32(nil, b.TypeID())

	return bytes.Compare(append(aBytes, a.Bytes()...), append(bBytes, b.Bytes()...))
}

// OutputOwners holds the owner fields shared by the SECP output family.
type OutputOwners struct {
	Locktime  uint64
	Threshold uint32
	Addrs     []avax.Address // strictly ascending.
}

// Addresses returns owner addresses of the output.
func (oo *OutputOwners) Addresses() []avax.Address {
	return oo.Addrs
}

// AddressIndex returns position of addr in the owner list, -1 if absent.
func (oo *OutputOwners) AddressIndex(addr avax.Address) int {
	for idx, own := range oo.Addrs {
		if own == addr {
			return idx
		}
	}

	return -1
}

// Spenders returns owner addresses covered by from, in owner-list order,
// or nil while the output is still locked as of asOf.
func (oo *OutputOwners) Spenders(from []avax.Address, asOf uint64) []avax.Address {
	if oo.Locktime > asOf {
		return nil
	}

	var spenders []avax.Address
	for _, own := range oo.Addrs {
		for _, addr := range from {
			if own == addr {
				spenders = append(spenders, own)
				break
			}
		}
	}

	return spenders
}

// MeetsThreshold reports whether from can satisfy the signing threshold as of asOf.
func (oo *OutputOwners) MeetsThreshold(from []avax.Address, asOf uint64) bool {
	if oo.Locktime > asOf {
		return false
	}

	return len(oo.Spenders(from, asOf)) >= int(oo.Threshold)
}

// Verify checks structural invariants of the owner fields.
func (oo *OutputOwners) Verify() error {
	if int(oo.Threshold) > len(oo.Addrs) {
		return avax.ErrConfig
	}
	if !avax.AddressesSorted(oo.Addrs) {
		return avax.ErrConfig
	}

	return nil
}

// appendOwners appends serialized owner fields to b.
func (oo *OutputOwners) appendOwners(b []byte) []byte {
	b = bintools.AppendUint64(b, oo.Locktime)
	b = bintools.AppendUint32(b, oo.Threshold)
	b = bintools.AppendUint32(b, uint32(len(oo.Addrs)))
	for _, addr := range oo.Addrs {
		b = append(b, addr.Bytes()...)
	}

	return b
}

// readOwners fills owner fields from the reader.
func (oo *OutputOwners) readOwners(r *bytereader.Reader) error {
	var err error
	if oo.Locktime, err = r.ReadUint64(); err != nil {
		return err
	}
	if oo.Threshold, err = r.ReadUint32(); err != nil {
		return err
	}

	numAddrs, err := r.ReadUint32()
	if err != nil {
		return err
	}

	oo.Addrs = make([]avax.Address, numAddrs)
	for idx := range oo.Addrs {
		raw, err := r.Read(avax.AddressLen)
		if err != nil {
			return err
		}
		if oo.Addrs[idx], err = avax.NewAddress(raw); err != nil {
			return err
		}
	}

	return nil
}

// TransferOutput is the SECP value-bearing output.
type TransferOutput struct {
	Amt uint64
	OutputOwners
}

// TypeID returns the codec type id of the variant.
func (out *TransferOutput) TypeID() uint32 {
	return SECPTransferOutputID
}

// Amount returns the transferable value of the output.
func (out *TransferOutput) Amount() uint64 {
	return out.Amt
}

// Bytes returns the serialized variant body without the type id.
func (out *TransferOutput) Bytes() []byte {
	return out.appendOwners(bintools.AppendUint64(nil, out.Amt))
}

// FromBytes fills the variant from the reader positioned after the type id.
func (out *TransferOutput) FromBytes(r *bytereader.Reader) error {
	var err error
	if out.Amt, err = r.ReadUint64(); err != nil {
		return err
	}

	return out.readOwners(r)
}

// Verify checks structural invariants of the variant.
func (out *TransferOutput) Verify() error {
	if out.Amt == 0 {
		return avax.ErrConfig
	}

	return out.OutputOwners.Verify()
}

// MintOutput grants the right to mint more of an SECP asset.
type MintOutput struct {
	OutputOwners
}

// TypeID returns the codec type id of the variant.
func (out *MintOutput) TypeID() uint32 {
	return SECPMintOutputID
}

// Bytes returns the serialized variant body without the type id.
func (out *MintOutput) Bytes() []byte {
	return out.appendOwners(nil)
}

// FromBytes fills the variant from the reader positioned after the type id.
func (out *MintOutput) FromBytes(r *bytereader.Reader) error {
	return out.readOwners(r)
}

// OwnerOutput is the P-chain plain ownership output.
type OwnerOutput struct {
	OutputOwners
}

// TypeID returns the codec type id of the variant.
func (out *OwnerOutput) TypeID() uint32 {
	return PlatformOwnerOutputID
}

// Bytes returns the serialized variant body without the type id.
func (out *OwnerOutput) Bytes() []byte {
	return out.appendOwners(nil)
}

// FromBytes fills the variant from the reader positioned after the type id.
func (out *OwnerOutput) FromBytes(r *bytereader.Reader) error {
	return out.readOwners(r)
}

// NFTMintOutput grants the right to mint NFTs of a group.
type NFTMintOutput struct {
	GroupID uint32
	OutputOwners
}

// TypeID returns the codec type id of the variant.
func (out *NFTMintOutput) TypeID() uint32 {
	return NFTMintOutputID
}

// Bytes returns the serialized variant body without the type id.
func (out *NFTMintOutput) Bytes() []byte {
	return out.appendOwners(bintools.AppendUint32(nil, out.GroupID))
}

// FromBytes fills the variant from the reader positioned after the type id.
func (out *NFTMintOutput) FromBytes(r *bytereader.Reader) error {
	var err error
	if out.GroupID, err = r.ReadUint32(); err != nil {
		return err
	}

	return out.readOwners(r)
}

// NFTTransferOutput carries one NFT payload of a group.
type NFTTransferOutput struct {
	GroupID uint32
	Payload []byte
	OutputOwners
}

// TypeID returns the codec type id of the variant.
func (out *NFTTransferOutput) TypeID() uint32 {
	return NFTTransferOutputID
}

// Bytes returns the serialized variant body without the type id.
func (out *NFTTransferOutput) Bytes() []byte {
	b := bintools.AppendUint32(nil, out.GroupID)
	b = bintools.AppendBytes(b, out.Payload)

	return out.appendOwners(b)
}

// FromBytes fills the variant from the reader positioned after the type id.
func (out *NFTTransferOutput) FromBytes(r *bytereader.Reader) error {
	var err error
	if out.GroupID, err = r.ReadUint32(); err != nil {
		return err
	}
	if out.Payload, err = bintools.ReadBytes(r); err != nil {
		return err
	}

	return out.readOwners(r)
}

// StakeableLockOut wraps a transfer output with an extra lock time.
type StakeableLockOut struct {
	Lock        uint64
	TransferOut *TransferOutput
}

// TypeID returns the codec type id of the variant.
func (out *StakeableLockOut) TypeID() uint32 {
	return StakeableLockOutID
}

// Amount returns the transferable value of the wrapped output.
func (out *StakeableLockOut) Amount() uint64 {
	return out.TransferOut.Amount()
}

// Addresses returns owner addresses of the wrapped output.
func (out *StakeableLockOut) Addresses() []avax.Address {
	return out.TransferOut.Addresses()
}

// AddressIndex returns position of addr in the wrapped owner list, -1 if absent.
func (out *StakeableLockOut) AddressIndex(addr avax.Address) int {
	return out.TransferOut.AddressIndex(addr)
}

// Spenders returns spenders of the wrapped output once both locks expired.
func (out *StakeableLockOut) Spenders(from []avax.Address, asOf uint64) []avax.Address {
	if out.Lock > asOf {
		return nil
	}

	return out.TransferOut.Spenders(from, asOf)
}

// MeetsThreshold reports whether from can satisfy the wrapped threshold
// once both locks expired.
func (out *StakeableLockOut) MeetsThreshold(from []avax.Address, asOf uint64) bool {
	if out.Lock > asOf {
		return false
	}

	return out.TransferOut.MeetsThreshold(from, asOf)
}

// Bytes returns the serialized variant body without the type id.
func (out *StakeableLockOut) Bytes() []byte {
	b := bintools.AppendUint64(nil, out.Lock)
	b = bintools.AppendUint32(b, out.TransferOut.TypeID())

	return append(b, out.TransferOut.Bytes()...)
}

// FromBytes fills the variant from the reader positioned after the type id.
func (out *StakeableLockOut) FromBytes(r *bytereader.Reader) error {
	var err error
	if out.Lock, err = r.ReadUint64(); err != nil {
		return err
	}

	innerTypeID, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if innerTypeID != SECPTransferOutputID {
		return avax.ErrUnknownType
	}

	out.TransferOut = &TransferOutput{}

	return out.TransferOut.FromBytes(r)
}

// Verify checks structural invariants of the variant.
func (out *StakeableLockOut) Verify() error {
	if out.TransferOut == nil {
		return avax.ErrConfig
	}

	return out.TransferOut.Verify()
}

// EVMOutput credits value to a C-chain account. The record is untagged,
// its layout is fixed by the surrounding transaction.
type EVMOutput struct {
	Address avax.Address
	Amt     uint64
	AssetID avax.ID
}

// Amount returns the credited value.
func (out *EVMOutput) Amount() uint64 {
	return out.Amt
}

// Bytes returns the serialized record.
func (out *EVMOutput) Bytes() []byte {
	b := append([]byte(nil), out.Address.Bytes()...)
	b = bintools.AppendUint64(b, out.Amt)

	return append(b, out.AssetID.Bytes()...)
}

// FromBytes fills the record from the reader.
func (out *EVMOutput) FromBytes(r *bytereader.Reader) error {
	raw, err := r.Read(avax.AddressLen)
	if err != nil {
		return err
	}
	if out.Address, err = avax.NewAddress(raw); err != nil {
		return err
	}
	if out.Amt, err = r.ReadUint64(); err != nil {
		return err
	}
	if raw, err = r.Read(avax.IDLen); err != nil {
		return err
	}
	out.AssetID, err = avax.NewID(raw)

	return err
}

// Verify checks structural invariants of the record.
func (out *EVMOutput) Verify() error {
	if out.Amt == 0 {
		return avax.ErrConfig
	}

	return nil
}
