// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package avax

import (
	"bytes"
	"crypto/sha256"
	"sort"

	"avalanche/avax/bintools"
)

// IDLen defines byte length of 32-byte identifiers (TxID, AssetID, BlockchainID).
const IDLen = 32

// AddressLen defines byte length of an address hash.
const AddressLen = 20

// CodecVersion defines serialization codec version written as the first two bytes
// of every transaction and UTXO.
const CodecVersion uint16 = 0

// MaxMemoLen defines the largest allowed memo field in bytes.
const MaxMemoLen = 256

// ID is a 32-byte identifier for transactions, assets and blockchains.
type ID [IDLen]byte

// NewID copies b into ID. Returns ErrConfig if length differs.
func NewID(b []byte) (ID, error) {
	var id ID
	if len(b) != IDLen {
		return id, ErrConfig
	}

	copy(id[:], b)

	return id, nil
}

// IDFromString parses ID from its CB58 form.
func IDFromString(s string) (ID, error) {
	b, err := bintools.CB58Decode(s)
	if err != nil {
		return ID{}, err
	}

	return NewID(b)
}

// Bytes returns ID as byte slice.
func (id ID) Bytes() []byte {
	return id[:]
}

// String returns ID in CB58 form.
func (id ID) String() string {
	return bintools.CB58Encode(id[:])
}

// IsZero returns true if all ID bytes are zero.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Compare returns byte-lexicographic ordering between two IDs.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// TxIDFromBytes derives a transaction ID as SHA-256 over serialized bytes.
func TxIDFromBytes(b []byte) ID {
	return ID(sha256.Sum256(b))
}

// Address is a 20-byte RIPEMD-160(SHA-256(pubkey)) hash.
type Address [AddressLen]byte

// NewAddress copies b into Address. Returns ErrConfig if length differs.
func NewAddress(b []byte) (Address, error) {
	var addr Address
	if len(b) != AddressLen {
		return addr, ErrConfig
	}

	copy(addr[:], b)

	return addr, nil
}

// Bytes returns Address as byte slice.
func (addr Address) Bytes() []byte {
	return addr[:]
}

// Compare returns byte-lexicographic ordering between two addresses.
func (addr Address) Compare(other Address) int {
	return bytes.Compare(addr[:], other[:])
}

// SortAddresses sorts addresses ascending byte-lexicographically in place.
func SortAddresses(addrs []Address) {
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Compare(addrs[j]) < 0
	})
}

// AddressesSorted returns true if addrs are strictly ascending.
func AddressesSorted(addrs []Address) bool {
	for i := 1; i < len(addrs); i++ {
		if addrs[i-1].Compare(addrs[i]) >= 0 {
			return false
		}
	}

	return true
}
