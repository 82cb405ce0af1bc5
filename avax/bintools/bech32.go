// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package bintools

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// addressLen defines byte length of the address payload.
const addressLen = 20

// chainSeparator joins the chain alias with the bech32 part of an address.
const chainSeparator = "-"

// ErrBech32 defines that bech32 address encoding or HRP is invalid.
var ErrBech32 = errors.New("invalid bech32 address")

// EncodeBech32 returns 20-byte addr encoded as bech32 string with provided HRP.
func EncodeBech32(hrp string, addr []byte) (string, error) {
	if len(addr) != addressLen {
		return "", ErrBech32
	}

	converted, err := bech32.ConvertBits(addr, 8, 5, true)
	if err != nil {
		return "", ErrBech32
	}

	encoded, err := bech32.Encode(hrp, converted)
	if err != nil {
		return "", ErrBech32
	}

	return encoded, nil
}

// DecodeBech32 returns 20 address bytes decoded from bech32 string.
// Returns ErrBech32 on HRP mismatch, bad checksum or invalid payload length.
func DecodeBech32(hrp, addr string) ([]byte, error) {
	decodedHRP, data, err := bech32.Decode(addr)
	if err != nil {
		return nil, ErrBech32
	}
	if decodedHRP != hrp {
		return nil, ErrBech32
	}

	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, ErrBech32
	}
	if len(converted) != addressLen {
		return nil, ErrBech32
	}

	return converted, nil
}

// AddressToString joins chain alias and bech32 form of addr with provided HRP.
func AddressToString(hrp, chain string, addr []byte) (string, error) {
	encoded, err := EncodeBech32(hrp, addr)
	if err != nil {
		return "", err
	}

	return chain + chainSeparator + encoded, nil
}

// AddressFromString splits a chain-qualified address string and decodes
// its bech32 part. Returns chain alias and address bytes.
func AddressFromString(hrp, addr string) (string, []byte, error) {
	chain, encoded, found := strings.Cut(addr, chainSeparator)
	if !found || chain == "" {
		return "", nil, ErrBech32
	}

	decoded, err := DecodeBech32(hrp, encoded)
	if err != nil {
		return "", nil, err
	}

	return chain, decoded, nil
}
