// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package bintools

import (
	"bytes"
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// checksumLen defines byte length of the CB58 checksum suffix.
const checksumLen = 4

// ErrChecksum defines that CB58 checksum verification failed.
var ErrChecksum = errors.New("invalid checksum")

// CB58Encode returns base-58 form of b with a 4-byte SHA-256 checksum suffix.
func CB58Encode(b []byte) string {
	checked := make([]byte, 0, len(b)+checksumLen)
	checked = append(checked, b...)
	checksum := sha256.Sum256(b)

	return base58.Encode(append(checked, checksum[:checksumLen]...))
}

// CB58Decode returns bytes decoded from CB58 string.
// Returns ErrChecksum if the 4-byte suffix does not match the payload
// or the string is not valid base-58.
func CB58Decode(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 && len(s) != 0 {
		return nil, ErrChecksum
	}
	if len(decoded) < checksumLen {
		return nil, ErrChecksum
	}

	payload := decoded[:len(decoded)-checksumLen]
	checksum := sha256.Sum256(payload)
	if !bytes.Equal(checksum[:checksumLen], decoded[len(decoded)-checksumLen:]) {
		return nil, ErrChecksum
	}

	return payload, nil
}
