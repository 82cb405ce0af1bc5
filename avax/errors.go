// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package avax

import (
	"errors"
)

// ErrUnknownType defines that a deserializer met an unregistered type id.
var ErrUnknownType = errors.New("unknown type id")

// ErrMissingKey defines that a required signer key is absent from the keychain.
var ErrMissingKey = errors.New("missing signer key")

// ErrConfig defines invalid caller-provided configuration or value.
var ErrConfig = errors.New("invalid configuration")

// ErrRecovery defines that ECDSA public key recovery failed.
var ErrRecovery = errors.New("signature recovery failed")
