// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package crypto

import (
	"bytes"
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"

	"avalanche/avax"
	"avalanche/avax/bintools"
)

const (
	// SignatureLen defines byte length of a recoverable signature: R(32) | S(32) | recovery id(1).
	SignatureLen = 65
	// PrivateKeyLen defines byte length of a serialized private key.
	PrivateKeyLen = 32
	// PublicKeyLen defines byte length of a compressed public key.
	PublicKeyLen = 33

	// privateKeyPrefix defines textual prefix of a CB58-serialized private key.
	privateKeyPrefix = "PrivateKey-"

	// compactSigMagicOffset is the header offset of btcec compact signatures.
	compactSigMagicOffset = 27
	// compactSigCompPubKey marks a compressed public key in a compact signature header.
	compactSigCompPubKey = 4
)

// KeyPair wraps a secp256k1 private key with its derived public key and address.
type KeyPair struct {
	priv *btcec.PrivateKey
}

// GenerateKeyPair creates a KeyPair from a cryptographic RNG.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}

	return &KeyPair{priv: priv}, nil
}

// KeyPairFromBytes restores a KeyPair from 32 private key bytes.
func KeyPairFromBytes(b []byte) (*KeyPair, error) {
	if len(b) != PrivateKeyLen {
		return nil, avax.ErrConfig
	}

	priv, _ := btcec.PrivKeyFromBytes(b)

	return &KeyPair{priv: priv}, nil
}

// KeyPairFromString restores a KeyPair from its CB58 textual form.
func KeyPairFromString(s string) (*KeyPair, error) {
	if len(s) <= len(privateKeyPrefix) || s[:len(privateKeyPrefix)] != privateKeyPrefix {
		return nil, avax.ErrConfig
	}

	b, err := bintools.CB58Decode(s[len(privateKeyPrefix):])
	if err != nil {
		return nil, err
	}

	return KeyPairFromBytes(b)
}

// PrivateKeyBytes returns the serialized private key.
func (kp *KeyPair) PrivateKeyBytes() []byte {
	return kp.priv.Serialize()
}

// PublicKeyBytes returns the compressed public key.
func (kp *KeyPair) PublicKeyBytes() []byte {
	return kp.priv.PubKey().SerializeCompressed()
}

// PrivateKeyString returns the private key in prefixed CB58 form.
func (kp *KeyPair) PrivateKeyString() string {
	return privateKeyPrefix + bintools.CB58Encode(kp.PrivateKeyBytes())
}

// Address returns the address hash of the public key.
func (kp *KeyPair) Address() avax.Address {
	addr, _ := PublicKeyToAddress(kp.PublicKeyBytes())

	return addr
}

// SignMsg signs SHA-256 digest of msg. Returns a 65-byte recoverable
// signature in canonical low-S form.
func (kp *KeyPair) SignMsg(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	compact := ecdsa.SignCompact(kp.priv, digest[:], true)

	// btcec places the recovery header first, the wire format wants it last.
	sig := make([]byte, SignatureLen)
	copy(sig, compact[1:])
	sig[SignatureLen-1] = compact[0] - compactSigMagicOffset - compactSigCompPubKey

	return sig, nil
}

// RecoverMsg derives the compressed public key that signed SHA-256 digest of msg.
// Returns ErrRecovery on an invalid recovery id or unrecoverable point.
func RecoverMsg(msg, sig []byte) ([]byte, error) {
	if len(sig) != SignatureLen || sig[SignatureLen-1] >= compactSigCompPubKey {
		return nil, avax.ErrRecovery
	}

	compact := make([]byte, SignatureLen)
	compact[0] = sig[SignatureLen-1] + compactSigMagicOffset + compactSigCompPubKey
	copy(compact[1:], sig[:SignatureLen-1])

	digest := sha256.Sum256(msg)
	pub, _, err := ecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return nil, avax.ErrRecovery
	}

	return pub.SerializeCompressed(), nil
}

// VerifyMsg returns true if sig over msg was produced by the owner of pub.
func VerifyMsg(msg, sig, pub []byte) bool {
	recovered, err := RecoverMsg(msg, sig)
	if err != nil {
		return false
	}

	return bytes.Equal(recovered, pub)
}

// PublicKeyToAddress returns RIPEMD-160(SHA-256(pub)) address hash.
func PublicKeyToAddress(pub []byte) (avax.Address, error) {
	if len(pub) != PublicKeyLen {
		return avax.Address{}, avax.ErrConfig
	}

	return avax.NewAddress(btcutil.Hash160(pub))
}
