// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package keychain

import (
	"fmt"

	"avalanche/avax"
	"avalanche/avax/components"
	"avalanche/avax/crypto"
)

// KeyChain maps addresses to their key pairs and signs whole transactions.
type KeyChain struct {
	keys map[avax.Address]*crypto.KeyPair
}

// New is a constructor for KeyChain.
func New() *KeyChain {
	return &KeyChain{
		keys: make(map[avax.Address]*crypto.KeyPair),
	}
}

// Make generates a fresh key pair, inserts it and returns it.
func (kc *KeyChain) Make() (*crypto.KeyPair, error) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}

	kc.keys[kp.Address()] = kp

	return kp, nil
}

// ImportKey derives the address of the provided private key bytes and inserts
// the key pair under it.
func (kc *KeyChain) ImportKey(priv []byte) (*crypto.KeyPair, error) {
	kp, err := crypto.KeyPairFromBytes(priv)
	if err != nil {
		return nil, err
	}

	kc.keys[kp.Address()] = kp

	return kp, nil
}

// HasKey returns true if a key pair for addr is present.
func (kc *KeyChain) HasKey(addr avax.Address) bool {
	_, ok := kc.keys[addr]

	return ok
}

// GetKey returns the key pair for addr, nil if absent.
func (kc *KeyChain) GetKey(addr avax.Address) *crypto.KeyPair {
	return kc.keys[addr]
}

// Addresses returns held addresses sorted ascending.
func (kc *KeyChain) Addresses() []avax.Address {
	addrs := make([]avax.Address, 0, len(kc.keys))
	for addr := range kc.keys {
		addrs = append(addrs, addr)
	}
	avax.SortAddresses(addrs)

	return addrs
}

// SignTx signs the unsigned transaction bytes once per required signer and
// returns the immutable signed transaction. Credentials follow input order,
// signatures follow sig-index order. Returns ErrMissingKey if any required
// signer is absent.
func (kc *KeyChain) SignTx(utx *components.UnsignedTx) (*components.SignedTx, error) {
	unsignedBytes := utx.Bytes()

	intents := utx.Tx.Intents()
	creds := make([]*components.Credential, 0, len(intents))
	for _, intent := range intents {
		cred := &components.Credential{
			TypeID: intent.CredentialID,
			Sigs:   make([][]byte, 0, len(intent.Sources)),
		}
		for _, source := range intent.Sources {
			kp, ok := kc.keys[source]
			if !ok {
				return nil, fmt.Errorf("%w: %x", avax.ErrMissingKey, source.Bytes())
			}

			sig, err := kp.SignMsg(unsignedBytes)
			if err != nil {
				return nil, err
			}

			cred.Sigs = append(cred.Sigs, sig)
		}

		creds = append(creds, cred)
	}

	return components.NewSignedTx(utx, creds), nil
}
