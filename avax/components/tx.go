// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"crypto/sha256"

	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

// SigningIntent names the credential type and signer addresses one credential
// must carry, in sig-index order.
type SigningIntent struct {
	CredentialID uint32
	Sources      []avax.Address
}

// Transaction is one variant of the tagged unsigned transaction family.
type Transaction interface {
	// TypeID returns the codec type id of the variant.
	TypeID() uint32
	// Body returns the serialized transaction body without codec version and type id.
	Body() []byte
	// FromBody fills the transaction from the reader positioned after the type id.
	FromBody(registry *Registry, r *bytereader.Reader) error
	// Intents returns expected credentials in order, one per input.
	Intents() []SigningIntent
	// Verify checks structural invariants of the transaction.
	Verify() error
}

// BaseTx moves value within one chain. It is the embedded basis of every
// other transaction variant.
type BaseTx struct {
	NetworkID    uint32
	BlockchainID avax.ID
	Outs         []*TransferableOutput // canonically sorted.
	Ins          []*TransferableInput  // canonically sorted.
	Memo         []byte
}

// TypeID returns the codec type id of the variant.
func (tx *BaseTx) TypeID() uint32 {
	return AVMBaseTxID
}

// Body returns the serialized transaction body without codec version and type id.
func (tx *BaseTx) Body() []byte {
	b := bintools.AppendUint32(nil, tx.NetworkID)
	b = append(b, tx.BlockchainID.Bytes()...)
	b = bintools.AppendUint32(b, uint32(len(tx.Outs)))
	for _, out := range tx.Outs {
		b = append(b, out.Bytes()...)
	}
	b = bintools.AppendUint32(b, uint32(len(tx.Ins)))
	for _, in := range tx.Ins {
		b = append(b, in.Bytes()...)
	}

	return bintools.AppendBytes(b, tx.Memo)
}

// FromBody fills the transaction from the reader positioned after the type id.
func (tx *BaseTx) FromBody(registry *Registry, r *bytereader.Reader) error {
	var err error
	if tx.NetworkID, err = r.ReadUint32(); err != nil {
		return err
	}

	raw, err := r.Read(avax.IDLen)
	if err != nil {
		return err
	}
	if tx.BlockchainID, err = avax.NewID(raw); err != nil {
		return err
	}

	numOuts, err := r.ReadUint32()
	if err != nil {
		return err
	}
	tx.Outs = make([]*TransferableOutput, numOuts)
	for idx := range tx.Outs {
		tx.Outs[idx] = &TransferableOutput{}
		if err = tx.Outs[idx].FromBytes(registry, r); err != nil {
			return err
		}
	}

	numIns, err := r.ReadUint32()
	if err != nil {
		return err
	}
	tx.Ins = make([]*TransferableInput, numIns)
	for idx := range tx.Ins {
		tx.Ins[idx] = &TransferableInput{}
		if err = tx.Ins[idx].FromBytes(registry, r); err != nil {
			return err
		}
	}

	tx.Memo, err = bintools.ReadBytes(r)

	return err
}

// Intents returns expected credentials in order, one per input.
func (tx *BaseTx) Intents() []SigningIntent {
	intents := make([]SigningIntent, 0, len(tx.Ins))
	for _, in := range tx.Ins {
		intents = append(intents, SigningIntent{
			CredentialID: SECPCredentialID,
			Sources:      in.In.Sources(),
		})
	}

	return intents
}

// Verify checks structural invariants of the transaction.
func (tx *BaseTx) Verify() error {
	if len(tx.Memo) > avax.MaxMemoLen {
		return avax.ErrConfig
	}
	for _, out := range tx.Outs {
		if err := out.Verify(); err != nil {
			return err
		}
	}
	for _, in := range tx.Ins {
		if err := in.Verify(); err != nil {
			return err
		}
	}

	return nil
}

// UnsignedTx frames a transaction body with codec version and type id.
// Its bytes are the signing pre-image source.
type UnsignedTx struct {
	Tx Transaction

	bytes []byte
}

// NewUnsignedTx is a constructor for UnsignedTx.
func NewUnsignedTx(tx Transaction) *UnsignedTx {
	return &UnsignedTx{Tx: tx}
}

// Bytes returns codec version | type id | body. Cached after the first call.
func (utx *UnsignedTx) Bytes() []byte {
	if utx.bytes == nil {
		b := bintools.AppendUint16(nil, avax.CodecVersion)
		b = bintools.AppendUint32(b, utx.Tx.TypeID())
		utx.bytes = append(b, utx.Tx.Body()...)
	}

	return utx.bytes
}

// Hash returns SHA-256 of the serialized unsigned transaction, the canonical
// signing pre-image.
func (utx *UnsignedTx) Hash() []byte {
	digest := sha256.Sum256(utx.Bytes())

	return digest[:]
}

// ParseUnsignedTx decodes an unsigned transaction using the chain registry.
func ParseUnsignedTx(registry *Registry, b []byte) (*UnsignedTx, error) {
	utx, _, err := parseUnsignedTx(registry, bytereader.New(b))

	return utx, err
}

// parseUnsignedTx decodes an unsigned transaction from the reader.
func parseUnsignedTx(registry *Registry, r *bytereader.Reader) (*UnsignedTx, Transaction, error) {
	version, err := r.ReadUint16()
	if err != nil {
		return nil, nil, err
	}
	if version != avax.CodecVersion {
		return nil, nil, avax.ErrUnknownType
	}

	typeID, err := r.ReadUint32()
	if err != nil {
		return nil, nil, err
	}

	tx, err := registry.SelectTx(typeID)
	if err != nil {
		return nil, nil, err
	}
	if err = tx.FromBody(registry, r); err != nil {
		return nil, nil, err
	}

	return NewUnsignedTx(tx), tx, nil
}

// SignedTx is an unsigned transaction with credentials attached. Immutable.
type SignedTx struct {
	Unsigned    *UnsignedTx
	Credentials []*Credential
}

// NewSignedTx is a constructor for SignedTx.
func NewSignedTx(unsigned *UnsignedTx, credentials []*Credential) *SignedTx {
	return &SignedTx{
		Unsigned:    unsigned,
		Credentials: credentials,
	}
}

// Bytes returns unsigned bytes | credential count | credentials.
func (stx *SignedTx) Bytes() []byte {
	b := append([]byte(nil), stx.Unsigned.Bytes()...)
	b = bintools.AppendUint32(b, uint32(len(stx.Credentials)))
	for _, cred := range stx.Credentials {
		b = append(b, cred.Bytes()...)
	}

	return b
}

// TxID returns SHA-256 of the serialized signed transaction.
func (stx *SignedTx) TxID() avax.ID {
	return avax.TxIDFromBytes(stx.Bytes())
}

// ID returns the transaction id in CB58 form.
func (stx *SignedTx) ID() string {
	return stx.TxID().String()
}

// ParseSignedTx decodes a signed transaction using the chain registry.
func ParseSignedTx(registry *Registry, b []byte) (*SignedTx, error) {
	r := bytereader.New(b)
	unsigned, _, err := parseUnsignedTx(registry, r)
	if err != nil {
		return nil, err
	}

	numCreds, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	creds := make([]*Credential, numCreds)
	for idx := range creds {
		creds[idx] = &Credential{}
		if err = creds[idx].FromBytes(r); err != nil {
			return nil, err
		}
	}

	return NewSignedTx(unsigned, creds), nil
}
