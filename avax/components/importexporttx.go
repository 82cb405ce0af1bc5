// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

// ImportTx consumes UTXOs exported by another chain. Framing is shared by the
// X and P dialects, the type id tells them apart.
type ImportTx struct {
	BaseTx
	TxTypeID    uint32
	SourceChain avax.ID
	ImportedIns []*TransferableInput // canonically sorted.
}

// TypeID returns the codec type id of the variant.
func (tx *ImportTx) TypeID() uint32 {
	return tx.TxTypeID
}

// Body returns the serialized transaction body without codec version and type id.
func (tx *ImportTx) Body() []byte {
	b := tx.BaseTx.Body()
	b = append(b, tx.SourceChain.Bytes()...)
	b = bintools.AppendUint32(b, uint32(len(tx.ImportedIns)))
	for _, in := range tx.ImportedIns {
		b = append(b, in.Bytes()...)
	}

	return b
}

// FromBody fills the transaction from the reader positioned after the type id.
func (tx *ImportTx) FromBody(registry *Registry, r *bytereader.Reader) error {
	if err := tx.BaseTx.FromBody(registry, r); err != nil {
		return err
	}

	raw, err := r.Read(avax.IDLen)
	if err != nil {
		return err
	}
	if tx.SourceChain, err = avax.NewID(raw); err != nil {
		return err
	}

	numIns, err := r.ReadUint32()
	if err != nil {
		return err
	}
	tx.ImportedIns = make([]*TransferableInput, numIns)
	for idx := range tx.ImportedIns {
		tx.ImportedIns[idx] = &TransferableInput{}
		if err = tx.ImportedIns[idx].FromBytes(registry, r); err != nil {
			return err
		}
	}

	return nil
}

// Intents returns expected credentials: local inputs first, then imported inputs.
func (tx *ImportTx) Intents() []SigningIntent {
	intents := tx.BaseTx.Intents()
	for _, in := range tx.ImportedIns {
		intents = append(intents, SigningIntent{
			CredentialID: SECPCredentialID,
			Sources:      in.In.Sources(),
		})
	}

	return intents
}

// Verify checks structural invariants of the transaction.
func (tx *ImportTx) Verify() error {
	if tx.SourceChain.IsZero() {
		return avax.ErrConfig
	}
	for _, in := range tx.ImportedIns {
		if err := in.Verify(); err != nil {
			return err
		}
	}

	return tx.BaseTx.Verify()
}

// ExportTx moves UTXOs to another chain's atomic memory. Framing is shared by
// the X and P dialects, the type id tells them apart.
type ExportTx struct {
	BaseTx
	TxTypeID         uint32
	DestinationChain avax.ID
	ExportedOuts     []*TransferableOutput // canonically sorted.
}

// TypeID returns the codec type id of the variant.
func (tx *ExportTx) TypeID() uint32 {
	return tx.TxTypeID
}

// Body returns the serialized transaction body without codec version and type id.
func (tx *ExportTx) Body() []byte {
	b := tx.BaseTx.Body()
	b = append(b, tx.DestinationChain.Bytes()...)
	b = bintools.AppendUint32(b, uint32(len(tx.ExportedOuts)))
	for _, out := range tx.ExportedOuts {
		b = append(b, out.Bytes()...)
	}

	return b
}

// FromBody fills the transaction from the reader positioned after the type id.
func (tx *ExportTx) FromBody(registry *Registry, r *bytereader.Reader) error {
	if err := tx.BaseTx.FromBody(registry, r); err != nil {
		return err
	}

	raw, err := r.Read(avax.IDLen)
	if err != nil {
		return err
	}
	if tx.DestinationChain, err = avax.NewID(raw); err != nil {
		return err
	}

	numOuts, err := r.ReadUint32()
	if err != nil {
		return err
	}
	tx.ExportedOuts = make([]*TransferableOutput, numOuts)
	for idx := range tx.ExportedOuts {
		tx.ExportedOuts[idx] = &TransferableOutput{}
		if err = tx.ExportedOuts[idx].FromBytes(registry, r); err != nil {
			return err
		}
	}

	return nil
}

// Verify checks structural invariants of the transaction.
func (tx *ExportTx) Verify() error {
	if tx.DestinationChain.IsZero() {
		return avax.ErrConfig
	}
	for _, out := range tx.ExportedOuts {
		if err := out.Verify(); err != nil {
			return err
		}
	}

	return tx.BaseTx.Verify()
}
