// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

// EVMImportTx credits C-chain accounts from another chain's atomic memory.
type EVMImportTx struct {
	NetworkID    uint32
	BlockchainID avax.ID
	SourceChain  avax.ID
	ImportedIns  []*TransferableInput // canonically sorted.
	Outs         []EVMOutput          // sorted by (address, assetID).
}

// TypeID returns the codec type id of the variant.
func (tx *EVMImportTx) TypeID() uint32 {
	return EVMImportTxID
}

// Body returns the serialized transaction body without codec version and type id.
func (tx *EVMImportTx) Body() []byte {
	b := bintools.AppendUint32(nil, tx.NetworkID)
	b = append(b, tx.BlockchainID.Bytes()...)
	b = append(b, tx.SourceChain.Bytes()...)
	b = bintools.AppendUint32(b, uint32(len(tx.ImportedIns)))
	for _, in := range tx.ImportedIns {
		b = append(b, in.Bytes()...)
	}
	b = bintools.AppendUint32(b, uint32(len(tx.Outs)))
	for idx := range tx.Outs {
		b = append(b, tx.Outs[idx].Bytes()...)
	}

	return b
}

// FromBody fills the transaction from the reader positioned after the type id.
func (tx *EVMImportTx) FromBody(registry *Registry, r *bytereader.Reader) error {
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
	if raw, err = r.Read(avax.IDLen); err != nil {
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

	numOuts, err := r.ReadUint32()
	if err != nil {
		return err
	}
	tx.Outs = make([]EVMOutput, numOuts)
	for idx := range tx.Outs {
		if err = tx.Outs[idx].FromBytes(r); err != nil {
			return err
		}
	}

	return nil
}

// Intents returns expected credentials, one per imported input.
func (tx *EVMImportTx) Intents() []SigningIntent {
	intents := make([]SigningIntent, 0, len(tx.ImportedIns))
	for _, in := range tx.ImportedIns {
		intents = append(intents, SigningIntent{
			CredentialID: SECPCredentialID,
			Sources:      in.In.Sources(),
		})
	}

	return intents
}

// Verify checks structural invariants of the transaction.
func (tx *EVMImportTx) Verify() error {
	if tx.SourceChain.IsZero() {
		return avax.ErrConfig
	}
	for _, in := range tx.ImportedIns {
		if err := in.Verify(); err != nil {
			return err
		}
	}
	for idx := range tx.Outs {
		if err := tx.Outs[idx].Verify(); err != nil {
			return err
		}
	}

	return nil
}

// EVMExportTx debits C-chain accounts into another chain's atomic memory.
type EVMExportTx struct {
	NetworkID        uint32
	BlockchainID     avax.ID
	DestinationChain avax.ID
	Ins              []EVMInput            // sorted by (address, assetID).
	ExportedOuts     []*TransferableOutput // canonically sorted.
}

// TypeID returns the codec type id of the variant.
func (tx *EVMExportTx) TypeID() uint32 {
	return EVMExportTxID
}

// Body returns the serialized transaction body without codec version and type id.
func (tx *EVMExportTx) Body() []byte {
	b := bintools.AppendUint32(nil, tx.NetworkID)
	b = append(b, tx.BlockchainID.Bytes()...)
	b = append(b, tx.DestinationChain.Bytes()...)
	b = bintools.AppendUint32(b, uint32(len(tx.Ins)))
	for idx := range tx.Ins {
		b = append(b, tx.Ins[idx].Bytes()...)
	}
	b = bintools.AppendUint32(b, uint32(len(tx.ExportedOuts)))
	for _, out := range tx.ExportedOuts {
		b = append(b, out.Bytes()...)
	}

	return b
}

// FromBody fills the transaction from the reader positioned after the type id.
func (tx *EVMExportTx) FromBody(registry *Registry, r *bytereader.Reader) error {
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
	if raw, err = r.Read(avax.IDLen); err != nil {
		return err
	}
	if tx.DestinationChain, err = avax.NewID(raw); err != nil {
		return err
	}

	numIns, err := r.ReadUint32()
	if err != nil {
		return err
	}
	tx.Ins = make([]EVMInput, numIns)
	for idx := range tx.Ins {
		if err = tx.Ins[idx].FromBytes(r); err != nil {
			return err
		}
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

// Intents returns expected credentials, one single-signer credential per account input.
func (tx *EVMExportTx) Intents() []SigningIntent {
	intents := make([]SigningIntent, 0, len(tx.Ins))
	for idx := range tx.Ins {
		intents = append(intents, SigningIntent{
			CredentialID: SECPCredentialID,
			Sources:      tx.Ins[idx].Sources(),
		})
	}

	return intents
}

// Verify checks structural invariants of the transaction.
func (tx *EVMExportTx) Verify() error {
	if tx.DestinationChain.IsZero() {
		return avax.ErrConfig
	}
	for idx := range tx.Ins {
		if err := tx.Ins[idx].Verify(); err != nil {
			return err
		}
	}
	for _, out := range tx.ExportedOuts {
		if err := out.Verify(); err != nil {
			return err
		}
	}

	return nil
}
