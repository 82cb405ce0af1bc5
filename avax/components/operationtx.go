// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"sort"

	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

// Operation is one variant of the tagged asset operation family.
type Operation interface {
	// TypeID returns the codec type id of the variant.
	TypeID() uint32
	// CredentialID returns the credential type the operation is signed with.
	CredentialID() uint32
	// Bytes returns the serialized variant body without the type id.
	Bytes() []byte
	// FromBytes fills the variant from the reader positioned after the type id.
	FromBytes(r *bytereader.Reader) error
	// Sources returns signer addresses recorded at construction time, in sig-index order.
	Sources() []avax.Address
	// Verify checks structural invariants of the variant.
	Verify() error
}

// NFTTransferOp moves an NFT to new owners.
type NFTTransferOp struct {
	SigIdxs []SigIndex // strictly increasing by Index.
	Out     NFTTransferOutput
}

// TypeID returns the codec type id of the variant.
func (op *NFTTransferOp) TypeID() uint32 {
	return NFTTransferOpID
}

// CredentialID returns the credential type the operation is signed with.
func (op *NFTTransferOp) CredentialID() uint32 {
	return NFTCredentialID
}

// Sources returns signer addresses recorded at construction time, in sig-index order.
func (op *NFTTransferOp) Sources() []avax.Address {
	sources := make([]avax.Address, len(op.SigIdxs))
	for idx, sigIdx := range op.SigIdxs {
		sources[idx] = sigIdx.Source
	}

	return sources
}

// Bytes returns the serialized variant body without the type id.
func (op *NFTTransferOp) Bytes() []byte {
	b := bintools.AppendUint32(nil, uint32(len(op.SigIdxs)))
	for _, sigIdx := range op.SigIdxs {
		b = bintools.AppendUint32(b, sigIdx.Index)
	}

	return append(b, op.Out.Bytes()...)
}

// FromBytes fills the variant from the reader positioned after the type id.
func (op *NFTTransferOp) FromBytes(r *bytereader.Reader) error {
	numIdxs, err := r.ReadUint32()
	if err != nil {
		return err
	}

	op.SigIdxs = make([]SigIndex, numIdxs)
	for idx := range op.SigIdxs {
		if op.SigIdxs[idx].Index, err = r.ReadUint32(); err != nil {
			return err
		}
	}

	return op.Out.FromBytes(r)
}

// Verify checks structural invariants of the variant.
func (op *NFTTransferOp) Verify() error {
	for idx := 1; idx < len(op.SigIdxs); idx++ {
		if op.SigIdxs[idx-1].Index >= op.SigIdxs[idx].Index {
			return avax.ErrConfig
		}
	}

	return op.Out.Verify()
}

// TransferableOperation binds an operation to the asset and UTXOs it consumes.
type TransferableOperation struct {
	AssetID avax.ID
	UTXOIDs []*UTXOID // canonically sorted.
	Op      Operation
}

// Bytes returns assetID | utxo id count | utxo ids | type id | operation body.
func (to *TransferableOperation) Bytes() []byte {
	b := append([]byte(nil), to.AssetID.Bytes()...)
	b = bintools.AppendUint32(b, uint32(len(to.UTXOIDs)))
	for _, utxoID := range to.UTXOIDs {
		b = append(b, utxoID.Bytes()...)
	}
	b = bintools.AppendUint32(b, to.Op.TypeID())

	return append(b, to.Op.Bytes()...)
}

// FromBytes fills the operation from the reader.
func (to *TransferableOperation) FromBytes(r *bytereader.Reader) error {
	raw, err := r.Read(avax.IDLen)
	if err != nil {
		return err
	}
	if to.AssetID, err = avax.NewID(raw); err != nil {
		return err
	}

	numIDs, err := r.ReadUint32()
	if err != nil {
		return err
	}
	to.UTXOIDs = make([]*UTXOID, numIDs)
	for idx := range to.UTXOIDs {
		to.UTXOIDs[idx] = &UTXOID{}
		if err = to.UTXOIDs[idx].FromBytes(r); err != nil {
			return err
		}
	}

	typeID, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if typeID != NFTTransferOpID {
		return avax.ErrUnknownType
	}

	to.Op = &NFTTransferOp{}

	return to.Op.FromBytes(r)
}

// Sort orders the consumed UTXO ids canonically.
func (to *TransferableOperation) Sort() {
	sort.SliceStable(to.UTXOIDs, func(i, j int) bool {
		return to.UTXOIDs[i].Compare(to.UTXOIDs[j]) < 0
	})
}

// OperationTx applies asset operations alongside a value transfer.
type OperationTx struct {
	BaseTx
	Ops []*TransferableOperation
}

// TypeID returns the codec type id of the variant.
func (tx *OperationTx) TypeID() uint32 {
	return AVMOperationTxID
}

// Body returns the serialized transaction body without codec version and type id.
func (tx *OperationTx) Body() []byte {
	b := tx.BaseTx.Body()
	b = bintools.AppendUint32(b, uint32(len(tx.Ops)))
	for _, op := range tx.Ops {
		b = append(b, op.Bytes()...)
	}

	return b
}

// FromBody fills the transaction from the reader positioned after the type id.
func (tx *OperationTx) FromBody(registry *Registry, r *bytereader.Reader) error {
	if err := tx.BaseTx.FromBody(registry, r); err != nil {
		return err
	}

	numOps, err := r.ReadUint32()
	if err != nil {
		return err
	}
	tx.Ops = make([]*TransferableOperation, numOps)
	for idx := range tx.Ops {
		tx.Ops[idx] = &TransferableOperation{}
		if err = tx.Ops[idx].FromBytes(r); err != nil {
			return err
		}
	}

	return nil
}

// Intents returns expected credentials: transfer inputs first, then one per operation.
func (tx *OperationTx) Intents() []SigningIntent {
	intents := tx.BaseTx.Intents()
	for _, op := range tx.Ops {
		intents = append(intents, SigningIntent{
			CredentialID: op.Op.CredentialID(),
			Sources:      op.Op.Sources(),
		})
	}

	return intents
}

// Verify checks structural invariants of the transaction.
func (tx *OperationTx) Verify() error {
	for _, op := range tx.Ops {
		if err := op.Op.Verify(); err != nil {
			return err
		}
	}

	return tx.BaseTx.Verify()
}
