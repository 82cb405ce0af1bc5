// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"bytes"
	"sort"

	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

// TransferableOutput binds an output variant to the asset it denominates.
type TransferableOutput struct {
	AssetID avax.ID
	Out     Output
}

// Bytes returns assetID | type id | output body.
func (to *TransferableOutput) Bytes() []byte {
	b := append([]byte(nil), to.AssetID.Bytes()...)
	b = bintools.AppendUint32(b, to.Out.TypeID())

	return append(b, to.Out.Bytes()...)
}

// FromBytes fills the transferable output from the reader using the chain registry.
func (to *TransferableOutput) FromBytes(registry *Registry, r *bytereader.Reader) error {
	raw, err := r.Read(avax.IDLen)
	if err != nil {
		return err
	}
	if to.AssetID, err = avax.NewID(raw); err != nil {
		return err
	}

	typeID, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if to.Out, err = registry.SelectOutput(typeID); err != nil {
		return err
	}

	return to.Out.FromBytes(r)
}

// Verify checks structural invariants of the transferable output.
func (to *TransferableOutput) Verify() error {
	if to.Out == nil {
		return avax.ErrConfig
	}

	return to.Out.Verify()
}

// UTXOID references the output a transaction consumes.
type UTXOID struct {
	TxID        avax.ID
	OutputIndex uint32
}

// Bytes returns txID | output index.
func (id *UTXOID) Bytes() []byte {
	b := append([]byte(nil), id.TxID.Bytes()...)

	return bintools.AppendUint32(b, id.OutputIndex)
}

// FromBytes fills the reference from the reader.
func (id *UTXOID) FromBytes(r *bytereader.Reader) error {
	raw, err := r.Read(avax.IDLen)
	if err != nil {
		return err
	}
	if id.TxID, err = avax.NewID(raw); err != nil {
		return err
	}
	id.OutputIndex, err = r.ReadUint32()

	return err
}

// Compare orders references by (txID, output index).
func (id *UTXOID) Compare(other *UTXOID) int {
	if cmp := id.TxID.Compare(other.TxID); cmp != 0 {
		return cmp
	}

	switch {
	case id.OutputIndex < other.OutputIndex:
		return -1
	case id.OutputIndex > other.OutputIndex:
		return 1
	default:
		return 0
	}
}

// TransferableInput binds an input variant to the UTXO it consumes.
type TransferableInput struct {
	UTXOID
	AssetID avax.ID
	In      Input
}

// Bytes returns txID | output index | assetID | type id | input body.
func (ti *TransferableInput) Bytes() []byte {
	b := ti.UTXOID.Bytes()
	b = append(b, ti.AssetID.Bytes()...)
	b = bintools.AppendUint32(b, ti.In.TypeID())

	return append(b, ti.In.Bytes()...)
}

// FromBytes fills the transferable input from the reader using the chain registry.
func (ti *TransferableInput) FromBytes(registry *Registry, r *bytereader.Reader) error {
	if err := ti.UTXOID.FromBytes(r); err != nil {
		return err
	}

	raw, err := r.Read(avax.IDLen)
	if err != nil {
		return err
	}
	if ti.AssetID, err = avax.NewID(raw); err != nil {
		return err
	}

	typeID, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if ti.In, err = registry.SelectInput(typeID); err != nil {
		return err
	}

	return ti.In.FromBytes(r)
}

// Verify checks structural invariants of the transferable input.
func (ti *TransferableInput) Verify() error {
	if ti.In == nil {
		return avax.ErrConfig
	}

	return ti.In.Verify()
}

// SortTransferableOutputs sorts outputs canonically by (assetID, serialized bytes).
func SortTransferableOutputs(outs []*TransferableOutput) {
	sort.SliceStable(outs, func(i, j int) bool {
		return bytes.Compare(outs[i].Bytes(), outs[j].Bytes()) < 0
	})
}

// SortTransferableInputs sorts inputs canonically by (txID, output index).
func SortTransferableInputs(ins []*TransferableInput) {
	sort.SliceStable(ins, func(i, j int) bool {
		return ins[i].UTXOID.Compare(&ins[j].UTXOID) < 0
	})
}

// SortEVMOutputs sorts C-chain outputs canonically by (address, assetID).
func SortEVMOutputs(outs []EVMOutput) {
	sort.SliceStable(outs, func(i, j int) bool {
		if cmp := outs[i].Address.Compare(outs[j].Address); cmp != 0 {
			return cmp < 0
		}

		return outs[i].AssetID.Compare(outs[j].AssetID) < 0
	})
}

// SortEVMInputs sorts C-chain inputs canonically by (address, assetID).
func SortEVMInputs(ins []EVMInput) {
	sort.SliceStable(ins, func(i, j int) bool {
		if cmp := ins[i].Address.Compare(ins[j].Address); cmp != 0 {
			return cmp < 0
		}

		return ins[i].AssetID.Compare(ins[j].AssetID) < 0
	})
}
