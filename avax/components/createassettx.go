// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"sort"

	"avalanche/avax"
	"avalanche/avax/bintools"
	"avalanche/internal/bytereader"
)

const (
	// MaxNameLen defines the largest allowed asset name length.
	MaxNameLen = 128
	// MaxSymbolLen defines the largest allowed asset symbol length.
	MaxSymbolLen = 4
	// MaxDenomination defines the largest allowed asset denomination.
	MaxDenomination = 32
)

// InitialState lists the outputs one feature extension starts the asset with.
type InitialState struct {
	FxID uint32
	Outs []Output // canonically sorted.
}

// Sort orders the outputs canonically by serialized bytes.
func (is *InitialState) Sort() {
	sort.SliceStable(is.Outs, func(i, j int) bool {
		return CompareOutputs(is.Outs[i], is.Outs[j]) < 0
	})
}

// Bytes returns fxID | output count | tagged outputs.
func (is *InitialState) Bytes() []byte {
	b := bintools.AppendUint32(nil, is.FxID)
	b = bintools.AppendUint32(b, uint32(len(is.Outs)))
	for _, out := range is.Outs {
		b = bintools.AppendUint32(b, out.TypeID())
		b = append(b, out.Bytes()...)
	}

	return b
}

// FromBytes fills the state from the reader using the chain registry.
func (is *InitialState) FromBytes(registry *Registry, r *bytereader.Reader) error {
	var err error
	if is.FxID, err = r.ReadUint32(); err != nil {
		return err
	}

	numOuts, err := r.ReadUint32()
	if err != nil {
		return err
	}
	is.Outs = make([]Output, numOuts)
	for idx := range is.Outs {
		typeID, err := r.ReadUint32()
		if err != nil {
			return err
		}
		if is.Outs[idx], err = registry.SelectOutput(typeID); err != nil {
			return err
		}
		if err = is.Outs[idx].FromBytes(r); err != nil {
			return err
		}
	}

	return nil
}

// CreateAssetTx mints a new asset family. The signed transaction id becomes
// the asset id.
type CreateAssetTx struct {
	BaseTx
	Name          string
	Symbol        string
	Denomination  byte
	InitialStates []*InitialState // sorted ascending by fxID.
}

// TypeID returns the codec type id of the variant.
func (tx *CreateAssetTx) TypeID() uint32 {
	return AVMCreateAssetTxID
}

// Body returns the serialized transaction body without codec version and type id.
func (tx *CreateAssetTx) Body() []byte {
	b := tx.BaseTx.Body()
	b = bintools.AppendString(b, tx.Name)
	b = bintools.AppendString(b, tx.Symbol)
	b = append(b, tx.Denomination)
	b = bintools.AppendUint32(b, uint32(len(tx.InitialStates)))
	for _, state := range tx.InitialStates {
		b = append(b, state.Bytes()...)
	}

	return b
}

// FromBody fills the transaction from the reader positioned after the type id.
func (tx *CreateAssetTx) FromBody(registry *Registry, r *bytereader.Reader) error {
	if err := tx.BaseTx.FromBody(registry, r); err != nil {
		return err
	}

	var err error
	if tx.Name, err = bintools.ReadString(r); err != nil {
		return err
	}
	if tx.Symbol, err = bintools.ReadString(r); err != nil {
		return err
	}
	if tx.Denomination, err = r.ReadByte(); err != nil {
		return err
	}

	numStates, err := r.ReadUint32()
	if err != nil {
		return err
	}
	tx.InitialStates = make([]*InitialState, numStates)
	for idx := range tx.InitialStates {
		tx.InitialStates[idx] = &InitialState{}
		if err = tx.InitialStates[idx].FromBytes(registry, r); err != nil {
			return err
		}
	}

	return nil
}

// Verify checks structural invariants of the transaction.
func (tx *CreateAssetTx) Verify() error {
	switch {
	case len(tx.Name) > MaxNameLen:
		return avax.ErrConfig
	case len(tx.Symbol) > MaxSymbolLen:
		return avax.ErrConfig
	case tx.Denomination > MaxDenomination:
		return avax.ErrConfig
	}

	return tx.BaseTx.Verify()
}
