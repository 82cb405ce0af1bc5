// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package txbuilder

import (
	"sort"

	"avalanche/avax"
	"avalanche/avax/components"
	"avalanche/internal/numbers"
)

// TxBuilder provides transaction building related logic for one chain.
type TxBuilder struct {
	networkID    uint32
	blockchainID avax.ID
	chain        string
}

// NewTxBuilder is a constructor for TxBuilder. Chain is one of the
// avax chain aliases and selects the dialect of cross-chain transactions.
func NewTxBuilder(networkID uint32, blockchainID avax.ID, chain string) *TxBuilder {
	return &TxBuilder{
		networkID:    networkID,
		blockchainID: blockchainID,
		chain:        chain,
	}
}

// BaseTxParams describes data needed to build a value transfer transaction.
type BaseTxParams struct {
	UTXOSet    *components.UTXOSet
	Amount     uint64
	AssetID    avax.ID
	To         []avax.Address
	From       []avax.Address
	Change     []avax.Address
	Fee        uint64
	FeeAssetID avax.ID
	Memo       []byte
	AsOf       uint64
	Locktime   uint64
	Threshold  uint32
}

// CreateAssetTxParams describes data needed to build an asset creation transaction.
type CreateAssetTxParams struct {
	UTXOSet       *components.UTXOSet
	Name          string
	Symbol        string
	Denomination  byte
	InitialStates []*components.InitialState
	From          []avax.Address
	Change        []avax.Address
	Fee           uint64
	FeeAssetID    avax.ID
	Memo          []byte
	AsOf          uint64
}

// OperationTxParams describes data needed to build an NFT transfer operation transaction.
type OperationTxParams struct {
	UTXOSet    *components.UTXOSet
	NFTUTXOs   []*components.UTXO
	To         []avax.Address
	From       []avax.Address
	Change     []avax.Address
	Fee        uint64
	FeeAssetID avax.ID
	Memo       []byte
	AsOf       uint64
	Locktime   uint64
	Threshold  uint32
}

// ImportTxParams describes data needed to build an import transaction.
// AtomicUTXOs are already fetched from the source chain's shared memory.
type ImportTxParams struct {
	UTXOSet       *components.UTXOSet
	AtomicUTXOs   []*components.UTXO
	SourceChainID avax.ID
	To            []avax.Address
	From          []avax.Address
	Change        []avax.Address
	Fee           uint64
	FeeAssetID    avax.ID
	AvaxAssetID   avax.ID
	Memo          []byte
	AsOf          uint64
	Locktime      uint64
	Threshold     uint32
}

// ExportTxParams describes data needed to build an export transaction.
type ExportTxParams struct {
	UTXOSet            *components.UTXOSet
	Amount             uint64
	AssetID            avax.ID
	DestinationChainID avax.ID
	To                 []avax.Address
	From               []avax.Address
	Change             []avax.Address
	Fee                uint64
	FeeAssetID         avax.ID
	AvaxAssetID        avax.ID
	Memo               []byte
	AsOf               uint64
	Locktime           uint64
	Threshold          uint32
}

// BuildBaseTx constructs an unsigned value transfer transaction funded from
// the provided set. Returns (nil, nil) when the amount is zero.
func (b *TxBuilder) BuildBaseTx(params BaseTxParams) (*components.UnsignedTx, error) {
	if params.Amount == 0 {
		return nil, nil
	}
	if err := checkCommon(len(params.To), params.Threshold, params.Memo); err != nil {
		return nil, err
	}

	aad := NewAssetAmountDestination(params.To, params.From, params.Change)
	if params.AssetID == params.FeeAssetID {
		// payload and fee demands collapse into one.
		if err := aad.AddAssetAmount(params.AssetID, params.Amount, params.Fee); err != nil {
			return nil, err
		}
	} else {
		if err := aad.AddAssetAmount(params.AssetID, params.Amount, 0); err != nil {
			return nil, err
		}
		if params.Fee > 0 {
			if err := aad.AddAssetAmount(params.FeeAssetID, 0, params.Fee); err != nil {
				return nil, err
			}
		}
	}

	ins, outs, change, err := GetMinimumSpendable(params.UTXOSet, aad, params.AsOf, params.Locktime, params.Threshold)
	if err != nil {
		return nil, err
	}

	allOuts := append(outs, change...)
	components.SortTransferableOutputs(allOuts)

	tx := &components.BaseTx{
		NetworkID:    b.networkID,
		BlockchainID: b.blockchainID,
		Outs:         allOuts,
		Ins:          ins,
		Memo:         params.Memo,
	}
	if err = tx.Verify(); err != nil {
		return nil, err
	}

	return components.NewUnsignedTx(tx), nil
}

// BuildCreateAssetTx constructs an unsigned asset creation transaction.
// The id of the signed transaction becomes the new asset id.
func (b *TxBuilder) BuildCreateAssetTx(params CreateAssetTxParams) (*components.UnsignedTx, error) {
	if len(params.Memo) > avax.MaxMemoLen {
		return nil, avax.ErrConfig
	}

	ins, outs, change, err := b.payFee(params.UTXOSet, params.From, params.Change, params.Fee, params.FeeAssetID, params.AsOf)
	if err != nil {
		return nil, err
	}

	allOuts := append(outs, change...)
	components.SortTransferableOutputs(allOuts)

	for _, state := range params.InitialStates {
		state.Sort()
	}
	sort.SliceStable(params.InitialStates, func(i, j int) bool {
		return params.InitialStates[i].FxID < params.InitialStates[j].FxID
	})

	tx := &components.CreateAssetTx{
		BaseTx: components.BaseTx{
			NetworkID:    b.networkID,
			BlockchainID: b.blockchainID,
			Outs:         allOuts,
			Ins:          ins,
			Memo:         params.Memo,
		},
		Name:          params.Name,
		Symbol:        params.Symbol,
		Denomination:  params.Denomination,
		InitialStates: params.InitialStates,
	}
	if err = tx.Verify(); err != nil {
		return nil, err
	}

	return components.NewUnsignedTx(tx), nil
}

// BuildOperationTx constructs an unsigned transaction transferring the
// provided NFT UTXOs to new owners. Returns (nil, nil) without NFT UTXOs.
func (b *TxBuilder) BuildOperationTx(params OperationTxParams) (*components.UnsignedTx, error) {
	if len(params.NFTUTXOs) == 0 {
		return nil, nil
	}
	if err := checkCommon(len(params.To), params.Threshold, params.Memo); err != nil {
		return nil, err
	}

	toAddrs := append([]avax.Address(nil), params.To...)
	avax.SortAddresses(toAddrs)

	ops := make([]*components.TransferableOperation, 0, len(params.NFTUTXOs))
	for _, utxo := range params.NFTUTXOs {
		nftOut, ok := utxo.Out.(*components.NFTTransferOutput)
		if !ok {
			return nil, avax.ErrConfig
		}
		if !nftOut.MeetsThreshold(params.From, params.AsOf) {
			return nil, avax.ErrConfig
		}

		spenders := nftOut.Spenders(params.From, params.AsOf)
		sigIdxs := make([]components.SigIndex, 0, len(spenders))
		for _, spender := range spenders {
			sigIdxs = append(sigIdxs, components.SigIndex{
				Index:  uint32(nftOut.AddressIndex(spender)),
				Source: spender,
			})
		}

		op := &components.TransferableOperation{
			AssetID: utxo.AssetID,
			UTXOIDs: []*components.UTXOID{{TxID: utxo.TxID, OutputIndex: utxo.OutputIndex}},
			Op: &components.NFTTransferOp{
				SigIdxs: sigIdxs,
				Out: components.NFTTransferOutput{
					GroupID: nftOut.GroupID,
					Payload: nftOut.Payload,
					OutputOwners: components.OutputOwners{
						Locktime:  params.Locktime,
						Threshold: params.Threshold,
						Addrs:     toAddrs,
					},
				},
			},
		}
		op.Sort()
		ops = append(ops, op)
	}

	ins, outs, change, err := b.payFee(params.UTXOSet, params.From, params.Change, params.Fee, params.FeeAssetID, params.AsOf)
	if err != nil {
		return nil, err
	}

	allOuts := append(outs, change...)
	components.SortTransferableOutputs(allOuts)

	tx := &components.OperationTx{
		BaseTx: components.BaseTx{
			NetworkID:    b.networkID,
			BlockchainID: b.blockchainID,
			Outs:         allOuts,
			Ins:          ins,
			Memo:         params.Memo,
		},
		Ops: ops,
	}
	if err = tx.Verify(); err != nil {
		return nil, err
	}

	return components.NewUnsignedTx(tx), nil
}

// BuildImportTx constructs an unsigned import transaction. The fee is paid
// from the imported inputs first; any shortfall is drawn from the local set.
// Returns (nil, nil) when no atomic UTXO is spendable.
func (b *TxBuilder) BuildImportTx(params ImportTxParams) (*components.UnsignedTx, error) {
	if err := checkCommon(len(params.To), params.Threshold, params.Memo); err != nil {
		return nil, err
	}
	if params.FeeAssetID != params.AvaxAssetID {
		return nil, avax.ErrConfig
	}

	importTxID, err := b.importTxID()
	if err != nil {
		return nil, err
	}

	importedIns, importedAmt, err := consumeAtomics(params.AtomicUTXOs, params.FeeAssetID, params.From, params.AsOf)
	if err != nil {
		return nil, err
	}
	if len(importedIns) == 0 {
		return nil, nil
	}

	toAddrs := append([]avax.Address(nil), params.To...)
	avax.SortAddresses(toAddrs)

	var (
		ins  []*components.TransferableInput
		outs []*components.TransferableOutput
	)
	if importedAmt >= params.Fee {
		if remainder := importedAmt - params.Fee; remainder > 0 {
			outs = append(outs, &components.TransferableOutput{
				AssetID: params.FeeAssetID,
				Out: &components.TransferOutput{
					Amt: remainder,
					OutputOwners: components.OutputOwners{
						Locktime:  params.Locktime,
						Threshold: params.Threshold,
						Addrs:     toAddrs,
					},
				},
			})
		}
	} else {
		// imported value does not cover the fee, draw the rest locally.
		var change []*components.TransferableOutput
		ins, outs, change, err = b.payFee(params.UTXOSet, params.From, params.Change, params.Fee-importedAmt, params.FeeAssetID, params.AsOf)
		if err != nil {
			return nil, err
		}
		outs = append(outs, change...)
	}

	components.SortTransferableInputs(importedIns)
	components.SortTransferableOutputs(outs)

	tx := &components.ImportTx{
		BaseTx: components.BaseTx{
			NetworkID:    b.networkID,
			BlockchainID: b.blockchainID,
			Outs:         outs,
			Ins:          ins,
			Memo:         params.Memo,
		},
		TxTypeID:    importTxID,
		SourceChain: params.SourceChainID,
		ImportedIns: importedIns,
	}
	if err = tx.Verify(); err != nil {
		return nil, err
	}

	return components.NewUnsignedTx(tx), nil
}

// BuildExportTx constructs an unsigned export transaction. Exported outputs
// move to the destination chain, change stays local. Returns (nil, nil) when
// the amount is zero.
func (b *TxBuilder) BuildExportTx(params ExportTxParams) (*components.UnsignedTx, error) {
	if params.Amount == 0 {
		return nil, nil
	}
	if err := checkCommon(len(params.To), params.Threshold, params.Memo); err != nil {
		return nil, err
	}
	if params.FeeAssetID != params.AvaxAssetID {
		return nil, avax.ErrConfig
	}

	exportTxID, err := b.exportTxID()
	if err != nil {
		return nil, err
	}

	aad := NewAssetAmountDestination(params.To, params.From, params.Change)
	if params.AssetID == params.FeeAssetID {
		if err = aad.AddAssetAmount(params.AssetID, params.Amount, params.Fee); err != nil {
			return nil, err
		}
	} else {
		if err = aad.AddAssetAmount(params.AssetID, params.Amount, 0); err != nil {
			return nil, err
		}
		if params.Fee > 0 {
			if err = aad.AddAssetAmount(params.FeeAssetID, 0, params.Fee); err != nil {
				return nil, err
			}
		}
	}

	ins, exported, change, err := GetMinimumSpendable(params.UTXOSet, aad, params.AsOf, params.Locktime, params.Threshold)
	if err != nil {
		return nil, err
	}

	tx := &components.ExportTx{
		BaseTx: components.BaseTx{
			NetworkID:    b.networkID,
			BlockchainID: b.blockchainID,
			Outs:         change,
			Ins:          ins,
			Memo:         params.Memo,
		},
		TxTypeID:         exportTxID,
		DestinationChain: params.DestinationChainID,
		ExportedOuts:     exported,
	}
	if err = tx.Verify(); err != nil {
		return nil, err
	}

	return components.NewUnsignedTx(tx), nil
}

// payFee solves a burn-only demand against the set. Returns inputs, empty
// destination outputs and change outputs. No-op when fee is zero.
func (b *TxBuilder) payFee(
	set *components.UTXOSet,
	from, changeAddrs []avax.Address,
	fee uint64,
	feeAssetID avax.ID,
	asOf uint64,
) (ins []*components.TransferableInput, outs, change []*components.TransferableOutput, err error) {
	if fee == 0 {
		return nil, nil, nil, nil
	}

	aad := NewAssetAmountDestination(nil, from, changeAddrs)
	if err = aad.AddAssetAmount(feeAssetID, 0, fee); err != nil {
		return nil, nil, nil, err
	}

	return GetMinimumSpendable(set, aad, asOf, 0, 1)
}

// importTxID maps the builder's chain to its import transaction type id.
func (b *TxBuilder) importTxID() (uint32, error) {
	switch b.chain {
	case avax.XChainAlias:
		return components.AVMImportTxID, nil
	case avax.PChainAlias:
		return components.PlatformImportTxID, nil
	default:
		return 0, avax.ErrConfig
	}
}

// exportTxID maps the builder's chain to its export transaction type id.
func (b *TxBuilder) exportTxID() (uint32, error) {
	switch b.chain {
	case avax.XChainAlias:
		return components.AVMExportTxID, nil
	case avax.PChainAlias:
		return components.PlatformExportTxID, nil
	default:
		return 0, avax.ErrConfig
	}
}

// consumeAtomics turns spendable atomic UTXOs of the fee asset into
// transferable inputs. A UTXO of any other asset is rejected: paying the fee
// across assets during import is not supported.
func consumeAtomics(
	atomics []*components.UTXO,
	feeAssetID avax.ID,
	from []avax.Address,
	asOf uint64,
) (ins []*components.TransferableInput, total uint64, err error) {
	for _, utxo := range atomics {
		out, ok := utxo.Out.(components.AmountOutput)
		if !ok {
			continue
		}
		if utxo.AssetID != feeAssetID {
			return nil, 0, avax.ErrConfig
		}
		if !out.MeetsThreshold(from, asOf) {
			continue
		}

		spenders := out.Spenders(from, asOf)
		sigIdxs := make([]components.SigIndex, 0, len(spenders))
		for _, spender := range spenders {
			sigIdxs = append(sigIdxs, components.SigIndex{
				Index:  uint32(out.AddressIndex(spender)),
				Source: spender,
			})
		}

		if total, err = numbers.SafeAdd(total, out.Amount()); err != nil {
			return nil, 0, avax.ErrConfig
		}

		ins = append(ins, &components.TransferableInput{
			UTXOID:  utxo.UTXOID,
			AssetID: utxo.AssetID,
			In: &components.TransferInput{
				Amt:     out.Amount(),
				SigIdxs: sigIdxs,
			},
		})
	}

	return ins, total, nil
}

// checkCommon validates guards shared by the builders.
func checkCommon(numTo int, threshold uint32, memo []byte) error {
	if int(threshold) > numTo {
		return avax.ErrConfig
	}
	if len(memo) > avax.MaxMemoLen {
		return avax.ErrConfig
	}

	return nil
}
