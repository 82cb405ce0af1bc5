// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package txbuilder

import (
	"avalanche/avax"
	"avalanche/avax/components"
	"avalanche/internal/numbers"
)

// EVMImportTxParams describes data needed to build a C-chain import transaction.
type EVMImportTxParams struct {
	AtomicUTXOs   []*components.UTXO
	SourceChainID avax.ID
	ToAddress     avax.Address // C-chain account to credit.
	From          []avax.Address
	Fee           uint64
	FeeAssetID    avax.ID
	AvaxAssetID   avax.ID
	AsOf          uint64
}

// EVMExportTxParams describes data needed to build a C-chain export transaction.
type EVMExportTxParams struct {
	Amount             uint64
	AssetID            avax.ID
	DestinationChainID avax.ID
	FromAddress        avax.Address // C-chain account to debit.
	Nonce              uint64
	To                 []avax.Address
	Fee                uint64
	FeeAssetID         avax.ID
	AvaxAssetID        avax.ID
	Locktime           uint64
	Threshold          uint32
}

// BuildEVMImportTx constructs an unsigned C-chain import transaction. The fee
// is taken from the imported value itself and no change output is produced.
// Returns (nil, nil) when no atomic UTXO is spendable.
func (b *TxBuilder) BuildEVMImportTx(params EVMImportTxParams) (*components.UnsignedTx, error) {
	if b.chain != avax.CChainAlias {
		return nil, avax.ErrConfig
	}
	if params.FeeAssetID != params.AvaxAssetID {
		return nil, avax.ErrConfig
	}

	importedIns, importedAmt, err := consumeAtomics(params.AtomicUTXOs, params.FeeAssetID, params.From, params.AsOf)
	if err != nil {
		return nil, err
	}
	if len(importedIns) == 0 {
		return nil, nil
	}
	if importedAmt < params.Fee {
		return nil, NewInsufficientFundsError(params.FeeAssetID, params.Fee, importedAmt)
	}

	var outs []components.EVMOutput
	if remainder := importedAmt - params.Fee; remainder > 0 {
		outs = append(outs, components.EVMOutput{
			Address: params.ToAddress,
			Amt:     remainder,
			AssetID: params.FeeAssetID,
		})
	}

	components.SortTransferableInputs(importedIns)
	components.SortEVMOutputs(outs)

	tx := &components.EVMImportTx{
		NetworkID:    b.networkID,
		BlockchainID: b.blockchainID,
		SourceChain:  params.SourceChainID,
		ImportedIns:  importedIns,
		Outs:         outs,
	}
	if err = tx.Verify(); err != nil {
		return nil, err
	}

	return components.NewUnsignedTx(tx), nil
}

// BuildEVMExportTx constructs an unsigned C-chain export transaction funded
// from one account. Returns (nil, nil) when the amount is zero.
func (b *TxBuilder) BuildEVMExportTx(params EVMExportTxParams) (*components.UnsignedTx, error) {
	if params.Amount == 0 {
		return nil, nil
	}
	if b.chain != avax.CChainAlias {
		return nil, avax.ErrConfig
	}
	if params.FeeAssetID != params.AvaxAssetID {
		return nil, avax.ErrConfig
	}
	if int(params.Threshold) > len(params.To) {
		return nil, avax.ErrConfig
	}

	var ins []components.EVMInput
	if params.AssetID == params.FeeAssetID {
		total, err := numbers.SafeAdd(params.Amount, params.Fee)
		if err != nil {
			return nil, avax.ErrConfig
		}

		ins = append(ins, components.EVMInput{
			Address: params.FromAddress,
			Amt:     total,
			AssetID: params.AssetID,
			Nonce:   params.Nonce,
		})
	} else {
		ins = append(ins, components.EVMInput{
			Address: params.FromAddress,
			Amt:     params.Amount,
			AssetID: params.AssetID,
			Nonce:   params.Nonce,
		})
		if params.Fee > 0 {
			ins = append(ins, components.EVMInput{
				Address: params.FromAddress,
				Amt:     params.Fee,
				AssetID: params.FeeAssetID,
				Nonce:   params.Nonce,
			})
		}
	}
	components.SortEVMInputs(ins)

	toAddrs := append([]avax.Address(nil), params.To...)
	avax.SortAddresses(toAddrs)

	exported := []*components.TransferableOutput{{
		AssetID: params.AssetID,
		Out: &components.TransferOutput{
			Amt: params.Amount,
			OutputOwners: components.OutputOwners{
				Locktime:  params.Locktime,
				Threshold: params.Threshold,
				Addrs:     toAddrs,
			},
		},
	}}

	tx := &components.EVMExportTx{
		NetworkID:        b.networkID,
		BlockchainID:     b.blockchainID,
		DestinationChain: params.DestinationChainID,
		Ins:              ins,
		ExportedOuts:     exported,
	}
	if err := tx.Verify(); err != nil {
		return nil, err
	}

	return components.NewUnsignedTx(tx), nil
}
