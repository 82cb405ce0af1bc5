// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package txbuilder

import (
	"avalanche/avax"
	"avalanche/avax/components"
	"avalanche/internal/numbers"
)

// AssetAmount tracks solving progress for one demanded asset.
type AssetAmount struct {
	AssetID avax.ID
	Amount  uint64 // to be delivered to destinations.
	Burn    uint64 // to be destroyed on top, usually the fee.

	Spent    uint64
	Change   uint64
	finished bool
}

// Finished returns true once spent covers amount plus burn.
func (aa *AssetAmount) Finished() bool {
	return aa.finished
}

// consume accounts the full value of one selected output.
func (aa *AssetAmount) consume(amount uint64) error {
	spent, err := numbers.SafeAdd(aa.Spent, amount)
	if err != nil {
		return avax.ErrConfig
	}
	aa.Spent = spent

	total, err := numbers.SafeAdd(aa.Amount, aa.Burn)
	if err != nil {
		return avax.ErrConfig
	}
	if aa.Spent >= total {
		aa.finished = true
		aa.Change = aa.Spent - total
	}

	return nil
}

// AssetAmountDestination is a multi-asset demand descriptor: how much of each
// asset to deliver and burn, who funds it, who receives it, and where change
// returns.
type AssetAmountDestination struct {
	Destinations    []avax.Address
	Senders         []avax.Address
	ChangeAddresses []avax.Address

	amounts []*AssetAmount
	byAsset map[avax.ID]*AssetAmount
}

// NewAssetAmountDestination is a constructor for AssetAmountDestination.
func NewAssetAmountDestination(destinations, senders, changeAddresses []avax.Address) *AssetAmountDestination {
	return &AssetAmountDestination{
		Destinations:    destinations,
		Senders:         senders,
		ChangeAddresses: changeAddresses,
		byAsset:         make(map[avax.ID]*AssetAmount),
	}
}

// AddAssetAmount registers a demand for the asset. One demand per asset.
func (aad *AssetAmountDestination) AddAssetAmount(assetID avax.ID, amount, burn uint64) error {
	if _, ok := aad.byAsset[assetID]; ok {
		return avax.ErrConfig
	}
	if _, err := numbers.SafeAdd(amount, burn); err != nil {
		return avax.ErrConfig
	}

	aa := &AssetAmount{AssetID: assetID, Amount: amount, Burn: burn}
	aad.amounts = append(aad.amounts, aa)
	aad.byAsset[assetID] = aa

	return nil
}

// Get returns the demand for the asset if registered.
func (aad *AssetAmountDestination) Get(assetID avax.ID) (*AssetAmount, bool) {
	aa, ok := aad.byAsset[assetID]

	return aa, ok
}

// Amounts returns the registered demands in registration order.
func (aad *AssetAmountDestination) Amounts() []*AssetAmount {
	return aad.amounts
}

// CanComplete returns true once every demand is satisfied.
func (aad *AssetAmountDestination) CanComplete() bool {
	for _, aa := range aad.amounts {
		if !aa.finished {
			return false
		}
	}

	return true
}

// GetMinimumSpendable greedily selects UTXOs from the set in its iteration
// order until every demand is covered. Returns balanced inputs, destination
// outputs and change outputs, each canonically sorted. Selection is first-fit
// and deterministic: the same set order and demand always produce identical
// transactions.
func GetMinimumSpendable(
	set *components.UTXOSet,
	aad *AssetAmountDestination,
	asOf, locktime uint64,
	threshold uint32,
) (ins []*components.TransferableInput, outs, change []*components.TransferableOutput, err error) {
	for _, utxo := range set.GetAllUTXOs() {
		aa, demanded := aad.Get(utxo.AssetID)
		if !demanded || aa.Finished() {
			continue
		}

		// non-transfer variants of a demanded asset are legal, just not spendable here.
		out, ok := utxo.Out.(components.AmountOutput)
		if !ok {
			continue
		}
		if !out.MeetsThreshold(aad.Senders, asOf) {
			continue
		}

		spenders := out.Spenders(aad.Senders, asOf)
		sigIdxs := make([]components.SigIndex, 0, len(spenders))
		for _, spender := range spenders {
			sigIdxs = append(sigIdxs, components.SigIndex{
				Index:  uint32(out.AddressIndex(spender)),
				Source: spender,
			})
		}

		if err = aa.consume(out.Amount()); err != nil {
			return nil, nil, nil, err
		}

		ins = append(ins, &components.TransferableInput{
			UTXOID:  utxo.UTXOID,
			AssetID: utxo.AssetID,
			In: &components.TransferInput{
				Amt:     out.Amount(),
				SigIdxs: sigIdxs,
			},
		})

		if aad.CanComplete() {
			break
		}
	}

	for _, aa := range aad.Amounts() {
		if !aa.Finished() {
			return nil, nil, nil, NewInsufficientFundsError(aa.AssetID, aa.Amount+aa.Burn, aa.Spent)
		}
	}

	destAddrs := append([]avax.Address(nil), aad.Destinations...)
	avax.SortAddresses(destAddrs)
	changeAddrs := append([]avax.Address(nil), aad.ChangeAddresses...)
	avax.SortAddresses(changeAddrs)

	for _, aa := range aad.Amounts() {
		if aa.Amount > 0 {
			outs = append(outs, &components.TransferableOutput{
				AssetID: aa.AssetID,
				Out: &components.TransferOutput{
					Amt: aa.Amount,
					OutputOwners: components.OutputOwners{
						Locktime:  locktime,
						Threshold: threshold,
						Addrs:     destAddrs,
					},
				},
			})
		}
		if aa.Change > 0 {
			change = append(change, &components.TransferableOutput{
				AssetID: aa.AssetID,
				Out: &components.TransferOutput{
					Amt: aa.Change,
					OutputOwners: components.OutputOwners{
						Threshold: 1,
						Addrs:     changeAddrs,
					},
				},
			})
		}
	}

	components.SortTransferableInputs(ins)
	components.SortTransferableOutputs(outs)
	components.SortTransferableOutputs(change)

	return ins, outs, change, nil
}
