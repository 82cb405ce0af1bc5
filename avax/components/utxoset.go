// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"avalanche/avax"
	"avalanche/internal/numbers"
)

// UTXOSet is an indexed collection of UTXOs. The primary index owns the
// records, the address index only references them by id. Iteration follows
// insertion order so repeated construction over the same set is byte-identical.
type UTXOSet struct {
	utxos     map[string]*UTXO
	order     []string
	byAddress map[avax.Address]map[string]struct{}
}

// NewUTXOSet is a constructor for UTXOSet.
func NewUTXOSet() *UTXOSet {
	return &UTXOSet{
		utxos:     make(map[string]*UTXO),
		byAddress: make(map[avax.Address]map[string]struct{}),
	}
}

// Add inserts the UTXO into both indices. Idempotent by UTXO id.
func (set *UTXOSet) Add(utxo *UTXO) {
	id := utxo.ID()
	if _, ok := set.utxos[id]; ok {
		return
	}

	set.utxos[id] = utxo
	set.order = append(set.order, id)
	for _, addr := range utxo.Out.Addresses() {
		if set.byAddress[addr] == nil {
			set.byAddress[addr] = make(map[string]struct{})
		}
		set.byAddress[addr][id] = struct{}{}
	}
}

// Remove drops the UTXO by id from both indices.
func (set *UTXOSet) Remove(id string) {
	utxo, ok := set.utxos[id]
	if !ok {
		return
	}

	delete(set.utxos, id)
	for idx, ordered := range set.order {
		if ordered == id {
			set.order = append(set.order[:idx], set.order[idx+1:]...)
			break
		}
	}
	for _, addr := range utxo.Out.Addresses() {
		delete(set.byAddress[addr], id)
		if len(set.byAddress[addr]) == 0 {
			delete(set.byAddress, addr)
		}
	}
}

// Get returns the UTXO by id, nil if absent.
func (set *UTXOSet) Get(id string) *UTXO {
	return set.utxos[id]
}

// Has returns true if the UTXO id is present.
func (set *UTXOSet) Has(id string) bool {
	_, ok := set.utxos[id]

	return ok
}

// Len returns how many UTXOs the set holds.
func (set *UTXOSet) Len() int {
	return len(set.utxos)
}

// GetAllUTXOs returns all UTXOs in insertion order.
func (set *UTXOSet) GetAllUTXOs() []*UTXO {
	utxos := make([]*UTXO, 0, len(set.order))
	for _, id := range set.order {
		utxos = append(utxos, set.utxos[id])
	}

	return utxos
}

// GetUTXOsByAddress returns UTXOs whose output lists addr as an owner, in
// insertion order. Threshold and locktime are not checked.
func (set *UTXOSet) GetUTXOsByAddress(addr avax.Address) []*UTXO {
	ids := set.byAddress[addr]
	utxos := make([]*UTXO, 0, len(ids))
	for _, id := range set.order {
		if _, ok := ids[id]; ok {
			utxos = append(utxos, set.utxos[id])
		}
	}

	return utxos
}

// AssetIDs returns distinct asset ids of held UTXOs in insertion order.
func (set *UTXOSet) AssetIDs() []avax.ID {
	seen := make(map[avax.ID]struct{}, len(set.order))
	var assetIDs []avax.ID
	for _, id := range set.order {
		assetID := set.utxos[id].AssetID
		if _, ok := seen[assetID]; ok {
			continue
		}
		seen[assetID] = struct{}{}
		assetIDs = append(assetIDs, assetID)
	}

	return assetIDs
}

// GetBalance sums transfer amounts of UTXOs matching the asset whose
// outputs addrs can spend as of asOf.
func (set *UTXOSet) GetBalance(addrs []avax.Address, assetID avax.ID, asOf uint64) (uint64, error) {
	var balance uint64
	for _, id := range set.order {
		utxo := set.utxos[id]
		if utxo.AssetID != assetID {
			continue
		}

		out, ok := utxo.Out.(AmountOutput)
		if !ok || !out.MeetsThreshold(addrs, asOf) {
			continue
		}

		var err error
		if balance, err = numbers.SafeAdd(balance, out.Amount()); err != nil {
			return 0, avax.ErrConfig
		}
	}

	return balance, nil
}

// Encode returns every UTXO in CB58 form, in insertion order.
func (set *UTXOSet) Encode() []string {
	encoded := make([]string, 0, len(set.order))
	for _, id := range set.order {
		encoded = append(encoded, id)
	}

	return encoded
}

// DecodeUTXOSet builds a set from CB58-encoded UTXOs using the chain registry.
func DecodeUTXOSet(registry *Registry, encoded []string) (*UTXOSet, error) {
	set := NewUTXOSet()
	for _, s := range encoded {
		utxo, err := ParseUTXO(registry, s)
		if err != nil {
			return nil, err
		}
		set.Add(utxo)
	}

	return set, nil
}
