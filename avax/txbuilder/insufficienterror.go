// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package txbuilder

import (
	"errors"
	"fmt"

	"avalanche/avax"
)

// ErrInsufficientFunds defines that spendable UTXOs do not cover the demand.
var ErrInsufficientFunds = errors.New("insufficient funds")

// InsufficientFundsError is the error type to describe insufficient balance
// errors with the unmet asset and shortfall.
type InsufficientFundsError struct {
	AssetID avax.ID
	Need    uint64
	Have    uint64
}

// NewInsufficientFundsError is a constructor for InsufficientFundsError.
func NewInsufficientFundsError(assetID avax.ID, need, have uint64) *InsufficientFundsError {
	return &InsufficientFundsError{AssetID: assetID, Need: need, Have: have}
}

// Error returns error description.
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for asset %s: Need - %d, Have - %d", e.AssetID, e.Need, e.Have)
}

// Is implements comparator method for [errors] package.
func (e *InsufficientFundsError) Is(target error) bool {
	return errors.Is(target, ErrInsufficientFunds) || e.Error() == target.Error()
}

// Shortfall returns how much of the asset is missing.
func (e *InsufficientFundsError) Shortfall() uint64 {
	return e.Need - e.Have
}
