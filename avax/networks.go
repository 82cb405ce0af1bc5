// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package avax

// Network ids with assigned human-readable address parts.
const (
	// MainnetID defines id of the main network.
	MainnetID uint32 = 1
	// FujiID defines id of the Fuji test network.
	FujiID uint32 = 5
	// LocalID defines id of a local network.
	LocalID uint32 = 12345
)

// Human-readable parts for bech32 addresses.
const (
	// MainnetHRP defines address prefix of the main network.
	MainnetHRP = "avax"
	// FujiHRP defines address prefix of the Fuji test network.
	FujiHRP = "fuji"
	// LocalHRP defines address prefix of a local network.
	LocalHRP = "local"
	// FallbackHRP defines address prefix for unlisted networks.
	FallbackHRP = "custom"
)

// Chain aliases used as address prefixes.
const (
	// XChainAlias defines alias of the asset-exchange chain.
	XChainAlias = "X"
	// PChainAlias defines alias of the platform chain.
	PChainAlias = "P"
	// CChainAlias defines alias of the contract chain.
	CChainAlias = "C"
)

// hrpByNetwork maps network ids to address prefixes.
var hrpByNetwork = map[uint32]string{
	MainnetID: MainnetHRP,
	FujiID:    FujiHRP,
	LocalID:   LocalHRP,
}

// HRP returns the human-readable address part assigned to the network.
func HRP(networkID uint32) string {
	if hrp, ok := hrpByNetwork[networkID]; ok {
		return hrp
	}

	return FallbackHRP
}
