// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avalanche/avax"
	"avalanche/avax/components"
	"avalanche/internal/bytereader"
)

func addr(b byte) avax.Address {
	var a avax.Address
	a[0] = b

	return a
}

func id(b byte) avax.ID {
	var i avax.ID
	i[0] = b

	return i
}

func roundTripOutput(t *testing.T, registry *components.Registry, out components.Output) components.Output {
	t.Helper()

	decoded, err := registry.SelectOutput(out.TypeID())
	require.NoError(t, err)

	r := bytereader.New(out.Bytes())
	require.NoError(t, decoded.FromBytes(r))
	require.False(t, r.HasNext())
	require.Equal(t, out.Bytes(), decoded.Bytes())

	return decoded
}

func TestOutputs(t *testing.T) {
	owners := components.OutputOwners{
		Locktime:  50,
		Threshold: 2,
		Addrs:     []avax.Address{addr(1), addr(2), addr(3)},
	}

	t.Run("transfer output round trip", func(t *testing.T) {
		out := &components.TransferOutput{Amt: 1000, OutputOwners: owners}
		decoded := roundTripOutput(t, components.AVMRegistry, out)
		require.Equal(t, out, decoded)
	})

	t.Run("mint output round trip", func(t *testing.T) {
		out := &components.MintOutput{OutputOwners: owners}
		require.Equal(t, out, roundTripOutput(t, components.AVMRegistry, out))
	})

	t.Run("nft outputs round trip", func(t *testing.T) {
		mint := &components.NFTMintOutput{GroupID: 7, OutputOwners: owners}
		require.Equal(t, mint, roundTripOutput(t, components.AVMRegistry, mint))

		transfer := &components.NFTTransferOutput{GroupID: 7, Payload: []byte("nft payload"), OutputOwners: owners}
		require.Equal(t, transfer, roundTripOutput(t, components.AVMRegistry, transfer))
	})

	t.Run("platform outputs round trip", func(t *testing.T) {
		owner := &components.OwnerOutput{OutputOwners: owners}
		require.Equal(t, owner, roundTripOutput(t, components.PlatformRegistry, owner))

		locked := &components.StakeableLockOut{
			Lock:        900,
			TransferOut: &components.TransferOutput{Amt: 5, OutputOwners: owners},
		}
		require.Equal(t, locked, roundTripOutput(t, components.PlatformRegistry, locked))
	})

	t.Run("evm output round trip", func(t *testing.T) {
		out := &components.EVMOutput{Address: addr(9), Amt: 77, AssetID: id(3)}
		decoded := &components.EVMOutput{}
		require.NoError(t, decoded.FromBytes(bytereader.New(out.Bytes())))
		require.Equal(t, out, decoded)
	})

	t.Run("unknown type id", func(t *testing.T) {
		_, err := components.AVMRegistry.SelectOutput(components.StakeableLockOutID)
		require.ErrorIs(t, err, avax.ErrUnknownType)

		_, err = components.PlatformRegistry.SelectOutput(components.NFTMintOutputID)
		require.ErrorIs(t, err, avax.ErrUnknownType)

		_, err = components.AVMRegistry.SelectInput(components.StakeableLockInID)
		require.ErrorIs(t, err, avax.ErrUnknownType)
	})

	t.Run("threshold and locktime", func(t *testing.T) {
		out := &components.TransferOutput{Amt: 1, OutputOwners: owners}

		require.True(t, out.MeetsThreshold([]avax.Address{addr(1), addr(3)}, 50))
		require.False(t, out.MeetsThreshold([]avax.Address{addr(1), addr(3)}, 49), "still locked")
		require.False(t, out.MeetsThreshold([]avax.Address{addr(1)}, 50), "below threshold")
		require.False(t, out.MeetsThreshold([]avax.Address{addr(4), addr(5)}, 50), "foreign addresses")

		require.Equal(t, []avax.Address{addr(1), addr(3)}, out.Spenders([]avax.Address{addr(3), addr(1)}, 50))
		require.Nil(t, out.Spenders([]avax.Address{addr(1), addr(3)}, 0))

		require.Equal(t, 2, out.AddressIndex(addr(3)))
		require.Equal(t, -1, out.AddressIndex(addr(9)))
	})

	t.Run("stakeable lock gating", func(t *testing.T) {
		locked := &components.StakeableLockOut{
			Lock:        100,
			TransferOut: &components.TransferOutput{Amt: 5, OutputOwners: owners},
		}

		require.False(t, locked.MeetsThreshold([]avax.Address{addr(1), addr(2)}, 99))
		require.True(t, locked.MeetsThreshold([]avax.Address{addr(1), addr(2)}, 100))
		require.EqualValues(t, 5, locked.Amount())
	})

	t.Run("verify", func(t *testing.T) {
		valid := &components.TransferOutput{Amt: 1, OutputOwners: owners}
		require.NoError(t, valid.Verify())

		zeroAmt := &components.TransferOutput{OutputOwners: owners}
		require.ErrorIs(t, zeroAmt.Verify(), avax.ErrConfig)

		unsorted := &components.TransferOutput{Amt: 1, OutputOwners: components.OutputOwners{
			Threshold: 1,
			Addrs:     []avax.Address{addr(2), addr(1)},
		}}
		require.ErrorIs(t, unsorted.Verify(), avax.ErrConfig)

		overThreshold := &components.TransferOutput{Amt: 1, OutputOwners: components.OutputOwners{
			Threshold: 3,
			Addrs:     []avax.Address{addr(1)},
		}}
		require.ErrorIs(t, overThreshold.Verify(), avax.ErrConfig)
	})
}

func TestInputs(t *testing.T) {
	t.Run("transfer input round trip", func(t *testing.T) {
		in := &components.TransferInput{
			Amt: 1000,
			SigIdxs: []components.SigIndex{
				{Index: 0, Source: addr(1)},
				{Index: 2, Source: addr(3)},
			},
		}

		decoded, err := components.AVMRegistry.SelectInput(in.TypeID())
		require.NoError(t, err)
		require.NoError(t, decoded.FromBytes(bytereader.New(in.Bytes())))
		require.Equal(t, in.Bytes(), decoded.Bytes())

		// sources are construction-time metadata and do not survive the wire.
		require.Equal(t, []avax.Address{addr(1), addr(3)}, in.Sources())
		require.Equal(t, []avax.Address{{}, {}}, decoded.Sources())
	})

	t.Run("stakeable lock input round trip", func(t *testing.T) {
		in := &components.StakeableLockIn{
			Lock:       42,
			TransferIn: &components.TransferInput{Amt: 9, SigIdxs: []components.SigIndex{{Index: 1}}},
		}

		decoded, err := components.PlatformRegistry.SelectInput(in.TypeID())
		require.NoError(t, err)
		require.NoError(t, decoded.FromBytes(bytereader.New(in.Bytes())))
		require.Equal(t, in.Bytes(), decoded.Bytes())
	})

	t.Run("evm input round trip", func(t *testing.T) {
		in := &components.EVMInput{Address: addr(4), Amt: 11, AssetID: id(2), Nonce: 3}
		decoded := &components.EVMInput{}
		require.NoError(t, decoded.FromBytes(bytereader.New(in.Bytes())))
		require.Equal(t, in, decoded)
	})

	t.Run("verify", func(t *testing.T) {
		require.NoError(t, (&components.TransferInput{Amt: 1, SigIdxs: []components.SigIndex{{Index: 0}}}).Verify())

		noSigs := &components.TransferInput{Amt: 1}
		require.ErrorIs(t, noSigs.Verify(), avax.ErrConfig)

		unsorted := &components.TransferInput{Amt: 1, SigIdxs: []components.SigIndex{{Index: 2}, {Index: 1}}}
		require.ErrorIs(t, unsorted.Verify(), avax.ErrConfig)

		duplicate := &components.TransferInput{Amt: 1, SigIdxs: []components.SigIndex{{Index: 1}, {Index: 1}}}
		require.ErrorIs(t, duplicate.Verify(), avax.ErrConfig)
	})
}
