// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package txbuilder_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"avalanche/avax"
	"avalanche/avax/components"
	"avalanche/avax/txbuilder"
)

func TestBuildBaseTx(t *testing.T) {
	var (
		assetA  = id(10)
		assetX  = id(11)
		chainID = id(42)
		builder = txbuilder.NewTxBuilder(avax.LocalID, chainID, avax.XChainAlias)
	)

	t.Run("single asset send", func(t *testing.T) {
		set := components.NewUTXOSet()
		set.Add(transferUTXO(1, 0, assetA, 1000, 1, addr(1)))

		utx, err := builder.BuildBaseTx(txbuilder.BaseTxParams{
			UTXOSet:    set,
			Amount:     300,
			AssetID:    assetA,
			To:         []avax.Address{addr(2)},
			From:       []avax.Address{addr(1)},
			Change:     []avax.Address{addr(1)},
			Fee:        10,
			FeeAssetID: assetA,
			Threshold:  1,
		})
		require.NoError(t, err)
		require.NotNil(t, utx)

		tx := utx.Tx.(*components.BaseTx)
		require.EqualValues(t, avax.LocalID, tx.NetworkID)
		require.Equal(t, chainID, tx.BlockchainID)
		require.Len(t, tx.Ins, 1)
		require.Len(t, tx.Outs, 2)
		require.Equal(t, map[avax.ID]uint64{assetA: 990}, outputAmounts(tx.Outs))

		// outputs are in canonical order by serialized bytes.
		require.Negative(t, bytes.Compare(tx.Outs[0].Bytes(), tx.Outs[1].Bytes()))
	})

	t.Run("separate fee asset", func(t *testing.T) {
		set := components.NewUTXOSet()
		set.Add(transferUTXO(1, 0, assetA, 500, 1, addr(1)))
		set.Add(transferUTXO(2, 0, assetX, 50, 1, addr(1)))

		utx, err := builder.BuildBaseTx(txbuilder.BaseTxParams{
			UTXOSet:    set,
			Amount:     200,
			AssetID:    assetA,
			To:         []avax.Address{addr(2)},
			From:       []avax.Address{addr(1)},
			Change:     []avax.Address{addr(1)},
			Fee:        10,
			FeeAssetID: assetX,
			Threshold:  1,
		})
		require.NoError(t, err)

		tx := utx.Tx.(*components.BaseTx)
		require.Len(t, tx.Ins, 2)
		require.Len(t, tx.Outs, 3)
		require.Equal(t, map[avax.ID]uint64{assetA: 500, assetX: 40}, outputAmounts(tx.Outs))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		set := components.NewUTXOSet()
		set.Add(transferUTXO(1, 0, assetA, 100, 1, addr(1)))

		utx, err := builder.BuildBaseTx(txbuilder.BaseTxParams{
			UTXOSet:    set,
			Amount:     200,
			AssetID:    assetA,
			To:         []avax.Address{addr(2)},
			From:       []avax.Address{addr(1)},
			Change:     []avax.Address{addr(1)},
			FeeAssetID: assetA,
			Threshold:  1,
		})
		require.ErrorIs(t, err, txbuilder.ErrInsufficientFunds)
		require.Nil(t, utx)
	})

	t.Run("zero amount is a no-op", func(t *testing.T) {
		utx, err := builder.BuildBaseTx(txbuilder.BaseTxParams{
			UTXOSet:    components.NewUTXOSet(),
			AssetID:    assetA,
			FeeAssetID: assetA,
		})
		require.NoError(t, err)
		require.Nil(t, utx)
	})

	t.Run("threshold over destinations", func(t *testing.T) {
		_, err := builder.BuildBaseTx(txbuilder.BaseTxParams{
			UTXOSet:    components.NewUTXOSet(),
			Amount:     1,
			AssetID:    assetA,
			To:         []avax.Address{addr(2)},
			From:       []avax.Address{addr(1)},
			FeeAssetID: assetA,
			Threshold:  2,
		})
		require.ErrorIs(t, err, avax.ErrConfig)
	})

	t.Run("memo too long", func(t *testing.T) {
		_, err := builder.BuildBaseTx(txbuilder.BaseTxParams{
			UTXOSet:    components.NewUTXOSet(),
			Amount:     1,
			AssetID:    assetA,
			To:         []avax.Address{addr(2)},
			From:       []avax.Address{addr(1)},
			FeeAssetID: assetA,
			Memo:       bytes.Repeat([]byte{1}, avax.MaxMemoLen+1),
			Threshold:  1,
		})
		require.ErrorIs(t, err, avax.ErrConfig)
	})

	t.Run("deterministic bytes", func(t *testing.T) {
		build := func() []byte {
			set := components.NewUTXOSet()
			set.Add(transferUTXO(1, 0, assetA, 1000, 1, addr(1)))
			set.Add(transferUTXO(1, 1, assetA, 400, 1, addr(1)))

			utx, err := builder.BuildBaseTx(txbuilder.BaseTxParams{
				UTXOSet:    set,
				Amount:     1200,
				AssetID:    assetA,
				To:         []avax.Address{addr(2)},
				From:       []avax.Address{addr(1)},
				Change:     []avax.Address{addr(1)},
				Fee:        10,
				FeeAssetID: assetA,
				Threshold:  1,
			})
			require.NoError(t, err)

			return utx.Bytes()
		}

		require.Equal(t, build(), build())
	})
}

func TestBuildCreateAssetTx(t *testing.T) {
	var (
		feeAsset = id(10)
		builder  = txbuilder.NewTxBuilder(avax.LocalID, id(42), avax.XChainAlias)
	)

	newParams := func() txbuilder.CreateAssetTxParams {
		set := components.NewUTXOSet()
		set.Add(transferUTXO(1, 0, feeAsset, 100, 1, addr(1)))

		return txbuilder.CreateAssetTxParams{
			UTXOSet:      set,
			Name:         "Wrapped Token",
			Symbol:       "WTK",
			Denomination: 9,
			InitialStates: []*components.InitialState{{
				FxID: 0,
				Outs: []components.Output{&components.TransferOutput{
					Amt: 1000,
					OutputOwners: components.OutputOwners{
						Threshold: 1,
						Addrs:     []avax.Address{addr(1)},
					},
				}},
			}},
			From:       []avax.Address{addr(1)},
			Change:     []avax.Address{addr(1)},
			Fee:        10,
			FeeAssetID: feeAsset,
		}
	}

	t.Run("fee and change", func(t *testing.T) {
		utx, err := builder.BuildCreateAssetTx(newParams())
		require.NoError(t, err)

		tx := utx.Tx.(*components.CreateAssetTx)
		require.EqualValues(t, components.AVMCreateAssetTxID, tx.TypeID())
		require.Len(t, tx.Ins, 1)
		require.Equal(t, map[avax.ID]uint64{feeAsset: 90}, outputAmounts(tx.Outs))
	})

	t.Run("name too long", func(t *testing.T) {
		params := newParams()
		params.Name = string(bytes.Repeat([]byte{'a'}, components.MaxNameLen+1))
		_, err := builder.BuildCreateAssetTx(params)
		require.ErrorIs(t, err, avax.ErrConfig)
	})

	t.Run("symbol too long", func(t *testing.T) {
		params := newParams()
		params.Symbol = "TOKEN"
		_, err := builder.BuildCreateAssetTx(params)
		require.ErrorIs(t, err, avax.ErrConfig)
	})

	t.Run("denomination too large", func(t *testing.T) {
		params := newParams()
		params.Denomination = components.MaxDenomination + 1
		_, err := builder.BuildCreateAssetTx(params)
		require.ErrorIs(t, err, avax.ErrConfig)
	})
}

func TestBuildOperationTx(t *testing.T) {
	var (
		nftAsset = id(20)
		feeAsset = id(10)
		builder  = txbuilder.NewTxBuilder(avax.LocalID, id(42), avax.XChainAlias)
	)

	nftUTXO := components.NewUTXO(id(2), 1, nftAsset, &components.NFTTransferOutput{
		GroupID: 1,
		Payload: []byte("artwork"),
		OutputOwners: components.OutputOwners{
			Threshold: 1,
			Addrs:     []avax.Address{addr(1)},
		},
	})

	t.Run("nft transfer with fee", func(t *testing.T) {
		set := components.NewUTXOSet()
		set.Add(transferUTXO(1, 0, feeAsset, 100, 1, addr(1)))

		utx, err := builder.BuildOperationTx(txbuilder.OperationTxParams{
			UTXOSet:    set,
			NFTUTXOs:   []*components.UTXO{nftUTXO},
			To:         []avax.Address{addr(2)},
			From:       []avax.Address{addr(1)},
			Change:     []avax.Address{addr(1)},
			Fee:        10,
			FeeAssetID: feeAsset,
			Threshold:  1,
		})
		require.NoError(t, err)

		tx := utx.Tx.(*components.OperationTx)
		require.Len(t, tx.Ops, 1)
		require.Equal(t, nftAsset, tx.Ops[0].AssetID)

		op := tx.Ops[0].Op.(*components.NFTTransferOp)
		require.Equal(t, []byte("artwork"), op.Out.Payload)
		require.Equal(t, []avax.Address{addr(2)}, op.Out.Addrs)
		require.Equal(t, []components.SigIndex{{Index: 0, Source: addr(1)}}, op.SigIdxs)

		intents := tx.Intents()
		require.Len(t, intents, 2)
		require.EqualValues(t, components.NFTCredentialID, intents[1].CredentialID)
	})

	t.Run("no nft utxos is a no-op", func(t *testing.T) {
		utx, err := builder.BuildOperationTx(txbuilder.OperationTxParams{UTXOSet: components.NewUTXOSet()})
		require.NoError(t, err)
		require.Nil(t, utx)
	})

	t.Run("foreign nft utxo", func(t *testing.T) {
		_, err := builder.BuildOperationTx(txbuilder.OperationTxParams{
			UTXOSet:    components.NewUTXOSet(),
			NFTUTXOs:   []*components.UTXO{nftUTXO},
			To:         []avax.Address{addr(2)},
			From:       []avax.Address{addr(9)},
			FeeAssetID: feeAsset,
			Threshold:  1,
		})
		require.ErrorIs(t, err, avax.ErrConfig)
	})
}

func TestBuildImportTx(t *testing.T) {
	var (
		avaxAsset = id(10)
		builder   = txbuilder.NewTxBuilder(avax.LocalID, id(42), avax.XChainAlias)
	)

	atomic := func(amount uint64) *components.UTXO {
		return transferUTXO(3, 0, avaxAsset, amount, 1, addr(1))
	}

	t.Run("fee paid from imported inputs", func(t *testing.T) {
		utx, err := builder.BuildImportTx(txbuilder.ImportTxParams{
			UTXOSet:       components.NewUTXOSet(),
			AtomicUTXOs:   []*components.UTXO{atomic(100)},
			SourceChainID: id(60),
			To:            []avax.Address{addr(2)},
			From:          []avax.Address{addr(1)},
			Change:        []avax.Address{addr(1)},
			Fee:           10,
			FeeAssetID:    avaxAsset,
			AvaxAssetID:   avaxAsset,
			Threshold:     1,
		})
		require.NoError(t, err)

		tx := utx.Tx.(*components.ImportTx)
		require.EqualValues(t, components.AVMImportTxID, tx.TypeID())
		require.Equal(t, id(60), tx.SourceChain)
		require.Len(t, tx.ImportedIns, 1)
		require.Empty(t, tx.Ins)
		require.Equal(t, map[avax.ID]uint64{avaxAsset: 90}, outputAmounts(tx.Outs))
	})

	t.Run("fee equals imported value", func(t *testing.T) {
		utx, err := builder.BuildImportTx(txbuilder.ImportTxParams{
			UTXOSet:       components.NewUTXOSet(),
			AtomicUTXOs:   []*components.UTXO{atomic(10)},
			SourceChainID: id(60),
			To:            []avax.Address{addr(2)},
			From:          []avax.Address{addr(1)},
			Fee:           10,
			FeeAssetID:    avaxAsset,
			AvaxAssetID:   avaxAsset,
			Threshold:     1,
		})
		require.NoError(t, err)

		tx := utx.Tx.(*components.ImportTx)
		require.Empty(t, tx.Outs, "everything burned as fee")
	})

	t.Run("fee shortfall drawn from local set", func(t *testing.T) {
		set := components.NewUTXOSet()
		set.Add(transferUTXO(1, 0, avaxAsset, 50, 1, addr(1)))

		utx, err := builder.BuildImportTx(txbuilder.ImportTxParams{
			UTXOSet:       set,
			AtomicUTXOs:   []*components.UTXO{atomic(4)},
			SourceChainID: id(60),
			To:            []avax.Address{addr(2)},
			From:          []avax.Address{addr(1)},
			Change:        []avax.Address{addr(1)},
			Fee:           10,
			FeeAssetID:    avaxAsset,
			AvaxAssetID:   avaxAsset,
			Threshold:     1,
		})
		require.NoError(t, err)

		tx := utx.Tx.(*components.ImportTx)
		require.Len(t, tx.ImportedIns, 1)
		require.Len(t, tx.Ins, 1, "local input covers the shortfall")
		require.Equal(t, map[avax.ID]uint64{avaxAsset: 44}, outputAmounts(tx.Outs), "change from the local input")
	})

	t.Run("fee asset must be avax", func(t *testing.T) {
		_, err := builder.BuildImportTx(txbuilder.ImportTxParams{
			UTXOSet:     components.NewUTXOSet(),
			To:          []avax.Address{addr(2)},
			FeeAssetID:  id(11),
			AvaxAssetID: avaxAsset,
			Threshold:   1,
		})
		require.ErrorIs(t, err, avax.ErrConfig)
	})

	t.Run("imported asset must match fee asset", func(t *testing.T) {
		foreign := transferUTXO(3, 1, id(11), 100, 1, addr(1))
		_, err := builder.BuildImportTx(txbuilder.ImportTxParams{
			UTXOSet:       components.NewUTXOSet(),
			AtomicUTXOs:   []*components.UTXO{foreign},
			SourceChainID: id(60),
			To:            []avax.Address{addr(2)},
			From:          []avax.Address{addr(1)},
			FeeAssetID:    avaxAsset,
			AvaxAssetID:   avaxAsset,
			Threshold:     1,
		})
		require.ErrorIs(t, err, avax.ErrConfig)
	})

	t.Run("no spendable atomics is a no-op", func(t *testing.T) {
		utx, err := builder.BuildImportTx(txbuilder.ImportTxParams{
			UTXOSet:       components.NewUTXOSet(),
			SourceChainID: id(60),
			To:            []avax.Address{addr(2)},
			From:          []avax.Address{addr(1)},
			FeeAssetID:    avaxAsset,
			AvaxAssetID:   avaxAsset,
			Threshold:     1,
		})
		require.NoError(t, err)
		require.Nil(t, utx)
	})

	t.Run("platform dialect type id", func(t *testing.T) {
		pBuilder := txbuilder.NewTxBuilder(avax.LocalID, id(43), avax.PChainAlias)
		utx, err := pBuilder.BuildImportTx(txbuilder.ImportTxParams{
			UTXOSet:       components.NewUTXOSet(),
			AtomicUTXOs:   []*components.UTXO{atomic(100)},
			SourceChainID: id(60),
			To:            []avax.Address{addr(2)},
			From:          []avax.Address{addr(1)},
			Fee:           10,
			FeeAssetID:    avaxAsset,
			AvaxAssetID:   avaxAsset,
			Threshold:     1,
		})
		require.NoError(t, err)
		require.EqualValues(t, components.PlatformImportTxID, utx.Tx.TypeID())
	})
}

func TestBuildExportTx(t *testing.T) {
	var (
		avaxAsset = id(10)
		builder   = txbuilder.NewTxBuilder(avax.LocalID, id(42), avax.XChainAlias)
	)

	t.Run("exported outs and local change", func(t *testing.T) {
		set := components.NewUTXOSet()
		set.Add(transferUTXO(1, 0, avaxAsset, 1000, 1, addr(1)))

		utx, err := builder.BuildExportTx(txbuilder.ExportTxParams{
			UTXOSet:            set,
			Amount:             300,
			AssetID:            avaxAsset,
			DestinationChainID: id(61),
			To:                 []avax.Address{addr(2)},
			From:               []avax.Address{addr(1)},
			Change:             []avax.Address{addr(1)},
			Fee:                10,
			FeeAssetID:         avaxAsset,
			AvaxAssetID:        avaxAsset,
			Threshold:          1,
		})
		require.NoError(t, err)

		tx := utx.Tx.(*components.ExportTx)
		require.EqualValues(t, components.AVMExportTxID, tx.TypeID())
		require.Equal(t, id(61), tx.DestinationChain)
		require.Equal(t, map[avax.ID]uint64{avaxAsset: 300}, outputAmounts(tx.ExportedOuts))
		require.Equal(t, map[avax.ID]uint64{avaxAsset: 690}, outputAmounts(tx.Outs))
	})

	t.Run("fee asset must be avax", func(t *testing.T) {
		_, err := builder.BuildExportTx(txbuilder.ExportTxParams{
			UTXOSet:     components.NewUTXOSet(),
			Amount:      1,
			AssetID:     avaxAsset,
			To:          []avax.Address{addr(2)},
			FeeAssetID:  id(11),
			AvaxAssetID: avaxAsset,
			Threshold:   1,
		})
		require.ErrorIs(t, err, avax.ErrConfig)
	})

	t.Run("zero amount is a no-op", func(t *testing.T) {
		utx, err := builder.BuildExportTx(txbuilder.ExportTxParams{UTXOSet: components.NewUTXOSet()})
		require.NoError(t, err)
		require.Nil(t, utx)
	})
}

func TestBuildEVMTxs(t *testing.T) {
	var (
		avaxAsset = id(10)
		builder   = txbuilder.NewTxBuilder(avax.LocalID, id(44), avax.CChainAlias)
		evmAddr   = addr(7)
	)

	t.Run("import pays fee from inputs without change", func(t *testing.T) {
		utx, err := builder.BuildEVMImportTx(txbuilder.EVMImportTxParams{
			AtomicUTXOs:   []*components.UTXO{transferUTXO(3, 0, avaxAsset, 100, 1, addr(1))},
			SourceChainID: id(60),
			ToAddress:     evmAddr,
			From:          []avax.Address{addr(1)},
			Fee:           10,
			FeeAssetID:    avaxAsset,
			AvaxAssetID:   avaxAsset,
		})
		require.NoError(t, err)

		tx := utx.Tx.(*components.EVMImportTx)
		require.Len(t, tx.ImportedIns, 1)
		require.Len(t, tx.Outs, 1)
		require.Equal(t, evmAddr, tx.Outs[0].Address)
		require.EqualValues(t, 90, tx.Outs[0].Amt)
		require.Equal(t, avaxAsset, tx.Outs[0].AssetID)
	})

	t.Run("import insufficient for fee", func(t *testing.T) {
		_, err := builder.BuildEVMImportTx(txbuilder.EVMImportTxParams{
			AtomicUTXOs:   []*components.UTXO{transferUTXO(3, 0, avaxAsset, 5, 1, addr(1))},
			SourceChainID: id(60),
			ToAddress:     evmAddr,
			From:          []avax.Address{addr(1)},
			Fee:           10,
			FeeAssetID:    avaxAsset,
			AvaxAssetID:   avaxAsset,
		})
		require.ErrorIs(t, err, txbuilder.ErrInsufficientFunds)
	})

	t.Run("export funds amount plus fee from one account", func(t *testing.T) {
		utx, err := builder.BuildEVMExportTx(txbuilder.EVMExportTxParams{
			Amount:             300,
			AssetID:            avaxAsset,
			DestinationChainID: id(61),
			FromAddress:        evmAddr,
			Nonce:              4,
			To:                 []avax.Address{addr(2)},
			Fee:                10,
			FeeAssetID:         avaxAsset,
			AvaxAssetID:        avaxAsset,
			Threshold:          1,
		})
		require.NoError(t, err)

		tx := utx.Tx.(*components.EVMExportTx)
		require.Len(t, tx.Ins, 1)
		require.EqualValues(t, 310, tx.Ins[0].Amt)
		require.EqualValues(t, 4, tx.Ins[0].Nonce)
		require.Equal(t, map[avax.ID]uint64{avaxAsset: 300}, outputAmounts(tx.ExportedOuts))
	})

	t.Run("export with separate fee input", func(t *testing.T) {
		tokenAsset := id(12)
		utx, err := builder.BuildEVMExportTx(txbuilder.EVMExportTxParams{
			Amount:             300,
			AssetID:            tokenAsset,
			DestinationChainID: id(61),
			FromAddress:        evmAddr,
			Nonce:              4,
			To:                 []avax.Address{addr(2)},
			Fee:                10,
			FeeAssetID:         avaxAsset,
			AvaxAssetID:        avaxAsset,
			Threshold:          1,
		})
		require.NoError(t, err)

		tx := utx.Tx.(*components.EVMExportTx)
		require.Len(t, tx.Ins, 2)
		require.Equal(t, map[avax.ID]uint64{tokenAsset: 300}, outputAmounts(tx.ExportedOuts))
	})

	t.Run("wrong chain alias", func(t *testing.T) {
		xBuilder := txbuilder.NewTxBuilder(avax.LocalID, id(42), avax.XChainAlias)
		_, err := xBuilder.BuildEVMImportTx(txbuilder.EVMImportTxParams{
			AtomicUTXOs: []*components.UTXO{transferUTXO(3, 0, avaxAsset, 100, 1, addr(1))},
			FeeAssetID:  avaxAsset,
			AvaxAssetID: avaxAsset,
		})
		require.ErrorIs(t, err, avax.ErrConfig)
	})
}
