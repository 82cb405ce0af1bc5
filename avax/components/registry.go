// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package components

import (
	"fmt"

	"avalanche/avax"
)

// Type ids shared by every chain codec.
const (
	// SECPTransferInputID defines type id of the SECP transfer input.
	SECPTransferInputID uint32 = 5
	// SECPMintOutputID defines type id of the SECP mint output.
	SECPMintOutputID uint32 = 6
	// SECPTransferOutputID defines type id of the SECP transfer output.
	SECPTransferOutputID uint32 = 7
	// SECPCredentialID defines type id of the SECP credential.
	SECPCredentialID uint32 = 9
)

// Type ids registered on the X-chain codec only.
const (
	// NFTMintOutputID defines type id of the NFT mint output.
	NFTMintOutputID uint32 = 10
	// NFTTransferOutputID defines type id of the NFT transfer output.
	NFTTransferOutputID uint32 = 11
	// NFTTransferOpID defines type id of the NFT transfer operation.
	NFTTransferOpID uint32 = 13
	// NFTCredentialID defines type id of the NFT credential.
	NFTCredentialID uint32 = 14
)

// Type ids registered on the P-chain codec only.
const (
	// PlatformOwnerOutputID defines type id of the plain owner output.
	PlatformOwnerOutputID uint32 = 11
	// StakeableLockInID defines type id of the stakeable locked input.
	StakeableLockInID uint32 = 21
	// StakeableLockOutID defines type id of the stakeable locked output.
	StakeableLockOutID uint32 = 22
)

// Transaction type ids per chain codec.
const (
	// AVMBaseTxID defines type id of the X-chain base transaction.
	AVMBaseTxID uint32 = 0
	// AVMCreateAssetTxID defines type id of the X-chain asset creation transaction.
	AVMCreateAssetTxID uint32 = 1
	// AVMOperationTxID defines type id of the X-chain operation transaction.
	AVMOperationTxID uint32 = 2
	// AVMImportTxID defines type id of the X-chain import transaction.
	AVMImportTxID uint32 = 3
	// AVMExportTxID defines type id of the X-chain export transaction.
	AVMExportTxID uint32 = 4

	// PlatformImportTxID defines type id of the P-chain import transaction.
	PlatformImportTxID uint32 = 17
	// PlatformExportTxID defines type id of the P-chain export transaction.
	PlatformExportTxID uint32 = 18

	// EVMImportTxID defines type id of the C-chain import transaction.
	EVMImportTxID uint32 = 0
	// EVMExportTxID defines type id of the C-chain export transaction.
	EVMExportTxID uint32 = 1
)

// Registry maps type ids of one chain codec to variant constructors.
// Registries are built once at package load and are read-only afterwards.
type Registry struct {
	chain   string
	outputs map[uint32]func() Output
	inputs  map[uint32]func() Input
	txs     map[uint32]func() Transaction
}

// NewRegistry is a constructor for Registry.
func NewRegistry(chain string) *Registry {
	return &Registry{
		chain:   chain,
		outputs: make(map[uint32]func() Output),
		inputs:  make(map[uint32]func() Input),
		txs:     make(map[uint32]func() Transaction),
	}
}

// Chain returns the chain alias the registry serves.
func (r *Registry) Chain() string {
	return r.chain
}

// RegisterOutput binds an output constructor to a type id.
func (r *Registry) RegisterOutput(typeID uint32, fn func() Output) {
	r.outputs[typeID] = fn
}

// RegisterInput binds an input constructor to a type id.
func (r *Registry) RegisterInput(typeID uint32, fn func() Input) {
	r.inputs[typeID] = fn
}

// RegisterTx binds a transaction constructor to a type id.
func (r *Registry) RegisterTx(typeID uint32, fn func() Transaction) {
	r.txs[typeID] = fn
}

// SelectOutput returns a fresh output variant by type id.
func (r *Registry) SelectOutput(typeID uint32) (Output, error) {
	fn, ok := r.outputs[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s output %d", avax.ErrUnknownType, r.chain, typeID)
	}

	return fn(), nil
}

// SelectInput returns a fresh input variant by type id.
func (r *Registry) SelectInput(typeID uint32) (Input, error) {
	fn, ok := r.inputs[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s input %d", avax.ErrUnknownType, r.chain, typeID)
	}

	return fn(), nil
}

// SelectTx returns a fresh transaction variant by type id.
func (r *Registry) SelectTx(typeID uint32) (Transaction, error) {
	fn, ok := r.txs[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s tx %d", avax.ErrUnknownType, r.chain, typeID)
	}

	return fn(), nil
}

// AVMRegistry serves the X-chain codec.
var AVMRegistry = newAVMRegistry()

// PlatformRegistry serves the P-chain codec.
var PlatformRegistry = newPlatformRegistry()

// EVMRegistry serves the C-chain codec.
var EVMRegistry = newEVMRegistry()

func newAVMRegistry() *Registry {
	r := NewRegistry(avax.XChainAlias)
	r.RegisterOutput(SECPMintOutputID, func() Output { return &MintOutput{} })
	r.RegisterOutput(SECPTransferOutputID, func() Output { return &TransferOutput{} })
	r.RegisterOutput(NFTMintOutputID, func() Output { return &NFTMintOutput{} })
	r.RegisterOutput(NFTTransferOutputID, func() Output { return &NFTTransferOutput{} })
	r.RegisterInput(SECPTransferInputID, func() Input { return &TransferInput{} })
	r.RegisterTx(AVMBaseTxID, func() Transaction { return &BaseTx{} })
	r.RegisterTx(AVMCreateAssetTxID, func() Transaction { return &CreateAssetTx{} })
	r.RegisterTx(AVMOperationTxID, func() Transaction { return &OperationTx{} })
	r.RegisterTx(AVMImportTxID, func() Transaction { return &ImportTx{TxTypeID: AVMImportTxID} })
	r.RegisterTx(AVMExportTxID, func() Transaction { return &ExportTx{TxTypeID: AVMExportTxID} })

	return r
}

func newPlatformRegistry() *Registry {
	r := NewRegistry(avax.PChainAlias)
	r.RegisterOutput(SECPTransferOutputID, func() Output { return &TransferOutput{} })
	r.RegisterOutput(PlatformOwnerOutputID, func() Output { return &OwnerOutput{} })
	r.RegisterOutput(StakeableLockOutID, func() Output { return &StakeableLockOut{} })
	r.RegisterInput(SECPTransferInputID, func() Input { return &TransferInput{} })
	r.RegisterInput(StakeableLockInID, func() Input { return &StakeableLockIn{} })
	r.RegisterTx(PlatformImportTxID, func() Transaction { return &ImportTx{TxTypeID: PlatformImportTxID} })
	r.RegisterTx(PlatformExportTxID, func() Transaction { return &ExportTx{TxTypeID: PlatformExportTxID} })

	return r
}

func newEVMRegistry() *Registry {
	r := NewRegistry(avax.CChainAlias)
	r.RegisterOutput(SECPTransferOutputID, func() Output { return &TransferOutput{} })
	r.RegisterInput(SECPTransferInputID, func() Input { return &TransferInput{} })
	r.RegisterTx(EVMImportTxID, func() Transaction { return &EVMImportTx{} })
	r.RegisterTx(EVMExportTxID, func() Transaction { return &EVMExportTx{} })

	return r
}
