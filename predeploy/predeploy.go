// Package predeploy provisions the genesis state SPEC_FULL.md §4.5 and §6
// describe: a configurable number of funded accounts, the ERC-20 fee
// token, the Universal Deployer Contract, and one "chargeable" account at
// a fixed address/key pair (funded with the same initial balance as the
// generated accounts), all declared and deployed into a
// blockchain's pending state before the first block is sealed.
package predeploy

import (
	"github.com/starknet-devnet/devnetgo/blockchain"
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/vm"
)

// Config parameterises genesis provisioning, mirroring the node
// configuration fields named in SPEC_FULL.md §6 (seed, total_accounts,
// initial_balance).
type Config struct {
	Seed            int64
	AccountCount    int
	InitialBalance  *felt.Felt
	AccountClass    core.Class
	AccountCompiled *felt.Felt // compiled-class hash, Cairo-1 only; nil for Cairo-0
	ERC20Class      core.Class
	UDCClass        core.Class
}

// Account is one generated predeployed account, returned so the node's
// HTTP surface can serve GET /predeployed_accounts (SPEC_FULL.md §6).
type Account struct {
	Address    *felt.Felt
	PublicKey  *felt.Felt
	PrivateKey *felt.Felt
	Balance    *felt.Felt
}

// Result is everything Generate provisioned, for the node layer to log
// and expose.
type Result struct {
	Accounts         []Account
	ChargeableAccount Account
	ERC20Address     *felt.Felt
	UDCAddress       *felt.Felt
}

// Generate declares the account/ERC20/UDC classes and deploys the
// configured number of funded accounts plus the fixed chargeable account
// into chain's pending state. It must run before the genesis block (block
// 0) is sealed: every write lands in LayeredState.Pending, and the
// caller is expected to call builder.Builder.Seal() once immediately
// after to commit it as block 0, exactly as BlockBuilder's own
// RestartPendingBlock/Seal cycle works for every later block.
func Generate(chain *blockchain.Blockchain, cfg Config) (*Result, error) {
	state := chain.Layered.Pending

	accountClassHash := Cairo0AccountClassHash
	if cfg.AccountCompiled != nil {
		accountClassHash = Cairo1AccountClassHash
	}
	if err := declareIfNeeded(state, accountClassHash, cfg.AccountClass, cfg.AccountCompiled); err != nil {
		return nil, err
	}

	if err := declareIfNeeded(state, ERC20ClassHash, cfg.ERC20Class, nil); err != nil {
		return nil, err
	}
	if err := declareIfNeeded(state, UDCClassHash, cfg.UDCClass, nil); err != nil {
		return nil, err
	}

	if err := deployFeeToken(state); err != nil {
		return nil, err
	}
	if err := deployUDC(state, cfg.UDCClass); err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, cfg.AccountCount)
	for i := 0; i < cfg.AccountCount; i++ {
		acc, err := deployFundedAccount(state, accountClassHash, cfg.Seed, i, cfg.InitialBalance)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	chargeable, err := deployChargeableAccount(state, accountClassHash, cfg.InitialBalance)
	if err != nil {
		return nil, err
	}

	return &Result{
		Accounts:          accounts,
		ChargeableAccount: chargeable,
		ERC20Address:      ERC20ContractAddress,
		UDCAddress:        UDCContractAddress,
	}, nil
}

func declareIfNeeded(state *core.StateStore, classHash *felt.Felt, class core.Class, compiledHash *felt.Felt) error {
	if class == nil {
		return nil
	}
	return state.Declare(classHash, class, compiledHash, 0)
}

func deployFeeToken(state *core.StateStore) error {
	if state.IsDeployed(ERC20ContractAddress) {
		return nil
	}
	return state.Deploy(ERC20ContractAddress, ERC20ClassHash)
}

func deployUDC(state *core.StateStore, udcClass core.Class) error {
	if udcClass == nil || state.IsDeployed(UDCContractAddress) {
		return nil
	}
	return state.Deploy(UDCContractAddress, UDCClassHash)
}

func deployFundedAccount(state *core.StateStore, classHash *felt.Felt, seed int64, index int, balance *felt.Felt) (Account, error) {
	kp := deriveKeyPair(seed, index)
	salt := new(felt.Felt).SetUint64(uint64(index))
	address := core.ComputeAddress(new(felt.Felt), salt, classHash, []*felt.Felt{kp.PublicKey})

	if err := state.Deploy(address, classHash); err != nil {
		return Account{}, err
	}
	fund(state, address, balance)
	state.SetNonce(address, new(felt.Felt))

	return Account{Address: address, PublicKey: kp.PublicKey, PrivateKey: kp.PrivateKey, Balance: balance}, nil
}

func deployChargeableAccount(state *core.StateStore, classHash *felt.Felt, balance *felt.Felt) (Account, error) {
	if state.IsDeployed(ChargeableAccountAddress) {
		return Account{
			Address:    ChargeableAccountAddress,
			PublicKey:  ChargeableAccountPublicKey,
			PrivateKey: ChargeableAccountPrivateKey,
			Balance:    balance,
		}, nil
	}
	if err := state.Deploy(ChargeableAccountAddress, classHash); err != nil {
		return Account{}, err
	}
	fund(state, ChargeableAccountAddress, balance)
	state.SetNonce(ChargeableAccountAddress, new(felt.Felt))

	return Account{
		Address:    ChargeableAccountAddress,
		PublicKey:  ChargeableAccountPublicKey,
		PrivateKey: ChargeableAccountPrivateKey,
		Balance:    balance,
	}, nil
}

// fund credits address's ERC20 balance slot, the same storage-variable
// convention vm.SimpleExecutor's chargeFee debits against.
func fund(state *core.StateStore, address, amount *felt.Felt) {
	key := core.StorageKey{Address: *address, Key: *vm.StorageVarAddress("ERC20_balances", address)}
	state.SetStorage(key, amount)
}
