package ecosystem

import (
	"errors"
	"math/big"
	"testing"

	"artchain/core"
	"artchain/core/events"
	"artchain/core/state"
	"artchain/native/reserve"
	"artchain/native/token"
	"artchain/storage"
	"artchain/storage/trie"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) Emit(evt events.Event) {
	r.events = append(r.events, evt)
}

func addr(b byte) [20]byte {
	var a [20]byte
	a[19] = b
	return a
}

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

var (
	deployer = addr(0x01)
	artist   = addr(0x10)
	fan      = addr(0x20)
	outsider = addr(0x99)
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *core.Processor, *recorder) {
	t.Helper()
	tr, err := trie.NewTrie(storage.NewMemDB(), nil)
	if err != nil {
		t.Fatalf("new trie: %v", err)
	}
	sink := &recorder{}
	processor := core.NewProcessor(tr, sink)
	orchestrator := NewOrchestrator(processor)
	orchestrator.SetNowFunc(func() int64 { return 1_700_000_000 })
	return orchestrator, processor, sink
}

func TestDeployBootstrapsComponents(t *testing.T) {
	orchestrator, processor, _ := newTestOrchestrator(t)
	deployment, err := orchestrator.Deploy(deployer)
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if deployment.Token == deployment.Reserve || deployment.Reserve == deployment.Rewards {
		t.Fatal("expected distinct component addresses")
	}

	ledger, accountant, engine := orchestrator.Engines(deployment)
	if owner, err := ledger.Owner(); err != nil || owner != deployer {
		t.Fatalf("expected deployer to own the ledger, got %x (err %v)", owner, err)
	}
	if member, err := ledger.IsMinter(deployment.Rewards); err != nil || !member {
		t.Fatalf("expected reward engine to hold the minter grant (err %v)", err)
	}
	snapshot, err := accountant.Snapshot()
	if err != nil {
		t.Fatalf("reserve snapshot: %v", err)
	}
	if snapshot.Governance != deployment.Rewards {
		t.Fatalf("expected reward engine as governance caller, got %x", snapshot.Governance)
	}
	if snapshot.RatioBps != DefaultRatioBps {
		t.Fatalf("expected default ratio %d, got %d", DefaultRatioBps, snapshot.RatioBps)
	}
	if owner, err := engine.Owner(); err != nil || owner != deployer {
		t.Fatalf("expected deployer to own the reward engine, got %x (err %v)", owner, err)
	}

	manager := processor.Manager()
	for _, component := range [][20]byte{deployment.Token, deployment.Reserve, deployment.Rewards} {
		record, found, err := manager.Component(component)
		if err != nil || !found {
			t.Fatalf("missing component record for %x (err %v)", component, err)
		}
		if record.Version != 1 {
			t.Fatalf("expected version 1, got %d", record.Version)
		}
	}
	account, err := manager.GetAccount(deployer)
	if err != nil {
		t.Fatalf("deployer account: %v", err)
	}
	if account.Nonce != 3 {
		t.Fatalf("expected deployer nonce 3, got %d", account.Nonce)
	}

	if _, err := orchestrator.Deploy(deployer); !errors.Is(err, ErrAlreadyDeployed) {
		t.Fatalf("expected ErrAlreadyDeployed, got %v", err)
	}
}

func TestDeployIsAtomic(t *testing.T) {
	orchestrator, processor, sink := newTestOrchestrator(t)
	manager := processor.Manager()

	// Occupy the derived ledger address so initialization fails mid-sequence.
	tokenAddr := DeriveComponentAddress(deployer, 0)
	meta := &token.Metadata{Name: "squatter", Symbol: "SQT", Decimals: 18, Owner: outsider}
	if err := manager.TokenState(tokenAddr).SetMetadata(meta); err != nil {
		t.Fatalf("seed metadata: %v", err)
	}

	if _, err := orchestrator.Deploy(deployer); !errors.Is(err, token.ErrAlreadyInitialized) {
		t.Fatalf("expected ledger initialization failure, got %v", err)
	}

	if _, found, err := orchestrator.Deployment(); err != nil || found {
		t.Fatalf("expected no deployment record after failed bootstrap (found %v, err %v)", found, err)
	}
	reserveAddr := DeriveComponentAddress(deployer, 1)
	if _, found, err := manager.ReserveState(reserveAddr).Config(); err != nil || found {
		t.Fatalf("expected no reserve config after failed bootstrap (found %v, err %v)", found, err)
	}
	if _, found, err := manager.Component(tokenAddr); err != nil || found {
		t.Fatalf("expected no component record after failed bootstrap (found %v, err %v)", found, err)
	}
	account, err := manager.GetAccount(deployer)
	if err != nil {
		t.Fatalf("deployer account: %v", err)
	}
	if account.Nonce != 0 {
		t.Fatalf("expected deployer nonce untouched, got %d", account.Nonce)
	}
	if len(sink.events) != 0 {
		t.Fatalf("expected no events from a failed bootstrap, got %d", len(sink.events))
	}
}

func TestRewardFlowAcrossComponents(t *testing.T) {
	orchestrator, processor, _ := newTestOrchestrator(t)
	deployment, err := orchestrator.Deploy(deployer)
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	ledger, accountant, engine := orchestrator.Engines(deployment)
	manager := processor.Manager()

	fanAccount, err := manager.GetAccount(fan)
	if err != nil {
		t.Fatalf("fan account: %v", err)
	}
	fanAccount.Balance = eth(5)
	if err := manager.PutAccount(fan, fanAccount); err != nil {
		t.Fatalf("fund fan: %v", err)
	}

	err = processor.Execute(func(*state.Manager) error {
		if err := accountant.ReceiveRevenue(fan, eth(5)); err != nil {
			return err
		}
		if err := engine.RegisterArtist(deployer, artist); err != nil {
			return err
		}
		return engine.RewardArtist(deployer, artist, eth(100), eth(1))
	})
	if err != nil {
		t.Fatalf("reward flow: %v", err)
	}

	if balance, err := ledger.BalanceOf(artist); err != nil || balance.Cmp(eth(100)) != 0 {
		t.Fatalf("expected 100 units for the artist, got %s (err %v)", balance, err)
	}
	snapshot, err := accountant.Snapshot()
	if err != nil {
		t.Fatalf("reserve snapshot: %v", err)
	}
	if snapshot.TotalReserve.Cmp(eth(4)) != 0 {
		t.Fatalf("expected reserve of 4 after the payout, got %s", snapshot.TotalReserve)
	}
	artistAccount, err := manager.GetAccount(artist)
	if err != nil {
		t.Fatalf("artist account: %v", err)
	}
	if artistAccount.Balance.Cmp(eth(1)) != 0 {
		t.Fatalf("expected 1 unit of value for the artist, got %s", artistAccount.Balance)
	}
}

func TestRewardFlowRollsBackOnFailure(t *testing.T) {
	orchestrator, processor, _ := newTestOrchestrator(t)
	deployment, err := orchestrator.Deploy(deployer)
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	ledger, _, engine := orchestrator.Engines(deployment)
	manager := processor.Manager()

	err = processor.Execute(func(*state.Manager) error {
		if err := engine.RegisterArtist(deployer, artist); err != nil {
			return err
		}
		// The mint succeeds but the empty reserve rejects the value leg.
		return engine.RewardArtist(deployer, artist, eth(100), eth(1))
	})
	if !errors.Is(err, reserve.ErrInsufficientReserve) {
		t.Fatalf("expected ErrInsufficientReserve, got %v", err)
	}

	if balance, err := ledger.BalanceOf(artist); err != nil || balance.Sign() != 0 {
		t.Fatalf("expected mint rolled back, got %s (err %v)", balance, err)
	}
	if _, err := engine.Artist(artist); err == nil {
		t.Fatal("expected registration rolled back")
	}
	if account, err := manager.GetAccount(artist); err != nil || account.Balance.Sign() != 0 {
		t.Fatalf("expected no value delivered, got %s (err %v)", account.Balance, err)
	}
}

func TestUpgradePreservesComponentState(t *testing.T) {
	orchestrator, processor, _ := newTestOrchestrator(t)
	deployment, err := orchestrator.Deploy(deployer)
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	ledger, _, engine := orchestrator.Engines(deployment)

	err = processor.Execute(func(*state.Manager) error {
		if err := engine.RegisterArtist(deployer, artist); err != nil {
			return err
		}
		return engine.RewardArtist(deployer, artist, eth(100), nil)
	})
	if err != nil {
		t.Fatalf("reward flow: %v", err)
	}

	version, err := orchestrator.UpgradeComponent(deployer, deployment.Token)
	if err != nil {
		t.Fatalf("upgrade ledger: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected version 2 after upgrade, got %d", version)
	}
	if balance, err := ledger.BalanceOf(artist); err != nil || balance.Cmp(eth(100)) != 0 {
		t.Fatalf("expected balance preserved across upgrade, got %s (err %v)", balance, err)
	}

	// The initialized flag survives the swap, so re-initialization still fails.
	err = processor.Execute(func(*state.Manager) error {
		return ledger.Initialize(deployer, UnitName, UnitSymbol, UnitDecimals)
	})
	if !errors.Is(err, token.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestUpgradeGating(t *testing.T) {
	orchestrator, _, _ := newTestOrchestrator(t)
	deployment, err := orchestrator.Deploy(deployer)
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if _, err := orchestrator.UpgradeComponent(outsider, deployment.Reserve); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := orchestrator.UpgradeComponent(deployer, addr(0x42)); !errors.Is(err, ErrUnknownComponent) {
		t.Fatalf("expected ErrUnknownComponent, got %v", err)
	}
	// Kind-checked entry points reject a component of the wrong kind.
	if _, err := orchestrator.UpgradeReserve(deployer, deployment.Token); !errors.Is(err, ErrUnknownComponent) {
		t.Fatalf("expected kind mismatch rejection, got %v", err)
	}
	if version, err := orchestrator.UpgradeReserve(deployer, deployment.Reserve); err != nil || version != 2 {
		t.Fatalf("expected reserve upgraded to version 2, got %d (err %v)", version, err)
	}
}
