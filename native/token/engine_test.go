package token

import (
	"errors"
	"math/big"
	"testing"
)

type mockState struct {
	meta       *Metadata
	supply     *big.Int
	balances   map[[20]byte]*big.Int
	allowances map[string]*big.Int
	minters    map[[20]byte]bool
}

func newMockState() *mockState {
	return &mockState{
		supply:     big.NewInt(0),
		balances:   make(map[[20]byte]*big.Int),
		allowances: make(map[string]*big.Int),
		minters:    make(map[[20]byte]bool),
	}
}

func (m *mockState) Metadata() (*Metadata, bool, error) {
	if m.meta == nil {
		return nil, false, nil
	}
	return m.meta.Clone(), true, nil
}

func (m *mockState) SetMetadata(meta *Metadata) error {
	m.meta = meta.Clone()
	return nil
}

func (m *mockState) Supply() (*big.Int, error) {
	return new(big.Int).Set(m.supply), nil
}

func (m *mockState) SetSupply(amount *big.Int) error {
	m.supply = new(big.Int).Set(amount)
	return nil
}

func (m *mockState) Balance(addr [20]byte) (*big.Int, error) {
	if balance, ok := m.balances[addr]; ok {
		return new(big.Int).Set(balance), nil
	}
	return big.NewInt(0), nil
}

func (m *mockState) SetBalance(addr [20]byte, amount *big.Int) error {
	m.balances[addr] = new(big.Int).Set(amount)
	return nil
}

func allowanceKey(owner, spender [20]byte) string {
	return string(append(append([]byte{}, owner[:]...), spender[:]...))
}

func (m *mockState) Allowance(owner, spender [20]byte) (*big.Int, error) {
	if allowance, ok := m.allowances[allowanceKey(owner, spender)]; ok {
		return new(big.Int).Set(allowance), nil
	}
	return big.NewInt(0), nil
}

func (m *mockState) SetAllowance(owner, spender [20]byte, amount *big.Int) error {
	m.allowances[allowanceKey(owner, spender)] = new(big.Int).Set(amount)
	return nil
}

func (m *mockState) IsMinter(addr [20]byte) (bool, error) {
	return m.minters[addr], nil
}

func (m *mockState) SetMinter(addr [20]byte, member bool) error {
	m.minters[addr] = member
	return nil
}

func (m *mockState) sumBalances() *big.Int {
	total := big.NewInt(0)
	for _, balance := range m.balances {
		total = new(big.Int).Add(total, balance)
	}
	return total
}

func addr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

func newTestEngine(t *testing.T) (*Engine, *mockState) {
	t.Helper()
	state := newMockState()
	engine := NewEngine()
	engine.SetAddress(addr(0xF0))
	engine.SetState(state)
	owner := addr(0x01)
	if err := engine.Initialize(owner, "Artist Reward Points", "ARP", 18); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	return engine, state
}

func TestInitializeIsSingleShot(t *testing.T) {
	engine, _ := newTestEngine(t)
	err := engine.Initialize(addr(0x09), "Other", "OTH", 18)
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestMintRequiresMinterRole(t *testing.T) {
	engine, _ := newTestEngine(t)
	owner := addr(0x01)
	outsider := addr(0x02)
	holder := addr(0x03)

	if err := engine.Mint(outsider, holder, big.NewInt(100)); !errors.Is(err, ErrNotMinter) {
		t.Fatalf("expected ErrNotMinter, got %v", err)
	}
	if err := engine.AddMinter(outsider, outsider); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := engine.AddMinter(owner, outsider); err != nil {
		t.Fatalf("add minter failed: %v", err)
	}
	if err := engine.Mint(outsider, holder, big.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := engine.RemoveMinter(owner, outsider); err != nil {
		t.Fatalf("remove minter failed: %v", err)
	}
	if err := engine.Mint(outsider, holder, big.NewInt(100)); !errors.Is(err, ErrNotMinter) {
		t.Fatalf("expected ErrNotMinter after removal, got %v", err)
	}
}

func TestSupplyConservationAcrossMintTransferBurn(t *testing.T) {
	engine, state := newTestEngine(t)
	owner := addr(0x01)
	minter := addr(0x02)
	alice := addr(0x0A)
	bob := addr(0x0B)

	if err := engine.AddMinter(owner, minter); err != nil {
		t.Fatalf("add minter failed: %v", err)
	}
	if err := engine.Mint(minter, alice, big.NewInt(1_000)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := engine.Transfer(alice, bob, big.NewInt(400)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if err := engine.Burn(bob, big.NewInt(150)); err != nil {
		t.Fatalf("burn failed: %v", err)
	}

	supply, err := engine.TotalSupply()
	if err != nil {
		t.Fatalf("total supply: %v", err)
	}
	if supply.Cmp(big.NewInt(850)) != 0 {
		t.Fatalf("unexpected supply: %s", supply)
	}
	if state.sumBalances().Cmp(supply) != 0 {
		t.Fatalf("balances (%s) diverged from supply (%s)", state.sumBalances(), supply)
	}
}

func TestTransferFromConsumesAllowance(t *testing.T) {
	engine, _ := newTestEngine(t)
	owner := addr(0x01)
	alice := addr(0x0A)
	bob := addr(0x0B)
	spender := addr(0x0C)

	if err := engine.AddMinter(owner, owner); err != nil {
		t.Fatalf("add minter failed: %v", err)
	}
	if err := engine.Mint(owner, alice, big.NewInt(500)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := engine.TransferFrom(spender, alice, bob, big.NewInt(100)); !errors.Is(err, ErrInsufficientAllowance) {
		t.Fatalf("expected ErrInsufficientAllowance, got %v", err)
	}
	if err := engine.Approve(alice, spender, big.NewInt(250)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := engine.TransferFrom(spender, alice, bob, big.NewInt(100)); err != nil {
		t.Fatalf("transferFrom failed: %v", err)
	}
	remaining, err := engine.Allowance(alice, spender)
	if err != nil {
		t.Fatalf("allowance: %v", err)
	}
	if remaining.Cmp(big.NewInt(150)) != 0 {
		t.Fatalf("unexpected remaining allowance: %s", remaining)
	}
	balance, err := engine.BalanceOf(bob)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("unexpected recipient balance: %s", balance)
	}
}

func TestBurnRejectsOverdraw(t *testing.T) {
	engine, _ := newTestEngine(t)
	owner := addr(0x01)
	alice := addr(0x0A)
	if err := engine.AddMinter(owner, owner); err != nil {
		t.Fatalf("add minter failed: %v", err)
	}
	if err := engine.Mint(owner, alice, big.NewInt(10)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := engine.Burn(alice, big.NewInt(11)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}
