package core

import (
	"errors"
	"math/big"
	"testing"

	"artchain/core/events"
	"artchain/core/state"
	"artchain/storage"
	"artchain/storage/trie"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) Emit(evt events.Event) {
	r.events = append(r.events, evt)
}

type testEvent struct {
	kind string
}

func (e testEvent) EventType() string { return e.kind }

func newTestProcessor(t *testing.T) (*Processor, *recorder) {
	t.Helper()
	tr, err := trie.NewTrie(storage.NewMemDB(), nil)
	if err != nil {
		t.Fatalf("new trie: %v", err)
	}
	sink := &recorder{}
	return NewProcessor(tr, sink), sink
}

func addr(b byte) [20]byte {
	var a [20]byte
	a[19] = b
	return a
}

func TestExecuteRevertsStateAndEventsOnError(t *testing.T) {
	processor, sink := newTestProcessor(t)
	holder := addr(0x01)
	failure := errors.New("midway failure")

	err := processor.Execute(func(m *state.Manager) error {
		account, err := m.GetAccount(holder)
		if err != nil {
			return err
		}
		account.Balance = big.NewInt(1000)
		if err := m.PutAccount(holder, account); err != nil {
			return err
		}
		processor.Events().Emit(testEvent{kind: "test.credit"})
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected the call error back, got %v", err)
	}

	account, err := processor.Manager().GetAccount(holder)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Balance.Sign() != 0 {
		t.Fatalf("expected the write reverted, got balance %s", account.Balance)
	}
	if len(sink.events) != 0 {
		t.Fatalf("expected no events from a failed call, got %d", len(sink.events))
	}
}

func TestExecuteFlushesEventsOnSuccess(t *testing.T) {
	processor, sink := newTestProcessor(t)
	holder := addr(0x01)

	err := processor.Execute(func(m *state.Manager) error {
		account, err := m.GetAccount(holder)
		if err != nil {
			return err
		}
		account.Balance = big.NewInt(1000)
		if err := m.PutAccount(holder, account); err != nil {
			return err
		}
		processor.Events().Emit(testEvent{kind: "test.credit"})
		return nil
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	account, err := processor.Manager().GetAccount(holder)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Balance.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("expected balance 1000, got %s", account.Balance)
	}
	if len(sink.events) != 1 || sink.events[0].EventType() != "test.credit" {
		t.Fatalf("expected one flushed event, got %v", sink.events)
	}
}

func TestCommitPersistsAcrossReopen(t *testing.T) {
	db := storage.NewMemDB()
	tr, err := trie.NewTrie(db, nil)
	if err != nil {
		t.Fatalf("new trie: %v", err)
	}
	processor := NewProcessor(tr, nil)
	holder := addr(0x02)

	err = processor.Execute(func(m *state.Manager) error {
		account, err := m.GetAccount(holder)
		if err != nil {
			return err
		}
		account.Balance = big.NewInt(42)
		return m.PutAccount(holder, account)
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := processor.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	root, err := trie.LoadRoot(db)
	if err != nil {
		t.Fatalf("load root: %v", err)
	}
	reopened, err := trie.NewTrie(db, root)
	if err != nil {
		t.Fatalf("reopen trie: %v", err)
	}
	account, err := NewProcessor(reopened, nil).Manager().GetAccount(holder)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Balance.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("expected persisted balance 42, got %s", account.Balance)
	}
}
