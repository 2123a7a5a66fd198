package state

import (
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"artchain/core/types"
	"artchain/storage/trie"
)

// Manager provides typed read and write access to the persistent ledger state.
// Every component record is stored under a keccak-hashed key with an
// RLP-encoded value, matching the layout of the underlying store.
type Manager struct {
	trie *trie.Trie
}

// NewManager creates a state manager operating on the provided trie.
func NewManager(tr *trie.Trie) *Manager {
	return &Manager{trie: tr}
}

var accountPrefix = []byte("account/")

func kvKey(key []byte) []byte {
	return ethcrypto.Keccak256(key)
}

func accountKey(addr [20]byte) []byte {
	buf := make([]byte, len(accountPrefix)+len(addr))
	copy(buf, accountPrefix)
	copy(buf[len(accountPrefix):], addr[:])
	return buf
}

// KVPut stores the provided value under the supplied key using RLP encoding.
// The key is automatically hashed with keccak256 before insertion.
func (m *Manager) KVPut(key []byte, value interface{}) error {
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	return m.trie.Update(kvKey(key), encoded)
}

// KVGet retrieves the value stored under the supplied key and decodes it into
// the provided destination. The boolean return value indicates whether the key
// existed in state.
func (m *Manager) KVGet(key []byte, out interface{}) (bool, error) {
	if len(key) == 0 {
		return false, fmt.Errorf("kv: key must not be empty")
	}
	data, err := m.trie.Get(kvKey(key))
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// GetAccount loads the external value account for the provided address.
// Missing accounts resolve to a zeroed record so callers never observe nil.
func (m *Manager) GetAccount(addr [20]byte) (*types.Account, error) {
	account := new(types.Account)
	found, err := m.KVGet(accountKey(addr), account)
	if err != nil {
		return nil, err
	}
	if !found || account.Balance == nil {
		account.Balance = bigZero()
	}
	return account, nil
}

// PutAccount persists the external value account for the provided address.
func (m *Manager) PutAccount(addr [20]byte, account *types.Account) error {
	if account == nil {
		return fmt.Errorf("state: account must not be nil")
	}
	stored := account.Clone()
	if stored.Balance == nil {
		stored.Balance = bigZero()
	}
	if stored.Balance.Sign() < 0 {
		return fmt.Errorf("state: negative balance not allowed")
	}
	return m.KVPut(accountKey(addr), stored)
}
