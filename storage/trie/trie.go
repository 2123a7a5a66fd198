package trie

import (
	"errors"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"artchain/storage"
)

var metaRootKey = []byte("state/root")

// Trie is a journaled key-value state store backing the ledger components. The
// keys passed into Get/Update are expected to be fully hashed (keccak256)
// before insertion.
//
// Mutations accumulate in an in-memory overlay until Commit persists them to
// the backing database. Snapshot/RevertToSnapshot allow a caller to speculate
// on a state transition and roll it back without touching durable storage,
// which is how the call processor implements all-or-nothing semantics.
//
// Trie is not safe for concurrent use.
type Trie struct {
	store   storage.Database
	dirty   map[string][]byte
	journal []journalEntry
	root    common.Hash
}

type journalEntry struct {
	key      string
	prev     []byte
	hadDirty bool
}

// NewTrie creates a state store backed by the provided database. A nil or
// empty root denotes the empty state; otherwise it must match the root
// persisted by the last Commit.
func NewTrie(store storage.Database, root []byte) (*Trie, error) {
	t := &Trie{
		store: store,
		dirty: make(map[string][]byte),
	}
	if len(root) > 0 {
		t.root = common.BytesToHash(root)
	}
	return t, nil
}

// LoadRoot reads the last committed state root from the database. Missing
// metadata denotes the empty state.
func LoadRoot(store storage.Database) ([]byte, error) {
	data, err := store.Get(metaRootKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return data, err
}

// Get retrieves a value for the provided key, preferring uncommitted writes.
// Missing keys yield a nil value and no error.
func (t *Trie) Get(key []byte) ([]byte, error) {
	if value, ok := t.dirty[string(key)]; ok {
		return append([]byte(nil), value...), nil
	}
	data, err := t.store.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Update inserts or updates a value in the overlay for the provided key.
func (t *Trie) Update(key, value []byte) error {
	k := string(key)
	prev, hadDirty := t.dirty[k]
	t.journal = append(t.journal, journalEntry{key: k, prev: prev, hadDirty: hadDirty})
	t.dirty[k] = append([]byte(nil), value...)
	return nil
}

// Snapshot returns an identifier for the current mutation point. Passing it to
// RevertToSnapshot undoes every Update applied since.
func (t *Trie) Snapshot() int {
	return len(t.journal)
}

// RevertToSnapshot rolls the overlay back to the supplied snapshot identifier.
func (t *Trie) RevertToSnapshot(id int) {
	if id < 0 || id > len(t.journal) {
		return
	}
	for i := len(t.journal) - 1; i >= id; i-- {
		entry := t.journal[i]
		if entry.hadDirty {
			t.dirty[entry.key] = entry.prev
		} else {
			delete(t.dirty, entry.key)
		}
	}
	t.journal = t.journal[:id]
}

// Root returns the last committed root hash.
func (t *Trie) Root() common.Hash {
	return t.root
}

// Hash returns the root that Commit would produce for the pending overlay.
func (t *Trie) Hash() common.Hash {
	return t.deriveRoot()
}

func (t *Trie) deriveRoot() common.Hash {
	if len(t.dirty) == 0 {
		return t.root
	}
	keys := make([]string, 0, len(t.dirty))
	for k := range t.dirty {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	material := make([]byte, 0, len(keys)*64)
	material = append(material, t.root.Bytes()...)
	for _, k := range keys {
		material = append(material, k...)
		material = append(material, t.dirty[k]...)
	}
	return common.BytesToHash(ethcrypto.Keccak256(material))
}

// Commit persists the overlay to the backing database and returns the new
// root hash. The journal is cleared so committed writes can no longer be
// reverted.
func (t *Trie) Commit() (common.Hash, error) {
	newRoot := t.deriveRoot()
	for k, v := range t.dirty {
		if err := t.store.Put([]byte(k), v); err != nil {
			return common.Hash{}, err
		}
	}
	if err := t.store.Put(metaRootKey, newRoot.Bytes()); err != nil {
		return common.Hash{}, err
	}
	t.dirty = make(map[string][]byte)
	t.journal = nil
	t.root = newRoot
	return newRoot, nil
}

// Copy creates an independent view over the same backing database, including
// any uncommitted writes.
func (t *Trie) Copy() *Trie {
	dirty := make(map[string][]byte, len(t.dirty))
	for k, v := range t.dirty {
		dirty[k] = append([]byte(nil), v...)
	}
	journal := make([]journalEntry, len(t.journal))
	copy(journal, t.journal)
	return &Trie{
		store:   t.store,
		dirty:   dirty,
		journal: journal,
		root:    t.root,
	}
}

// Store exposes the backing storage in case callers need to access it directly.
func (t *Trie) Store() storage.Database {
	return t.store
}
