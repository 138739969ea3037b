package state

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"revora/storage"
)

// Manager exposes typed key-value helpers over a raw storage backend. Values
// are RLP encoded. All writes land in a staging overlay first; nothing reaches
// the backend until Commit, so a failed operation leaves persisted state
// untouched.
type Manager struct {
	db      storage.Database
	staging bool
	// staged overlay: value nil marks a pending delete.
	staged map[string][]byte
}

var (
	errEmptyKey   = fmt.Errorf("kv: key must not be empty")
	errNoStaging  = errors.New("kv: no staging region open")
	errInStaging  = errors.New("kv: staging region already open")
	errNilBackend = errors.New("kv: storage backend not configured")
)

// NewManager constructs a manager bound to the provided backend.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db, staged: make(map[string][]byte)}
}

// Begin opens a staging region. Subsequent writes are buffered until Commit or
// Discard. Regions do not nest.
func (m *Manager) Begin() error {
	if m.staging {
		return errInStaging
	}
	m.staging = true
	return nil
}

// Commit flushes the staging overlay to the backend in deterministic key order
// and closes the region.
func (m *Manager) Commit() error {
	if !m.staging {
		return errNoStaging
	}
	if m.db == nil {
		return errNilBackend
	}
	keys := make([]string, 0, len(m.staged))
	for k := range m.staged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		value := m.staged[k]
		if value == nil {
			if err := m.db.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := m.db.Put([]byte(k), value); err != nil {
			return err
		}
	}
	m.staged = make(map[string][]byte)
	m.staging = false
	return nil
}

// Discard drops all buffered writes and closes the staging region.
func (m *Manager) Discard() {
	m.staged = make(map[string][]byte)
	m.staging = false
}

func (m *Manager) rawGet(key []byte) ([]byte, bool, error) {
	if m.staging {
		if value, ok := m.staged[string(key)]; ok {
			if value == nil {
				return nil, false, nil
			}
			return value, true, nil
		}
	}
	if m.db == nil {
		return nil, false, errNilBackend
	}
	data, err := m.db.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (m *Manager) rawPut(key []byte, value []byte) error {
	if m.staging {
		m.staged[string(key)] = value
		return nil
	}
	if m.db == nil {
		return errNilBackend
	}
	return m.db.Put(key, value)
}

// KVPut stores the RLP encoding of value under key.
func (m *Manager) KVPut(key []byte, value interface{}) error {
	if len(key) == 0 {
		return errEmptyKey
	}
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	return m.rawPut(key, encoded)
}

// KVGet retrieves the value stored under the supplied key and decodes it into
// the provided destination. The boolean return value indicates whether the key
// existed in state.
func (m *Manager) KVGet(key []byte, out interface{}) (bool, error) {
	if len(key) == 0 {
		return false, errEmptyKey
	}
	data, ok, err := m.rawGet(key)
	if err != nil || !ok {
		return false, err
	}
	if out == nil {
		return true, nil
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// KVDelete removes the key from state. Deleting an absent key is a no-op.
func (m *Manager) KVDelete(key []byte) error {
	if len(key) == 0 {
		return errEmptyKey
	}
	if m.staging {
		m.staged[string(key)] = nil
		return nil
	}
	if m.db == nil {
		return errNilBackend
	}
	return m.db.Delete(key)
}

// KVHas reports whether the key exists in state.
func (m *Manager) KVHas(key []byte) (bool, error) {
	if len(key) == 0 {
		return false, errEmptyKey
	}
	_, ok, err := m.rawGet(key)
	return ok, err
}

// KVGetList returns the byte-slice list stored under key. Missing keys decode
// to an empty list.
func (m *Manager) KVGetList(key []byte) ([][]byte, error) {
	if len(key) == 0 {
		return nil, errEmptyKey
	}
	data, ok, err := m.rawGet(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return [][]byte{}, nil
	}
	var list [][]byte
	if err := rlp.DecodeBytes(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// KVPutList replaces the byte-slice list stored under key.
func (m *Manager) KVPutList(key []byte, values [][]byte) error {
	if len(key) == 0 {
		return errEmptyKey
	}
	encoded, err := rlp.EncodeToBytes(values)
	if err != nil {
		return err
	}
	return m.rawPut(key, encoded)
}

// KVAppend appends value to the list stored under key if it is not already a
// member.
func (m *Manager) KVAppend(key []byte, value []byte) error {
	list, err := m.KVGetList(key)
	if err != nil {
		return err
	}
	for _, existing := range list {
		if bytes.Equal(existing, value) {
			return nil
		}
	}
	list = append(list, value)
	return m.KVPutList(key, list)
}
