// Package transactions keeps the history of completed checkouts and
// mirrors it to the durable key-value store. The whole log is one
// serialized blob under one key; every mutation rewrites it.
package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/adiwijaya/tokokita-backend/pkg/errors"
	"github.com/adiwijaya/tokokita-backend/pkg/kv"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
)

// Log is the in-memory transaction history backed by a durable key.
// Mutations are optimistic: the in-memory entry stands even when the
// durable write fails, and the failure is surfaced to the caller.
type Log struct {
	store kv.Store
	key   string
	logg  *logger.Logger

	mu      sync.Mutex
	entries []Transaction
	lastID  int64

	// persistMu keeps a single durable write in flight; later writes
	// queue behind it and supersede it with a fresher snapshot.
	persistMu sync.Mutex
}

func NewLog(store kv.Store, key string, logg *logger.Logger) (*Log, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if key == "" {
		return nil, fmt.Errorf("storage key required")
	}
	return &Log{store: store, key: key, logg: logg}, nil
}

// Load reads the durable blob once at session start. An absent key
// yields an empty log. A corrupt blob is logged as a warning and the
// log proceeds empty rather than failing the process.
func (l *Log) Load(ctx context.Context) error {
	raw, err := l.store.Get(ctx, l.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read transaction log")
	}

	var entries []Transaction
	if err := json.Unmarshal(raw, &entries); err != nil {
		corrupt := pkgerrors.Wrap(pkgerrors.CodeCorruptState, err, "decode transaction log")
		if l.logg != nil {
			l.logg.Warn(l.logg.WithField(ctx, "error", corrupt.Error()), "transactions.load.corrupt")
		}
		return nil
	}

	l.mu.Lock()
	l.entries = entries
	for _, entry := range entries {
		if entry.ID > l.lastID {
			l.lastID = entry.ID
		}
	}
	l.mu.Unlock()
	return nil
}

// NextID returns a fresh millisecond-derived id, strictly greater than
// every id already in the log.
func (l *Log) NextID() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nextIDLocked()
}

func (l *Log) nextIDLocked() int64 {
	id := time.Now().UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return id
}

// Append pushes the transaction onto the log and persists. The entry is
// kept even when the durable write fails; the returned error then
// carries the persistence failure for the caller to surface.
func (l *Log) Append(ctx context.Context, txn Transaction) error {
	l.mu.Lock()
	l.entries = append(l.entries, txn.Clone())
	if txn.ID > l.lastID {
		l.lastID = txn.ID
	}
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	return l.persist(ctx, snapshot)
}

// Delete removes the entry matching id, a no-op when absent. Any
// removal persists the shrunken log.
func (l *Log) Delete(ctx context.Context, id int64) error {
	l.mu.Lock()
	removed := false
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		l.mu.Unlock()
		return nil
	}
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	return l.persist(ctx, snapshot)
}

// List returns a copy of the log in append order.
func (l *Log) List() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Get returns the entry matching id.
func (l *Log) Get(id int64) (Transaction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if entry.ID == id {
			return entry.Clone(), true
		}
	}
	return Transaction{}, false
}

// Len reports the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Log) snapshotLocked() []Transaction {
	out := make([]Transaction, len(l.entries))
	for i, entry := range l.entries {
		out[i] = entry.Clone()
	}
	return out
}

// persist serializes the snapshot taken at invocation and writes it
// whole. persistMu queues writers so partial writes never interleave;
// the last write wins.
func (l *Log) persist(ctx context.Context, snapshot []Transaction) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistenceWrite, err, "encode transaction log")
	}

	l.persistMu.Lock()
	defer l.persistMu.Unlock()
	if err := l.store.Set(ctx, l.key, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistenceWrite, err, "write transaction log")
	}
	return nil
}
