// Package auditlog implements an append-only, hash-chained event log.
//
// Entries are ordered by insertion sequence only. Timestamps come from the
// caller and may tie or go backwards; consumers must not sort by them.
package auditlog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"

	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

// ErrChainBroken is returned when an entry does not link to its predecessor.
var ErrChainBroken = errors.New("auditlog: hash chain is broken")

const genesis = "genesis"

// entryNamespace scopes the name-based entry IDs.
var entryNamespace = uuid.MustParse("6f1c2d3e-8a4b-5c6d-9e0f-a1b2c3d4e5f6")

// Entry is a single audit record.
type Entry struct {
	ID           string    `json:"id"`
	Sequence     uint64    `json:"sequence"`
	Timestamp    time.Time `json:"timestamp"`
	Message      string    `json:"message"`
	PreviousHash string    `json:"previous_hash"`
	Hash         string    `json:"hash"`
}

// Log is the audit log contract.
type Log struct {
	gate    *gas.Gate
	entries []Entry
	head    string
}

// New returns an empty log.
func New(opts ...gas.Option) *Log {
	return &Log{
		gate: gas.NewGate("auditlog", opts...),
		head: genesis,
	}
}

// Record appends message stamped with at.
func (l *Log) Record(g gas.Budget, at time.Time, message string) (Entry, error) {
	if err := l.gate.Check(g); err != nil {
		return Entry{}, err
	}
	e := Entry{
		Sequence:     uint64(len(l.entries)) + 1,
		Timestamp:    at,
		Message:      message,
		PreviousHash: l.head,
	}
	h, err := entryHash(e)
	if err != nil {
		return Entry{}, fmt.Errorf("auditlog: hash entry %d: %w", e.Sequence, err)
	}
	e.Hash = h
	e.ID = uuid.NewSHA1(entryNamespace, []byte(h)).String()

	l.entries = append(l.entries, e)
	l.head = h
	return e, nil
}

// All returns the full history in insertion order. The slice is a copy.
func (l *Log) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int { return len(l.entries) }

// Head returns the hash of the latest entry, or "genesis" for an empty log.
func (l *Log) Head() string { return l.head }

// Verify recomputes the hash chain over entries.
func Verify(entries []Entry) error {
	prev := genesis
	for i, e := range entries {
		if e.Sequence != uint64(i)+1 {
			return fmt.Errorf("%w: entry %d has sequence %d", ErrChainBroken, i, e.Sequence)
		}
		if e.PreviousHash != prev {
			return fmt.Errorf("%w: entry %d links to %q, want %q", ErrChainBroken, e.Sequence, e.PreviousHash, prev)
		}
		h, err := entryHash(e)
		if err != nil {
			return fmt.Errorf("auditlog: hash entry %d: %w", e.Sequence, err)
		}
		if h != e.Hash {
			return fmt.Errorf("%w: entry %d hash mismatch", ErrChainBroken, e.Sequence)
		}
		prev = h
	}
	return nil
}

// Verify checks the log's own chain.
func (l *Log) Verify() error { return Verify(l.entries) }

func entryHash(e Entry) (string, error) {
	raw, err := json.Marshal(struct {
		Sequence     uint64 `json:"sequence"`
		Timestamp    string `json:"timestamp"`
		Message      string `json:"message"`
		PreviousHash string `json:"previous_hash"`
	}{
		Sequence:     e.Sequence,
		Timestamp:    e.Timestamp.UTC().Format(time.RFC3339Nano),
		Message:      e.Message,
		PreviousHash: e.PreviousHash,
	})
	if err != nil {
		return "", err
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}
