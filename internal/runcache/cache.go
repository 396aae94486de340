// Package runcache persists a digest-keyed summary of a processed run so
// the timeline view can reopen an unchanged dump set without re-parsing.
// Adapted layout: one msgpack file per run digest under the user cache dir.
package runcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"passlens/internal/dump"
)

// Bump when the payload format changes; stale schemas read as misses.
const schemaVersion uint16 = 1

// Digest identifies a dump set by content.
type Digest [sha256.Size]byte

// ErrMiss is returned when no usable payload exists for a digest.
var ErrMiss = errors.New("run cache miss")

// Cache stores run payloads on disk, one file per digest.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the cache at the standard user cache location.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "runs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".msgpack")
}

// DigestStore hashes every record of a store in deterministic order.
func DigestStore(s *dump.Store) Digest {
	h := sha256.New()
	for _, name := range s.Functions() {
		recs, err := s.Snapshots(name)
		if err != nil {
			continue
		}
		sort.SliceStable(recs, func(i, j int) bool {
			if recs[i].Index != recs[j].Index {
				return recs[i].Index < recs[j].Index
			}
			return recs[i].Pass < recs[j].Pass
		})
		for _, rec := range recs {
			fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d\x00", rec.Function, rec.Pass, rec.Index, rec.Tier)
			h.Write([]byte(rec.Text))
			h.Write([]byte{0})
		}
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Load reads the payload for a digest. Missing files, unreadable payloads,
// and schema mismatches all surface as ErrMiss.
func (c *Cache) Load(key Digest) (*Payload, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, ErrMiss
	}
	var p Payload
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		return nil, ErrMiss
	}
	if p.Schema != schemaVersion {
		return nil, ErrMiss
	}
	return &p, nil
}

// Store writes the payload for a digest atomically (tmp file + rename).
func (c *Cache) Store(key Digest, p *Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p.Schema = schemaVersion
	raw, err := msgpack.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode run payload: %w", err)
	}
	path := c.pathFor(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
