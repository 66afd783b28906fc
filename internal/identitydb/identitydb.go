// Package identitydb loads and indexes the named-identity database of
// spec §6: a TOML table of known q-series/modular-form identities,
// each tagged with the level, reference, and both sides of the
// identity as source text for internal/eval to parse and check. Table
// decoding follows the teacher's config-loading idiom of decoding
// straight into a typed struct; fingerprinting follows the teacher's
// SHAKE-based hashing idiom (DECS/merkle.go, PIOP/fs_helpers.go),
// swapped for the fixed-output sha3.Sum256 since a content fingerprint
// needs no XOF duplex, just a stable digest.
package identitydb

import (
	"errors"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"golang.org/x/crypto/sha3"
)

// ErrNotFound is returned when a lookup by name or id misses.
var ErrNotFound = errors.New("identitydb: identity not found")

// Identity is one [[identity]] table entry.
type Identity struct {
	Name      string   `toml:"name"`
	Tags      []string `toml:"tags"`
	LHS       string   `toml:"lhs"`
	RHS       string   `toml:"rhs"`
	Level     int      `toml:"level"`
	Reference string   `toml:"reference"`
}

// document is the top-level shape of an identity TOML file.
type document struct {
	Identity []Identity `toml:"identity"`
}

// Fingerprint is a content digest over an Identity's semantically
// relevant fields (name, lhs, rhs, level), used to detect when a
// reloaded database entry has changed or to deduplicate entries that
// repeat an already loaded identity with the same name and content.
// Two entries that differ only in name get different fingerprints.
type Fingerprint [32]byte

func (f Fingerprint) String() string { return fmt.Sprintf("%x", f[:]) }

func fingerprint(id Identity) Fingerprint {
	buf := []byte(fmt.Sprintf("%s\x00%s\x00%s\x00%d", id.Name, id.LHS, id.RHS, id.Level))
	return sha3.Sum256(buf)
}

// DB is an in-memory arena of loaded identities, indexed by integer id
// (position in the arena) and by name and fingerprint for fast lookup.
type DB struct {
	arena       []Identity
	byName      map[string]int
	byFingerprint map[Fingerprint][]int
}

// New returns an empty database.
func New() *DB {
	return &DB{
		byName:        make(map[string]int),
		byFingerprint: make(map[Fingerprint][]int),
	}
}

// Load decodes a TOML-encoded identity document from data and merges
// its entries into db, skipping (and reporting via dupes) any entry
// whose fingerprint already exists in the database.
func (db *DB) Load(data []byte) (dupes []string, err error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("identitydb: decode: %w", err)
	}
	for _, id := range doc.Identity {
		fp := fingerprint(id)
		if existing := db.byFingerprint[fp]; len(existing) > 0 {
			dupes = append(dupes, id.Name)
			continue
		}
		idx := len(db.arena)
		db.arena = append(db.arena, id)
		db.byName[id.Name] = idx
		db.byFingerprint[fp] = append(db.byFingerprint[fp], idx)
	}
	return dupes, nil
}

// ByName looks up an identity by its exact name.
func (db *DB) ByName(name string) (Identity, error) {
	idx, ok := db.byName[name]
	if !ok {
		return Identity{}, ErrNotFound
	}
	return db.arena[idx], nil
}

// ByID looks up an identity by its arena position.
func (db *DB) ByID(id int) (Identity, error) {
	if id < 0 || id >= len(db.arena) {
		return Identity{}, ErrNotFound
	}
	return db.arena[id], nil
}

// Fingerprint returns the content fingerprint of the identity named
// name, for change-detection across reloads.
func (db *DB) Fingerprint(name string) (Fingerprint, error) {
	id, err := db.ByName(name)
	if err != nil {
		return Fingerprint{}, err
	}
	return fingerprint(id), nil
}

// ByTag returns every identity carrying the given tag, sorted by name
// for deterministic iteration.
func (db *DB) ByTag(tag string) []Identity {
	var out []Identity
	for _, id := range db.arena {
		for _, t := range id.Tags {
			if t == tag {
				out = append(out, id)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of identities currently loaded.
func (db *DB) Len() int { return len(db.arena) }

// All returns every loaded identity, in arena (load) order.
func (db *DB) All() []Identity {
	out := make([]Identity, len(db.arena))
	copy(out, db.arena)
	return out
}
