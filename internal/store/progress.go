package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// CardStats is a user's performance history for one vocabulary card.
// Seen always equals Correct + Incorrect.
type CardStats struct {
	Seen      int       `json:"seen"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	Streak    int       `json:"streak"`
	LastSeen  time.Time `json:"last_seen,omitempty"`
}

// VerbStats is a user's performance history for one verb. Mastered counts
// the attempts where every pronoun form was correct.
type VerbStats struct {
	Seen     int       `json:"seen"`
	Mastered int       `json:"mastered"`
	LastSeen time.Time `json:"last_seen,omitempty"`
}

// ProgressRecord is the full durable progress state for one user. Card
// stats are keyed by the decimal card id, verb stats by "verb_<id>".
type ProgressRecord struct {
	Cards map[string]*CardStats `json:"cards"`
	Verbs map[string]*VerbStats `json:"verbs,omitempty"`
}

// NewProgressRecord returns an empty record with initialized maps.
func NewProgressRecord() *ProgressRecord {
	return &ProgressRecord{Cards: map[string]*CardStats{}, Verbs: map[string]*VerbStats{}}
}

// Card returns the stats for a card id, creating a zero entry on first use.
func (p *ProgressRecord) Card(cardID int) *CardStats {
	key := strconv.Itoa(cardID)
	stats, ok := p.Cards[key]
	if !ok {
		stats = &CardStats{}
		p.Cards[key] = stats
	}
	return stats
}

// CardStatsFor returns the stats for a card id without creating an entry.
func (p *ProgressRecord) CardStatsFor(cardID int) CardStats {
	if stats, ok := p.Cards[strconv.Itoa(cardID)]; ok {
		return *stats
	}
	return CardStats{}
}

// Verb returns the stats for a verb id, creating a zero entry on first use.
func (p *ProgressRecord) Verb(verbID int) *VerbStats {
	key := verbKey(verbID)
	stats, ok := p.Verbs[key]
	if !ok {
		stats = &VerbStats{}
		p.Verbs[key] = stats
	}
	return stats
}

// VerbStatsFor returns the stats for a verb id without creating an entry.
func (p *ProgressRecord) VerbStatsFor(verbID int) VerbStats {
	if stats, ok := p.Verbs[verbKey(verbID)]; ok {
		return *stats
	}
	return VerbStats{}
}

func verbKey(verbID int) string {
	return "verb_" + strconv.Itoa(verbID)
}

// ProgressStore persists one JSON progress file per user under a directory.
// A per-user mutex serializes read-modify-write cycles so concurrent answer
// submissions cannot clobber each other, and every write goes through a
// temp file plus atomic rename.
type ProgressStore struct {
	dir   string
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProgressStore(dir string) (*ProgressStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create progress dir: %w", err)
	}
	return &ProgressStore{dir: dir, locks: map[string]*sync.Mutex{}}, nil
}

// userLock returns the mutex guarding one user's file, keyed by the
// sanitized filename so aliased usernames share a lock.
func (s *ProgressStore) userLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[name] = lock
	}
	return lock
}

// fileName maps a username to a filesystem-safe name, falling back to
// "anon" when stripping leaves nothing. Registration enforces the safe
// charset, so distinct usernames cannot alias in practice.
func fileName(username string) string {
	var b strings.Builder
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "anon.json"
	}
	return b.String() + ".json"
}

func (s *ProgressStore) path(username string) string {
	return filepath.Join(s.dir, fileName(username))
}

// Load returns the user's progress record, or an empty record when the
// file is missing or unparsable.
func (s *ProgressStore) Load(username string) *ProgressRecord {
	raw, err := os.ReadFile(s.path(username))
	if err != nil {
		return NewProgressRecord()
	}
	var record ProgressRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return NewProgressRecord()
	}
	if record.Cards == nil {
		record.Cards = map[string]*CardStats{}
	}
	if record.Verbs == nil {
		record.Verbs = map[string]*VerbStats{}
	}
	return &record
}

// Save atomically replaces the user's progress file.
func (s *ProgressStore) Save(username string, record *ProgressRecord) error {
	raw, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return atomicWrite(s.path(username), raw)
}

// Update runs fn over the user's current record and saves the result,
// holding the user's lock across the whole read-modify-write cycle.
func (s *ProgressStore) Update(username string, fn func(*ProgressRecord)) error {
	lock := s.userLock(fileName(username))
	lock.Lock()
	defer lock.Unlock()

	record := s.Load(username)
	fn(record)
	return s.Save(username, record)
}

// Reset replaces the user's progress with an empty record.
func (s *ProgressStore) Reset(username string) error {
	return s.Update(username, func(record *ProgressRecord) {
		*record = *NewProgressRecord()
	})
}
