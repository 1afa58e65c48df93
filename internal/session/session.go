// Package session keeps one surface area calculator per signed-in user and
// mirrors it to the snapshot store after every transition.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"CPCalc/internal/calc/surfacearea"
	repo "CPCalc/internal/repo"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "session")

// Calculator is the key surface area snapshots are stored under.
const Calculator = "surface-area"

type entry struct {
	mu       sync.Mutex
	calc     *surfacearea.Calculator
	lastUsed time.Time
	// gone is set under mu once the entry has left Manager.entries.
	gone bool
}

type Manager struct {
	store   repo.SnapshotRepository
	idleTTL time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[int]*entry
}

func NewManager(store repo.SnapshotRepository, idleTTL time.Duration) *Manager {
	return &Manager{
		store:   store,
		idleTTL: idleTTL,
		now:     time.Now,
		entries: make(map[int]*entry),
	}
}

func (m *Manager) entry(userID int) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[userID]
	if !ok {
		e = &entry{}
		m.entries[userID] = e
	}
	e.lastUsed = m.now()
	return e
}

// lock returns the user's current entry with its mutex held. An entry that
// was discarded or evicted while we waited is skipped for a fresh one.
func (m *Manager) lock(userID int) *entry {
	for {
		e := m.entry(userID)
		e.mu.Lock()
		if !e.gone {
			return e
		}
		e.mu.Unlock()
	}
}

// drop removes e from the map if it is still the user's entry. e.mu must be held.
func (m *Manager) drop(userID int, e *entry) {
	e.gone = true
	m.mu.Lock()
	if m.entries[userID] == e {
		delete(m.entries, userID)
	}
	m.mu.Unlock()
}

// Read runs fn against the user's calculator without persisting anything.
func (m *Manager) Read(ctx context.Context, userID int, fn func(c *surfacearea.Calculator)) {
	e := m.lock(userID)
	defer e.mu.Unlock()
	m.ensureLoaded(ctx, userID, e)
	fn(e.calc)
}

// Do runs one transition against the user's calculator and then saves a
// snapshot of the new state. Saving is best-effort.
func (m *Manager) Do(ctx context.Context, userID int, fn func(c *surfacearea.Calculator)) {
	e := m.lock(userID)
	defer e.mu.Unlock()
	m.ensureLoaded(ctx, userID, e)
	fn(e.calc)
	m.save(ctx, userID, e.calc)
}

// Discard drops the in-memory calculator and its stored snapshot. It waits
// for a transition in flight, so that transition's snapshot is deleted too.
// Requests arriving meanwhile start from a fresh calculator.
func (m *Manager) Discard(ctx context.Context, userID int) error {
	e := m.lock(userID)
	defer e.mu.Unlock()
	err := m.store.DeleteSnapshot(ctx, userID, Calculator)
	m.drop(userID, e)
	return merry.Wrap(err)
}

func (m *Manager) ensureLoaded(ctx context.Context, userID int, e *entry) {
	if e.calc != nil {
		return
	}
	e.calc = surfacearea.NewCalculator()
	data, err := m.store.LoadSnapshot(ctx, userID, Calculator)
	if err != nil {
		if !merry.Is(err, repo.ErrNotFound) {
			log.PrintErr("load snapshot", "user", userID, "err", err)
		}
		return
	}
	var snap surfacearea.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.PrintErr("corrupt snapshot, using defaults", "user", userID, "err", err)
		return
	}
	e.calc.Restore(snap)
}

func (m *Manager) save(ctx context.Context, userID int, c *surfacearea.Calculator) {
	data, err := json.Marshal(c.Snapshot())
	if err != nil {
		log.PrintErr("encode snapshot", "user", userID, "err", err)
		return
	}
	if err := m.store.SaveSnapshot(ctx, userID, Calculator, data); err != nil {
		log.PrintErr("save snapshot", "user", userID, "err", err)
	}
}

// Evict drops calculators unused for longer than the idle TTL. They are
// restored from their snapshot on next use. Calculators busy in a
// transition are left for the next round.
func (m *Manager) Evict() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.idleTTL)
	n := 0
	for id, e := range m.entries {
		if !e.lastUsed.Before(cutoff) || !e.mu.TryLock() {
			continue
		}
		e.gone = true
		delete(m.entries, id)
		e.mu.Unlock()
		n++
	}
	return n
}

// Len returns the number of calculators held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Run evicts idle calculators periodically until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	interval := m.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Evict(); n > 0 {
				log.Debug("evicted idle sessions", "count", n)
			}
		}
	}
}
