// Package repository holds the in-memory data of the development backend.
// Every repository is safe for concurrent use and returns copies, so callers
// never share state with the store.
package repository

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// Lookup and uniqueness failures.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// table is an id-keyed collection with sequential ids.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T), nextID: 1}
}

func (t *table[T]) insert(build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	row := build(id)
	t.rows[id] = row
	return row
}

func (t *table[T]) get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return row, nil
}

func (t *table[T]) update(id int64, fn func(T) (T, error)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	next, err := fn(row)
	if err != nil {
		return row, err
	}
	t.rows[id] = next
	return next, nil
}

// filter returns matching rows in id order.
func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	ids := make([]int64, 0, len(t.rows))
	for id, row := range t.rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	t.mu.RUnlock()
	return out
}

func (t *table[T]) count(keep func(T) bool) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var n int64
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			n++
		}
	}
	return n
}

// Clock returns the current time.
type Clock func() time.Time

// Repositories bundles every repository of the backend.
type Repositories struct {
	Users     UserRepository
	Tickets   TicketRepository
	Hardware  HardwareRepository
	Software  SoftwareRepository
	Contracts ContractRepository
	Locations LocationRepository
	Audit     AuditRepository
}

// New returns empty repositories stamping records with clock.
func New(clock Clock) *Repositories {
	if clock == nil {
		clock = time.Now
	}
	return &Repositories{
		Users:     NewUserRepository(),
		Tickets:   NewTicketRepository(clock),
		Hardware:  NewHardwareRepository(clock),
		Software:  NewSoftwareRepository(),
		Contracts: NewContractRepository(),
		Locations: NewLocationRepository(),
		Audit:     NewAuditRepository(clock),
	}
}
