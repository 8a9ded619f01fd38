package inventory

import (
    "hash/fnv"
    "sync"
    "time"

    "github.com/ElPaul593/BusReservationFullStack-sub000/internal/model"
)

// shardCount fixes the size of the lock-striped shard table.  64 keeps
// contention low for a single process without an unbounded number of
// mutexes; operations on different seat keys almost always land on
// different shards and proceed concurrently.
const shardCount = 64

// shard owns a slice of the key space.  The mutex guards both maps;
// holding it makes any compound check-then-mutate sequence on a key in
// this shard atomic with respect to every other operation on that key,
// including the purge sweeps.
type shard struct {
    mu           sync.Mutex
    holds        map[model.SeatKey]model.Hold
    reservations map[model.SeatKey]model.Reservation
}

// MemoryStore is the in-process SlotStore implementation.  It backs
// both the primary authority deployment and the fallback mirror; the
// two differ only in which process owns the instance.  State does not
// survive a restart — the platform accepts losing live holds, and
// finalized bookings are persisted elsewhere.
type MemoryStore struct {
    shards [shardCount]*shard
}

// NewMemoryStore returns an empty store with all shards initialized.
func NewMemoryStore() *MemoryStore {
    st := &MemoryStore{}
    for i := range st.shards {
        st.shards[i] = &shard{
            holds:        make(map[model.SeatKey]model.Hold),
            reservations: make(map[model.SeatKey]model.Reservation),
        }
    }
    return st
}

// shardFor hashes the seat key onto its shard with FNV-1a.
func (m *MemoryStore) shardFor(key model.SeatKey) *shard {
    h := fnv.New32a()
    h.Write([]byte(key.RutaID))
    h.Write([]byte{'|'})
    h.Write([]byte(key.Fecha))
    h.Write([]byte{'|'})
    h.Write([]byte{byte(key.Asiento), byte(key.Asiento >> 8)})
    return m.shards[h.Sum32()%shardCount]
}

// slotState adapts one locked shard entry to the SlotState interface.
type slotState struct {
    sh  *shard
    key model.SeatKey
}

func (s *slotState) Hold() (model.Hold, bool) {
    h, ok := s.sh.holds[s.key]
    return h, ok
}

func (s *slotState) Reservation() (model.Reservation, bool) {
    r, ok := s.sh.reservations[s.key]
    return r, ok
}

func (s *slotState) PutHold(h model.Hold) { s.sh.holds[s.key] = h }

func (s *slotState) DeleteHold() bool {
    if _, ok := s.sh.holds[s.key]; !ok {
        return false
    }
    delete(s.sh.holds, s.key)
    return true
}

func (s *slotState) PutReservation(r model.Reservation) { s.sh.reservations[s.key] = r }

// Update runs fn under the key's shard lock.
func (m *MemoryStore) Update(key model.SeatKey, fn func(s SlotState) error) error {
    sh := m.shardFor(key)
    sh.mu.Lock()
    defer sh.mu.Unlock()
    return fn(&slotState{sh: sh, key: key})
}

// HoldsInScope snapshots all holds for one route departure.
func (m *MemoryStore) HoldsInScope(rutaID, fecha string) []model.Hold {
    var out []model.Hold
    for _, sh := range m.shards {
        sh.mu.Lock()
        for k, h := range sh.holds {
            if k.RutaID == rutaID && k.Fecha == fecha {
                out = append(out, h)
            }
        }
        sh.mu.Unlock()
    }
    return out
}

// ReservationsInScope snapshots all reservations for one route departure.
func (m *MemoryStore) ReservationsInScope(rutaID, fecha string) []model.Reservation {
    var out []model.Reservation
    for _, sh := range m.shards {
        sh.mu.Lock()
        for k, r := range sh.reservations {
            if k.RutaID == rutaID && k.Fecha == fecha {
                out = append(out, r)
            }
        }
        sh.mu.Unlock()
    }
    return out
}

// Holds snapshots every hold in the store, expired ones included.
func (m *MemoryStore) Holds() []model.Hold {
    var out []model.Hold
    for _, sh := range m.shards {
        sh.mu.Lock()
        for _, h := range sh.holds {
            out = append(out, h)
        }
        sh.mu.Unlock()
    }
    return out
}

// PurgeScope deletes expired holds for one route departure.  Each
// shard is locked while its entries are examined so the purge cannot
// interleave with a foreground operation on the same key.
func (m *MemoryStore) PurgeScope(rutaID, fecha string, now time.Time) int {
    purged := 0
    for _, sh := range m.shards {
        sh.mu.Lock()
        for k, h := range sh.holds {
            if k.RutaID == rutaID && k.Fecha == fecha && h.Expired(now) {
                delete(sh.holds, k)
                purged++
            }
        }
        sh.mu.Unlock()
    }
    return purged
}

// PurgeAll deletes every expired hold in the store.
func (m *MemoryStore) PurgeAll(now time.Time) int {
    purged := 0
    for _, sh := range m.shards {
        sh.mu.Lock()
        for k, h := range sh.holds {
            if h.Expired(now) {
                delete(sh.holds, k)
                purged++
            }
        }
        sh.mu.Unlock()
    }
    return purged
}
