// Package memory keeps every record collection in process memory, optionally
// mirrored to a JSON snapshot file so an offline install survives restarts.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"footfall-service/internal/model"
	"footfall-service/internal/repository"
)

const snapshotVersion = 1

type snapshot struct {
	Version   int                               `json:"version"`
	Branches  map[string]model.Branch           `json:"branches"`
	Users     map[string]model.User             `json:"users"`
	Events    []model.TrafficEvent              `json:"events"`
	Bills     []model.BillRecord                `json:"bills"`
	Dashboard map[string]model.DashboardFigures `json:"dashboard"`
	Sessions  map[uuid.UUID]model.Session       `json:"sessions"`
	LoginLogs []model.LoginLog                  `json:"login_logs"`
	Hashes    map[string]string                 `json:"password_hashes"`
}

func (d snapshot) clone() snapshot {
	out := emptySnapshot()
	out.Events = append([]model.TrafficEvent(nil), d.Events...)
	out.Bills = append([]model.BillRecord(nil), d.Bills...)
	out.LoginLogs = append([]model.LoginLog(nil), d.LoginLogs...)
	copyMap(out.Branches, d.Branches)
	copyMap(out.Users, d.Users)
	copyMap(out.Dashboard, d.Dashboard)
	copyMap(out.Sessions, d.Sessions)
	copyMap(out.Hashes, d.Hashes)
	return out
}

func emptySnapshot() snapshot {
	return snapshot{
		Version:   snapshotVersion,
		Branches:  make(map[string]model.Branch),
		Users:     make(map[string]model.User),
		Dashboard: make(map[string]model.DashboardFigures),
		Sessions:  make(map[uuid.UUID]model.Session),
		Hashes:    make(map[string]string),
	}
}

type Store struct {
	mu   sync.RWMutex
	path string
	data snapshot
	now  func() time.Time
	log  zerolog.Logger
}

// New opens a store. An empty path keeps everything in memory only; a
// snapshot with an unknown version is moved aside and started fresh.
func New(path string, log zerolog.Logger) (*Store, error) {
	s := &Store{path: path, data: emptySnapshot(), now: time.Now, log: log}
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var loaded snapshot
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if loaded.Version != snapshotVersion {
		aside := fmt.Sprintf("%s.v%d.bak", path, loaded.Version)
		if err := os.Rename(path, aside); err != nil {
			return nil, fmt.Errorf("move unsupported snapshot: %w", err)
		}
		log.Warn().
			Int("version", loaded.Version).
			Str("moved_to", aside).
			Msg("unsupported snapshot version, starting with empty store")
		return s, nil
	}
	s.data = emptySnapshot()
	s.data.Events = loaded.Events
	s.data.Bills = loaded.Bills
	s.data.LoginLogs = loaded.LoginLogs
	copyMap(s.data.Branches, loaded.Branches)
	copyMap(s.data.Dashboard, loaded.Dashboard)
	copyMap(s.data.Sessions, loaded.Sessions)
	copyMap(s.data.Hashes, loaded.Hashes)
	for k, u := range loaded.Users {
		u.PasswordHash = loaded.Hashes[k]
		s.data.Users[k] = u
	}
	return s, nil
}

func copyMap[K comparable, V any](dst, src map[K]V) {
	for k, v := range src {
		dst[k] = v
	}
}

// Records exposes the store through the backend-neutral interfaces.
func (s *Store) Records() repository.Store {
	return repository.Store{
		Branches:  branchStore{s},
		Users:     userStore{s},
		Traffic:   trafficStore{s},
		Bills:     billStore{s},
		Dashboard: dashboardStore{s},
		Sessions:  sessionStore{s},
		LoginLogs: loginLogStore{s},
	}
}

// update applies fn to a copy of the data. The copy replaces the live data
// only after it has been written to the snapshot.
func (s *Store) update(fn func(d *snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.persist(&next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// persist writes d through a temp file.
func (s *Store) persist(d *snapshot) error {
	if s.path == "" {
		return nil
	}
	// PasswordHash is hidden from JSON on the model, so hashes ride separately.
	for k, u := range d.Users {
		d.Hashes[k] = u.PasswordHash
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *Store) stamp(t *time.Time) {
	if t.IsZero() {
		*t = s.now()
	}
}


type branchStore struct{ s *Store }

func (b branchStore) Create(_ context.Context, branch *model.Branch) error {
	return b.s.update(func(d *snapshot) error {
		if _, ok := d.Branches[branch.ID]; ok {
			return repository.ErrDuplicate
		}
		b.s.stamp(&branch.CreatedAt)
		branch.UpdatedAt = branch.CreatedAt
		d.Branches[branch.ID] = *branch
		return nil
	})
}

func (b branchStore) GetByID(_ context.Context, id string) (*model.Branch, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	branch, ok := b.s.data.Branches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &branch, nil
}

func (b branchStore) Update(_ context.Context, id string, branch *model.Branch) error {
	return b.s.update(func(d *snapshot) error {
		existing, ok := d.Branches[id]
		if !ok {
			return repository.ErrNotFound
		}
		if branch.ID != id {
			if _, taken := d.Branches[branch.ID]; taken {
				return repository.ErrDuplicate
			}
			delete(d.Branches, id)
		}
		branch.CreatedAt = existing.CreatedAt
		branch.UpdatedAt = b.s.now()
		d.Branches[branch.ID] = *branch
		return nil
	})
}

func (b branchStore) Delete(_ context.Context, id string) error {
	return b.s.update(func(d *snapshot) error {
		if _, ok := d.Branches[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.Branches, id)
		return nil
	})
}

func (b branchStore) List(_ context.Context) ([]model.Branch, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	out := make([]model.Branch, 0, len(b.s.data.Branches))
	for _, branch := range b.s.data.Branches {
		out = append(out, branch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type userStore struct{ s *Store }

func (u userStore) Create(_ context.Context, user *model.User) error {
	return u.s.update(func(d *snapshot) error {
		if _, ok := d.Users[user.Username]; ok {
			return repository.ErrDuplicate
		}
		u.s.stamp(&user.CreatedAt)
		user.UpdatedAt = user.CreatedAt
		d.Users[user.Username] = *user
		return nil
	})
}

func (u userStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.data.Users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (u userStore) Update(_ context.Context, user *model.User) error {
	return u.s.update(func(d *snapshot) error {
		existing, ok := d.Users[user.Username]
		if !ok {
			return repository.ErrNotFound
		}
		user.CreatedAt = existing.CreatedAt
		user.UpdatedAt = u.s.now()
		d.Users[user.Username] = *user
		return nil
	})
}

func (u userStore) Delete(_ context.Context, username string) error {
	return u.s.update(func(d *snapshot) error {
		if _, ok := d.Users[username]; !ok {
			return repository.ErrNotFound
		}
		delete(d.Users, username)
		delete(d.Hashes, username)
		return nil
	})
}

func (u userStore) List(_ context.Context) ([]model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	out := make([]model.User, 0, len(u.s.data.Users))
	for _, user := range u.s.data.Users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func inBranches(ids []string, id string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func matches(want *string, got string) bool {
	return want == nil || *want == got
}

type trafficStore struct{ s *Store }

func (t trafficStore) Create(_ context.Context, event *model.TrafficEvent) error {
	return t.s.update(func(d *snapshot) error {
		if event.ID == uuid.Nil {
			event.ID = uuid.New()
		}
		t.s.stamp(&event.CreatedAt)
		d.Events = append(d.Events, *event)
		return nil
	})
}

func (t trafficStore) List(_ context.Context, filter repository.TrafficFilter) ([]model.TrafficEvent, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := make([]model.TrafficEvent, 0)
	for _, e := range t.s.data.Events {
		if inBranches(filter.BranchIDs, e.BranchID) &&
			matches(filter.Date, e.Date) &&
			matches(filter.Period, e.Period) &&
			matches(filter.Slot, e.Slot) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Latest walks backwards so the last appended event wins on equal timestamps.
func (t trafficStore) Latest(_ context.Context, branchID, date string) (*model.TrafficEvent, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	for i := len(t.s.data.Events) - 1; i >= 0; i-- {
		e := t.s.data.Events[i]
		if e.BranchID == branchID && e.Date == date {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (t trafficStore) Delete(_ context.Context, id uuid.UUID) error {
	return t.s.update(func(d *snapshot) error {
		for i, e := range d.Events {
			if e.ID == id {
				d.Events = append(d.Events[:i:i], d.Events[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

type billStore struct{ s *Store }

func (b billStore) Create(_ context.Context, bill *model.BillRecord) error {
	return b.s.update(func(d *snapshot) error {
		if bill.ID == uuid.Nil {
			bill.ID = uuid.New()
		}
		b.s.stamp(&bill.CreatedAt)
		d.Bills = append(d.Bills, *bill)
		return nil
	})
}

func (b billStore) List(_ context.Context, filter repository.BillFilter) ([]model.BillRecord, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	out := make([]model.BillRecord, 0)
	for _, r := range b.s.data.Bills {
		if inBranches(filter.BranchIDs, r.BranchID) && matches(filter.Date, r.Date) && matches(filter.Period, r.Period) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (b billStore) Latest(_ context.Context, branchID, date string) (*model.BillRecord, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	for i := len(b.s.data.Bills) - 1; i >= 0; i-- {
		r := b.s.data.Bills[i]
		if r.BranchID == branchID && r.Date == date {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (b billStore) Delete(_ context.Context, id uuid.UUID) error {
	return b.s.update(func(d *snapshot) error {
		for i, r := range d.Bills {
			if r.ID == id {
				d.Bills = append(d.Bills[:i:i], d.Bills[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

type dashboardStore struct{ s *Store }

func (ds dashboardStore) Get(_ context.Context, id string) (*model.DashboardFigures, error) {
	ds.s.mu.RLock()
	defer ds.s.mu.RUnlock()

	figures, ok := ds.s.data.Dashboard[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &figures, nil
}

func (ds dashboardStore) Save(_ context.Context, figures *model.DashboardFigures) error {
	return ds.s.update(func(d *snapshot) error {
		figures.UpdatedAt = ds.s.now()
		d.Dashboard[figures.ID] = *figures
		return nil
	})
}

type sessionStore struct{ s *Store }

func (ss sessionStore) Create(_ context.Context, session *model.Session) error {
	return ss.s.update(func(d *snapshot) error {
		if session.ID == uuid.Nil {
			session.ID = uuid.New()
		}
		ss.s.stamp(&session.CreatedAt)
		d.Sessions[session.ID] = *session
		return nil
	})
}

func (ss sessionStore) GetByID(_ context.Context, id uuid.UUID) (*model.Session, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()

	session, ok := ss.s.data.Sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (ss sessionStore) Revoke(_ context.Context, id uuid.UUID, at time.Time) error {
	return ss.s.update(func(d *snapshot) error {
		session, ok := d.Sessions[id]
		if !ok || session.RevokedAt != nil {
			return repository.ErrNotFound
		}
		session.RevokedAt = &at
		d.Sessions[id] = session
		return nil
	})
}

type loginLogStore struct{ s *Store }

func (l loginLogStore) Create(_ context.Context, entry *model.LoginLog) error {
	return l.s.update(func(d *snapshot) error {
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		l.s.stamp(&entry.CreatedAt)
		d.LoginLogs = append(d.LoginLogs, *entry)
		return nil
	})
}
