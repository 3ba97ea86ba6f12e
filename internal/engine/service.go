package engine

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kosharny/ThunderpickMove/internal/storage"
)

// KV is the key-value storage the engine persists its records in.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	PutMany(ctx context.Context, entries []storage.KVEntry) error
}

// Service owns the user's progress record and the journal. Every mutation is
// a read-modify-persist under the service mutex. Persistence failures are
// logged and otherwise ignored: the in-memory state stays authoritative for
// the rest of the session.
type Service struct {
	kv     KV
	logger *zap.Logger
	now    func() time.Time
	loc    *time.Location

	mu         sync.Mutex
	loaded     bool
	progress   *UserProgress
	journal    *Journal
	activities []Activity
	theme      ThemeType

	observers observers
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now; tests use it to cross day boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the calendar used for day boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewService(kv KV, opts ...Option) *Service {
	s := &Service{
		kv:     kv,
		logger: zap.NewNop(),
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("engine")
	return s
}

// Now is the current time in the service calendar.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Location() *time.Location { return s.loc }

// Load re-reads all records from storage and returns the progress record.
// A missing or unreadable record yields a fresh default.
func (s *Service) Load(ctx context.Context) *UserProgress {
	s.mu.Lock()
	s.loadLocked(ctx)
	p := s.progress.Clone()
	s.mu.Unlock()
	return p
}

// Progress returns a copy of the current record, loading it on first use.
func (s *Service) Progress(ctx context.Context) *UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return s.progress.Clone()
}

func (s *Service) ensureLoaded(ctx context.Context) {
	if !s.loaded {
		s.loadLocked(ctx)
	}
}

func (s *Service) loadLocked(ctx context.Context) {
	p := NewUserProgress()
	if ok := s.readJSON(ctx, storage.KeyUserStats, p); !ok {
		p = NewUserProgress()
	}
	p.normalize()
	s.progress = p

	var entries []JournalEntry
	if ok := s.readJSON(ctx, storage.KeyJournal, &entries); !ok {
		entries = nil
	}
	s.journal = NewJournal(entries)

	var acts []Activity
	if ok := s.readJSON(ctx, storage.KeyActivities, &acts); !ok || len(acts) == 0 {
		acts = SeedActivities()
		s.writeJSON(ctx, storage.KeyActivities, acts)
	}
	s.activities = acts

	s.theme = ThemeStandard
	if raw := s.readRaw(ctx, storage.KeySelectedTheme); raw != nil {
		s.theme = ParseTheme(string(raw))
	}

	s.loaded = true
}

// readRaw returns nil when the key is absent or unreadable.
func (s *Service) readRaw(ctx context.Context, key string) []byte {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return data
}

func (s *Service) readJSON(ctx context.Context, key string, v any) bool {
	data := s.readRaw(ctx, key)
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("decode failed, using defaults", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) writeJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Put(ctx, key, data); err != nil {
		s.logger.Warn("write failed", zap.String("key", key), zap.Error(err))
	}
}

// persistLocked writes the named records in one transaction. Errors are
// logged and dropped.
func (s *Service) persistLocked(ctx context.Context, keys ...string) {
	entries := make([]storage.KVEntry, 0, len(keys))
	for _, key := range keys {
		var v any
		switch key {
		case storage.KeyUserStats:
			v = s.progress
		case storage.KeyJournal:
			v = s.journal.List()
		case storage.KeyActivities:
			v = s.activities
		default:
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Warn("encode failed", zap.String("key", key), zap.Error(err))
			continue
		}
		entries = append(entries, storage.KVEntry{Key: key, Value: data})
	}
	if err := s.kv.PutMany(ctx, entries); err != nil {
		s.logger.Warn("persist failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// mutate applies fn to the loaded record. When fn reports a change, badges
// are re-evaluated, the given keys persisted and observers notified.
func (s *Service) mutate(ctx context.Context, keys []string, fn func(p *UserProgress, now time.Time) bool) (*UserProgress, bool) {
	s.mu.Lock()
	s.ensureLoaded(ctx)
	now := s.Now()
	if !fn(s.progress, now) {
		p := s.progress.Clone()
		s.mu.Unlock()
		return p, false
	}
	added := MergeBadges(s.progress, EvaluateBadges(s.progress))
	s.persistLocked(ctx, keys...)
	p := s.progress.Clone()
	s.mu.Unlock()

	s.observers.notify(Event{Kind: EventProgressChanged, Progress: p})
	if len(added) > 0 {
		s.logger.Info("badges unlocked", zap.Strings("badges", added))
		s.observers.notify(Event{Kind: EventBadgesUnlocked, Progress: p, Badges: added})
	}
	return p, true
}
