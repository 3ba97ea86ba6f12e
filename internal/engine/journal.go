package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kosharny/ThunderpickMove/internal/storage"
)

// Journal is an ordered, append-only list of entries. Entries can be
// removed but never edited.
type Journal struct {
	entries []JournalEntry
}

func NewJournal(entries []JournalEntry) *Journal {
	return &Journal{entries: append([]JournalEntry(nil), entries...)}
}

func (j *Journal) Append(e JournalEntry) {
	j.entries = append(j.entries, e)
}

// Remove deletes the entry with the given ID.
func (j *Journal) Remove(id string) bool {
	for i := range j.entries {
		if j.entries[i].ID == id {
			return j.RemoveAt(i)
		}
	}
	return false
}

func (j *Journal) RemoveAt(index int) bool {
	if index < 0 || index >= len(j.entries) {
		return false
	}
	j.entries = append(j.entries[:index], j.entries[index+1:]...)
	return true
}

// List returns the entries in insertion order.
func (j *Journal) List() []JournalEntry {
	return append([]JournalEntry{}, j.entries...)
}

func (j *Journal) Len() int { return len(j.entries) }

// NewJournalEntry stamps a fresh ID and the given time.
func NewJournalEntry(mood MoodType, notes string, at time.Time) JournalEntry {
	return JournalEntry{
		ID:    uuid.NewString(),
		Date:  at,
		Mood:  mood,
		Notes: notes,
	}
}

// AddJournalEntry appends the entry, bumps the journal counter and trains
// voice when the entry has an audio recording.
func (s *Service) AddJournalEntry(ctx context.Context, e JournalEntry) *UserProgress {
	p, _ := s.mutate(ctx, []string{storage.KeyUserStats, storage.KeyJournal}, func(p *UserProgress, now time.Time) bool {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Date.IsZero() {
			e.Date = now
		}
		if !e.Mood.IsValid() {
			e.Mood = MoodConfidence
		}
		s.journal.Append(e)
		p.TotalJournalEntries++
		if e.HasAudio() {
			p.boostSkill(SkillVoice, VoiceJournalBoost)
		}
		LogActivity(p, now)
		return true
	})
	s.observers.notify(Event{Kind: EventJournalChanged, Progress: p})
	return p
}

// DeleteJournalEntry removes an entry permanently. The journal counter and
// unlocked badges are left as they are.
func (s *Service) DeleteJournalEntry(ctx context.Context, id string) bool {
	return s.deleteJournal(ctx, func(j *Journal) bool { return j.Remove(id) })
}

func (s *Service) DeleteJournalEntryAt(ctx context.Context, index int) bool {
	return s.deleteJournal(ctx, func(j *Journal) bool { return j.RemoveAt(index) })
}

func (s *Service) deleteJournal(ctx context.Context, remove func(*Journal) bool) bool {
	s.mu.Lock()
	s.ensureLoaded(ctx)
	if !remove(s.journal) {
		s.mu.Unlock()
		return false
	}
	s.persistLocked(ctx, storage.KeyJournal)
	p := s.progress.Clone()
	s.mu.Unlock()

	s.observers.notify(Event{Kind: EventJournalChanged, Progress: p})
	return true
}

// JournalEntries returns the journal in insertion order.
func (s *Service) JournalEntries(ctx context.Context) []JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return s.journal.List()
}
