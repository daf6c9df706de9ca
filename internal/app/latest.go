package app

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Juicern/scribe/internal/domain"
)

var ErrNoTranscription = errors.New("no transcription stored")

// LatestStore holds the single most recent transcription. Put always
// replaces the slot, so concurrent writers resolve to whichever finishes last.
type LatestStore struct {
	logger *zap.Logger

	mu     sync.RWMutex
	latest *domain.CachedTranscription
}

func NewLatestStore(logger *zap.Logger) *LatestStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LatestStore{logger: logger}
}

func (s *LatestStore) Put(text string) domain.CachedTranscription {
	entry := domain.CachedTranscription{Text: text}

	s.mu.Lock()
	s.latest = &entry
	s.mu.Unlock()

	s.logger.Debug("latest transcription replaced", zap.Int("length", len(text)))
	return entry
}

func (s *LatestStore) Get() (domain.CachedTranscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return domain.CachedTranscription{}, ErrNoTranscription
	}
	return *s.latest, nil
}
