package pipeline

import (
	"context"
	"sync"

	"kalaconnect-backend/internal/domain/crafts"
	"kalaconnect-backend/internal/infra/ai"
)

// memStore is an in-memory crafts.Store with the same compare-and-swap
// semantics as the GORM store, so driver behavior can be tested without
// Postgres.
type memStore struct {
	mu      sync.Mutex
	data    map[string]*crafts.Craft
	patches []crafts.AIPatch

	// patchErr, when set, is returned by the next PatchAI call.
	patchErr error
}

func newMemStore(seed ...*crafts.Craft) *memStore {
	s := &memStore{data: make(map[string]*crafts.Craft)}
	for _, c := range seed {
		cp := *c
		s.data[c.ID] = &cp
	}
	return s
}

func (s *memStore) GetByID(ctx context.Context, id string) (*crafts.Craft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data[id]
	if !ok {
		return nil, crafts.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) BeginProcessing(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data[id]
	if !ok {
		return crafts.ErrNotFound
	}
	if c.Status != crafts.StatusUploading {
		return crafts.ErrConflict
	}
	c.Status = crafts.StatusProcessing
	c.Version++
	return nil
}

func (s *memStore) PatchAI(ctx context.Context, id string, patch crafts.AIPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.patchErr != nil {
		err := s.patchErr
		s.patchErr = nil
		return err
	}
	c, ok := s.data[id]
	if !ok {
		return crafts.ErrNotFound
	}
	if patch.TranscribedText != nil {
		c.TranscribedText = patch.TranscribedText
	}
	if patch.TranslatedText != nil {
		c.TranslatedText = patch.TranslatedText
	}
	if patch.ProductDescription != nil {
		c.ProductDescription = patch.ProductDescription
	}
	if patch.SocialCaption != nil {
		c.SocialCaption = patch.SocialCaption
	}
	if patch.AITags != nil {
		c.AITags = patch.AITags
	}
	if patch.EnhancedPhoto != nil {
		c.EnhancedPhoto = patch.EnhancedPhoto
	}
	if patch.Language != nil {
		c.Language = patch.Language
	}
	if patch.TargetLanguage != nil {
		c.TargetLanguage = patch.TargetLanguage
	}
	s.patches = append(s.patches, patch)
	return nil
}

func (s *memStore) Finish(ctx context.Context, id string, to crafts.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data[id]
	if !ok {
		return crafts.ErrNotFound
	}
	if err := crafts.ValidateTransition(c.Status, to); err != nil {
		return err
	}
	if c.Status == to {
		return nil
	}
	c.Status = to
	c.Version++
	return nil
}

func (s *memStore) patchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.patches)
}

// Function adapters for the four AI capabilities.

type speechFunc func(ctx context.Context, audioKey string) (string, error)

func (f speechFunc) Transcribe(ctx context.Context, audioKey string) (string, error) {
	return f(ctx, audioKey)
}

type translateFunc func(ctx context.Context, text, target string) (ai.Translation, error)

func (f translateFunc) Translate(ctx context.Context, text, target string) (ai.Translation, error) {
	return f(ctx, text, target)
}

type generateFunc func(ctx context.Context, text, name string) (ai.GeneratedCopy, error)

func (f generateFunc) Generate(ctx context.Context, text, name string) (ai.GeneratedCopy, error) {
	return f(ctx, text, name)
}

type tagFunc func(ctx context.Context, imageKey string) ([]string, error)

func (f tagFunc) Tag(ctx context.Context, imageKey string) ([]string, error) {
	return f(ctx, imageKey)
}

// recordingPublisher captures published lifecycle events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	craftID  string
	from, to crafts.Status
}

func (p *recordingPublisher) CraftStatusChanged(ctx context.Context, craftID string, from, to crafts.Status) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{craftID: craftID, from: from, to: to})
	return nil
}
