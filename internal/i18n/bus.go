package i18n

import (
	"context"
	"log/slog"
	"sync"
)

// LanguageChanged is published after a successful language switch.
type LanguageChanged struct {
	SessionID string
	Language  string
}

// Bus is a typed publish/subscribe channel for language changes.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(LanguageChanged)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(LanguageChanged))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(LanguageChanged)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers ev to every subscriber synchronously.
func (b *Bus) Publish(ev LanguageChanged) {
	b.mu.RLock()
	fns := make([]func(LanguageChanged), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Notifier mirrors the language choice to the remote session.
type Notifier interface {
	SetLanguage(ctx context.Context, code string) error
}

// Switcher performs a language change: validate, persist locally, notify the
// remote session, then publish on the bus.
type Switcher struct {
	notifier Notifier
	bus      *Bus
	logger   *slog.Logger
}

// NewSwitcher creates a Switcher. notifier may be nil.
func NewSwitcher(notifier Notifier, bus *Bus, logger *slog.Logger) *Switcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Switcher{notifier: notifier, bus: bus, logger: logger}
}

// Switch changes the language for one session. An invalid code returns
// ErrInvalidLanguage before persist is called. A failed remote notification
// is logged and does not fail the switch.
func (s *Switcher) Switch(ctx context.Context, sessionID, code string, persist func(lang string)) (string, error) {
	lang, err := Normalize(code)
	if err != nil {
		return "", err
	}

	if persist != nil {
		persist(lang)
	}

	if s.notifier != nil {
		if err := s.notifier.SetLanguage(ctx, lang); err != nil {
			s.logger.Warn("failed to set language on server", "language", lang, "error", err)
		}
	}

	if s.bus != nil {
		s.bus.Publish(LanguageChanged{SessionID: sessionID, Language: lang})
	}
	return lang, nil
}
