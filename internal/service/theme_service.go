package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/ibplan-go-api/internal/store"
)

// Themes the UI can render.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeService holds the binary light/dark flag, persisted and
// rehydrated like every other piece of durable state.
type ThemeService interface {
	Current(ctx context.Context) (string, error)
	Toggle(ctx context.Context) (string, error)
}

type themeService struct {
	kv     *store.KV
	logger zerolog.Logger
}

// NewThemeService builds the theme store.
func NewThemeService(kv *store.KV, logger zerolog.Logger) ThemeService {
	return &themeService{
		kv:     kv,
		logger: logger.With().Str("component", "theme_service").Logger(),
	}
}

// Current returns the persisted theme, defaulting to light. A stored
// value that is neither light nor dark is treated as absent.
func (s *themeService) Current(ctx context.Context) (string, error) {
	var theme string
	found, err := s.kv.GetJSON(ctx, store.KeyTheme, &theme)
	if err != nil {
		return "", err
	}
	if !found || (theme != ThemeLight && theme != ThemeDark) {
		return ThemeLight, nil
	}
	return theme, nil
}

// Toggle flips the flag and persists the result.
func (s *themeService) Toggle(ctx context.Context) (string, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	next := ThemeLight
	if current == ThemeLight {
		next = ThemeDark
	}
	if err := s.kv.SetJSON(ctx, store.KeyTheme, next); err != nil {
		return "", err
	}
	return next, nil
}
