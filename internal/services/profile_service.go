package services

import (
	"bytes"
	"context"
	"html/template"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"roamcms/internal/apiclient"
	"roamcms/internal/models"
)

var bioRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ProfileService caches the provider profile the public pages render on
// every request. The API stays the source of truth; the cache is
// refreshed after updates and periodically by the scheduler.
type ProfileService struct {
	api *apiclient.Client
	log zerolog.Logger

	mu     sync.RWMutex
	cached *models.Profile
}

func NewProfileService(api *apiclient.Client, log zerolog.Logger) *ProfileService {
	return &ProfileService{api: api, log: log}
}

// Get returns the cached profile, or an empty one before the first
// successful refresh.
func (s *ProfileService) Get() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return models.Profile{}
	}
	return *s.cached
}

// Refresh fetches the profile from the API and replaces the cache.
func (s *ProfileService) Refresh(ctx context.Context) error {
	profile, err := s.api.GetProfile(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cached = profile
	s.mu.Unlock()
	return nil
}

// Update writes the profile through to the API and caches the result.
func (s *ProfileService) Update(ctx context.Context, p *models.Profile) error {
	saved, err := s.api.UpdateProfile(ctx, p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cached = saved
	s.mu.Unlock()
	return nil
}

// BioHTML renders the provider's markdown bio for the public page.
func (s *ProfileService) BioHTML() template.HTML {
	bio := s.Get().Bio
	if bio == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := bioRenderer.Convert([]byte(bio), &buf); err != nil {
		s.log.Warn().Err(err).Msg("渲染简介失败")
		return template.HTML(template.HTMLEscapeString(bio))
	}
	return template.HTML(buf.String())
}
