// Package settings keeps the site settings in two tiers: a local copy that is
// always written first, and the remote app_settings row that is written on a
// best-effort basis.
//
// Local values are authoritative while pending_remote_sync is set. Otherwise a
// successful remote read overwrites a local field only when the remote value
// is non-empty.
package settings

import (
	"context"
	"fmt"
	"sync"

	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/logger"
	"dnl-site-backend-go/internal/models"
)

type Store struct {
	tables gateway.Tables
	local  Local

	mu      sync.RWMutex
	current models.AppSettings
}

func NewStore(tables gateway.Tables, local Local) *Store {
	return &Store{
		tables:  tables,
		local:   local,
		current: models.AppSettings{}.WithDefaults(),
	}
}

// Current returns the in-memory settings with the default email applied.
func (s *Store) Current() models.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.WithDefaults()
}

// APIKey resolves the email access key: the loaded value first, then the
// local copy.
func (s *Store) APIKey() string {
	if key := s.Current().EmailAPIKey; key != "" {
		return key
	}
	values, err := s.local.Read()
	if err != nil {
		logger.Warn("[settings][key] local read failed: %v", err)
		return ""
	}
	return values.EmailAPIKey
}

// Load reads both tiers and merges them. A remote failure is logged and the
// local values are used. The returned error is only set when the local tier
// cannot be read and no remote row was available either.
func (s *Store) Load(ctx context.Context) (models.AppSettings, error) {
	remote, remoteOK := s.readRemote(ctx)
	local, localErr := s.local.Read()
	if localErr != nil {
		logger.Warn("[settings][load] local read failed: %v", localErr)
		if !remoteOK {
			return s.Current(), fmt.Errorf("settings: no readable tier: %w", localErr)
		}
	}
	merged := merge(local, remote, remoteOK)
	s.mu.Lock()
	s.current = merged
	s.mu.Unlock()
	return merged.WithDefaults(), nil
}

// Save writes the local tier, updates the in-memory value and then attempts
// the remote upsert. Empty logoURL or apiKey keep the previous values. Only a
// local write failure is returned; remoteSynced reports the remote outcome.
func (s *Store) Save(ctx context.Context, email, logoURL, apiKey string) (saved models.AppSettings, remoteSynced bool, err error) {
	previous, readErr := s.local.Read()
	if readErr != nil {
		logger.Warn("[settings][save] local read failed: %v", readErr)
	}
	s.mu.RLock()
	next := s.current
	s.mu.RUnlock()

	next.NotificationEmail = email
	if logoURL != "" {
		next.LogoURL = logoURL
	} else if next.LogoURL == "" {
		next.LogoURL = previous.LogoURL
	}
	if apiKey != "" {
		next.EmailAPIKey = apiKey
	} else if next.EmailAPIKey == "" {
		next.EmailAPIKey = previous.EmailAPIKey
	}

	values := LocalValues{
		NotificationEmail: next.NotificationEmail,
		LogoURL:           next.LogoURL,
		EmailAPIKey:       next.EmailAPIKey,
		PendingRemoteSync: true,
	}
	if err := s.local.Write(values); err != nil {
		return s.Current(), false, fmt.Errorf("settings: local write: %w", err)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if err := s.tables.Upsert(ctx, models.TableAppSettings, models.SettingsToRow(next)); err != nil {
		logger.Warn("[settings][save] remote write failed, keeping local copy: %v", err)
		return next.WithDefaults(), false, nil
	}
	values.PendingRemoteSync = false
	if err := s.local.Write(values); err != nil {
		logger.Warn("[settings][save] could not clear pending flag: %v", err)
	}
	return next.WithDefaults(), true, nil
}

// Reconcile pushes pending local values to the remote row, or pulls remote
// values into the local copy when nothing is pending.
func (s *Store) Reconcile(ctx context.Context) error {
	local, err := s.local.Read()
	if err != nil {
		return fmt.Errorf("settings: local read: %w", err)
	}
	if local.PendingRemoteSync {
		row := models.SettingsToRow(models.AppSettings{
			NotificationEmail: local.NotificationEmail,
			LogoURL:           local.LogoURL,
			EmailAPIKey:       local.EmailAPIKey,
		})
		if err := s.tables.Upsert(ctx, models.TableAppSettings, row); err != nil {
			return fmt.Errorf("settings: remote push: %w", err)
		}
		local.PendingRemoteSync = false
		if err := s.local.Write(local); err != nil {
			return fmt.Errorf("settings: local write: %w", err)
		}
		logger.Info("[settings][reconcile] pending local settings pushed")
		return nil
	}

	remote, ok := s.readRemote(ctx)
	if !ok {
		return nil
	}
	merged := merge(local, remote, true)
	s.mu.Lock()
	s.current = merged
	s.mu.Unlock()

	updated := LocalValues{
		NotificationEmail: merged.NotificationEmail,
		LogoURL:           merged.LogoURL,
		EmailAPIKey:       merged.EmailAPIKey,
	}
	if updated != local {
		if err := s.local.Write(updated); err != nil {
			return fmt.Errorf("settings: local write: %w", err)
		}
	}
	return nil
}

func (s *Store) readRemote(ctx context.Context) (models.AppSettings, bool) {
	rows, err := s.tables.Select(ctx, models.TableAppSettings, gateway.Where(gateway.Eq("id", models.SettingsRowID)).WithLimit(1))
	if err != nil {
		logger.Warn("[settings][remote] read failed: %v", err)
		return models.AppSettings{}, false
	}
	if len(rows) == 0 {
		return models.AppSettings{}, true
	}
	remote, err := models.SettingsFromRow(rows[0])
	if err != nil {
		logger.Warn("[settings][remote] malformed row: %v", err)
		return models.AppSettings{}, false
	}
	return remote, true
}

func merge(local LocalValues, remote models.AppSettings, remoteOK bool) models.AppSettings {
	localSettings := models.AppSettings{
		NotificationEmail: local.NotificationEmail,
		LogoURL:           local.LogoURL,
		EmailAPIKey:       local.EmailAPIKey,
	}
	if !remoteOK {
		return localSettings
	}
	if local.PendingRemoteSync {
		return models.AppSettings{
			NotificationEmail: firstNonEmpty(local.NotificationEmail, remote.NotificationEmail),
			LogoURL:           firstNonEmpty(local.LogoURL, remote.LogoURL),
			EmailAPIKey:       firstNonEmpty(local.EmailAPIKey, remote.EmailAPIKey),
		}
	}
	return models.AppSettings{
		NotificationEmail: firstNonEmpty(remote.NotificationEmail, local.NotificationEmail),
		LogoURL:           firstNonEmpty(remote.LogoURL, local.LogoURL),
		EmailAPIKey:       firstNonEmpty(remote.EmailAPIKey, local.EmailAPIKey),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
