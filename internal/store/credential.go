package store

import (
	"errors"
	"strings"
)

// Settings keys. Namespaced so nothing else sharing the database collides.
const (
	keyCredential   = "aiscribe.credential"
	keyAutoDownload = "aiscribe.autoDownload"
	keyExportFormat = "aiscribe.exportFormat"
)

// credentialPrefix is the provider's key format. Validated at the write
// boundary only; reads trust what was stored.
const credentialPrefix = "sk-"

// ErrBadCredentialFormat means the supplied credential does not look like a
// provider API key.
var ErrBadCredentialFormat = errors.New(`invalid API key format: keys start with "sk-"`)

// Credential returns the stored API credential, or "" when none is set.
func (s *Store) Credential() (string, error) {
	value, _, err := s.getSetting(keyCredential)
	return value, err
}

// SetCredential validates and persists the credential. Fails fast with
// ErrBadCredentialFormat on a malformed key; nothing is written in that
// case.
func (s *Store) SetCredential(raw string) error {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, credentialPrefix) || len(raw) <= len(credentialPrefix) {
		return ErrBadCredentialFormat
	}
	return s.putSetting(keyCredential, raw)
}

// ClearCredential removes the stored credential.
func (s *Store) ClearCredential() error {
	return s.deleteSetting(keyCredential)
}

// AutoDownload reports whether exports should be written straight to the
// working directory. Defaults to false.
func (s *Store) AutoDownload() (bool, error) {
	value, ok, err := s.getSetting(keyAutoDownload)
	if err != nil || !ok {
		return false, err
	}
	return value == "true", nil
}

// SetAutoDownload persists the auto-download-on-export toggle.
func (s *Store) SetAutoDownload(on bool) error {
	value := "false"
	if on {
		value = "true"
	}
	return s.putSetting(keyAutoDownload, value)
}

// ExportFormat returns the preferred export format, defaulting to "pdf".
func (s *Store) ExportFormat() (string, error) {
	value, ok, err := s.getSetting(keyExportFormat)
	if err != nil || !ok {
		return "pdf", err
	}
	return value, nil
}

// SetExportFormat persists the preferred export format.
func (s *Store) SetExportFormat(format string) error {
	return s.putSetting(keyExportFormat, format)
}
