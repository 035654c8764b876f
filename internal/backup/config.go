package backup

import (
	"context"
	"fmt"

	stasherrors "github.com/dmissoh/stash-away/internal/errors"
)

// Git config keys the backup destination is stored under, repository-local scope
const (
	ConfigKeyURL          = "backup.url"
	ConfigKeyIdentityFile = "backup.identityFile"
)

// Config holds the backup destination settings read from git config
type Config struct {
	URL          string
	IdentityFile string
}

// IsConfigured returns true if a backup destination has been set
func (c Config) IsConfigured() bool {
	return c.URL != ""
}

// sshEnv returns the environment overlay that injects the configured SSH
// identity into git's transport for a single command. Empty when no identity
// file is configured, so git falls back to the default SSH configuration.
func (c Config) sshEnv() []string {
	if c.IdentityFile == "" {
		return nil
	}
	return []string{fmt.Sprintf("GIT_SSH_COMMAND=ssh -i %s -o IdentitiesOnly=yes", c.IdentityFile)}
}

// loadConfig reads the backup configuration from the repository's git config
func (s *Service) loadConfig(ctx context.Context) (Config, error) {
	if !s.client.IsWorkTree(ctx) {
		return Config{}, stasherrors.ErrNotARepository
	}

	url, err := s.client.ConfigGet(ctx, ConfigKeyURL)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", ConfigKeyURL, err)
	}
	identityFile, err := s.client.ConfigGet(ctx, ConfigKeyIdentityFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", ConfigKeyIdentityFile, err)
	}

	return Config{URL: url, IdentityFile: identityFile}, nil
}

// requireConfig loads the configuration and fails when no destination is set
func (s *Service) requireConfig(ctx context.Context) (Config, error) {
	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return Config{}, err
	}
	if !cfg.IsConfigured() {
		return Config{}, stasherrors.ErrBackupURLNotSet
	}
	return cfg, nil
}

// Init writes the backup destination URL and, when provided, the SSH identity
// file path to the repository's git config. The URL is always overwritten; an
// existing identity file setting is left alone unless a new one is supplied.
func (s *Service) Init(ctx context.Context, url, identityFile string) error {
	if !s.client.IsWorkTree(ctx) {
		return stasherrors.ErrNotARepository
	}

	if err := s.client.ConfigSet(ctx, ConfigKeyURL, url); err != nil {
		return err
	}
	s.splog.Info("Backup repository URL set to: %s", url)

	if identityFile != "" {
		if err := s.client.ConfigSet(ctx, ConfigKeyIdentityFile, identityFile); err != nil {
			return err
		}
		s.splog.Info("SSH identity file set to: %s", identityFile)
	}

	return nil
}
