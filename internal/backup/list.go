package backup

import (
	"context"
	"slices"
)

// List returns the labels of all backups on the destination, sorted by name.
// The timestamp format makes the sort chronological. An empty destination is
// not an error.
func (s *Service) List(ctx context.Context) ([]string, error) {
	cfg, err := s.requireConfig(ctx)
	if err != nil {
		return nil, err
	}

	s.splog.Info("Fetching backups from %s...", cfg.URL)

	labels, err := s.client.LsRemoteHeads(ctx, cfg.sshEnv(), cfg.URL, "refs/heads/"+BackupPrefix+"*")
	if err != nil {
		return nil, err
	}

	slices.Sort(labels)
	return labels, nil
}
