package storage

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/burndown/pkg/domain/board"
	"gopkg.in/yaml.v3"
)

const BoardFile = "board.yaml"

// SaveBoardConfig writes the board plugin configuration.
func (r *FilesystemRepository) SaveBoardConfig(cfg *board.Config) error {
	path, err := r.ResolvePath(BoardFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal board config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadBoardConfig reads the board plugin configuration.
func (r *FilesystemRepository) LoadBoardConfig() (*board.Config, error) {
	path, err := r.ResolvePath(BoardFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board config: %w", err)
	}

	var cfg board.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board config: %w", err)
	}
	return &cfg, nil
}
