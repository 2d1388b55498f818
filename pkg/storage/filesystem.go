// Package storage persists the project definition document on disk.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"
)

const BurndownDir = ".burndown"
const DefinitionFile = "project.yaml"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// DefinitionPath returns the absolute path of the definition document.
func (r *FilesystemRepository) DefinitionPath() string {
	return filepath.Join(r.root, BurndownDir, DefinitionFile)
}

// ResolvePath ensures the path is within the .burndown directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, BurndownDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, BurndownDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .burndown directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, BurndownDir))
	return err == nil
}

func (r *FilesystemRepository) SaveDefinition(def *burndown.ProjectDefinition) error {
	path, err := r.ResolvePath(DefinitionFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadDefinition() (*burndown.ProjectDefinition, error) {
	retryer := retry.New[*burndown.ProjectDefinition](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*burndown.ProjectDefinition, error) {
		path, err := r.ResolvePath(DefinitionFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read definition file: %w", err)
		}

		var def burndown.ProjectDefinition
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to unmarshal definition: %w", err)
		}
		return &def, nil
	})
}
