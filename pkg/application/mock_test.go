package application_test

import (
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
)

type MockRepo struct {
	Def         *burndown.ProjectDefinition
	Initialized bool
	SaveCount   int
	SaveError   error
	LoadError   error
}

func (m *MockRepo) Initialize() error   { m.Initialized = true; return nil }
func (m *MockRepo) IsInitialized() bool { return m.Initialized }

func (m *MockRepo) SaveDefinition(d *burndown.ProjectDefinition) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Def = d
	m.SaveCount++
	return nil
}

func (m *MockRepo) LoadDefinition() (*burndown.ProjectDefinition, error) {
	return m.Def, m.LoadError
}
