package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"botics.dev/cli/internal/application/ports"
	"botics.dev/cli/internal/core/install"
	"botics.dev/cli/internal/core/plugin"
	"botics.dev/cli/internal/core/project"
)

// Mock implementations

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Import(ctx context.Context, desc install.Descriptor) error {
	args := m.Called(ctx, desc)
	return args.Error(0)
}

func (m *MockImporter) Remove(ctx context.Context, moduleName string) error {
	args := m.Called(ctx, moduleName)
	return args.Error(0)
}

func (m *MockImporter) Manager() string {
	return "yarn"
}

type exitStatusError struct {
	code int
}

func (e *exitStatusError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e *exitStatusError) ExitCode() int { return e.code }

// memoryProjects keeps the project config in memory and counts saves
type memoryProjects struct {
	configs map[string]*project.Config
	saves   int
	saveErr error
}

func newMemoryProjects() *memoryProjects {
	return &memoryProjects{configs: make(map[string]*project.Config)}
}

func (p *memoryProjects) Load(root string) (*project.Config, error) {
	cfg, ok := p.configs[root]
	if !ok {
		return nil, fmt.Errorf("no config for %s", root)
	}
	return cfg.Clone(), nil
}

func (p *memoryProjects) Save(root string, cfg *project.Config) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves++
	p.configs[root] = cfg.Clone()
	return nil
}

func (p *memoryProjects) Create(root string, cfg *project.Config) error {
	if err := os.MkdirAll(filepath.Dir(project.MarkerPath(root)), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(project.MarkerPath(root), []byte(`{}`), 0644); err != nil {
		return err
	}
	p.configs[root] = cfg.Clone()
	return nil
}

type staticManifests struct {
	generators map[string][]string
	err        error
}

func (m *staticManifests) ReadGenerators(modulePath string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.generators[filepath.Base(modulePath)], nil
}

// fakeUnit is a loaded plugin whose hooks are plain Go functions
type fakeUnit struct {
	hooks  map[plugin.Operation]plugin.Hook
	closed bool
}

func (u *fakeUnit) Hook(op plugin.Operation) (plugin.Hook, bool) {
	h, ok := u.hooks[op]
	return h, ok
}

func (u *fakeUnit) Close() error {
	u.closed = true
	return nil
}

type fakeLoader struct {
	unit    *fakeUnit
	err     error
	entries []string
}

func (l *fakeLoader) Load(ctx context.Context, entryPath string) (plugin.Unit, error) {
	l.entries = append(l.entries, entryPath)
	if l.err != nil {
		return nil, l.err
	}
	return l.unit, nil
}

type scriptedPrompter struct {
	answer    bool
	err       error
	questions []string
}

func (p *scriptedPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	p.questions = append(p.questions, question)
	return p.answer, p.err
}

type recordingReporter struct {
	infos, warnings, successes, failures []string
}

func (r *recordingReporter) Info(message string)    { r.infos = append(r.infos, message) }
func (r *recordingReporter) Warn(message string)    { r.warnings = append(r.warnings, message) }
func (r *recordingReporter) Succeed(message string) { r.successes = append(r.successes, message) }
func (r *recordingReporter) Fail(message string)    { r.failures = append(r.failures, message) }

type noopLogger struct {
	errors []error
}

func (l *noopLogger) Log(level ports.LogLevel, message string, fields map[string]interface{}) {}
func (l *noopLogger) LogError(err error, message string, fields map[string]interface{}) {
	l.errors = append(l.errors, err)
}
func (l *noopLogger) SetLogLevel(level ports.LogLevel) {}
func (l *noopLogger) GetLogLevel() ports.LogLevel      { return ports.LogLevelDebug }

// Test fixtures

type fixture struct {
	root      string
	importer  *MockImporter
	projects  *memoryProjects
	manifests *staticManifests
	loader    *fakeLoader
	prompter  *scriptedPrompter
	reporter  *recordingReporter
	logger    *noopLogger
	hookCalls []plugin.Operation
	hookErr   error
	lastCtx   *plugin.Context
}

func newFixture(t *testing.T, generators map[string]string) *fixture {
	t.Helper()
	f := &fixture{
		root:      t.TempDir(),
		importer:  &MockImporter{},
		projects:  newMemoryProjects(),
		manifests: &staticManifests{generators: map[string][]string{}},
		prompter:  &scriptedPrompter{answer: true},
		reporter:  &recordingReporter{},
		logger:    &noopLogger{},
	}

	cfg := project.NewConfig("1.0.0")
	for k, v := range generators {
		cfg.Generators[k] = v
	}
	require.NoError(t, f.projects.Create(f.root, cfg))

	record := func(op plugin.Operation) plugin.Hook {
		return func(ctx context.Context, pc *plugin.Context) error {
			f.hookCalls = append(f.hookCalls, op)
			f.lastCtx = pc
			return f.hookErr
		}
	}
	f.loader = &fakeLoader{unit: &fakeUnit{hooks: map[plugin.Operation]plugin.Hook{
		plugin.OperationAdd:    record(plugin.OperationAdd),
		plugin.OperationRemove: record(plugin.OperationRemove),
	}}}
	return f
}

// installModule simulates what the package manager leaves behind
func (f *fixture) installModule(t *testing.T, name string, withEntry bool) {
	t.Helper()
	dir := project.ModulePath(f.root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if withEntry {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "plugin.lua"), []byte("return {}"), 0644))
	}
}

func (f *fixture) deps() PluginDependencies {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return PluginDependencies{
		Importer:  f.importer,
		Projects:  f.projects,
		Manifests: f.manifests,
		Lifecycle: NewPluginLifecycle(f.loader, f.logger),
		Prompter:  f.prompter,
		Reporter:  f.reporter,
		Logger:    f.logger,
		Now: func() time.Time {
			clock = clock.Add(1234 * time.Millisecond)
			return clock
		},
	}
}
