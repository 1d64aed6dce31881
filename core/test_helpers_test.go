package core

import (
	"context"
	"errors"
	"sync"
	"testing"
)

const (
	testSourceDefinitionID      = "9f1c6c1e-4f55-4d2b-9b0c-0b4d4c2b4a10"
	testDestinationDefinitionID = "0c2e1b8e-7a0b-4a57-8d2a-5a7a6f0f7c21"
	testWorkspaceID             = "b7a3f3a2-58a5-4b0e-9d6d-71f1c2e1d9aa"
)

type trackedEvent struct {
	workspaceID string
	event       string
	properties  map[string]any
}

type captureTracker struct {
	mu     sync.Mutex
	events []trackedEvent
	err    error
}

func (t *captureTracker) Track(_ context.Context, workspaceID string, event string, properties map[string]any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, trackedEvent{
		workspaceID: workspaceID,
		event:       event,
		properties:  cloneFields(properties),
	})
	return t.err
}

func (t *captureTracker) snapshot() []trackedEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]trackedEvent, len(t.events))
	copy(out, t.events)
	return out
}

type failingLister struct {
	err error
}

func (l failingLister) ListCredentialParameterSets(context.Context, ConnectorKind) ([]CredentialParameterSet, error) {
	return nil, l.err
}

type failingLookup struct {
	err error
}

func (l failingLookup) GetConnectorDefinition(context.Context, ConnectorKind, string) (ConnectorDefinition, error) {
	return ConnectorDefinition{}, l.err
}

var errLookupIO = errors.New("connection reset by peer")

func newTestRepository(t *testing.T) *MemoryConfigRepository {
	t.Helper()
	repo := NewMemoryConfigRepository()
	if err := repo.PutDefinition(ConnectorDefinition{
		ID:             testSourceDefinitionID,
		Kind:           ConnectorKindSource,
		Name:           "test",
		DockerImageTag: "dev",
	}); err != nil {
		t.Fatalf("put source definition: %v", err)
	}
	if err := repo.PutDefinition(ConnectorDefinition{
		ID:             testDestinationDefinitionID,
		Kind:           ConnectorKindDestination,
		Name:           "warehouse",
		DockerImageTag: "0.3.1",
	}); err != nil {
		t.Fatalf("put destination definition: %v", err)
	}
	return repo
}

func addParameterSet(t *testing.T, repo *MemoryConfigRepository, set CredentialParameterSet) {
	t.Helper()
	if err := repo.AddParameterSet(set); err != nil {
		t.Fatalf("add parameter set: %v", err)
	}
}

func newTestService(t *testing.T, cfg Config, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService(cfg, opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testUserConfig() map[string]any {
	return map[string]any{
		"apiSecret": "123",
		"client":    "testing",
		"nested":    map[string]any{"region": "us-east-1"},
	}
}

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

type mapRawLoader struct {
	values map[string]any
}

func (l mapRawLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.values))
	for key, value := range l.values {
		out[key] = value
	}
	return out, nil
}

type stubOAuthFlow struct {
	consentURL string
	params     map[string]any
	calls      []string
}

func (f *stubOAuthFlow) GetSourceConsentURL(_ context.Context, workspaceID, definitionID, redirectURL string) (string, error) {
	f.calls = append(f.calls, "source_consent")
	return f.consentURL + "?workspace=" + workspaceID + "&definition=" + definitionID + "&redirect=" + redirectURL, nil
}

func (f *stubOAuthFlow) GetDestinationConsentURL(_ context.Context, workspaceID, definitionID, redirectURL string) (string, error) {
	f.calls = append(f.calls, "destination_consent")
	return f.consentURL + "?workspace=" + workspaceID + "&definition=" + definitionID + "&redirect=" + redirectURL, nil
}

func (f *stubOAuthFlow) CompleteSourceOAuth(context.Context, string, string, map[string]any, string) (map[string]any, error) {
	f.calls = append(f.calls, "source_complete")
	return f.params, nil
}

func (f *stubOAuthFlow) CompleteDestinationOAuth(context.Context, string, string, map[string]any, string) (map[string]any, error) {
	f.calls = append(f.calls, "destination_complete")
	return f.params, nil
}
