package gocommand

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-command"
	connectors "github.com/goliatone/go-connectors"
	"github.com/goliatone/go-connectors/catalog"
	connectorscommand "github.com/goliatone/go-connectors/command"
	connectorsquery "github.com/goliatone/go-connectors/query"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
)

type okMessage struct{}

func (okMessage) Type() string { return "connectors.command.ok" }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "" }

type failingMessage struct{}

func (failingMessage) Type() string { return "connectors.command.fail" }

func (failingMessage) Validate() error { return errors.New("invalid payload") }

type dispatchMessage struct {
	ID string
}

func (dispatchMessage) Type() string { return "connectors.command.test" }

type queueMessage struct{}

func (queueMessage) Type() string { return "connectors.command.queue" }

func TestValidateMessageContract(t *testing.T) {
	if err := ValidateMessageContract(okMessage{}); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
	if err := ValidateMessageContract(invalidMessage{}); err == nil {
		t.Fatalf("expected empty type to fail contract validation")
	}
	if err := ValidateMessageContract(failingMessage{}); err == nil {
		t.Fatalf("expected Validate() failure to bubble")
	}
}

func TestRegistryAndDispatchWiring(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	executed := 0
	customResolverCalled := 0

	cmd := command.CommandFunc[dispatchMessage](func(context.Context, dispatchMessage) error {
		executed++
		return nil
	})

	if _, err := RegisterAndSubscribe(adapter, cmd); err != nil {
		t.Fatalf("register and subscribe: %v", err)
	}
	if err := adapter.AddResolver("custom", func(any, command.CommandMeta, *command.Registry) error {
		customResolverCalled++
		return nil
	}); err != nil {
		t.Fatalf("add resolver: %v", err)
	}
	if !adapter.HasResolver("custom") {
		t.Fatalf("expected custom resolver to be registered")
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}
	if customResolverCalled == 0 {
		t.Fatalf("expected resolver hook to run during initialization")
	}

	if err := Dispatch(context.Background(), dispatchMessage{ID: "m1"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if executed != 1 {
		t.Fatalf("expected command execution count=1, got %d", executed)
	}
}

func TestQueueResolverHookWiring(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	queueRegistry := jobqueuecommand.NewRegistry()

	cmd := command.CommandFunc[queueMessage](func(context.Context, queueMessage) error { return nil })

	if err := adapter.AddQueueResolver("queue", queueRegistry); err != nil {
		t.Fatalf("add queue resolver: %v", err)
	}
	if err := adapter.RegisterCommand(cmd); err != nil {
		t.Fatalf("register command: %v", err)
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}

	if _, ok := queueRegistry.Get("connectors.command.queue"); !ok {
		t.Fatalf("expected command to be mirrored into queue registry")
	}
}

func TestRegisterFacade_DispatchesConnectorQueries(t *testing.T) {
	repo := connectors.NewMemoryConfigRepository()
	if err := repo.PutDefinition(connectors.ConnectorDefinition{ID: "def_1", Kind: connectors.ConnectorKindSource}); err != nil {
		t.Fatalf("put definition: %v", err)
	}
	if err := repo.AddParameterSet(connectors.CredentialParameterSet{
		DefinitionID:  "def_1",
		Kind:          connectors.ConnectorKindSource,
		Configuration: map[string]any{"client_id": "cid"},
	}); err != nil {
		t.Fatalf("add parameter set: %v", err)
	}
	svc, err := connectors.NewService(connectors.DefaultConfig(), connectors.WithConfigRepository(repo))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	facade, err := connectors.NewFacade(svc)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	adapter := NewRegistryAdapter(command.NewRegistry())
	queueRegistry := jobqueuecommand.NewRegistry()
	if err := adapter.AddQueueResolver("queue", queueRegistry); err != nil {
		t.Fatalf("add queue resolver: %v", err)
	}
	subscriptions, err := RegisterFacade(adapter, facade)
	if err != nil {
		t.Fatalf("register facade: %v", err)
	}
	defer subscriptions.Unsubscribe()
	if len(subscriptions) != 6 {
		t.Fatalf("expected six subscriptions, got %d", len(subscriptions))
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}
	if _, ok := queueRegistry.Get(connectorscommand.TypeCompleteOAuth); !ok {
		t.Fatalf("expected oauth completion command to be mirrored into queue registry")
	}
	for _, queryType := range []string{
		connectorsquery.TypeInjectParameters,
		connectorsquery.TypeBuildCatalog,
		connectorsquery.TypeBuildCatalogFromConfigured,
		connectorsquery.TypeBuildConfiguredCatalog,
		connectorsquery.TypeGetConsentURL,
	} {
		if _, ok := queueRegistry.Get(queryType); ok {
			t.Fatalf("expected query %s to stay out of the queue registry", queryType)
		}
	}

	result, err := Query[connectorsquery.InjectParametersMessage, connectors.InjectResult](context.Background(), connectorsquery.InjectParametersMessage{
		Request: connectors.InjectRequest{
			Kind:         connectors.ConnectorKindSource,
			DefinitionID: "def_1",
			WorkspaceID:  "ws_1",
			Config:       map[string]any{},
		},
	})
	if err != nil {
		t.Fatalf("dispatch inject query: %v", err)
	}
	if result.Config["client_id"] != "cid" {
		t.Fatalf("unexpected injected config %#v", result.Config)
	}

	apiCatalog, err := Query[connectorsquery.BuildCatalogMessage, catalog.APICatalog](context.Background(), connectorsquery.BuildCatalogMessage{
		Catalog: catalog.Catalog{Streams: []catalog.Stream{{Name: "orders"}}},
	})
	if err != nil {
		t.Fatalf("dispatch build catalog query: %v", err)
	}
	if len(apiCatalog.Streams) != 1 || apiCatalog.Streams[0].Config.AliasName != "orders" {
		t.Fatalf("unexpected api catalog %#v", apiCatalog)
	}
}

type lookupMessage struct{}

func (lookupMessage) Type() string { return "connectors.query.lookup" }

func TestRegisterQuery_SkipsPureQueriers(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	queueRegistry := jobqueuecommand.NewRegistry()
	if err := adapter.AddQueueResolver("queue", queueRegistry); err != nil {
		t.Fatalf("add queue resolver: %v", err)
	}

	qry := command.QueryFunc[lookupMessage, string](func(context.Context, lookupMessage) (string, error) {
		return "found", nil
	})
	if err := adapter.RegisterQuery(qry); err != nil {
		t.Fatalf("register query: %v", err)
	}
	subscription, err := RegisterAndSubscribeQuery[lookupMessage, string](adapter, qry)
	if err != nil {
		t.Fatalf("register and subscribe query: %v", err)
	}
	defer subscription.Unsubscribe()

	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry with queue resolver: %v", err)
	}
	if _, ok := queueRegistry.Get("connectors.query.lookup"); ok {
		t.Fatalf("expected query to stay out of the queue registry")
	}
	got, err := Query[lookupMessage, string](context.Background(), lookupMessage{})
	if err != nil {
		t.Fatalf("dispatch query: %v", err)
	}
	if got != "found" {
		t.Fatalf("unexpected query result %q", got)
	}
}

func TestRegisterFacade_RequiresFacade(t *testing.T) {
	if _, err := RegisterFacade(NewRegistryAdapter(nil), nil); err == nil {
		t.Fatalf("expected nil facade error")
	}
}
