package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type TrackingEvent struct {
	ID          string
	WorkspaceID string
	Event       string
	Properties  map[string]any
	CreatedAt   time.Time
}

// TrackingEventStore persists usage events into tracking_events.
type TrackingEventStore struct {
	db   *bun.DB
	repo repository.Repository[*trackingEventRecord]
}

func NewTrackingEventStore(db *bun.DB) (*TrackingEventStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*trackingEventRecord](db, trackingEventHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid tracking event repository wiring: %w", err)
		}
	}
	return &TrackingEventStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *TrackingEventStore) Track(ctx context.Context, workspaceID string, event string, properties map[string]any) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: tracking event store is not configured")
	}
	workspaceID = strings.TrimSpace(workspaceID)
	event = strings.TrimSpace(event)
	if workspaceID == "" {
		return fmt.Errorf("sqlstore: workspace id is required")
	}
	if event == "" {
		return fmt.Errorf("sqlstore: tracking event name is required")
	}
	record := &trackingEventRecord{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Event:       event,
		Properties:  RedactProperties(properties),
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.repo.Create(ctx, record)
	return err
}

// ListByWorkspace returns a workspace's events, oldest first.
func (s *TrackingEventStore) ListByWorkspace(ctx context.Context, workspaceID string) ([]TrackingEvent, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: tracking event store is not configured")
	}
	records := make([]trackingEventRecord, 0)
	if err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.workspace_id = ?", strings.TrimSpace(workspaceID)).
		OrderExpr("?TableAlias.created_at ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]TrackingEvent, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}
