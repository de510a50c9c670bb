package services

import (
	"context"
	"fmt"

	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/entities"
)

type crudOptions struct {
	slugify  func(string) string
	recorder Recorder
}

type Option func(*crudOptions)

// WithSlug derives missing slugs with fn. Only entities implementing
// entities.Slugged (and patches implementing entities.SluggedPatch) are affected.
func WithSlug(fn func(string) string) Option {
	return func(o *crudOptions) { o.slugify = fn }
}

// WithRecorder sends an audit event for every successful mutation.
func WithRecorder(r Recorder) Option {
	return func(o *crudOptions) { o.recorder = r }
}

// CRUD is the generic service wrapped around a Store. It adds slug
// derivation and existence-gated update/delete: when the row does not exist
// the store mutation is never invoked and a *NotFoundError is returned.
//
// Check and mutation are two separate round trips. A concurrent delete
// between them surfaces as not found from Update and Delete.
type CRUD[T any, P entities.Patch] struct {
	store  Store[T]
	entity string
	opts   crudOptions
}

// NewCRUD creates a service for one entity type. entity is the lowercase
// name used in errors and audit events, e.g. "category".
func NewCRUD[T any, P entities.Patch](store Store[T], entity string, opts ...Option) *CRUD[T, P] {
	s := &CRUD[T, P]{store: store, entity: entity}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Entity returns the entity name the service was created with.
func (s *CRUD[T, P]) Entity() string {
	return s.entity
}

func (s *CRUD[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	entity, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.entity, err)
	}
	if entity == nil {
		return nil, NotFound(s.entity)
	}
	return entity, nil
}

func (s *CRUD[T, P]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	entity, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get %s by slug: %w", s.entity, err)
	}
	if entity == nil {
		return nil, NotFound(s.entity)
	}
	return entity, nil
}

// List returns every row matching q; the zero Query returns all rows.
func (s *CRUD[T, P]) List(ctx context.Context, q crud.Query) ([]T, error) {
	items, err := s.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.entity, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create fills in a missing slug and inserts the entity. A slug collision is
// not retried; the unique index rejects it and the error is returned as is.
func (s *CRUD[T, P]) Create(ctx context.Context, entity *T) (*T, error) {
	s.deriveSlug(entity)

	if err := s.store.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.entity, err)
	}

	s.record(ctx, entities.AuditEventCreate, entity, "Created")
	return entity, nil
}

// Update applies patch to row id. When the patch renames the entity without
// giving a slug, the slug is derived from the new title.
func (s *CRUD[T, P]) Update(ctx context.Context, id uint, patch P) (*T, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.derivePatchSlug(existing, patch)

	columns := patch.Columns()
	if len(columns) == 0 {
		return existing, nil
	}

	updated, err := s.store.Update(ctx, id, columns)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.entity, err)
	}
	if updated == nil {
		return nil, NotFound(s.entity)
	}

	s.record(ctx, entities.AuditEventUpdate, updated, "Updated")
	return updated, nil
}

// Delete physically removes row id.
func (s *CRUD[T, P]) Delete(ctx context.Context, id uint) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.entity, err)
	}
	if !removed {
		return NotFound(s.entity)
	}

	s.record(ctx, entities.AuditEventDelete, existing, "Deleted")
	return nil
}

func (s *CRUD[T, P]) deriveSlug(entity *T) {
	if s.opts.slugify == nil {
		return
	}
	sl, ok := any(entity).(entities.Slugged)
	if !ok || sl.GetSlug() != "" || sl.SlugSource() == "" {
		return
	}
	sl.SetSlug(s.opts.slugify(sl.SlugSource()))
}

func (s *CRUD[T, P]) derivePatchSlug(existing *T, patch P) {
	if s.opts.slugify == nil {
		return
	}
	sp, ok := any(patch).(entities.SluggedPatch)
	if !ok {
		return
	}
	if slug := sp.GetSlug(); slug != nil && *slug != "" {
		return
	}

	switch {
	case sp.SlugSource() != nil && *sp.SlugSource() != "":
		sp.SetSlug(s.opts.slugify(*sp.SlugSource()))
	case sp.GetSlug() != nil:
		// explicit empty slug: regenerate from the stored title
		if sl, ok := any(existing).(entities.Slugged); ok {
			sp.SetSlug(s.opts.slugify(sl.SlugSource()))
		}
	}
}

func (s *CRUD[T, P]) record(ctx context.Context, eventType entities.AuditEventType, entity *T, verb string) {
	if s.opts.recorder == nil {
		return
	}
	var id uint
	if e, ok := any(entity).(entities.Identified); ok {
		id = e.GetID()
	}
	description := fmt.Sprintf("%s %s #%d", verb, s.entity, id)
	if sl, ok := any(entity).(entities.Slugged); ok && sl.SlugSource() != "" {
		description = fmt.Sprintf("%s %s: %s", verb, s.entity, sl.SlugSource())
	}
	s.opts.recorder.LogChange(ctx, eventType, s.entity, id, description)
}
