// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/risingherb/herb-api/internal/core"
)

var ErrInvalidID = errors.New("invalid herb id")

type Service struct {
	repo      Repository
	tx        Transactor
	validator *Validator
	logger    *slog.Logger
}

func NewService(
	repo Repository,
	tx Transactor,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		tx:        tx,
		validator: NewValidator(),
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Item, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req ItemRequest) (*Item, error) {
	ctx, span := core.StartSpan(ctx, "catalog.create")
	defer span.End()

	in, err := s.validator.Validate(req)
	if err != nil {
		return nil, err
	}

	item := &Item{ID: uuid.New().String()}
	item.apply(*in)

	if err := s.repo.Create(ctx, item); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("herb.id", item.ID))
	return item, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req ItemRequest,
) (*Item, error) {
	ctx, span := core.StartSpan(ctx, "catalog.update",
		attribute.String("herb.id", id))
	defer span.End()

	if err := checkID(id); err != nil {
		return nil, err
	}

	in, err := s.validator.Validate(req)
	if err != nil {
		return nil, err
	}

	item := &Item{ID: id}
	item.apply(*in)

	if err := s.repo.Update(ctx, item); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			core.SetSpanError(ctx, err)
		}
		return nil, err
	}

	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Import validates every spreadsheet row and inserts the valid ones in a
// single transaction. Invalid rows are reported back, not fatal.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	ctx, span := core.StartSpan(ctx, "catalog.import")
	defer span.End()

	rows, err := ReadSheet(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []RowError{}}
	items := make([]*Item, 0, len(rows))

	for _, row := range rows {
		if row.Err != nil {
			result.Errors = append(result.Errors, RowError{Row: row.Line, Message: row.Err.Error()})
			continue
		}

		in, err := s.validator.Validate(row.Request)
		if err != nil {
			var appErr *core.AppError
			msg := err.Error()
			if errors.As(err, &appErr) {
				msg = appErr.Message
			}
			result.Errors = append(result.Errors, RowError{Row: row.Line, Message: msg})
			continue
		}

		item := &Item{ID: uuid.New().String()}
		item.apply(*in)
		items = append(items, item)
	}

	result.Failed = len(result.Errors)
	span.SetAttributes(
		attribute.Int("import.rows", len(rows)),
		attribute.Int("import.failed", result.Failed),
	)

	if len(items) == 0 {
		return result, nil
	}

	err = s.tx.InTx(ctx, func(repo Repository) error {
		for _, item := range items {
			if err := repo.Create(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("import herbs: %w", err)
	}

	result.Imported = len(items)
	s.logger.InfoContext(ctx, "herbs imported",
		"imported", result.Imported,
		"failed", result.Failed,
	)

	return result, nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
