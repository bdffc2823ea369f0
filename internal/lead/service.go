// AngelaMos | 2026
// service.go

package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/risingherb/herb-api/internal/catalog"
	"github.com/risingherb/herb-api/internal/core"
	"github.com/risingherb/herb-api/internal/middleware"
)

type ItemLookup interface {
	GetByID(ctx context.Context, id string) (*catalog.Item, error)
}

type Config struct {
	DefaultNumber string
	Brand         string
}

type Service struct {
	repo      Repository
	items     ItemLookup
	cfg       Config
	validator *validator.Validate
	logger    *slog.Logger
}

func NewService(
	repo Repository,
	items ItemLookup,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		items:     items,
		cfg:       cfg,
		validator: core.NewValidator(),
		logger:    logger,
	}
}

// Submit records a lead and returns the link that opens the chat. A bad
// or stale catalogItemId never blocks the submission; it only costs the
// lead its item name and item-specific number.
func (s *Service) Submit(
	ctx context.Context,
	req SubmitRequest,
	identity *middleware.Identity,
) (*SubmitResponse, error) {
	ctx, span := core.StartSpan(ctx, "lead.submit")
	defer span.End()

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.CatalogItemID = strings.TrimSpace(req.CatalogItemID)
	req.ItemName = strings.TrimSpace(req.ItemName)

	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	item := s.resolveItem(ctx, req.CatalogItemID)

	target := s.cfg.DefaultNumber
	itemName := req.ItemName
	var itemID *string
	if item != nil {
		itemID = &item.ID
		itemName = item.Name
		if item.WhatsAppNumber != "" {
			target = item.WhatsAppNumber
		}
	}

	lead := &Lead{
		ID:            uuid.New().String(),
		CatalogItemID: itemID,
		ItemName:      itemName,
		VisitorName:   req.Name,
		VisitorEmail:  req.Email,
		VisitorPhone:  req.Phone,
		ForwardedTo:   target,
	}
	if identity != nil && identity.SubjectID != "" {
		subject := identity.SubjectID
		lead.UserID = &subject
	}

	if err := s.create(ctx, lead); err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("record lead: %w", err)
	}

	span.SetAttributes(
		attribute.String("lead.id", lead.ID),
		attribute.Bool("lead.item_resolved", item != nil),
	)

	text := ComposeMessage(req.Name, itemName, s.cfg.Brand, req.Phone)

	return &SubmitResponse{
		DeepLink: BuildDeepLink(target, text),
		LeadID:   lead.ID,
	}, nil
}

// create retries once without the item reference when the item was
// deleted after it was resolved. The item name is already on the row.
func (s *Service) create(ctx context.Context, lead *Lead) error {
	err := s.repo.Create(ctx, lead)
	if err == nil || lead.CatalogItemID == nil || !errors.Is(err, ErrItemGone) {
		return err
	}

	s.logger.WarnContext(ctx, "lead item deleted during submit",
		"catalog_item_id", *lead.CatalogItemID,
	)
	lead.CatalogItemID = nil
	return s.repo.Create(ctx, lead)
}

func (s *Service) resolveItem(ctx context.Context, id string) *catalog.Item {
	if id == "" {
		return nil
	}

	if _, err := uuid.Parse(id); err != nil {
		s.logger.DebugContext(ctx, "lead references malformed item id",
			"catalog_item_id", id,
		)
		return nil
	}

	item, err := s.items.GetByID(ctx, id)
	switch {
	case err == nil:
		return item
	case errors.Is(err, core.ErrNotFound):
		s.logger.DebugContext(ctx, "lead references unknown item",
			"catalog_item_id", id,
		)
	default:
		s.logger.WarnContext(ctx, "item lookup failed, recording lead without item",
			"catalog_item_id", id,
			"error", err,
		)
	}
	return nil
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]Lead, int, error) {
	return s.repo.List(ctx, params)
}
