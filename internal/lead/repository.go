// AngelaMos | 2026
// repository.go

package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/risingherb/herb-api/internal/core"
)

// ErrItemGone means the referenced catalog item was deleted before the
// lead row landed.
var ErrItemGone = errors.New("referenced item no longer exists")

type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, lead *Lead) error {
	query := `
		INSERT INTO leads (id, catalog_item_id, item_name, visitor_name,
			visitor_email, visitor_phone, user_id, forwarded_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &lead.CreatedAt, query,
		lead.ID,
		lead.CatalogItemID,
		lead.ItemName,
		lead.VisitorName,
		lead.VisitorEmail,
		lead.VisitorPhone,
		lead.UserID,
		lead.ForwardedTo,
	)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("create lead: %w", ErrItemGone)
		}
		return fmt.Errorf("create lead: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Lead, int, error) {
	params.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM leads`); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `
		SELECT id, catalog_item_id, item_name, visitor_name, visitor_email,
			visitor_phone, user_id, forwarded_to, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	leads := []Lead{}
	if err := r.db.SelectContext(ctx, &leads, query,
		params.PageSize, params.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	return leads, total, nil
}
