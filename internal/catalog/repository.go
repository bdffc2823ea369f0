// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/risingherb/herb-api/internal/core"
)

type Repository interface {
	List(ctx context.Context, params ListParams) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
}

// Transactor runs fn against a Repository bound to one transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(repo Repository) error) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

type txRunner struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &txRunner{db: db}
}

func (t *txRunner) InTx(
	ctx context.Context,
	fn func(repo Repository) error,
) error {
	return core.InTx(ctx, t.db, func(tx *sqlx.Tx) error {
		return fn(NewRepository(tx))
	})
}

const itemColumns = `id, name, description, category, min_price, max_price,
	unit, image_url, whatsapp_number, created_at, updated_at`

var orderBy = map[string]string{
	SortNewest:    "created_at DESC",
	SortPriceAsc:  "min_price ASC, created_at DESC",
	SortPriceDesc: "max_price DESC, created_at DESC",
	SortName:      "LOWER(name) ASC",
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Item, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	if params.Query != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(params.Query)+"%")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM herbs
		WHERE %s
		ORDER BY %s`,
		itemColumns,
		strings.Join(conditions, " AND "),
		orderBy[params.Sort])

	items := []Item{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list herbs: %w", err)
	}

	return items, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM herbs WHERE id = $1`

	var item Item
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get herb: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get herb: %w", err)
	}

	return &item, nil
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO herbs (id, name, description, category, min_price,
			max_price, unit, image_url, whatsapp_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, item, query,
		item.ID,
		item.Name,
		item.Description,
		item.Category,
		item.MinPrice,
		item.MaxPrice,
		item.Unit,
		item.ImageURL,
		item.WhatsAppNumber,
	)
	if err != nil {
		return fmt.Errorf("create herb: %w", err)
	}

	return nil
}

// Update overwrites every writable field and bumps updated_at.
func (r *repository) Update(ctx context.Context, item *Item) error {
	query := `
		UPDATE herbs
		SET name = $2, description = $3, category = $4, min_price = $5,
			max_price = $6, unit = $7, image_url = $8, whatsapp_number = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, item, query,
		item.ID,
		item.Name,
		item.Description,
		item.Category,
		item.MinPrice,
		item.MaxPrice,
		item.Unit,
		item.ImageURL,
		item.WhatsAppNumber,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update herb: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update herb: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM herbs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete herb: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete herb: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete herb: %w", core.ErrNotFound)
	}

	return nil
}
