// AngelaMos | 2026
// entity.go

package lead

import (
	"time"
)

// Lead is append-only. ItemName is copied at submission time so the
// record still reads correctly after the herb is deleted.
type Lead struct {
	ID            string    `db:"id"`
	CatalogItemID *string   `db:"catalog_item_id"`
	ItemName      string    `db:"item_name"`
	VisitorName   string    `db:"visitor_name"`
	VisitorEmail  string    `db:"visitor_email"`
	VisitorPhone  string    `db:"visitor_phone"`
	UserID        *string   `db:"user_id"`
	ForwardedTo   string    `db:"forwarded_to"`
	CreatedAt     time.Time `db:"created_at"`
}
