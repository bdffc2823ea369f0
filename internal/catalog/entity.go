// AngelaMos | 2026
// entity.go

package catalog

import (
	"time"
)

const (
	CategoryHerbs        = "Herbs"
	CategoryHerbsPowder  = "Herbs Powder"
	CategorySeeds        = "seeds"
	CategoryVermicompost = "vermicompost"

	DefaultUnit = "100 gm"
)

// Categories is the closed set of catalog categories. Matching is exact
// and case-sensitive.
var Categories = []string{
	CategoryHerbs,
	CategoryHerbsPowder,
	CategorySeeds,
	CategoryVermicompost,
}

func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

type Item struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Category       string    `db:"category"`
	MinPrice       float64   `db:"min_price"`
	MaxPrice       float64   `db:"max_price"`
	Unit           string    `db:"unit"`
	ImageURL       string    `db:"image_url"`
	WhatsAppNumber string    `db:"whatsapp_number"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (i *Item) apply(in ItemInput) {
	i.Name = in.Name
	i.Description = in.Description
	i.Category = in.Category
	i.MinPrice = in.MinPrice
	i.MaxPrice = in.MaxPrice
	i.Unit = in.Unit
	i.ImageURL = in.ImageURL
	i.WhatsAppNumber = in.WhatsAppNumber
}
