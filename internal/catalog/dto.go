// AngelaMos | 2026
// dto.go

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Number accepts a JSON number or a numeric string.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := parseFinite(s)
		if err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// parseFinite rejects the Inf and NaN spellings ParseFloat accepts.
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("price %q is not a number", s)
	}
	return f, nil
}

func NumberPtr(f float64) *Number {
	n := Number(f)
	return &n
}

type ItemRequest struct {
	Name           string  `json:"name"           validate:"required,max=200"`
	Description    string  `json:"description"    validate:"max=5000"`
	Category       string  `json:"category"       validate:"required,herb_category"`
	MinPrice       *Number `json:"minPrice"       validate:"required,gte=0"`
	MaxPrice       *Number `json:"maxPrice"       validate:"required,gte=0"`
	Unit           string  `json:"unit"           validate:"max=50"`
	ImageURL       string  `json:"imageUrl"       validate:"omitempty,max=2048,abs_uri"`
	WhatsAppNumber string  `json:"whatsappNumber" validate:"max=32"`
}

// ItemInput is a validated request with defaults applied.
type ItemInput struct {
	Name           string
	Description    string
	Category       string
	MinPrice       float64
	MaxPrice       float64
	Unit           string
	ImageURL       string
	WhatsAppNumber string
}

type ListParams struct {
	Category string
	Query    string
	Sort     string
}

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

func (p *ListParams) Normalize() {
	p.Query = strings.TrimSpace(p.Query)
	if !IsCategory(p.Category) {
		p.Category = ""
	}
	switch p.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortName:
	default:
		p.Sort = SortNewest
	}
}

type ItemResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	MinPrice       float64   `json:"minPrice"`
	MaxPrice       float64   `json:"maxPrice"`
	Unit           string    `json:"unit"`
	ImageURL       string    `json:"imageUrl"`
	WhatsAppNumber string    `json:"whatsappNumber,omitempty"`
	AdminWhatsApp  string    `json:"adminWhatsapp"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToItemResponse(item *Item, adminWhatsApp string) ItemResponse {
	return ItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Description:    item.Description,
		Category:       item.Category,
		MinPrice:       item.MinPrice,
		MaxPrice:       item.MaxPrice,
		Unit:           item.Unit,
		ImageURL:       NormalizeImageURL(item.ImageURL),
		WhatsAppNumber: item.WhatsAppNumber,
		AdminWhatsApp:  adminWhatsApp,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func ToItemResponseList(items []Item, adminWhatsApp string) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i], adminWhatsApp))
	}
	return responses
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors"`
}
