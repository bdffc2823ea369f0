// AngelaMos | 2026
// dto.go

package lead

import (
	"time"
)

type SubmitRequest struct {
	Name          string `json:"name"          validate:"required,max=100"`
	Email         string `json:"email"         validate:"required,email,max=255"`
	Phone         string `json:"phone"         validate:"required,max=32"`
	CatalogItemID string `json:"catalogItemId" validate:"max=64"`
	ItemName      string `json:"itemName"      validate:"max=200"`
}

type SubmitResponse struct {
	DeepLink string `json:"deepLink"`
	LeadID   string `json:"leadId"`
}

type ListParams struct {
	Page     int
	PageSize int
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type LeadResponse struct {
	ID            string    `json:"id"`
	CatalogItemID *string   `json:"catalogItemId"`
	ItemName      string    `json:"itemName"`
	VisitorName   string    `json:"visitorName"`
	VisitorEmail  string    `json:"visitorEmail"`
	VisitorPhone  string    `json:"visitorPhone"`
	UserID        *string   `json:"userId"`
	ForwardedTo   string    `json:"forwardedTo"`
	CreatedAt     time.Time `json:"createdAt"`
}

func ToLeadResponseList(leads []Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, LeadResponse(l))
	}
	return out
}
