// AngelaMos | 2026
// validator.go

package catalog

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/risingherb/herb-api/internal/core"
)

type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := core.NewValidator()

	//nolint:errcheck // static tag names, registration cannot fail
	_ = v.RegisterValidation("herb_category", func(fl validator.FieldLevel) bool {
		return IsCategory(fl.Field().String())
	})
	//nolint:errcheck // static tag names, registration cannot fail
	_ = v.RegisterValidation("abs_uri", func(fl validator.FieldLevel) bool {
		return isAbsoluteURI(fl.Field().String())
	})

	return &Validator{v: v}
}

// Validate trims the name, checks the payload and fills in defaults. The
// image URL is checked and stored exactly as sent. The returned error is
// a 400-class *core.AppError.
func (val *Validator) Validate(req ItemRequest) (*ItemInput, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Unit = strings.TrimSpace(req.Unit)
	req.WhatsAppNumber = strings.TrimSpace(req.WhatsAppNumber)

	if err := val.v.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	in := &ItemInput{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		MinPrice:       float64(*req.MinPrice),
		MaxPrice:       float64(*req.MaxPrice),
		Unit:           req.Unit,
		ImageURL:       req.ImageURL,
		WhatsAppNumber: req.WhatsAppNumber,
	}
	if in.Unit == "" {
		in.Unit = DefaultUnit
	}

	return in, nil
}

func isAbsoluteURI(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

// NormalizeImageURL returns stored image references untouched. Absolute
// http(s) URLs come back byte-identical and nothing is ever prefixed with
// a local path.
func NormalizeImageURL(raw string) string {
	return raw
}
