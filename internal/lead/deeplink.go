// AngelaMos | 2026
// deeplink.go

package lead

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	whatsAppBase   = "https://wa.me/"
	genericProduct = "your product"
)

// ComposeMessage fills the fixed greeting sent to the seller.
func ComposeMessage(visitorName, itemName, brand, phone string) string {
	if itemName == "" {
		itemName = genericProduct
	}
	return fmt.Sprintf(
		"Hi, I'm %s — I'm interested in %s from %s. My phone: %s",
		visitorName, itemName, brand, phone,
	)
}

// BuildDeepLink returns a wa.me link for number with text prefilled.
// Everything except digits is dropped from number.
func BuildDeepLink(number, text string) string {
	return whatsAppBase + DigitsOnly(number) + "?text=" + encodeComponent(text)
}

func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// componentUnescaper turns QueryEscape output into encodeURIComponent
// output: spaces become %20 and !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
