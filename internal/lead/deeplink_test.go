// AngelaMos | 2026
// deeplink_test.go

package lead

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDeepLink(t *testing.T) {
	text := ComposeMessage("Asha", "Tulsi", "Rising-Herb", "9990001111")
	link := BuildDeepLink("+91 99900 00002", text)

	require.True(t, strings.HasPrefix(link, "https://wa.me/919990000002?text="), link)
	assert.NotContains(t, link, "+")
	assert.NotContains(t, link, " ")

	u, err := url.Parse(link)
	require.NoError(t, err)
	decoded := u.Query().Get("text")
	assert.Contains(t, decoded, "Asha")
	assert.Contains(t, decoded, "Tulsi")
	assert.Contains(t, decoded, "9990001111")
	assert.Equal(t, text, decoded)
}

func TestComposeMessageFallsBackToGenericProduct(t *testing.T) {
	text := ComposeMessage("Ravi", "", "Rising-Herb", "1")
	assert.Contains(t, text, "interested in your product from Rising-Herb")
}

func TestDigitsOnly(t *testing.T) {
	tests := map[string]string{
		"+91 99900 00002": "919990000002",
		"(020) 555-0100":  "0205550100",
		"919990000002":    "919990000002",
		"":                "",
		"whatsapp me":     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, DigitsOnly(in), in)
	}
}

func TestEncodeComponentMatchesURIComponent(t *testing.T) {
	tests := map[string]string{
		"Hi, I'm Asha":      "Hi%2C%20I'm%20Asha",
		"Tulsi (fresh)!*":   "Tulsi%20(fresh)!*",
		"a+b=c&d":           "a%2Bb%3Dc%26d",
		"100% pure":         "100%25%20pure",
		"literal %21 stays": "literal%20%2521%20stays",
		"Asha \u2014 Tulsi": "Asha%20%E2%80%94%20Tulsi",
		"safe-_.~":          "safe-_.~",
	}
	for in, want := range tests {
		assert.Equal(t, want, encodeComponent(in), in)
	}
}
