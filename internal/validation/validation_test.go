package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	// 254 chars total: 64 local + @ + 185 domain label + ".com" (4)
	emailAt254 := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 185) + ".com"
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "test@example.com", false},
		{"Plus Tag", "maya.patel+dev@proton.me", false},
		{"Exactly 254 Characters", emailAt254, false},
		{"Too Long", "a" + emailAt254, true},
		{"Invalid Format", "not-an-email", true},
		{"Missing Domain", "user@", true},
		{"Multiple At Symbols", "user@@example.com", true},
		{"Space In Local Part", "user @example.com", true},
		{"Trailing Dot In Domain", "user@example.com.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"Https", "https://devpost.com/hackathons", false},
		{"Http With Port", "http://localhost:3000/demo", false},
		{"Surrounding Space", "  https://example.com  ", false},
		{"No Scheme", "example.com", true},
		{"Javascript", "javascript:alert(1)", true},
		{"Ftp", "ftp://files.example.com", true},
		{"Too Long", "https://example.com/" + strings.Repeat("a", 2048), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL("websiteUrl", tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOptionalURL(t *testing.T) {
	t.Parallel()
	blank := "  "
	bad := "not a url"
	assert.NoError(t, ValidateOptionalURL("attachmentUrl", nil))
	assert.NoError(t, ValidateOptionalURL("attachmentUrl", &blank))
	err := ValidateOptionalURL("attachmentUrl", &bad)
	assert.EqualError(t, err, "attachmentUrl must be a valid URL")
}
