package reporting

import (
	"strings"

	masker "github.com/goliatone/go-masker"
)

const maskRule = "preserveEnds(2,2)"

func init() {
	masker.Default.RegisterMaskField("affected_user", maskRule)
	masker.Default.RegisterMaskField("author", maskRule)
}

// MaskUser hides the middle of a user identifier for safe logging.
func MaskUser(value string) string {
	if value == "" {
		return ""
	}
	if masked, err := masker.Default.String(maskRule, value); err == nil {
		return masked
	}
	runes := []rune(value)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
