package cssgen

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA renders a hex colour and an opacity in [0,1] as an rgba() value.
// Malformed hex input renders as black.
func RGBA(hex string, opacity float64) string {
	r, g, b := decodeHex(hex)
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, opacity)
}

func decodeHex(hex string) (uint8, uint8, uint8) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	color, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return 0, 0, 0
	}

	return color.RGB255()
}
