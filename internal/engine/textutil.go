package engine

import (
	"github.com/anatolykoptev/go-kit/strutil"
)

// UserAgent identifies outbound requests made by the portfolio service.
const UserAgent = "GoPortfolio/1.0"

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
