package news

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DedupKey строит ключ дедупликации: одна и та же новость из разных источников
// дает одинаковый заголовок, дату и место с точностью ~100 м.
func DedupKey(title string, date time.Time, lat, lon float64) string {
	payload := fmt.Sprintf("%s|%s|%.3f,%.3f", normalizeTitle(title), date.UTC().Format("2006-01-02"), lat, lon)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// ArticleID - стабильный id новости по ее url
func ArticleID(url string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(url)))
	return hex.EncodeToString(sum[:16])
}

func normalizeTitle(title string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			space = false
		case !space && b.Len() > 0:
			b.WriteRune(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}
