package player

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sigil is the symbol prefixing every canonical player tag.
const Sigil = "#"

// Tags come from the upstream game and use a restricted uppercase alphabet.
var tagBodyPattern = regexp.MustCompile(`^[0-9A-Z]{3,14}$`)

// Player is a registered user of the tracker, linked to an in-game tag.
type Player struct {
	ID        int64
	Username  string
	Tag       string
	CreatedAt time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("player username is required")
	}
	if _, err := NormalizeTag(p.Tag); err != nil {
		return err
	}
	return nil
}

// NormalizeTag canonicalizes a raw tag: trims whitespace, strips an optional
// leading sigil, uppercases the body and re-applies the sigil. "abc123" and
// "#ABC123" normalize to the same value.
func NormalizeTag(raw string) (string, error) {
	body := strings.ToUpper(strings.TrimSpace(raw))
	body = strings.TrimPrefix(body, Sigil)
	if body == "" {
		return "", fmt.Errorf("player tag is required")
	}
	if !tagBodyPattern.MatchString(body) {
		return "", fmt.Errorf("invalid player tag %q", raw)
	}
	return Sigil + body, nil
}
