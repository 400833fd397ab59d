// Package slug builds and parses the public identifiers people use to reach
// their statements: "<first-name>_<token>".
package slug

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Alphabet is the base62 character set magic tokens are drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultLength is the number of characters in a magic token.
const DefaultLength = 8

// Separator joins the first-name slug and the token.
const Separator = "_"

// FirstName derives the first-name slug from a contact string: first
// whitespace-separated token, diacritics stripped, lowercased, with every run
// of characters outside [a-z0-9] collapsed to a single hyphen and no hyphen
// at either end. Blank input yields "".
func FirstName(contact string) string {
	fields := strings.Fields(contact)
	if len(fields) == 0 {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, fields[0])
	if err != nil {
		stripped = fields[0]
	}
	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	pendingHyphen := false
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// MagicToken reads length bytes from src and maps each one onto Alphabet.
// The modulo mapping is slightly biased towards the first characters of the
// alphabet.
func MagicToken(src io.Reader, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("magic token length must be positive, got %d", length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, v := range buf {
		buf[i] = Alphabet[int(v)%len(Alphabet)]
	}
	return string(buf), nil
}

// IsToken reports whether s is a well-formed token of DefaultLength characters.
func IsToken(s string) bool {
	if len(s) != DefaultLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

// Join builds the public slug for a first-name slug and token.
func Join(firstName, token string) string {
	return firstName + Separator + token
}

// Parse splits a public slug on its last separator. It reports ok=false when
// the first-name part is empty or the token is not a well-formed token.
func Parse(s string) (firstName, token string, ok bool) {
	i := strings.LastIndex(s, Separator)
	if i <= 0 {
		return "", "", false
	}
	firstName, token = s[:i], s[i+len(Separator):]
	if !IsToken(token) {
		return "", "", false
	}
	return firstName, token, true
}

// ---------------------------------------------------------------------------
// Generator
// ---------------------------------------------------------------------------

// Generator produces magic tokens from an injected random source.
type Generator struct {
	src    io.Reader
	length int
}

// NewGenerator returns a Generator reading from src. A nil src uses
// crypto/rand.Reader.
func NewGenerator(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{src: src, length: DefaultLength}
}

// Token returns a new magic token.
func (g *Generator) Token() (string, error) {
	return MagicToken(g.src, g.length)
}
