package fits

import (
	"fmt"
	"strings"

	"github.com/astrogo/fitsio"
)

// Card is a single header keyword record.
type Card struct {
	Key     string
	Value   any
	Comment string
}

// Header is an ordered list of header cards.
type Header []Card

func headerFromFITS(h *fitsio.Header) Header {
	if h == nil {
		return nil
	}
	keys := h.Keys()
	out := make(Header, 0, len(keys))
	for _, key := range keys {
		card := h.Get(key)
		if card == nil {
			continue
		}
		out = append(out, Card{Key: card.Name, Value: card.Value, Comment: card.Comment})
	}
	return out
}

// Get returns the value of key, and whether it was present.
func (h Header) Get(key string) (any, bool) {
	for _, c := range h {
		if strings.EqualFold(c.Key, key) {
			return c.Value, true
		}
	}
	return nil, false
}

// String returns the value of key formatted as a trimmed string, or "".
func (h Header) String(key string) string {
	v, ok := h.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

// Map returns the header values keyed by keyword.
func (h Header) Map() map[string]any {
	out := make(map[string]any, len(h))
	for _, c := range h {
		out[c.Key] = c.Value
	}
	return out
}
