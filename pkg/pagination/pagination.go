package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 24
	// MaxLimit caps how many items one page can hold.
	MaxLimit = 100

	cursorPrefix = "o:"
)

// Params holds cursor pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the position of the first item of a page.
type Cursor struct {
	Offset int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor string.
func EncodeCursor(cursor Cursor) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(cursor.Offset)))
}

// ParseCursor decodes the cursor string. An empty value is the first page.
func ParseCursor(value string) (Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return Cursor{}, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode cursor: %w", err)
	}
	raw, ok := strings.CutPrefix(string(decoded), cursorPrefix)
	if !ok {
		return Cursor{}, fmt.Errorf("invalid cursor format")
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return Cursor{}, fmt.Errorf("invalid cursor offset %q", raw)
	}
	return Cursor{Offset: offset}, nil
}

// Window returns the [start, end) bounds of the page over total items and
// the cursor of the following page, empty on the last one.
func Window(total int, params Params) (start, end int, next string, err error) {
	cursor, err := ParseCursor(params.Cursor)
	if err != nil {
		return 0, 0, "", err
	}
	limit := NormalizeLimit(params.Limit)

	start = min(cursor.Offset, total)
	end = min(start+limit, total)
	if end < total {
		next = EncodeCursor(Cursor{Offset: end})
	}
	return start, end, next, nil
}
