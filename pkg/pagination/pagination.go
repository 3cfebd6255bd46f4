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
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 100

	cursorPrefix = "off"
)

// Params holds cursor pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor represents the position of the next page inside an ordered listing.
type Cursor struct {
	Offset int
}

// Page describes the slice boundaries for one page of results.
type Page struct {
	Start      int
	End        int
	NextCursor string
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

// EncodeCursor builds an opaque cursor string from the provided values.
func EncodeCursor(cursor Cursor) string {
	payload := fmt.Sprintf("%s|%d", cursorPrefix, cursor.Offset)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes the cursor string back into its components.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 || parts[0] != cursorPrefix {
		return nil, fmt.Errorf("invalid cursor format")
	}

	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return nil, fmt.Errorf("invalid cursor offset %q", parts[1])
	}
	return &Cursor{Offset: offset}, nil
}

// Slice resolves the page boundaries for a listing of total rows.
func Slice(total int, params Params) (Page, error) {
	cursor, err := ParseCursor(params.Cursor)
	if err != nil {
		return Page{}, err
	}
	start := 0
	if cursor != nil {
		start = cursor.Offset
	}
	if start > total {
		start = total
	}
	end := start + NormalizeLimit(params.Limit)
	if end > total {
		end = total
	}

	page := Page{Start: start, End: end}
	if end < total {
		page.NextCursor = EncodeCursor(Cursor{Offset: end})
	}
	return page, nil
}
