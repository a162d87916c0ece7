// Package pagination encodes opaque keyset cursors for list endpoints.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit and MaxLimit bound page sizes.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ClampLimit applies the default and maximum page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor creates a token from the sort date and the tie-breaking id of
// the last row of a page.
func EncodeCursor(date time.Time, id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(date.UTC().Format(timeFormat) + "|" + id))
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}
	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return date, parts[1], nil
}

// EncodeSequence creates a token from a monotonic sequence number.
func EncodeSequence(seq int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte("seq|" + strconv.FormatInt(seq, 10)))
}

// DecodeSequence parses a token produced by EncodeSequence.
func DecodeSequence(token string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	s, ok := strings.CutPrefix(string(raw), "seq|")
	if !ok {
		return 0, fmt.Errorf("invalid pagination token format (prefix)")
	}
	seq, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}
	return seq, nil
}
