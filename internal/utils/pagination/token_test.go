package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	date := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(date, "entry-42")
	assert.NotEmpty(t, token)

	gotDate, gotID, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.Equal(t, "entry-42", gotID)

	// non-UTC input is normalised
	ist := time.FixedZone("IST", 5*3600+1800)
	gotDate, _, err = DecodeCursor(EncodeCursor(date.In(ist), "x"))
	assert.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
}

func TestDecodeCursorErrors(t *testing.T) {
	_, _, err := DecodeCursor("not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	_, _, err = DecodeCursor(base64.RawURLEncoding.EncodeToString([]byte("2025-05-15T00:00:00Z")))
	assert.ErrorContains(t, err, "split")

	_, _, err = DecodeCursor(base64.RawURLEncoding.EncodeToString([]byte("notadate|id")))
	assert.ErrorContains(t, err, "date parse")
}

func TestEncodeDecodeSequence(t *testing.T) {
	seq, err := DecodeSequence(EncodeSequence(987654321))
	assert.NoError(t, err)
	assert.Equal(t, int64(987654321), seq)

	_, err = DecodeSequence(EncodeCursor(time.Now(), "x"))
	assert.ErrorContains(t, err, "prefix")

	_, err = DecodeSequence(base64.RawURLEncoding.EncodeToString([]byte("seq|abc")))
	assert.ErrorContains(t, err, "sequence parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, 10, ClampLimit(10))
	assert.Equal(t, MaxLimit, ClampLimit(10000))
}
