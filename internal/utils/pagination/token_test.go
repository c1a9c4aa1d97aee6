package pagination

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		EffectiveDate: time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:            "0b6f2c1e-2d7c-4b0e-9a4e-5b1f7c1a2d3e",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token)

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, cursor.EffectiveDate.Equal(decoded.EffectiveDate))
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, cursor.ID, decoded.ID)
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("yesterday|2023-05-15T00:00:00Z|id")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "effective date parse")
}

func TestTrim(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cursorOf := func(n int) Cursor {
		return Cursor{EffectiveDate: base, CreatedAt: base.Add(time.Duration(n) * time.Second), ID: fmt.Sprint(n)}
	}

	rows, token := Trim([]int{1, 2, 3}, 5, cursorOf)
	assert.Equal(t, []int{1, 2, 3}, rows)
	assert.Nil(t, token, "short page has no next token")

	rows, token = Trim([]int{1, 2, 3}, 3, cursorOf)
	assert.Len(t, rows, 3)
	assert.Nil(t, token, "exactly full page without the probe row has no next token")

	rows, token = Trim([]int{1, 2, 3, 4}, 3, cursorOf)
	assert.Equal(t, []int{1, 2, 3}, rows)
	require.NotNil(t, token)
	decoded, err := DecodeToken(*token)
	require.NoError(t, err)
	assert.Equal(t, "3", decoded.ID)
}
