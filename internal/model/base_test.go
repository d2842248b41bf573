package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", d.String())

	_, err = ParseDate("15/03/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, time.March, 15)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-15"`, string(out))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-15"`), &parsed))
	assert.True(t, parsed.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &parsed))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2026-03-15", d.String())

	require.NoError(t, d.Scan("2026-04-01"))
	assert.Equal(t, "2026-04-01", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDateOf(t *testing.T) {
	d := DateOf(time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2026-03-15", d.String())
	assert.True(t, NewDate(2026, time.March, 14).Before(d))
	assert.False(t, d.Before(d))
}
