package batchconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	ok, err := Default().IsValid()
	assert.True(t, ok)
	assert.NoError(t, err)
}

func TestIsValid(t *testing.T) {
	c := Default()
	c.IDFormat = "BATCH-{YYYY}"
	_, err := c.IsValid()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	c = Default()
	c.DefaultDurationMin = 0
	_, err = c.IsValid()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	c = Default()
	c.DefaultDurationMin = 1441
	_, err = c.IsValid()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	c = Default()
	c.EndSignalNodeID = ""
	_, err = c.IsValid()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFormatBatchID(t *testing.T) {
	date := time.Date(2024, time.May, 7, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "BATCH-2024-05-007", FormatBatchID("BATCH-{YYYY}-{MM}-{SEQ:000}", date, 7))
	assert.Equal(t, "BATCH-2024-05-314", FormatBatchID("BATCH-{YYYY}-{MM}-{SEQ:000}", date, 314))
	assert.Equal(t, "BATCH-2024-05-1200", FormatBatchID("BATCH-{YYYY}-{MM}-{SEQ:000}", date, 1200))
	assert.Equal(t, "20240507-42", FormatBatchID("{YYYY}{MM}{DD}-{SEQ}", date, 42))
	assert.Equal(t, "L00003", FormatBatchID("L{SEQ:00000}", date, 3))
	assert.Equal(t, "NO-PLACEHOLDER", FormatBatchID("NO-PLACEHOLDER", date, 3))
}

func TestHolder(t *testing.T) {
	h := NewHolder(Default())
	reverse := ReplaceGlobals(h)
	defer reverse()
	assert.Equal(t, h, H())

	c := Default()
	c.DefaultDurationMin = 90
	require.NoError(t, h.Set(c))
	assert.Equal(t, 90, h.Get().DefaultDurationMin)

	c.IDFormat = ""
	assert.ErrorIs(t, h.Set(c), ErrInvalidConfig)
	assert.Equal(t, Default().IDFormat, h.Get().IDFormat)

	assert.Equal(t, "BATCH-2024-05-001", h.NextID(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), 1))
}
