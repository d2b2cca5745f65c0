package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstPage(t *testing.T) {
	pg := New(1, 25)

	assert.Equal(t, 1, pg.Number)
	assert.Equal(t, 10, pg.Size)
	assert.Equal(t, 25, pg.TotalItems)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.False(t, pg.HasPrevious)
	assert.Equal(t, 0, pg.Offset())
}

func TestLastPartialPage(t *testing.T) {
	// 15 items: page 2 holds items 11-15.
	pg := New(2, 15)

	assert.Equal(t, 2, pg.Number)
	assert.Equal(t, 2, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.True(t, pg.HasPrevious)
	assert.Equal(t, 10, pg.Offset())
	assert.Equal(t, 10, pg.Limit())
}

func TestRequestBelowOneClampsToFirst(t *testing.T) {
	assert.Equal(t, 1, New(0, 30).Number)
	assert.Equal(t, 1, New(-5, 30).Number)
}

func TestRequestPastEndClampsToLast(t *testing.T) {
	pg := New(99, 21)

	assert.Equal(t, 3, pg.Number)
	assert.False(t, pg.HasNext)
	assert.True(t, pg.HasPrevious)
	assert.Equal(t, 20, pg.Offset())
}

func TestEmptySetHasOneEmptyPage(t *testing.T) {
	pg := New(1, 0)

	assert.Equal(t, 1, pg.Number)
	assert.Equal(t, 1, pg.TotalPages)
	assert.Equal(t, 0, pg.TotalItems)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrevious)
}

func TestExactMultipleOfPageSize(t *testing.T) {
	pg := New(2, 20)

	assert.Equal(t, 2, pg.TotalPages)
	assert.Equal(t, 2, pg.Number)
	assert.False(t, pg.HasNext)
}
