package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultQueryEncode(t *testing.T) {
	assert.Equal(t, "limit=5&offset=0", DefaultQuery().Encode())
}

func TestEncodeWithSearchAndOrder(t *testing.T) {
	q := Query{Offset: 10, Limit: 5, Attr: "name", Value: "coca", Order: "created_at"}
	assert.Equal(t, "attr=name&limit=5&offset=10&order=created_at&value=coca", q.Encode())
}

func TestEncodeDropsIncompleteSearch(t *testing.T) {
	q := Query{Offset: 0, Limit: 5, Attr: "name"}
	assert.Equal(t, "limit=5&offset=0", q.Encode())
}

func TestWithSearchResetsPaging(t *testing.T) {
	q := Query{Offset: 20, Limit: 10}
	s := q.WithSearch("name", "fanta")
	assert.Equal(t, 0, s.Offset)
	assert.Equal(t, 10, s.Limit)
	assert.Equal(t, "name", s.Attr)
	assert.Equal(t, "fanta", s.Value)
}

func TestNextAdvancesOnlyWhenMoreRowsExist(t *testing.T) {
	q := DefaultQuery()

	q = q.Next(12)
	assert.Equal(t, 5, q.Offset)

	q = q.Next(12)
	assert.Equal(t, 10, q.Offset)

	// Already on the last page.
	q = q.Next(12)
	assert.Equal(t, 10, q.Offset)
}

func TestPrevStopsAtZero(t *testing.T) {
	q := Query{Offset: 5, Limit: 5}
	q = q.Prev()
	assert.Equal(t, 0, q.Offset)
	q = q.Prev()
	assert.Equal(t, 0, q.Offset)
}
