package api

import (
	"net/url"
	"strconv"
)

// Query carries the filter/pagination parameters understood by every list
// endpoint: offset/limit paging, attr+value search and an optional order.
type Query struct {
	Offset int
	Limit  int
	Attr   string
	Value  string
	Order  string
}

// DefaultQuery mirrors the dashboard's default page size.
func DefaultQuery() Query {
	return Query{Offset: 0, Limit: 5}
}

// WithSearch resets paging and applies an attribute search. Searching always
// starts from the first page.
func (q Query) WithSearch(attr, value string) Query {
	next := DefaultQuery()
	next.Limit = q.Limit
	next.Attr = attr
	next.Value = value
	return next
}

// Next advances one page when more rows exist beyond the current offset.
func (q Query) Next(count int64) Query {
	offset := q.Offset + q.Limit
	if count > int64(offset) {
		q.Offset = offset
	}
	return q
}

// Prev moves one page back, never below zero.
func (q Query) Prev() Query {
	offset := q.Offset - q.Limit
	if offset >= 0 {
		q.Offset = offset
	}
	return q
}

// Encode renders the query string expected by the backend.
func (q Query) Encode() string {
	v := url.Values{}
	v.Set("offset", strconv.Itoa(q.Offset))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Attr != "" && q.Value != "" {
		v.Set("attr", q.Attr)
		v.Set("value", q.Value)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v.Encode()
}
