package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// Query builds a single row-API request against one table. Filters are
// PostgREST operators; only the ones the application needs exist.
type Query struct {
	c       *Client
	table   string
	columns string
	filters url.Values
	order   string
}

func (c *Client) From(table string) *Query {
	return &Query{
		c:       c,
		table:   table,
		columns: "*",
		filters: url.Values{},
	}
}

// Columns overrides the selected column list, including embedded
// relations such as "*,profiles(first_name,last_name)".
func (q *Query) Columns(columns string) *Query {
	q.columns = columns
	return q
}

func (q *Query) Eq(column, value string) *Query {
	q.filters.Add(column, "eq."+value)
	return q
}

// OrderDesc orders by column descending, NULLS LAST.
func (q *Query) OrderDesc(column string) *Query {
	q.order = column + ".desc"
	return q
}

func (q *Query) path() string {
	v := url.Values{}
	v.Set("select", q.columns)
	for column, ops := range q.filters {
		for _, op := range ops {
			v.Add(column, op)
		}
	}
	if q.order != "" {
		v.Set("order", q.order)
	}
	return "/rest/v1/" + q.table + "?" + v.Encode()
}

// Select fetches all matching rows into dst, which must be a pointer to
// a slice.
func (q *Query) Select(ctx context.Context, dst any) error {
	if !q.c.Enabled() {
		return ErrNotConfigured
	}

	req, err := q.c.newRequest(ctx, http.MethodGet, q.path(), nil)
	if err != nil {
		return err
	}

	return q.c.do(req, dst)
}

// Single fetches exactly one matching row into dst. Zero matching rows
// yield ErrRecordNotFound.
func (q *Query) Single(ctx context.Context, dst any) error {
	if !q.c.Enabled() {
		return ErrNotConfigured
	}

	req, err := q.c.newRequest(ctx, http.MethodGet, q.path(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.pgrst.object+json")

	err = q.c.do(req, dst)

	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotAcceptable || apiErr.Status == http.StatusNotFound) {
		return ErrRecordNotFound
	}

	return err
}

// Insert writes one row. When dst is non-nil the created representation
// is decoded back into it.
func (q *Query) Insert(ctx context.Context, row any, dst any) error {
	if !q.c.Enabled() {
		return ErrNotConfigured
	}

	body, err := encodeBody(row)
	if err != nil {
		return err
	}

	req, err := q.c.newRequest(ctx, http.MethodPost, q.path(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if dst != nil {
		req.Header.Set("Prefer", "return=representation")
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	} else {
		req.Header.Set("Prefer", "return=minimal")
	}

	return q.c.do(req, dst)
}

// Update patches every matching row.
func (q *Query) Update(ctx context.Context, changes any) error {
	if !q.c.Enabled() {
		return ErrNotConfigured
	}

	body, err := encodeBody(changes)
	if err != nil {
		return err
	}

	req, err := q.c.newRequest(ctx, http.MethodPatch, q.path(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	return q.c.do(req, nil)
}

// Delete removes every matching row. Deleting zero rows is not an error,
// which the account-deletion sequence relies on.
func (q *Query) Delete(ctx context.Context) error {
	if !q.c.Enabled() {
		return ErrNotConfigured
	}

	req, err := q.c.newRequest(ctx, http.MethodDelete, q.path(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	return q.c.do(req, nil)
}
