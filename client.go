package smartsheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.alis.build/alog"
)

// Client loads schema-checked sheets from the Smartsheet API.
type Client struct {
	api *API
}

// New creates a client authenticated with an API access token. An empty
// token fails with ErrMissingToken before any network call.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	fetcher := o.fetcher
	if fetcher == nil {
		hf, err := newHTTPFetcher(token, o)
		if err != nil {
			return nil, err
		}
		fetcher = hf
	}
	return &Client{api: NewAPI(fetcher)}, nil
}

// API returns the raw endpoint wrapper.
func (c *Client) API() *API {
	return c.api
}

// ListSheets lists every sheet visible to the token.
func (c *Client) ListSheets(ctx context.Context) ([]SheetSummary, error) {
	return c.api.ListSheets(ctx, ListOptions{IncludeAll: true})
}

// LoadSheet prepares the sheet with the given name. With CreateIfNotExist a
// missing sheet is created with columns built from the schema.
func (c *Client) LoadSheet(ctx context.Context, name string, schema *Schema, opts ...LoadOption) (*PreparedSheet, error) {
	o := applyLoadOptions(opts)
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	sheets, err := c.api.ListSheets(ctx, ListOptions{IncludeAll: true})
	if err != nil {
		return nil, fmt.Errorf("load sheet %q: %w", name, err)
	}
	for _, s := range sheets {
		if s.Name == name {
			return c.prepare(ctx, s.ID, schema, o)
		}
	}

	if !o.createIfNotExist {
		return nil, fmt.Errorf("load sheet %q: %w", name, ErrSheetNotFound)
	}
	created, err := c.api.CreateSheet(ctx, NewSheet{Name: name, Columns: NewColumnsFromSchema(schema)})
	if err != nil {
		return nil, fmt.Errorf("load sheet %q: %w", name, err)
	}
	alog.Infof(ctx, "smartsheet: created sheet %q (id %d) with %d columns", name, created.ID, schema.Len())
	return c.prepare(ctx, created.ID, schema, o)
}

// LoadSheetByPermalink prepares the sheet whose permalink matches. It never
// creates a sheet.
func (c *Client) LoadSheetByPermalink(ctx context.Context, permalink string, schema *Schema, opts ...LoadOption) (*PreparedSheet, error) {
	o := applyLoadOptions(opts)
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	sheets, err := c.api.ListSheets(ctx, ListOptions{IncludeAll: true})
	if err != nil {
		return nil, fmt.Errorf("load sheet %s: %w", permalink, err)
	}
	for _, s := range sheets {
		if s.Permalink == permalink {
			return c.prepare(ctx, s.ID, schema, o)
		}
	}
	return nil, fmt.Errorf("load sheet %s: %w", permalink, ErrSheetNotFound)
}

// LoadSheetByID prepares the sheet with the given id. It never creates a sheet.
func (c *Client) LoadSheetByID(ctx context.Context, id int64, schema *Schema, opts ...LoadOption) (*PreparedSheet, error) {
	o := applyLoadOptions(opts)
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return c.prepare(ctx, id, schema, o)
}

func applyLoadOptions(opts []LoadOption) *loadOptions {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// prepare fetches the full sheet and reconciles it with the schema.
func (c *Client) prepare(ctx context.Context, id int64, schema *Schema, o *loadOptions) (*PreparedSheet, error) {
	sheet, err := c.api.GetSheet(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("load sheet %d: %w", id, ErrSheetNotFound)
		}
		return nil, err
	}

	mapping, err := Reconcile(sheet.Columns, schema, o.strict)
	if err != nil {
		return nil, fmt.Errorf("load sheet %q: %w", sheet.Name, err)
	}
	for _, col := range sheet.Columns {
		if _, ok := mapping.Key(col.ID); !ok {
			alog.Debugf(ctx, "smartsheet: sheet %q: column %q has no schema entry, skipped", sheet.Name, col.Title)
		}
	}

	tc, err := newTranscoder(schema, mapping)
	if err != nil {
		return nil, err
	}
	return &PreparedSheet{api: c.api, sheet: sheet, schema: schema, mapping: mapping, tc: tc}, nil
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
