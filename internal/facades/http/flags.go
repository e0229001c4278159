package http

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sbilibin2017/flagwatch/internal/models"
)

// Paths and parameters of the two supported backends.
const (
	TotalFlagsPath = "/metrics/total-flags"
	countColumn    = "total_flags"
)

var errNegativeCount = errors.New("negative count in response")

// TotalFlagsHTTPFacade reads the total flag count over HTTP.
//
// With a dataset name it queries a Datasette-style query service:
//
//	GET /{db}.json?sql=SELECT COUNT(*) AS total_flags FROM {table}&_shape=array
//
// Otherwise it calls the REST endpoint GET /metrics/total-flags.
type TotalFlagsHTTPFacade struct {
	client *resty.Client
	dbName string
	table  string
}

// NewTotalFlagsHTTPFacade creates a facade over client. The client's base URL
// is the API base; dbName may be empty. table must be a plain identifier.
func NewTotalFlagsHTTPFacade(client *resty.Client, dbName, table string) *TotalFlagsHTTPFacade {
	return &TotalFlagsHTTPFacade{
		client: client,
		dbName: dbName,
		table:  table,
	}
}

// CountSQL returns the query sent to the query service.
func CountSQL(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) AS %s FROM %s", countColumn, table)
}

// Count returns the number of flagged records.
// It fails with ErrConfiguration when no base URL is set and with
// *TransportError on network, status or decoding failures.
func (f *TotalFlagsHTTPFacade) Count(ctx context.Context) (int64, error) {
	if strings.TrimSpace(f.client.BaseURL) == "" {
		return 0, ErrConfiguration
	}
	if f.dbName != "" {
		return f.countQuery(ctx)
	}
	return f.countREST(ctx)
}

func (f *TotalFlagsHTTPFacade) countQuery(ctx context.Context) (int64, error) {
	var rows []models.TotalFlags
	resp, err := f.get(ctx, f.client.R().
		SetQueryParam("sql", CountSQL(f.table)).
		SetQueryParam("_shape", "array").
		SetResult(&rows),
		"/"+url.PathEscape(f.dbName)+".json",
	)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return checkCount(resp, rows[0].TotalFlags)
}

func (f *TotalFlagsHTTPFacade) countREST(ctx context.Context) (int64, error) {
	var res models.TotalFlags
	resp, err := f.get(ctx, f.client.R().SetResult(&res), TotalFlagsPath)
	if err != nil {
		return 0, err
	}
	return checkCount(resp, res.TotalFlags)
}

// get decodes a successful body into the request's result regardless of the
// served content type. A decoding failure keeps the response status.
func (f *TotalFlagsHTTPFacade) get(ctx context.Context, req *resty.Request, path string) (*resty.Response, error) {
	resp, err := req.
		SetContext(ctx).
		ForceContentType("application/json").
		Get(path)
	if err != nil {
		terr := &TransportError{Err: err}
		if resp != nil && resp.RawResponse != nil {
			terr.StatusCode = resp.StatusCode()
		}
		return nil, terr
	}
	if !resp.IsSuccess() {
		return nil, &TransportError{StatusCode: resp.StatusCode()}
	}
	return resp, nil
}

// checkCount treats a missing field as zero.
func checkCount(resp *resty.Response, n *int64) (int64, error) {
	if n == nil {
		return 0, nil
	}
	if *n < 0 {
		return 0, &TransportError{StatusCode: resp.StatusCode(), Err: errNegativeCount}
	}
	return *n, nil
}
