// Package orka downloads deputies' lump-sum expense reports from the
// ORKA document server of the Sejm chancellery. Reports are plain PDFs
// behind a Lotus Domino server, addressed by year and a zero-padded
// deputy id.
package orka

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"sejm-export/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://orka.sejm.gov.pl"

var ErrNotPdf = fmt.Errorf("response body is not a PDF")

var pdfMagic = []byte("%PDF-")

type Client struct {
	Http *resty.Client
	term int
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl when empty
	BaseUrl string
	// defaults to 10 when zero
	Term int
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	term := opts.Term
	if term == 0 {
		term = 10
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(time.Second * 60)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{Http: client, term: term}
}

// ReportPath builds the Domino document path for one report. The deputy
// id must already be zero-padded.
func (c *Client) ReportPath(year int, id string) string {
	return fmt.Sprintf(
		"/rozlicz%d.nsf/lista/%d%s/%%24File/%dryczalt_%s.pdf",
		c.term, year, id, year, id,
	)
}

// IsPdf reports whether data starts with the PDF file magic.
func IsPdf(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// FetchReport downloads one report and validates the PDF magic. Domino
// sometimes serves an HTML error page at the bare document URL, so a
// non-PDF response is retried once with the `?Open` suffix before
// giving up.
func (c *Client) FetchReport(ctx context.Context, year int, id string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "FetchReport")
	defer span.End()
	span.SetAttributes(
		attribute.Int("year", year),
		attribute.String("id", id),
	)

	path := c.ReportPath(year, id)
	data, err := c.fetchPdf(ctx, path)
	if err != nil {
		data, err = c.fetchPdf(ctx, path+"?Open")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("bytes", len(data)))
	return data, nil
}

func (c *Client) fetchPdf(ctx context.Context, path string) ([]byte, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch report: unexpected status %s", res.Status())
	}
	if !IsPdf(res.Body()) {
		return nil, fmt.Errorf("fetch report: %w", ErrNotPdf)
	}
	return res.Body(), nil
}
