package sejmapi

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// MP mirrors a single deputy object as returned by the API. Fields that
// are not strings are pointers so a missing or null value is told apart
// from a zero one; extra fields in the response are ignored.
type MP struct {
	Id            *int64 `json:"id"`
	FirstName     string `json:"firstName"`
	SecondName    string `json:"secondName"`
	LastName      string `json:"lastName"`
	FirstLastName string `json:"firstLastName"`
	Club          string `json:"club"`
	DistrictNum   *int64 `json:"districtNum"`
	DistrictName  string `json:"districtName"`
	Voivodeship   string `json:"voivodeship"`
	Email         string `json:"email"`
	Active        *bool  `json:"active"`
}

// MPs fetches the full deputy list for the client's term, in the order
// the API returns it.
func (c *Client) MPs(ctx context.Context) ([]MP, error) {
	ctx, span := tracer.Start(ctx, "MPs")
	defer span.End()
	span.SetAttributes(attribute.Int("term", c.term))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/sejm/term%d/MP", c.term))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch MP list: %w", err)
	}
	if res.IsError() {
		err = fmt.Errorf("fetch MP list: %w: %s", ErrBadStatus, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var mps []MP
	err = decodeObjectArray(res.Body(), &mps)
	if err != nil {
		err = fmt.Errorf("decode MP list: %w: %s", ErrBadPayload, err.Error())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(mps)))
	return mps, nil
}
