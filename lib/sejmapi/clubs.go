package sejmapi

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Club struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Fax          string `json:"fax"`
	Email        string `json:"email"`
	MembersCount int64  `json:"membersCount"`
}

// Clubs fetches the parliamentary club list for the client's term.
func (c *Client) Clubs(ctx context.Context) ([]Club, error) {
	ctx, span := tracer.Start(ctx, "Clubs")
	defer span.End()
	span.SetAttributes(attribute.Int("term", c.term))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/sejm/term%d/clubs", c.term))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch club list: %w", err)
	}
	if res.IsError() {
		err = fmt.Errorf("fetch club list: %w: %s", ErrBadStatus, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var clubs []Club
	err = decodeObjectArray(res.Body(), &clubs)
	if err != nil {
		err = fmt.Errorf("decode club list: %w: %s", ErrBadPayload, err.Error())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(clubs)))
	return clubs, nil
}
