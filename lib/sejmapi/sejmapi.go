// Package sejmapi is a client for the public REST API of the Sejm,
// the lower house of the Polish parliament.
//
// API reference: https://api.sejm.gov.pl/sejm/openapi/ui
package sejmapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"sejm-export/lib/restyutil"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://api.sejm.gov.pl"

// term of office the data is scoped to, term 10 began in 2023
const DefaultTerm = 10

var ErrBadStatus = fmt.Errorf("unexpected response status")
var ErrBadPayload = fmt.Errorf("response is not a JSON array of objects")

type Client struct {
	Http *resty.Client
	term int
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl when empty
	BaseUrl string
	// defaults to DefaultTerm when zero
	Term int
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	term := opts.Term
	if term == 0 {
		term = DefaultTerm
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetHeader("accept", "application/json")
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{Http: client, term: term}
}

func (c *Client) Term() int {
	return c.term
}

// decodeObjectArray unmarshals data into out after checking that the
// payload really is a JSON array of objects. json.Unmarshal alone would
// wave through a top-level `null` (as a nil slice) and `null` elements
// (as zero records), both of which have to surface as parse errors.
func decodeObjectArray(data []byte, out any) error {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("[")) {
		return fmt.Errorf("top level is not an array")
	}

	var elements []json.RawMessage
	err := json.Unmarshal(data, &elements)
	if err != nil {
		return err
	}
	for i, element := range elements {
		if !bytes.HasPrefix(bytes.TrimLeft(element, " \t\r\n"), []byte("{")) {
			return fmt.Errorf("element %d is not an object", i)
		}
	}

	return json.Unmarshal(data, out)
}
