package sejmapi

import (
	"sejm-export/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("sejmapi")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
