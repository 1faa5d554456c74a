package orka

import (
	"sejm-export/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("orka")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
