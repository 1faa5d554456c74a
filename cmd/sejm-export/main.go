package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"sejm-export/cmd/sejm-export/commands"
	"sejm-export/lib/serviceutil"
	"sejm-export/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)

	ctx := serviceutil.SignalContext()

	// the exporter has to work in a bare environment, so a missing
	// telemetry.json5 only means telemetry stays off
	tel, err := telemetry.SetupFromEnv(ctx, "sejm-export")
	if err == nil {
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	} else if !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to setup telemetry", "err", err)
	}

	commands.ExecuteContext(ctx)
}
