package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"sejm-export/lib/export"
	"sejm-export/lib/orka"
	"sejm-export/lib/restyutil"
	"sejm-export/lib/sejmapi"
	"sejm-export/lib/serviceutil"
	"sejm-export/lib/telemetry"

	"github.com/spf13/cobra"
)

var term *int
var verbose *bool
var outPath *string

func init() {
	term = rootCmd.PersistentFlags().Int("term", sejmapi.DefaultTerm, "The term of office to fetch data for.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and request/response dumps.")
	outPath = rootCmd.Flags().String("out", "", "The CSV file to write to. Defaults to poslowie_term<term>.csv.")
}

func newClient() *sejmapi.Client {
	return sejmapi.NewClient(sejmapi.ClientOptions{Term: *term})
}

var rootCmd = &cobra.Command{
	Use:   "sejm-export",
	Short: "sejm-export snapshots the deputy list of the Sejm into a CSV file.",
	Args:  cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if *verbose {
			telemetry.InitSlog(true)
			sejmapi.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/sejmapi"))
			orka.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/orka"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		dest := *outPath
		if dest == "" {
			dest = fmt.Sprintf("poslowie_term%d.csv", *term)
		}

		client := newClient()
		mps, err := client.MPs(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch deputy list", err)
		}

		err = export.WriteFile(dest, mps)
		if err != nil {
			serviceutil.Fatal("failed to write snapshot", err)
		}

		slog.Info("wrote deputy snapshot", "path", dest, "count", len(mps))
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
