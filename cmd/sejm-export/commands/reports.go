package commands

import (
	"fmt"
	"log/slog"
	"time"

	"sejm-export/lib/orka"
	"sejm-export/lib/serviceutil"

	"github.com/spf13/cobra"
)

var reportsYear *int
var reportsStartId *int
var reportsMaxId *int
var reportsIdWidth *int
var reportsOutDir *string
var reportsDelayMs *int

func init() {
	reportsYear = reportsCmd.Flags().Int("year", time.Now().Year()-1, "The settlement year to download reports for.")
	reportsStartId = reportsCmd.Flags().Int("start-id", 1, "The first deputy id to try.")
	reportsMaxId = reportsCmd.Flags().Int("max-id", 498, "The last deputy id to try.")
	reportsIdWidth = reportsCmd.Flags().Int("id-width", 3, "Zero-pad width of deputy ids in report URLs.")
	reportsOutDir = reportsCmd.Flags().String("outdir", "", "The directory to download into. Defaults to sprawozdania_<year>.")
	reportsDelayMs = reportsCmd.Flags().Int("delay-ms", 400, "Pause between requests in milliseconds.")
	rootCmd.AddCommand(reportsCmd)
}

var reportsCmd = &cobra.Command{
	Use:   "reports --year <year> [--outdir <dir>]",
	Short: "Batch-downloads deputies' expense report PDFs from ORKA.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		outDir := *reportsOutDir
		if outDir == "" {
			outDir = fmt.Sprintf("sprawozdania_%d", *reportsYear)
		}

		client := orka.NewClient(orka.ClientOptions{Term: *term})

		t1 := time.Now()
		result, err := client.DownloadBatch(cmd.Context(), orka.BatchOptions{
			Year:    *reportsYear,
			IdWidth: *reportsIdWidth,
			StartId: *reportsStartId,
			MaxId:   *reportsMaxId,
			OutDir:  outDir,
			Delay:   time.Millisecond * time.Duration(*reportsDelayMs),
		})
		if err != nil {
			serviceutil.Fatal("report batch failed", err)
		}
		t2 := time.Now()

		slog.Info(
			"report batch done",
			"outdir", outDir,
			"downloaded", result.Downloaded,
			"skipped", result.Skipped,
			"missing", result.Missing,
			"seconds", t2.Sub(t1).Seconds(),
		)
	},
}
