package commands

import (
	"log/slog"

	"sejm-export/lib/mpstore"
	"sejm-export/lib/serviceutil"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var archiveDb *string

func init() {
	archiveDb = archiveCmd.Flags().String("db", "poslowie.db", "The sqlite database to archive snapshots into.")
	rootCmd.AddCommand(archiveCmd)
}

var archiveCmd = &cobra.Command{
	Use:   "archive [--db <path/to/archive.db>]",
	Short: "Fetches the deputy list and archives it into a sqlite database.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		mps, err := client.MPs(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch deputy list", err)
		}

		db, err := mpstore.Open(*archiveDb)
		if err != nil {
			serviceutil.Fatal("failed to open archive db", err)
		}
		defer db.Close()

		store := mpstore.New(db)
		err = store.SaveSnapshot(cmd.Context(), *term, mps)
		if err != nil {
			serviceutil.Fatal("failed to archive snapshot", err)
		}

		slog.Info("archived deputy snapshot", "db", *archiveDb, "term", *term, "count", len(mps))
	},
}
