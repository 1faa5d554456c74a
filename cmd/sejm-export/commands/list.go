package commands

import (
	"os"
	"strconv"

	"sejm-export/lib/export"
	"sejm-export/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listClubs *bool

func init() {
	listClubs = listCmd.Flags().Bool("clubs", false, "List parliamentary clubs instead of deputies.")
	rootCmd.AddCommand(listCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var listCmd = &cobra.Command{
	Use:   "list [--clubs]",
	Short: "Fetches and prints the deputy list (or club list) as a table.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		t := newTable()

		if *listClubs {
			clubs, err := client.Clubs(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to fetch club list", err)
			}

			t.AppendHeader(table.Row{"Id", "Name", "Members", "Email", "Phone"})
			for _, club := range clubs {
				t.AppendRow(table.Row{
					club.Id,
					club.Name,
					strconv.FormatInt(club.MembersCount, 10),
					club.Email,
					club.Phone,
				})
			}
			t.Render()
			return
		}

		mps, err := client.MPs(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch deputy list", err)
		}

		t.AppendHeader(table.Row{
			"Id", "Name", "Club", "District", "Voivodeship", "Email", "Active",
		})
		for _, mp := range mps {
			row := export.Record(mp)
			t.AppendRow(table.Row{
				row[0], // id
				mp.FirstLastName,
				mp.Club,
				mp.DistrictName,
				mp.Voivodeship,
				mp.Email,
				row[10], // active
			})
		}
		t.Render()
	},
}
