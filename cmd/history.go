// Package cmd implements the command-line interface for strand.
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/strand-dl/strand/color"
	"github.com/strand-dl/strand/history"
	"github.com/strand-dl/strand/icon"
	"github.com/strand-dl/strand/style"
	"github.com/strand-dl/strand/tui"
	"github.com/strand-dl/strand/util"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("delete", "d", false, "Remove the selected record instead of printing it")
}

// historyCmd browses the ledger of previously planned acquisitions.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the ledger of previously planned acquisitions",
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.Get()
		handleErr(err)

		if len(saved) == 0 {
			fmt.Printf("%s history is empty\n", icon.Get(icon.Question))
			return
		}

		records := lo.Values(saved)
		slices.SortFunc(records, func(a, b *history.SavedAcquisition) int {
			return b.AcquiredAt.Compare(a.AcquiredAt)
		})

		record, err := tui.SelectAcquisition("history", records)
		if errors.Is(err, tui.ErrAborted) {
			return
		}
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("delete")) {
			handleErr(history.Remove(record))
			fmt.Printf(
				"%s removed %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				style.Bold(record.Display),
			)
			return
		}

		fmt.Printf("%s %s\n", icon.Get(icon.Download), style.Bold(record.String()))
		fmt.Printf("  %s", util.Quantify(record.Tracks, "track", "tracks"))
		if record.Protected {
			fmt.Printf(", %s protected", icon.Get(icon.Lock))
		}
		fmt.Println()
		fmt.Printf("  %s\n", style.Faint(record.AcquiredAt.Format(time.RFC822)))
	},
}
