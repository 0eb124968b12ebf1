package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show how many items are due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.loadCorpus(cmd.Context()); err != nil {
			return err
		}
		now := time.Now()
		printStatus(cmd.OutOrStdout(), spacedrep.Summarize(e.corpus.Items(), now), now)
		return nil
	},
}

// printStatus writes the review status as a small table.
func printStatus(w io.Writer, st spacedrep.Status, now time.Time) {
	if st.Total == 0 {
		fmt.Fprintln(w, "The corpus is empty.")
		return
	}

	fmt.Fprintf(w, "%d of %d items due today\n", st.Due, st.Total)
	if st.Due == 0 && !st.NextDue.IsZero() {
		days := int(st.NextDue.Sub(corpus.Day(now)).Hours() / 24)
		fmt.Fprintf(w, "Next review %s (in %d days)\n", corpus.FormatDate(st.NextDue), days)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-12s  %6s  %6s\n", "Category", "Items", "Due")
	for _, c := range st.Categories {
		fmt.Fprintf(w, "%-12s  %6d  %6d\n", c.Category, c.Total, c.Due)
	}
}
