package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/lingodrill/internal/reminder"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Print a reminder whenever items are due",
	Long: `Check the corpus on a schedule and print a line when items are due.
Checks run only between --from and --until (local hours). The storage is
re-read on every check, so drills in another terminal are picked up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := reminder.DefaultConfig()
		cfg.Every, _ = cmd.Flags().GetDuration("every")
		cfg.StartHour, _ = cmd.Flags().GetInt("from")
		cfg.EndHour, _ = cmd.Flags().GetInt("until")
		if cfg.StartHour < 0 || cfg.EndHour > 23 || cfg.StartHour > cfg.EndHour {
			return fmt.Errorf("invalid reminder hours %d-%d", cfg.StartHour, cfg.EndHour)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		cfg.Timeout = e.cfg.CallTimeout

		out := cmd.OutOrStdout()
		notify := reminder.NotifierFunc(func(ctx context.Context, st spacedrep.Status) error {
			_, err := fmt.Fprintf(out, "%s  ⚡ %d of %d items due. Run `lingodrill` to drill.\n",
				time.Now().Format("15:04"), st.Due, st.Total)
			return err
		})

		r := reminder.New(e.corpus, notify, cfg, e.log)
		if err := r.Start(); err != nil {
			return err
		}
		defer r.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		e.log.Info("reminder stopped", zap.Error(context.Cause(ctx)))
		return nil
	},
}

func init() {
	remindCmd.Flags().Duration("every", time.Hour, "Interval between checks")
	remindCmd.Flags().Int("from", reminder.DefaultStartHour, "First hour of the day to remind")
	remindCmd.Flags().Int("until", reminder.DefaultEndHour, "Last hour of the day to remind")
}
