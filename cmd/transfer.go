package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/sheet"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Copy an xlsx corpus into the SQLite database",
	Long: `Read every row of an xlsx corpus and store it in the SQLite database,
replacing what is there. Mastery and due dates are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		sheetName, _ := cmd.Flags().GetString("sheet-name")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx, cancel := e.callCtx(cmd.Context())
		defer cancel()

		dst := e.db.ItemRepo()
		if !force {
			existing, err := dst.Load(ctx)
			if err != nil {
				return fmt.Errorf("read database: %w", err)
			}
			if len(existing) > 0 {
				return fmt.Errorf("database already holds %d items; use --force to replace them", len(existing))
			}
		}

		src := sheet.Open(args[0], sheet.Options{Sheet: sheetName, Log: e.log})
		n, err := copyRecords(ctx, src, dst)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items from %s into %s\n", n, args[0], e.cfg.DBPath)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Write the SQLite corpus to an xlsx file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetName, _ := cmd.Flags().GetString("sheet-name")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx, cancel := e.callCtx(cmd.Context())
		defer cancel()

		dst := sheet.Open(args[0], sheet.Options{Sheet: sheetName, Log: e.log})
		n, err := copyRecords(ctx, e.db.ItemRepo(), dst)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", n, args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("force", false, "Replace items already in the database")
	importCmd.Flags().String("sheet-name", "", "Sheet to read (default: the first sheet)")
	exportCmd.Flags().String("sheet-name", "", "Sheet to write (default: Sheet1)")
}

// copyRecords loads every record from src and saves the non-empty ones to
// dst. It returns the number saved.
func copyRecords(ctx context.Context, src, dst corpus.Storage) (int, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("read source: %w", err)
	}
	kept := records[:0]
	for _, rec := range records {
		if strings.TrimSpace(rec.TargetText) != "" {
			kept = append(kept, rec)
		}
	}
	if err := dst.Save(ctx, kept); err != nil {
		return 0, fmt.Errorf("write destination: %w", err)
	}
	return len(kept), nil
}
