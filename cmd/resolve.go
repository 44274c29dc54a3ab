package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"template-catalog/core/catalog"
	"template-catalog/core/config"
	"template-catalog/core/database"
	"template-catalog/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Exit codes for scripted callers: misses and undecided redirections are
// distinct outcomes, not failures of the tool itself.
const (
	exitNotFound = 2
	exitPending  = 3
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <type> <name>",
	Short: "Resolve a single template by type and name",
	Long: `Looks up one record, following redirections the way the server does.
Exit codes: 0 found, 2 not found (including retired names), 3 undecided redirection.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t := catalog.TemplateType(args[0])
		name := args[1]

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
		}

		ldr, err := buildLoader(ctx, cfg, logg, db)
		if err != nil {
			return fmt.Errorf("failed to build catalog: %w", err)
		}

		rec, err := ldr.Get(ctx, t, name)
		switch {
		case err == nil:
			data, merr := json.MarshalIndent(rec, "", "  ")
			if merr != nil {
				return fmt.Errorf("failed to marshal record: %w", merr)
			}
			fmt.Println(string(data))
			return nil
		case errors.Is(err, catalog.ErrPendingRedirection):
			fmt.Println(err)
			os.Exit(exitPending)
		case errors.Is(err, catalog.ErrNotFound):
			fmt.Println(err)
			os.Exit(exitNotFound)
		default:
			return fmt.Errorf("lookup failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(resolveCmd)
}
