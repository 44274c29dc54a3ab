package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"template-catalog/core/catalog"
	"template-catalog/core/config"
	"template-catalog/core/database"
	"template-catalog/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var dumpUncached bool

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <type>",
	Short: "Dump all templates of a type to a JSON file",
	Long:  `Loads every record of the given template type and writes them as pretty-printed JSON to templates_<type>_<timestamp>.json.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		t := catalog.TemplateType(args[0])

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		// Connect to database (optional; buildLoader enforces it when the
		// redirect source needs it)
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

		var records []catalog.Record
		if dumpUncached {
			records, err = ldr.LoadAllUncached(ctx, t)
		} else {
			records, err = ldr.GetAll(ctx, t)
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", t, err)
		}

		filename := fmt.Sprintf("templates_%s_%d.json", t, time.Now().Unix())
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return fmt.Errorf("failed to save JSON file: %w", err)
		}

		executionTime := time.Since(startTime)

		// Always display metrics
		fmt.Println("\n=== Template Dump ===")
		fmt.Printf("Type: %s\n", t)
		fmt.Printf("Location: %s\n", ldr.Locations().Resolve(t))
		fmt.Printf("Records: %d\n", len(records))
		fmt.Printf("File: %s\n", filename)
		fmt.Printf("Execution Time: %s\n", executionTime.String())

		logg.Info("Template dump completed",
			zap.String("type", string(t)),
			zap.Int("records", len(records)),
			zap.String("file", filename),
			zap.Duration("execution_time", executionTime),
		)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().BoolVar(&dumpUncached, "uncached", false, "Load straight from the backend, bypassing the cache")
}
