package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Doppler617492/MagacinTracker-sub002/cmd/magacin/app"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/api"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/auth"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/config"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/logging"
)

const version = "1.2.0"

var (
	// Global flags
	verbose     bool
	apiURL      string
	warehouseID string

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "magacin",
	Short: "MagacinTracker - terminal client for warehouse floor operations",
	Long: `magacin is the terminal client for the MagacinTracker warehouse system.

It shows a live 2D map of warehouse locations with occupancy coloring and
drives the two guided floor workflows: inventory cycle counts and optimized
pick routes. All data comes from the MagacinTracker backend; the client
keeps nothing locally except credentials.

Run without arguments to open the interactive interface on the dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive pages log through the category file loggers; the
		// zap logger is for the non-interactive commands.
		if !isInteractive(cmd) {
			zcfg := zap.NewProductionConfig()
			if verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}
		return logging.Initialize(config.DotDir())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(app.Options{StartPage: "dashboard"})
	},
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Open the interactive interface on the warehouse map",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(app.Options{StartPage: "map"})
	},
}

var countCmd = &cobra.Command{
	Use:   "count [cycle-count-id]",
	Short: "Open a cycle count session",
	Long: `Opens the guided cycle count for the given document id. The document
moves to in_progress on the server as soon as it opens.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(app.Options{StartPage: "count", CountID: args[0]})
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick [document-id]",
	Short: "Open a pick route session",
	Long: `Opens the guided pick route for the given outbound document. When no
route exists yet, one is generated with the configured algorithm.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(app.Options{StartPage: "pick", DocumentID: args[0]})
	},
}

// snapshotCmd dumps the current map snapshot as JSON, for scripting and for
// checking connectivity without a terminal UI.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the current warehouse map snapshot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := buildClient()
		if err != nil {
			return err
		}

		zone, _ := cmd.Flags().GetString("zone")
		if zone == "" {
			zone = cfg.Warehouse.Zone
		}

		logger.Info("fetching map snapshot",
			zap.String("warehouse", cfg.Warehouse.ID),
			zap.String("zone", zone))

		snap, err := client.WarehouseMap(context.Background(), cfg.Warehouse.ID, zone)
		if err != nil {
			return fmt.Errorf("fetching snapshot: %w", err)
		}

		logger.Debug("snapshot fetched", zap.Int("locations", len(snap.Locations)))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("magacin %s\n", version)
	},
}

func isInteractive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "magacin", "map", "count", "pick":
		return true
	}
	return false
}

// buildClient loads configuration, applies flag overrides and wires the
// authenticated REST client.
func buildClient() (*config.Config, *api.Client, error) {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if warehouseID != "" {
		cfg.Warehouse.ID = warehouseID
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	store := auth.NewStore(auth.DefaultPath(config.DotDir()))
	if err := store.Watch(); err != nil {
		logging.BootError("credential watcher unavailable: %v", err)
	}

	client := api.New(cfg.API.BaseURL, store, cfg.GetRequestTimeout())
	return cfg, client, nil
}

func runInteractive(opts app.Options) error {
	cfg, client, err := buildClient()
	if err != nil {
		return err
	}

	logging.Boot("magacin %s starting, backend %s", version, cfg.API.BaseURL)

	p := tea.NewProgram(
		app.New(*cfg, client, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (or set MAGACIN_API_URL)")
	rootCmd.PersistentFlags().StringVarP(&warehouseID, "warehouse", "w", "", "Warehouse id (or set MAGACIN_WAREHOUSE)")

	snapshotCmd.Flags().String("zone", "", "Limit the snapshot to one zone")

	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
