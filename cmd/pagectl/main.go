// pagectl is a command-line and agent-tool client for a Graph-style page
// API. Each subcommand maps onto one request (or one short request chain)
// against the remote API and prints the JSON response; the mcp subcommand
// exposes the same operations as MCP tools for structured callers.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pagectl/internal/config"
	"pagectl/internal/graph"
	"pagectl/internal/publish"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Logger, initialized before any command runs. logLevel keeps the
	// handle so the configured level can be applied once the config file
	// is loaded.
	logger   *zap.Logger
	logLevel zap.AtomicLevel
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "pagectl",
	Short: "pagectl - scriptable client for page publishing and moderation",
	Long: `pagectl translates shell commands into authenticated requests against the
Graph API and prints the JSON responses unmodified.

Every command acts as one configured page, selected by its slug. Successful
transport always exits 0 and prints JSON on stdout — including remote
API-level errors, which scripts are expected to inspect themselves via the
"error" key. A non-zero exit means the tool itself failed: bad
configuration, an unknown page, or a transport error.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			logLevel = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		zcfg := zap.NewProductionConfig()
		zcfg.Level = logLevel
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger = logger.With(zap.String("invocation_id", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// app bundles everything a command needs after configuration is loaded.
type app struct {
	cfg    *config.Config
	client *graph.Client
	pub    *publish.Publisher
}

// setup loads configuration and builds the client stack. Called by each
// command's RunE so that help and completion never require credentials.
func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	applyLogLevel(cfg.Logging.Level)
	client := graph.NewClient(cfg.BaseURL, cfg.UploadBaseURL, cfg.GraphVersion, logger)
	return &app{
		cfg:    cfg,
		client: client,
		pub:    publish.New(client, logger),
	}, nil
}

// applyLogLevel switches the logger to the configured diagnostic level.
// --verbose always wins, and an unparsable level keeps the current one.
func applyLogLevel(level string) {
	if verbose || level == "" {
		return
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		logger.Warn("ignoring invalid logging level", zap.String("level", level))
		return
	}
	logLevel.SetLevel(lvl)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "pagectl.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(unhideCmd)
	rootCmd.AddCommand(deleteCommentsCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(photoCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pagectl: %v\n", err)
		os.Exit(1)
	}
}
