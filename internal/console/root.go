package console

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WizCoderr/admin.ajastra/internal/config"
	"github.com/WizCoderr/admin.ajastra/internal/console/commands"
	"github.com/WizCoderr/admin.ajastra/internal/logger"
)

var version = "dev" // Will be set during build

// NewRootCmd builds the command tree around app. Running the root command
// without a subcommand opens the interactive console.
func NewRootCmd(app *commands.App) *cobra.Command {
	shellCmd := commands.NewShellCmd(app)

	rootCmd := &cobra.Command{
		Use:   "ajastra-admin",
		Short: "Ajastra - shop administration console",
		Long: `Ajastra admin console - manage the shop's catalog, orders, customers and
home page sliders from the terminal.

Run without arguments to open the interactive console, or use the page
commands below in scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          shellCmd.RunE,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.Config.API.BaseURL, "api", app.Config.API.BaseURL, "Admin API base URL (or set AJASTRA_API_BASE)")
	flags.StringVar(&app.Config.Session.Backend, "session-backend", app.Config.Session.Backend, "Where the session is kept: file, keyring or memory")
	flags.StringVar(&app.Config.Session.Path, "session-path", app.Config.Session.Path, "Session file for the file backend")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(app.Out, "ajastra-admin version %s\n", version)
		},
	})

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(commands.NewLoginCmd(app))
	rootCmd.AddCommand(commands.NewLogoutCmd(app))
	rootCmd.AddCommand(commands.NewStatusCmd(app))
	rootCmd.AddCommand(commands.NewDashboardCmd(app))
	rootCmd.AddCommand(commands.NewCategoriesCmd(app))
	rootCmd.AddCommand(commands.NewProductsCmd(app))
	rootCmd.AddCommand(commands.NewOrdersCmd(app))
	rootCmd.AddCommand(commands.NewCustomersCmd(app))
	rootCmd.AddCommand(commands.NewSlidersCmd(app))

	return rootCmd
}

// Execute loads configuration and runs the root command
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	log := logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	app := commands.NewApp(cfg, log)

	if err := NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
