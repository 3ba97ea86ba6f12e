package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kosharny/ThunderpickMove/internal/config"
	"github.com/kosharny/ThunderpickMove/internal/logging"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

const Version = "0.1.0"

var (
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "tm",
	Short:         "ThunderpickMove: body-language training from the terminal",
	Long:          "ThunderpickMove tracks body-language practice: daily check-ins, power moves, quests, drills, a mood journal and unlockable badges.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if verbose {
			c.Logging.Level = "debug"
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
		cfg = c

		l, err := logging.New(c.Logging)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default ~/.thundermove/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		newStatusCmd(),
		newCheckInCmd(),
		newMoveCmd(),
		newQuestCmd(),
		newDailyCmd(),
		newActivityCmd(),
		newBattleCmd(),
		newJournalCmd(),
		newBadgesCmd(),
		newHeatmapCmd(),
		newThemeCmd(),
		newStoreCmd(),
		newOnboardCmd(),
		newBoardCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
