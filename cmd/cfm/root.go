package cfm

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jkwiatkowski/cfm/internal/cfm"
)

func init() {
	// windows only
	cobra.MousetrapHelpText = ""

	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "debug")
	rootCmd.PersistentFlags().BoolVar(&Console, "console", false, "run with console interface")
	rootCmd.PersistentPreRun = initLog
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("command execution failed")
	}
}

var rootCmd = &cobra.Command{
	Use:     "cfm",
	Short:   "cfm",
	Long:    `cfm analyzes a Messenger data export and serves per-conversation statistics`,
	Example: `cfm --console`,
	Args:    cobra.MinimumNArgs(0),
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PreRun: prepareRoot,
	Run:    Root,
}

func prepareRoot(cmd *cobra.Command, args []string) {
	if Console || !Debug {
		initTuiLog(cmd, args)
	}
}

func Root(cmd *cobra.Command, args []string) {
	m := cfm.New()
	mode := cfm.RunModeHeadless
	autoOpen := true
	if Console {
		mode = cfm.RunModeConsole
		autoOpen = false
	}
	m.SetRunOptions(cfm.RunOptions{
		Mode:               mode,
		AutoOpenBrowser:    autoOpen,
		AutoOpenBrowserSet: true,
	})

	if err := m.Run(""); err != nil {
		log.Err(err).Msg("failed to run cfm instance")
	}
}
