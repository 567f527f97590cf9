package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = viper.New()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
}

var rootCmd = &cobra.Command{
	Use:   "numdiffbench",
	Short: "Benchmark numerical differentiation estimators",
	Long: `
Benchmark numerical differentiation estimators on F(x) = 0.5 (x*x)^T A x.

Gradients and Hessian diagonals are estimated with forward-mode automatic
differentiation and with forward, central and complex-step differences, each
with a fixed and an adaptive step. Run times and errors relative to the
automatic differentiation baseline are charted per problem size.

Settings are read from flags, NUMDIFF_* environment variables and an optional
YAML file given with --config, for example:

sizes: [4, 8, 16, 32, 64, 96]
order: 2
adaptive-steps: 14
step-ratio: 1.6
out: charts
html: true
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// configureLogging 文本格式、完整时间戳，日志写到标准错误以免混入结果表格
func configureLogging(level string) error {
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	log.SetOutput(os.Stderr)
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}
