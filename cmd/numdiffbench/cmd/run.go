package cmd

import (
	"numdiffbench"
	"numdiffbench/config"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd, configCmd)
	config.AddFlags(runCmd.Flags())
	config.AddFlags(configCmd.Flags())
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the gradient and Hessian sweeps and write the charts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := load(cmd)
		if err != nil {
			return err
		}
		b, err := numdiffbench.New(cfg)
		if err != nil {
			return err
		}
		_, err = b.Run(cmd.OutOrStdout())
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := load(cmd)
		if err != nil {
			return err
		}
		return cfg.Dump(cmd.OutOrStdout())
	},
}

// load 绑定当前子命令的参数后读取配置
func load(cmd *cobra.Command) (config.Config, error) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, configureLogging(cfg.LogLevel)
}
