// Package config 读取基准运行配置：默认值、YAML 文件、NUMDIFF_ 环境变量与命令行参数依次覆盖。
package config

import (
	"io"
	"math"
	"strings"

	"numdiffbench/registry"
	"numdiffbench/report"
	"numdiffbench/types"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀，如 NUMDIFF_SIZES=4,8
const EnvPrefix = "NUMDIFF"

// Config 运行配置
type Config struct {
	Sizes         []int   `mapstructure:"sizes" yaml:"sizes"`
	Order         int     `mapstructure:"order" yaml:"order"`
	AdaptiveSteps int     `mapstructure:"adaptive-steps" yaml:"adaptive-steps"`
	StepRatio     float64 `mapstructure:"step-ratio" yaml:"step-ratio"`
	StepOffset    int     `mapstructure:"step-offset" yaml:"step-offset"`
	Probe         float64 `mapstructure:"probe" yaml:"probe"`
	Out           string  `mapstructure:"out" yaml:"out"`
	HTML          bool    `mapstructure:"html" yaml:"html"`
	JSON          bool    `mapstructure:"json" yaml:"json"`
	SetupCharts   bool    `mapstructure:"setup-charts" yaml:"setup-charts"`
	RuntimeLegend string  `mapstructure:"runtime-legend" yaml:"runtime-legend"`
	ErrorLegend   string  `mapstructure:"error-legend" yaml:"error-legend"`
	LogLevel      string  `mapstructure:"log-level" yaml:"log-level"`
}

// Default 默认配置
func Default() Config {
	return Config{
		Sizes:         append([]int(nil), types.DefaultSizes...),
		Order:         types.DefaultOrder,
		AdaptiveSteps: types.AdaptiveSteps,
		StepRatio:     types.StepRatio,
		StepOffset:    types.StepOffset,
		Probe:         types.ProbeValue,
		Out:           ".",
		RuntimeLegend: report.TopLeft.String(),
		ErrorLegend:   report.CenterRight.String(),
		LogLevel:      log.InfoLevel.String(),
	}
}

// SetDefaults 写入默认值
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("sizes", d.Sizes)
	v.SetDefault("order", d.Order)
	v.SetDefault("adaptive-steps", d.AdaptiveSteps)
	v.SetDefault("step-ratio", d.StepRatio)
	v.SetDefault("step-offset", d.StepOffset)
	v.SetDefault("probe", d.Probe)
	v.SetDefault("out", d.Out)
	v.SetDefault("html", d.HTML)
	v.SetDefault("json", d.JSON)
	v.SetDefault("setup-charts", d.SetupCharts)
	v.SetDefault("runtime-legend", d.RuntimeLegend)
	v.SetDefault("error-legend", d.ErrorLegend)
	v.SetDefault("log-level", d.LogLevel)
}

// AddFlags 注册命令行参数，参数名与配置键一致
func AddFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.IntSlice("sizes", d.Sizes, "problem sizes N, in sweep order")
	flags.Int("order", d.Order, "finite difference error order")
	flags.Int("adaptive-steps", d.AdaptiveSteps, "number of steps for adaptive estimators")
	flags.Float64("step-ratio", d.StepRatio, "ratio between consecutive adaptive steps")
	flags.Int("step-offset", d.StepOffset, "offset of the first adaptive step")
	flags.Float64("probe", d.Probe, "value of every component of the evaluation point")
	flags.String("out", d.Out, "output directory for charts and records")
	flags.Bool("html", d.HTML, "also write report.html")
	flags.Bool("json", d.JSON, "also write results.json")
	flags.Bool("setup-charts", d.SetupCharts, "also chart setup times")
	flags.String("runtime-legend", d.RuntimeLegend, "legend corner of runtime charts")
	flags.String("error-legend", d.ErrorLegend, "legend corner of error charts")
	flags.String("log-level", d.LogLevel, "log level")
}

// Load 按优先级合并配置，file 为空时不读取文件
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", file)
		}
		log.WithField("file", v.ConfigFileUsed()).Debug("config loaded")
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate 检查配置取值
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return errors.New("config: no problem sizes")
	}
	for _, n := range c.Sizes {
		if n <= 0 {
			return errors.Errorf("config: problem size %d is not positive", n)
		}
	}
	switch {
	case c.Order < 1:
		return errors.Errorf("config: order %d is not positive", c.Order)
	case c.AdaptiveSteps < 2:
		return errors.Errorf("config: adaptive-steps %d must be at least 2", c.AdaptiveSteps)
	case !(c.StepRatio > 1) || math.IsInf(c.StepRatio, 0):
		return errors.Errorf("config: step-ratio %g must be finite and greater than 1", c.StepRatio)
	case c.StepOffset < 0:
		return errors.Errorf("config: step-offset %d is negative", c.StepOffset)
	case math.IsNaN(c.Probe) || math.IsInf(c.Probe, 0):
		return errors.Errorf("config: probe %g is not finite", c.Probe)
	}
	if _, err := report.ParseCorner(c.RuntimeLegend); err != nil {
		return errors.Wrap(err, "config: runtime-legend")
	}
	if _, err := report.ParseCorner(c.ErrorLegend); err != nil {
		return errors.Wrap(err, "config: error-legend")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "config: log-level")
	}
	return nil
}

// RegistryOptions 标准估计器集合的配置
func (c Config) RegistryOptions() registry.Options {
	return registry.Options{
		Order:         c.Order,
		AdaptiveSteps: c.AdaptiveSteps,
		StepRatio:     c.StepRatio,
		Offset:        c.StepOffset,
	}
}

// Dump 以 YAML 输出配置，可作为 --config 文件再次读取
func (c Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
