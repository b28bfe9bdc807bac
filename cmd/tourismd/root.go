package main

import (
	"github.com/spf13/cobra"

	"tourismd/internal/config"
)

type rootOptions struct {
	ConfigPath string
	EnvFile    string
	LogLevel   string
	LogFormat  string
	// environ replaces the process environment when non-nil (tests).
	environ []string
}

func buildRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "tourismd",
		Short:         "Tourism zero-shot classification service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "Config file (.yaml, .yml, .json or .toml)")
	pf.StringVar(&opts.EnvFile, "env-file", ".env", "Dotenv file; ignored when missing")
	pf.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides LOG_LEVEL)")
	pf.StringVar(&opts.LogFormat, "log-format", "", "Log format: json|console (overrides LOG_FORMAT)")

	root.AddCommand(
		newServeCmd(opts),
		newExtractCmd(opts),
		newEvalCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadConfig resolves configuration and applies the persistent flag
// overrides.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(config.ResolveOptions{
		ConfigPath: o.ConfigPath,
		EnvFile:    o.EnvFile,
		Environ:    o.environ,
	})
	if err != nil {
		return config.Config{}, err
	}
	if o.LogLevel == "" && o.LogFormat == "" {
		return cfg, nil
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	return cfg, cfg.Validate()
}
