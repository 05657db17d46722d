package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/telemetry"
)

const app = "screen"

// newRootCmd builds the command tree around v so tests get an isolated viper.
func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           app,
		Short:         "screen scores resumes against job roles and a job description",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := readConfig(v, cfgFile); err != nil {
				return err
			}
			logger, err := telemetry.New(v.GetBool("json"), v.GetBool("debug"))
			if err != nil {
				return fmt.Errorf("creating a logger: %w", err)
			}
			telemetry.SetLogger(logger)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is screen.yaml in current directory, if present)")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json output and json logging")
	root.PersistentFlags().String("taxonomy", "", "role taxonomy YAML (default is the embedded taxonomy)")
	root.PersistentFlags().String("embedder", "", "embedding provider: local, openai or gemini")

	for _, name := range []string{"debug", "json", "taxonomy", "embedder"} {
		_ = v.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}
	v.SetEnvPrefix("SCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(newAnalyzeCmd(v), newRolesCmd(v))
	return root
}

func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}
	v.AddConfigPath(".")
	v.SetConfigName(app)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// loadConfig merges the environment config with CLI overrides.
func loadConfig(v *viper.Viper) config.Config {
	cfg := config.Load()
	if path := strings.TrimSpace(v.GetString("taxonomy")); path != "" {
		cfg.TaxonomyPath = path
	}
	if provider := strings.TrimSpace(v.GetString("embedder")); provider != "" {
		cfg.EmbeddingProvider = strings.ToLower(provider)
	}
	if mode := strings.TrimSpace(v.GetString("match-mode")); mode != "" {
		cfg.SkillMatchMode = mode
	}
	if year := v.GetInt("reference-year"); year > 0 {
		cfg.ReferenceYear = year
	}
	return cfg
}
