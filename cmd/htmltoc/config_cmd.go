package main

import "github.com/alnah/go-htmltoc/internal/config"

// runConfig prints the effective configuration (file, then environment) as
// YAML, the same view generate starts from before applying flags.
func runConfig(args []string, env *Environment) error {
	flags, _, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return flagError(err)
	}

	cfg, err := loadEffectiveConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}
