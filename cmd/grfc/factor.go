package main

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/amazingrofa/geofac/engine"
	"github.com/amazingrofa/geofac/internal/artifact"
	"github.com/amazingrofa/geofac/internal/runconfig"
)

var factorCmd = &cobra.Command{
	Use:   "factor N",
	Args:  cobra.ExactArgs(1),
	Short: "Search for a certified factor pair of N",
	Long:  `Loads the run configuration, runs the geometric search against N, and reports the certified factor pair or the reason the search failed.`,
	RunE:  runFactor,
}

func init() {
	factorCmd.Flags().Bool("allow-whitelisted-challenge", false, "bypass the operational gate for the named 127-bit challenge")
	factorCmd.Flags().String("artifact", "", "write a structured run record (Config, environment fingerprint, result) to this YAML path")
}

func runFactor(cmd *cobra.Command, args []string) error {
	n, ok := new(big.Int).SetString(args[0], 10)
	if !ok {
		return fmt.Errorf("factor: %q is not a valid base-10 integer", args[0])
	}

	file, err := runconfig.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("factor: load config: %w", err)
	}
	if verbose {
		file.Logging.Level = "debug"
	}
	if err := file.Validate(); err != nil {
		return fmt.Errorf("factor: invalid config: %w", err)
	}

	logger := file.Logger()
	cfg := file.EngineConfig()
	if allow, _ := cmd.Flags().GetBool("allow-whitelisted-challenge"); allow {
		cfg.AllowWhitelistedChallenge = true
	}

	logger.Info("starting search", "n", n.String(), "samples", cfg.Samples, "m_span", cfg.MSpan)

	res := engine.Factor(n, cfg)
	observedAt := time.Now().UTC()

	if artifactPath, _ := cmd.Flags().GetString("artifact"); artifactPath != "" {
		rec := artifact.New(res, observedAt)
		data, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("factor: marshal artifact: %w", err)
		}
		if err := os.WriteFile(artifactPath, data, 0644); err != nil {
			return fmt.Errorf("factor: write artifact: %w", err)
		}
	}

	if !res.Success {
		logger.Warn("search failed", "reason", string(res.Reason), "duration", res.Duration.String())
		fmt.Printf("FAILURE: %s\n", res.Reason)
		return nil
	}

	logger.Info("search succeeded", "p", res.P.String(), "q", res.Q.String(), "duration", res.Duration.String())
	fmt.Printf("SUCCESS: p=%s q=%s duration=%s\n", res.P, res.Q, res.Duration)
	return nil
}
