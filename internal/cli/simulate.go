package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alert-packet/internal/app"
)

type simulateOptions struct {
	SchemaRoot   string
	Version      string
	Count        int
	Seed         uint64
	KeepNullable []string
	SuppressNull []string
	ArrayCounts  map[string]int
	Output       string
}

func newSimulateCommand() *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate schema-conformant synthetic alerts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.SchemaRoot, "schema-root", "", "Directory holding MAJOR/MINOR schema trees")
	cmd.Flags().StringVar(&opts.Version, "schema-version", "", "Schema version to use (defaults to latest)")
	cmd.Flags().IntVar(&opts.Count, "count", 1, "Number of alerts to generate")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "Random seed for reproducible output")
	cmd.Flags().StringSliceVar(&opts.KeepNullable, "keep-null", nil, "Field names whose null union survives resolution")
	cmd.Flags().StringSliceVar(&opts.SuppressNull, "suppress-null", nil, "Nullable field names forced to null")
	cmd.Flags().StringToIntVar(&opts.ArrayCounts, "array-count", nil, "Element count per array field (name=count)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Container file path for the generated alerts")
	_ = viper.BindPFlag("schema_root", cmd.Flags().Lookup("schema-root"))
	_ = viper.BindPFlag("schema_version", cmd.Flags().Lookup("schema-version"))
	_ = viper.BindPFlag("count", cmd.Flags().Lookup("count"))
	_ = viper.BindPFlag("seed", cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("keep_null", cmd.Flags().Lookup("keep-null"))
	_ = viper.BindPFlag("suppress_null", cmd.Flags().Lookup("suppress-null"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runSimulate(ctx context.Context, cmd *cobra.Command, opts simulateOptions) error {
	service := newAppService()
	result, err := service.Simulate(ctx, app.SimulateRequest{
		SchemaRoot:   resolveString(cmd, opts.SchemaRoot, "schema_root", "schema-root"),
		Version:      resolveString(cmd, opts.Version, "schema_version", "schema-version"),
		Count:        resolveInt(cmd, opts.Count, "count", "count"),
		Seed:         resolveUint64(cmd, opts.Seed, "seed", "seed"),
		KeepNullable: resolveStrings(cmd, opts.KeepNullable, "keep_null", "keep-null"),
		SuppressNull: resolveStrings(cmd, opts.SuppressNull, "suppress_null", "suppress-null"),
		ArrayCounts:  resolveIntMap(cmd, opts.ArrayCounts, "array_count", "array-count"),
		OutputPath:   resolveString(cmd, opts.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("generated %d alerts for schema %s (id %s)\n", result.Generated, result.Version, result.SchemaID)
	if result.OutputPath != "" {
		fmt.Printf("wrote container file: %s\n", result.OutputPath)
	}
	return nil
}

func resolveUint64(cmd *cobra.Command, value uint64, key string, flagName string) uint64 {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetUint64(key)
}

// resolveIntMap falls back to a string map from the config file, where
// counts arrive as strings.
func resolveIntMap(cmd *cobra.Command, values map[string]int, key string, flagName string) map[string]int {
	if cmd != nil && flagChanged(cmd, flagName) {
		return values
	}
	raw := viper.GetStringMapString(key)
	if len(raw) == 0 {
		return values
	}
	out := make(map[string]int, len(raw))
	for name, text := range raw {
		count, err := strconv.Atoi(text)
		if err != nil {
			continue
		}
		out[name] = count
	}
	return out
}
