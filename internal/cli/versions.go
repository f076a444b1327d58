package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alert-packet/internal/app"
)

type versionsOptions struct {
	SchemaRoot   string
	KeepNullable []string
}

func newVersionsCommand() *cobra.Command {
	opts := versionsOptions{}
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Discover and resolve every schema version under a root",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersions(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.SchemaRoot, "schema-root", "", "Directory holding MAJOR/MINOR schema trees")
	cmd.Flags().StringSliceVar(&opts.KeepNullable, "keep-null", nil, "Field names whose null union survives resolution")
	_ = viper.BindPFlag("schema_root", cmd.Flags().Lookup("schema-root"))
	_ = viper.BindPFlag("keep_null", cmd.Flags().Lookup("keep-null"))
	return cmd
}

func runVersions(ctx context.Context, cmd *cobra.Command, opts versionsOptions) error {
	service := newAppService()
	_, result, err := service.LoadRegistry(ctx, app.LoadRegistryRequest{
		SchemaRoot:   resolveString(cmd, opts.SchemaRoot, "schema_root", "schema-root"),
		KeepNullable: resolveStrings(cmd, opts.KeepNullable, "keep_null", "keep-null"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("versions: %s\n", strings.Join(result.Versions, ", "))
	fmt.Printf("schema ids: %d\n", len(result.IDs))
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
