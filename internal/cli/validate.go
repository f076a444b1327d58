package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alert-packet/internal/app"
)

type validateOptions struct {
	SchemaRoot   string
	Version      string
	KeepNullable []string
	Packets      string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Round-trip an alert archive against a schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.SchemaRoot, "schema-root", "", "Directory holding MAJOR/MINOR schema trees")
	cmd.Flags().StringVar(&opts.Version, "schema-version", "", "Schema version to validate against (defaults to latest)")
	cmd.Flags().StringSliceVar(&opts.KeepNullable, "keep-null", nil, "Field names whose null union survives resolution")
	cmd.Flags().StringVar(&opts.Packets, "packets", "", "Alert container file to validate")
	_ = viper.BindPFlag("schema_root", cmd.Flags().Lookup("schema-root"))
	_ = viper.BindPFlag("schema_version", cmd.Flags().Lookup("schema-version"))
	_ = viper.BindPFlag("keep_null", cmd.Flags().Lookup("keep-null"))
	_ = viper.BindPFlag("packets", cmd.Flags().Lookup("packets"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.RoundTrip(ctx, app.RoundTripRequest{
		SchemaRoot:   resolveString(cmd, opts.SchemaRoot, "schema_root", "schema-root"),
		Version:      resolveString(cmd, opts.Version, "schema_version", "schema-version"),
		KeepNullable: resolveStrings(cmd, opts.KeepNullable, "keep_null", "keep-null"),
		PacketPath:   resolveString(cmd, opts.Packets, "packets", "packets"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("round-tripped %d/%d alerts against schema %s\n",
		result.Result.MatchCount, result.Result.PacketCount, result.Result.SchemaVersion)
	return nil
}
