package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alert-packet/internal/app"
)

type syncOptions struct {
	SchemaRoot   string
	KeepNullable []string
	RegistryURL  string
	Subject      string
	Username     string
	Password     string
	TimeoutSec   int
	Report       string
}

func newSyncCommand() *cobra.Command {
	opts := syncOptions{}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upload every schema version to a remote registry subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.SchemaRoot, "schema-root", "", "Directory holding MAJOR/MINOR schema trees")
	cmd.Flags().StringSliceVar(&opts.KeepNullable, "keep-null", nil, "Field names whose null union survives resolution")
	cmd.Flags().StringVar(&opts.RegistryURL, "registry-url", "", "Schema registry base URL")
	cmd.Flags().StringVar(&opts.Subject, "subject", "alert-packet", "Registry subject name")
	cmd.Flags().StringVar(&opts.Username, "registry-user", "", "Registry username for basic auth")
	cmd.Flags().StringVar(&opts.Password, "registry-password", "", "Registry password for basic auth")
	cmd.Flags().IntVar(&opts.TimeoutSec, "registry-timeout", 30, "Registry HTTP timeout in seconds (0 = default)")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Write a YAML sync report to this path")
	_ = viper.BindPFlag("schema_root", cmd.Flags().Lookup("schema-root"))
	_ = viper.BindPFlag("keep_null", cmd.Flags().Lookup("keep-null"))
	_ = viper.BindPFlag("registry_url", cmd.Flags().Lookup("registry-url"))
	_ = viper.BindPFlag("subject", cmd.Flags().Lookup("subject"))
	_ = viper.BindPFlag("registry_user", cmd.Flags().Lookup("registry-user"))
	_ = viper.BindPFlag("registry_password", cmd.Flags().Lookup("registry-password"))
	_ = viper.BindPFlag("registry_timeout_sec", cmd.Flags().Lookup("registry-timeout"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	return cmd
}

func runSync(ctx context.Context, cmd *cobra.Command, opts syncOptions) error {
	service := newAppService()
	result, err := service.Sync(ctx, app.SyncRequest{
		SchemaRoot:   resolveString(cmd, opts.SchemaRoot, "schema_root", "schema-root"),
		KeepNullable: resolveStrings(cmd, opts.KeepNullable, "keep_null", "keep-null"),
		RegistryURL:  resolveString(cmd, opts.RegistryURL, "registry_url", "registry-url"),
		Subject:      resolveString(cmd, opts.Subject, "subject", "subject"),
		Username:     resolveString(cmd, opts.Username, "registry_user", "registry-user"),
		Password:     resolveString(cmd, opts.Password, "registry_password", "registry-password"),
		TimeoutSec:   resolveInt(cmd, opts.TimeoutSec, "registry_timeout_sec", "registry-timeout"),
		ReportPath:   resolveString(cmd, opts.Report, "report", "report"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("synced %d schema versions to subject %s\n", len(result.Report.Records), result.Report.Subject)
	return nil
}
