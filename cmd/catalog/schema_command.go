package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"videocatalog/internal/store"
)

func newSchemaCommand(ctx *commandContext) *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Database schema maintenance",
	}
	schemaCmd.AddCommand(newSchemaResetCommand(ctx))
	schemaCmd.AddCommand(newSchemaVersionCommand(ctx))
	return schemaCmd
}

func newSchemaResetCommand(ctx *commandContext) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every table and recreate the schema",
		Long:  "Drop every table and recreate the schema. All stored videos are deleted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("schema reset deletes all videos; rerun with --yes to confirm")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cfg)
			if err != nil {
				return err
			}
			// Opening with RecreateOnOpen bypasses the version check, so a
			// mismatched database can still be reset.
			resetCfg := *cfg
			resetCfg.Database.RecreateOnOpen = true
			st, err := store.Open(cmd.Context(), &resetCfg, logger)
			if err != nil {
				return fmt.Errorf("reset schema: %w", err)
			}
			defer st.Close()

			version, err := st.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{"reset": true, "schema_version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema recreated at version %d\n", version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm deletion of all data")
	return cmd
}

func newSchemaVersionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stored schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			version, err := st.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{"schema_version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d\n", version)
			return nil
		},
	}
}
