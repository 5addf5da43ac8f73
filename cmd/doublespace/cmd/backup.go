package cmd

import (
	"fmt"

	"github.com/piwi3910/DoubleSpace/internal/config"
	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/piwi3910/DoubleSpace/internal/project"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Save or restore settings, inventory and custom profiles",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Write all settings to one JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace settings, inventory and custom profiles from a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRestore,
}

func init() {
	backupCmd.AddCommand(backupCreateCmd, backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	stored, err := project.LoadAppConfig(config.Path())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	inv, err := project.LoadInventory(project.DefaultInventoryPath())
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	if err := project.ExportAllData(args[0], stored, inv, model.CustomProfiles); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", args[0])
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	backup, err := project.ImportAllData(args[0])
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(config.Path(), backup.Config); err != nil {
		return fmt.Errorf("failed to restore config: %w", err)
	}
	if err := project.SaveInventory(project.DefaultInventoryPath(), backup.Inventory); err != nil {
		return fmt.Errorf("failed to restore inventory: %w", err)
	}
	if err := project.SaveCustomProfiles(project.DefaultProfilesPath(), backup.Profiles); err != nil {
		return fmt.Errorf("failed to restore profiles: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s (created %s)\n", args[0], backup.CreatedAt)
	return nil
}
