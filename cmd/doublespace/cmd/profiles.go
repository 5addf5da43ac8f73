package cmd

import (
	"fmt"

	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/piwi3910/DoubleSpace/internal/project"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List, export and import layout profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and custom profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfilesList,
}

var profilesExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Write a profile to a JSON or YAML file",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfilesExport,
}

var profilesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add or replace a custom profile from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesImport,
}

func init() {
	profilesCmd.AddCommand(profilesListCmd, profilesExportCmd, profilesImportCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, p := range model.AllProfiles() {
		kind := "custom"
		if p.IsBuiltIn {
			kind = "built-in"
		}
		fmt.Fprintf(out, "%-18s %-11s %-8s %-8s on %-18s %s\n",
			p.Name, p.Mode, kind, p.Tile.Name, joinPapers(p), p.Description)
	}
	return nil
}

func joinPapers(p model.LayoutProfile) string {
	s := ""
	for i, n := range p.PaperChoices() {
		if i > 0 {
			s += "/"
		}
		s += n
	}
	return s
}

func runProfilesExport(cmd *cobra.Command, args []string) error {
	profile, err := model.GetProfile(args[0])
	if err != nil {
		return err
	}
	if err := project.ExportProfile(args[1], profile); err != nil {
		return fmt.Errorf("failed to export profile: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", profile.Name, args[1])
	return nil
}

func runProfilesImport(cmd *cobra.Command, args []string) error {
	profile, err := project.ImportProfile(args[0])
	if err != nil {
		return err
	}

	model.CustomProfiles = project.UpsertProfile(model.CustomProfiles, profile)
	if err := project.SaveCustomProfiles(project.DefaultProfilesPath(), model.CustomProfiles); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported profile %s (%s)\n", profile.Name, profile.Mode)
	return nil
}
