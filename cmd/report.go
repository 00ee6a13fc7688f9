package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print stored leads",
}

var reportPersonCmd = &cobra.Command{
	Use:   "person",
	Short: "Show one person with company and outreach history",
	RunE:  runReportPerson,
}

var reportRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently stored people",
	RunE:  runReportRecent,
}

var reportCompaniesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List stored companies",
	RunE:  runReportCompanies,
}

func init() {
	reportCmd.PersistentFlags().String("format", "json", "output format: json or yaml")

	reportPersonCmd.Flags().String("profile", "", "LinkedIn profile URL (required)")
	reportPersonCmd.MarkFlagRequired("profile")
	reportRecentCmd.Flags().Int("limit", 20, "maximum rows")
	reportCompaniesCmd.Flags().Int("limit", 20, "maximum rows")

	reportCmd.AddCommand(reportPersonCmd, reportRecentCmd, reportCompaniesCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportPerson(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("store"); err != nil {
		return err
	}

	profile, _ := cmd.Flags().GetString("profile")
	format, _ := cmd.Flags().GetString("format")

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	person, err := st.GetPersonByProfile(ctx, profile)
	if err != nil {
		return err
	}
	if person == nil {
		return eris.Errorf("report: no person stored for %s", profile)
	}

	outreach, err := st.ListOutreach(ctx, person.LinkedInProfile)
	if err != nil {
		return err
	}

	return printReport(format, struct {
		Person   *model.PersonRecord     `json:"person" yaml:"person"`
		Outreach []model.OutreachMessage `json:"outreach,omitempty" yaml:"outreach,omitempty"`
	}{person, outreach})
}

func runReportRecent(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("store"); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	people, err := st.ListPeople(ctx, limit)
	if err != nil {
		return err
	}
	return printReport(format, people)
}

func runReportCompanies(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("store"); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	companies, err := st.ListCompanies(ctx, limit)
	if err != nil {
		return err
	}
	return printReport(format, companies)
}

func printReport(format string, body any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(body); err != nil {
			return eris.Wrap(err, "report: encode yaml")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(body); err != nil {
			return eris.Wrap(err, "report: encode json")
		}
		return nil
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
}
