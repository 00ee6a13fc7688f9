package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export people and companies to an XLSX workbook",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("out", "leads.xlsx", "output file path")
	f.Int("limit", 10000, "maximum rows per sheet")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("store"); err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	people, err := st.ListPeople(ctx, limit)
	if err != nil {
		return err
	}
	companies, err := st.ListCompanies(ctx, limit)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	if err := addPeopleSheet(file, people); err != nil {
		return err
	}
	if err := addCompaniesSheet(file, companies); err != nil {
		return err
	}

	if err := file.Save(out); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}

	fmt.Printf("Wrote %d people and %d companies to %s.\n", len(people), len(companies), out)
	return nil
}

func addPeopleSheet(file *xlsx.File, people []model.PersonRecord) error {
	sheet, err := file.AddSheet("People")
	if err != nil {
		return eris.Wrap(err, "export: add people sheet")
	}

	writeRow(sheet, "Profile", "First Name", "Last Name", "Title", "Email",
		"Location", "Connections", "Followers", "Company", "Company Domain",
		"Source", "Query", "Lookup Date")

	for _, p := range people {
		writeRow(sheet,
			p.LinkedInProfile, p.FirstName, p.LastName, p.TitleCurrent, p.Email,
			p.LocationText, intPtrString(p.ConnectionsLinkedIn), intPtrString(p.FollowersLinkedIn),
			p.CompanyName, p.CompanyDomain, p.SourceName, p.SourceQuery, p.LookupDate)
	}
	return nil
}

func addCompaniesSheet(file *xlsx.File, companies []model.CompanyRecord) error {
	sheet, err := file.AddSheet("Companies")
	if err != nil {
		return eris.Wrap(err, "export: add companies sheet")
	}

	writeRow(sheet, "Name", "Legal Form", "Domain", "Website", "Industries",
		"Locations (DE)", "Multinational", "Employees", "Business Model",
		"Products", "Recent News", "Last Enriched")

	for _, c := range companies {
		lastEnriched := ""
		if c.LastEnrichedAt != nil {
			lastEnriched = c.LastEnrichedAt.Format("2006-01-02 15:04:05")
		}
		writeRow(sheet,
			c.Name, c.LegalForm, c.Domain, c.Website,
			strings.Join(c.Industries, "; "), strings.Join(c.LocationsDE, "; "),
			boolPtrString(c.Multinational), intPtrString(c.SizeEmployees),
			strings.Join(c.BusinessModel, "; "), strings.Join(c.Products, "; "),
			strings.Join(c.RecentNews, "; "), lastEnriched)
	}
	return nil
}

func writeRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}

func intPtrString(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func boolPtrString(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "yes"
	}
	return "no"
}
