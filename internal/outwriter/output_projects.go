package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintProjects outputs the full project listing, dispatching based on
// the output format configured.
func PrintProjects(projects []*schema.Project, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectsJSON(w, projects)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectsCSV(w, projects)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectsTable(w, projects, cfg)
		}, "Wrote table")
	}
	return nil
}

// PrintProjectDetails outputs search results one project at a time,
// with their executables and donation URL spelled out.
func PrintProjectDetails(projects []*schema.Project, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		for _, project := range projects {
			name := project.Name
			if cfg.UseColors {
				name = contract.NameColor.Sprint(name)
			}
			fmt.Fprintf(w, "\n%s (%s)\n", name, project.ID)
			if project.Description != "" {
				fmt.Fprintf(w, "  %s\n", project.Description)
			}
			fmt.Fprintf(w, "  Executables: %s\n", strings.Join(project.Executables, ", "))
			if url := project.PrimaryDonationURL(); url != "" {
				fmt.Fprintf(w, "  Donate: %s\n", url)
			}
		}
		return nil
	}, "Wrote details")
}

// writeProjectsTable generates and writes the human-readable listing.
func writeProjectsTable(w io.Writer, projects []*schema.Project, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Executables", "Donate At"})

	exeWidth := getTerminalWidth(cfg) / 3
	var data [][]string
	for _, project := range projects {
		id := project.ID
		if cfg.UseColors {
			id = contract.NameColor.Sprint(id)
		}
		data = append(data, []string{
			id,
			project.Name,
			truncateText(strings.Join(project.Executables, ", "), exeWidth),
			project.PrimaryDonationURL(),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d projects known\n", len(projects))
	return nil
}

// writeProjectsCSV writes one row per project.
func writeProjectsCSV(w io.Writer, projects []*schema.Project) error {
	header := []string{"id", "name", "description", "executables", "donate_url"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, project := range projects {
			row := []string{
				project.ID,
				project.Name,
				project.Description,
				strings.Join(project.Executables, " "),
				project.PrimaryDonationURL(),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// projectJSON is one project in JSON output.
type projectJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Executables []string `json:"executables"`
	DonateURL   string   `json:"donate_url,omitempty"`
	GitHub      string   `json:"github,omitempty"`
	Website     string   `json:"website,omitempty"`
}

// writeProjectsJSON writes the machine-readable listing.
func writeProjectsJSON(w io.Writer, projects []*schema.Project) error {
	out := make([]projectJSON, 0, len(projects))
	for _, project := range projects {
		out = append(out, projectJSON{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
			Executables: project.Executables,
			DonateURL:   project.PrimaryDonationURL(),
			GitHub:      project.GitHub,
			Website:     project.Website,
		})
	}
	return writeJSON(w, out)
}
