package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintHistoryStats outputs summary statistics for the history store.
func PrintHistoryStats(stats schema.HistoryStats, dbPath string, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			out := struct {
				Database      string `json:"database"`
				TotalCommands int    `json:"total_commands"`
				Oldest        string `json:"oldest,omitempty"`
				Newest        string `json:"newest,omitempty"`
			}{Database: dbPath, TotalCommands: stats.TotalCommands}
			if !stats.Oldest.IsZero() {
				out.Oldest = stats.Oldest.Format(contract.DateTimeFormat)
			}
			if !stats.Newest.IsZero() {
				out.Newest = stats.Newest.Format(contract.DateTimeFormat)
			}
			return writeJSON(w, out)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "History Database: %s\n", dbPath)
		fmt.Fprintf(w, "Total Commands: %d\n", stats.TotalCommands)
		if stats.TotalCommands > 0 {
			fmt.Fprintf(w, "Oldest: %s\n", stats.Oldest.Format(contract.DateTimeFormat))
			fmt.Fprintf(w, "Newest: %s\n", stats.Newest.Format(contract.DateTimeFormat))
		}
		return nil
	}, "Wrote stats")
}

// PrintUnknowns outputs classify store records, dispatching based on
// the output format configured.
func PrintUnknowns(records []schema.UnknownRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeUnknownsJSON(w, records)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeUnknownsCSV(w, records)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeUnknownsTable(w, records, cfg)
		}, "Wrote table")
	}
	return nil
}

// writeUnknownsTable generates and writes the human-readable table.
func writeUnknownsTable(w io.Writer, records []schema.UnknownRecord, cfg *contract.Config) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No unknown executables recorded.")
		fmt.Fprintln(w, "Run 'fundcli unknowns investigate' to probe unknowns from your history.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Executable", "Type", "Classification", "Path", "Notes"})

	pathWidth := getTerminalWidth(cfg) / 3
	var data [][]string
	for i := range records {
		rec := &records[i]
		name := rec.Executable
		if cfg.UseColors {
			name = contract.NameColor.Sprint(name)
		}
		notes := rec.UserNotes
		if notes == "" && rec.CopyrightFound != "" {
			notes = truncateText(rec.CopyrightFound, 40)
		}
		data = append(data, []string{
			name,
			rec.FileType,
			string(rec.Classification),
			truncateText(rec.Path, pathWidth),
			notes,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d records\n", len(records))
	return nil
}

// writeUnknownsCSV writes one row per record.
func writeUnknownsCSV(w io.Writer, records []schema.UnknownRecord) error {
	header := []string{"executable", "path", "file_type", "classification", "copyright", "suggested_project", "notes"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i := range records {
			rec := &records[i]
			row := []string{
				rec.Executable,
				rec.Path,
				rec.FileType,
				string(rec.Classification),
				rec.CopyrightFound,
				rec.SuggestedProject,
				rec.UserNotes,
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// unknownJSON is one classify record in JSON output.
type unknownJSON struct {
	Executable       string `json:"executable"`
	Path             string `json:"path,omitempty"`
	FileType         string `json:"file_type"`
	Classification   string `json:"classification"`
	CopyrightFound   string `json:"copyright_found,omitempty"`
	HelpText         string `json:"help_text,omitempty"`
	SuggestedProject string `json:"suggested_project,omitempty"`
	UserNotes        string `json:"user_notes,omitempty"`
}

// writeUnknownsJSON writes the machine-readable records.
func writeUnknownsJSON(w io.Writer, records []schema.UnknownRecord) error {
	out := make([]unknownJSON, 0, len(records))
	for i := range records {
		rec := &records[i]
		out = append(out, unknownJSON{
			Executable:       rec.Executable,
			Path:             rec.Path,
			FileType:         rec.FileType,
			Classification:   string(rec.Classification),
			CopyrightFound:   rec.CopyrightFound,
			HelpText:         rec.HelpText,
			SuggestedProject: rec.SuggestedProject,
			UserNotes:        rec.UserNotes,
		})
	}
	return writeJSON(w, out)
}

// PrintAliases outputs resolved shell alias mappings.
func PrintAliases(mappings []schema.AliasMapping, cfg *contract.Config) error {
	if cfg.Output == schema.CSVOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"alias", "expansion", "executable", "project_id"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, mapping := range mappings {
					row := []string{mapping.Alias, mapping.Expansion, mapping.Executable, mapping.ProjectID}
					if err := csvWriter.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	}
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			type aliasJSON struct {
				Alias      string `json:"alias"`
				Expansion  string `json:"expansion"`
				Executable string `json:"executable"`
				ProjectID  string `json:"project_id,omitempty"`
			}
			out := make([]aliasJSON, 0, len(mappings))
			for _, mapping := range mappings {
				out = append(out, aliasJSON(mapping))
			}
			return writeJSON(w, out)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if len(mappings) == 0 {
			fmt.Fprintln(w, "No aliases resolved. Only bash, zsh and fish are probed.")
			return nil
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Alias", "Expansion", "Executable", "Project"})

		expansionWidth := getTerminalWidth(cfg) / 3
		var data [][]string
		known := 0
		for _, mapping := range mappings {
			if mapping.ProjectID != "" {
				known++
			}
			data = append(data, []string{
				mapping.Alias,
				truncateText(mapping.Expansion, expansionWidth),
				mapping.Executable,
				mapping.ProjectID,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}

		fmt.Fprintf(w, "%d aliases, %d map to known projects\n", len(mappings), known)
		return nil
	}, "Wrote table")
}
