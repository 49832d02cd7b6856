package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// PrintLinks outputs the generated donation links, dispatching based
// on the output format configured.
func PrintLinks(links []schema.DonationLink, total decimal.Decimal, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLinksJSON(w, links, total)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLinksCSV(w, links)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLinksTable(w, links, total, cfg)
		}, "Wrote table")
	}
	return nil
}

// writeLinksTable generates and writes the human-readable link list.
func writeLinksTable(w io.Writer, links []schema.DonationLink, total decimal.Decimal, cfg *contract.Config) error {
	fmt.Fprintf(w, "Donation Links (total $%s)\n\n", total.StringFixed(2))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Project", "Amount", "Platform", "Link"})

	urlWidth := getTerminalWidth(cfg) / 2
	var data [][]string
	for _, link := range links {
		platform := link.Platform
		if link.IsPrefilled {
			platform += " (pre-filled)"
		}
		url := link.URL
		if cfg.UseColors {
			url = contract.LinkColor.Sprint(truncateText(url, urlWidth))
		} else {
			url = truncateText(url, urlWidth)
		}
		data = append(data, []string{
			link.ProjectName,
			contract.FormatAmount(link.Amount, false, cfg.UseColors),
			platform,
			url,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nAmounts are pre-filled where the platform supports it.")
	return nil
}

// writeLinksCSV writes one row per donation link.
func writeLinksCSV(w io.Writer, links []schema.DonationLink) error {
	header := []string{"project", "amount", "platform", "prefilled", "url"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, link := range links {
			row := []string{
				link.ProjectName,
				link.Amount.StringFixed(2),
				link.Platform,
				strconv.FormatBool(link.IsPrefilled),
				link.URL,
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// linkJSON is one donation link in JSON output.
type linkJSON struct {
	Project   string `json:"project"`
	Amount    string `json:"amount"`
	Platform  string `json:"platform"`
	Prefilled bool   `json:"prefilled"`
	URL       string `json:"url"`
}

// writeLinksJSON writes the machine-readable link list.
func writeLinksJSON(w io.Writer, links []schema.DonationLink, total decimal.Decimal) error {
	out := struct {
		TotalAmount string     `json:"total_amount"`
		Links       []linkJSON `json:"links"`
	}{TotalAmount: total.StringFixed(2)}

	for _, link := range links {
		out.Links = append(out.Links, linkJSON{
			Project:   link.ProjectName,
			Amount:    link.Amount.StringFixed(2),
			Platform:  link.Platform,
			Prefilled: link.IsPrefilled,
			URL:       link.URL,
		})
	}
	return writeJSON(w, out)
}
