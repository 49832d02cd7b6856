package linkgen

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/fragmede/fundcli/schema"
)

// reportTitle heads both report formats.
const reportTitle = "Donation Recommendations"

// htmlReportTemplate renders the clickable HTML report.
var htmlReportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        h1 { color: #333; }
        table { width: 100%; border-collapse: collapse; margin: 1rem 0; }
        th, td { padding: 0.75rem; text-align: left; border-bottom: 1px solid #ddd; }
        th { background: #f5f5f5; }
        a { color: #0066cc; }
        .total { font-size: 1.25rem; font-weight: bold; margin: 1rem 0; }
        .note { color: #666; font-size: 0.9rem; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <p class="total">Total: ${{.Total}}</p>
    <table>
        <thead>
            <tr>
                <th>Project</th>
                <th>Amount</th>
                <th>Platform</th>
                <th>Action</th>
            </tr>
        </thead>
        <tbody>
{{- range .Links}}
            <tr>
                <td>{{.ProjectName}}</td>
                <td>${{.Amount.StringFixed 2}}</td>
                <td>{{.Platform}}{{if .IsPrefilled}} &#10003;{{end}}</td>
                <td><a href="{{.URL}}" target="_blank">Donate</a></td>
            </tr>
{{- end}}
        </tbody>
    </table>
    <p class="note">&#10003; = amount pre-filled in donation form</p>
    <hr>
    <p class="note">Generated by <a href="https://github.com/fragmede/fundcli">fundcli</a></p>
</body>
</html>
`))

// reportData feeds the HTML template.
type reportData struct {
	Title string
	Total string
	Links []schema.DonationLink
}

// WriteReport renders the distribution to path. The extension picks
// the format: .html and .htm get the HTML report, everything else
// gets markdown.
func WriteReport(path string, result *schema.DistributionResult) error {
	var content string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		var sb strings.Builder
		if err := htmlReportTemplate.Execute(&sb, reportData{
			Title: reportTitle,
			Total: result.TotalAmount.StringFixed(2),
			Links: GenerateLinks(result),
		}); err != nil {
			return fmt.Errorf("render html report: %w", err)
		}
		content = sb.String()
	default:
		content = MarkdownReport(result)
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

// MarkdownReport renders the distribution as a markdown table with
// donation links.
func MarkdownReport(result *schema.DistributionResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", reportTitle)
	fmt.Fprintf(&sb, "**Total: $%s**\n\n", result.TotalAmount.StringFixed(2))
	sb.WriteString("| Project | Amount | Platform | Link |\n")
	sb.WriteString("|---------|--------|----------|------|\n")

	for _, link := range GenerateLinks(result) {
		prefillNote := ""
		if link.IsPrefilled {
			prefillNote = " (pre-filled)"
		}
		fmt.Fprintf(&sb, "| %s | $%s | %s%s | [Donate](%s) |\n",
			link.ProjectName, link.Amount.StringFixed(2), link.Platform, prefillNote, link.URL)
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString("*Generated by [fundcli](https://github.com/fragmede/fundcli)*\n")
	return sb.String()
}
