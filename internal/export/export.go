package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/muesli/termenv"

	"jobrater/internal/models"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatMarkdown Format = "md"
)

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

type WriteOptions struct {
	ColorEnabled bool
	LinkStyle    LinkStyle
}

// WriteResult renders a search result. JSON emits the full
// {records, totalCount} object; the tabular formats list the records
// and elide the (often long) description text.
func WriteResult(w io.Writer, result models.SearchResult, format Format, opts WriteOptions) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, result.Records, ',')
	case FormatTSV:
		return writeCSV(w, result.Records, '\t')
	case FormatTable:
		return writeTable(w, result.Records, opts)
	case FormatMarkdown:
		return writeMarkdown(w, result.Records)
	default:
		return writeJSON(w, result)
	}
}

func writeJSON(w io.Writer, result models.SearchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeCSV(w io.Writer, records []models.JobRecord, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write([]string{"title", "company", "location", "rating", "daysPosted", "url"}); err != nil {
		return err
	}
	for _, record := range records {
		row := []string{
			record.Title,
			record.Company,
			record.Location,
			strconv.Itoa(record.Rating),
			dayPostedText(record.DaysPosted),
			record.URL,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, records []models.JobRecord, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCOMPANY\tLOCATION\tRATING\tPOSTED\tURL")

	output := termenv.NewOutput(w)
	for _, record := range records {
		link := record.URL
		if opts.LinkStyle == LinkStyleShort {
			link = shortURL(link)
		}
		if opts.ColorEnabled {
			link = output.String(link).Foreground(output.Color("#87CEEB")).String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			record.Title, record.Company, record.Location,
			record.Rating, dayPostedText(record.DaysPosted), link)
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, records []models.JobRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, record := range records {
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", record.Title, record.Company),
			fmt.Sprintf("  Location: %s", record.Location),
			fmt.Sprintf("  Rating: %d/5", record.Rating),
		}
		if record.DaysPosted.Known() {
			lines = append(lines, fmt.Sprintf("  Posted: %s", record.DaysPosted))
		}
		if record.URL != "" {
			lines = append(lines, fmt.Sprintf("  URL: [Open listing](<%s>)", record.URL))
		}
		if record.Description != "" && record.Description != models.NoDescription {
			lines = append(lines, fmt.Sprintf("  Summary: %s", truncate(record.Description, 240)))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func dayPostedText(d models.DayPosted) string {
	if !d.Known() {
		return "-"
	}
	return string(d)
}

func shortURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}
	path := parsed.Path
	if len(path) > 24 {
		path = path[:24] + "..."
	}
	return parsed.Host + path
}

func truncate(value string, max int) string {
	value = strings.TrimSpace(value)
	if max <= 0 || len(value) <= max {
		return value
	}
	return strings.TrimSpace(value[:max]) + "..."
}
