package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"jobrater/internal/export"
	"jobrater/internal/models"
	"jobrater/internal/scraper"
)

type SearchCmd struct {
	Params string `arg:"" optional:"" help:"Search parameters as one JSON object: {\"titles\": [...], \"plavra\": [...], \"time_period\": \"past week\", \"location\": \"Brazil\"}."`

	ParamsFile string `help:"Path to a JSON file with the search parameters."`
	Titles     string `help:"Comma-separated job titles (alternative to the JSON argument)."`
	Plavra     string `help:"Comma-separated rating keywords."`
	TimePeriod string `help:"Time window: 'past 24 hours', 'past week', 'past month', 'any time'." default:"any time"`
	Location   string `help:"Job location." env:"JOBRATER_DEFAULT_LOCATION"`
	Format     string `help:"Output format: json, table, csv, tsv, md." enum:",json,table,csv,tsv,md" default:""`
	Links      string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output     string `name:"output" short:"o" help:"Write output to a file."`
	Proxies    string `help:"Comma-separated proxy URLs." env:"JOBRATER_PROXIES"`
}

func (s *SearchCmd) Run(ctx *Context) error {
	request, err := s.resolveRequest()
	if err != nil {
		return err
	}

	source, err := newSource(ctx, s.Proxies)
	if err != nil {
		return err
	}
	pipe := newPipeline(ctx, source)

	result, _ := pipe.Run(context.Background(), scraper.SearchURLs(request), request.Plavra)

	writer := ctx.Out
	if s.Output != "" {
		file, err := os.Create(s.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	format := s.resolveFormat(ctx)
	opts := export.WriteOptions{
		ColorEnabled: ctx.UI != nil && ctx.UI.ColorEnabled && s.Output == "",
		LinkStyle:    export.LinkStyle(s.Links),
	}
	if err := export.WriteResult(writer, result, format, opts); err != nil {
		return err
	}

	fmt.Fprintf(ctx.Err, "summary: records=%d total=%d\n", len(result.Records), result.TotalCount)
	return nil
}

// resolveRequest builds the search request from the JSON argument, the
// params file, or the individual flags, in that order of precedence.
func (s *SearchCmd) resolveRequest() (models.SearchRequest, error) {
	var request models.SearchRequest

	switch {
	case strings.TrimSpace(s.Params) != "":
		if err := json.Unmarshal([]byte(s.Params), &request); err != nil {
			return request, fmt.Errorf("parse params: %w", err)
		}
	case strings.TrimSpace(s.ParamsFile) != "":
		data, err := os.ReadFile(s.ParamsFile)
		if err != nil {
			return request, fmt.Errorf("read --params-file: %w", err)
		}
		if err := json.Unmarshal(data, &request); err != nil {
			return request, fmt.Errorf("parse --params-file %q: %w", s.ParamsFile, err)
		}
	default:
		request = models.SearchRequest{
			Titles:     splitList(s.Titles),
			Plavra:     splitList(s.Plavra),
			TimePeriod: s.TimePeriod,
			Location:   s.Location,
		}
	}

	if len(request.Titles) == 0 {
		return request, fmt.Errorf("at least one job title is required")
	}
	return request, nil
}

func (s *SearchCmd) resolveFormat(ctx *Context) export.Format {
	if ctx.PlainText {
		return export.FormatTSV
	}
	if ctx.JSONOutput || s.Format == "" {
		return export.FormatJSON
	}
	return export.Format(s.Format)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
