package cmd

import (
	"context"
	"encoding/json"
)

type DescribeCmd struct {
	URL     string `arg:"" help:"Posting URL."`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBRATER_PROXIES"`
}

// Run fetches one posting description and prints it as JSON. Fetch
// failures degrade to an empty object, mirroring the HTTP endpoint.
func (d *DescribeCmd) Run(ctx *Context) error {
	source, err := newSource(ctx, d.Proxies)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")

	description, err := source.FetchDescription(context.Background(), d.URL)
	if err != nil {
		ctx.UI.Warnf("description fetch failed: %v", err)
		return enc.Encode(struct{}{})
	}
	return enc.Encode(map[string]string{"description": description})
}
