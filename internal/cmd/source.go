package cmd

import (
	"time"

	"jobrater/internal/config"
	"jobrater/internal/network"
	"jobrater/internal/pipeline"
	"jobrater/internal/scraper"
)

const proxyBanWindow = 10 * time.Minute

// newSource wires the shared HTTP client (with optional proxy
// rotation) into the LinkedIn scraper using the configured pacing
// delays and timeout.
func newSource(ctx *Context, proxiesFlag string) (*scraper.LinkedIn, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, proxyBanWindow)
		if err != nil {
			return nil, err
		}
	}

	client, err := network.NewClient(rotator, ctx.Config.Timeout())
	if err != nil {
		return nil, err
	}

	delays := scraper.Delays{
		Listing:   ctx.Config.ListingDelay(),
		DetailMin: ctx.Config.DetailDelayMin(),
		DetailMax: ctx.Config.DetailDelayMax(),
	}
	return scraper.NewLinkedIn(client, delays, ctx.Logger), nil
}

func newPipeline(ctx *Context, source pipeline.Source) *pipeline.Pipeline {
	return pipeline.New(source, ctx.Config.ListWorkers, ctx.Config.EntryWorkers, ctx.Logger)
}
