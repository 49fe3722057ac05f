package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"jobrater/internal/models"
	"jobrater/internal/rating"
)

// Card is one unparsed listing row handed from the listing phase to
// the extraction phase.
type Card interface {
	// Entry parses the card, applying documented defaults for optional
	// fields and failing when title or posting URL is absent.
	Entry() (models.ListingEntry, error)
}

// Source abstracts the scrape target. All markup-coupled parsing stays
// behind it, so a site redesign touches one implementation and tests
// can swap in a fake.
type Source interface {
	FetchCards(ctx context.Context, url string) ([]Card, error)
	FetchDescription(ctx context.Context, url string) (string, error)
}

// Stats counts per-stage failures. Failures never abort a batch or
// surface to the caller; these counters and the log are the only place
// they are visible.
type Stats struct {
	ListingFailures int64
	EntryFailures   int64
}

const (
	defaultListWorkers  = 10
	defaultEntryWorkers = 32
)

// Pipeline runs the two-phase fetch-and-rate fan-out: listing pages
// first, then every discovered card.
type Pipeline struct {
	source       Source
	listWorkers  int
	entryWorkers int
	log          zerolog.Logger
}

func New(source Source, listWorkers, entryWorkers int, log zerolog.Logger) *Pipeline {
	if listWorkers <= 0 {
		listWorkers = defaultListWorkers
	}
	if entryWorkers <= 0 {
		entryWorkers = defaultEntryWorkers
	}
	return &Pipeline{
		source:       source,
		listWorkers:  listWorkers,
		entryWorkers: entryWorkers,
		log:          log,
	}
}

// Run fetches every search URL, flattens the listing cards, then
// enriches and rates each card. TotalCount is the flattened card
// count; cards whose extraction fails are dropped from Records without
// reducing it, so TotalCount >= len(Records) always holds. A zero card
// count short-circuits before the extraction phase.
func (p *Pipeline) Run(ctx context.Context, urls []string, keywords []string) (models.SearchResult, Stats) {
	var stats Stats

	cards := p.collectCards(ctx, urls, &stats)
	result := models.SearchResult{
		Records:    []models.JobRecord{},
		TotalCount: len(cards),
	}
	if len(cards) == 0 {
		p.logStats(stats, 0)
		return result, stats
	}

	result.Records = p.extractAll(ctx, cards, keywords, &stats)
	p.logStats(stats, len(result.Records))
	return result, stats
}

func (p *Pipeline) collectCards(ctx context.Context, urls []string, stats *Stats) []Card {
	targets := make(chan string)
	pages := make(chan []Card, len(urls))

	workers := p.listWorkers
	if workers > len(urls) {
		workers = len(urls)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for target := range targets {
				cards, err := p.source.FetchCards(ctx, target)
				if err != nil {
					atomic.AddInt64(&stats.ListingFailures, 1)
					p.log.Debug().Err(err).Str("url", target).Msg("listing fetch failed")
					continue
				}
				pages <- cards
			}
		}()
	}

	for _, target := range urls {
		targets <- target
	}
	close(targets)
	wg.Wait()
	close(pages)

	var flattened []Card
	for cards := range pages {
		flattened = append(flattened, cards...)
	}
	return flattened
}

func (p *Pipeline) extractAll(ctx context.Context, cards []Card, keywords []string, stats *Stats) []models.JobRecord {
	pending := make(chan Card)
	extracted := make(chan models.JobRecord, len(cards))

	workers := p.entryWorkers
	if workers > len(cards) {
		workers = len(cards)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for card := range pending {
				record, err := p.extract(ctx, card, keywords)
				if err != nil {
					atomic.AddInt64(&stats.EntryFailures, 1)
					p.log.Debug().Err(err).Msg("entry extraction failed")
					continue
				}
				extracted <- record
			}
		}()
	}

	for _, card := range cards {
		pending <- card
	}
	close(pending)
	wg.Wait()
	close(extracted)

	records := make([]models.JobRecord, 0, len(cards))
	for record := range extracted {
		records = append(records, record)
	}
	return records
}

// extract builds the final record for one card: parse the listing
// fields, fetch the posting description, rate it against the keywords.
func (p *Pipeline) extract(ctx context.Context, card Card, keywords []string) (models.JobRecord, error) {
	entry, err := card.Entry()
	if err != nil {
		return models.JobRecord{}, err
	}

	description, err := p.source.FetchDescription(ctx, entry.URL)
	if err != nil {
		return models.JobRecord{}, err
	}

	return models.JobRecord{
		Title:       entry.Title,
		Company:     entry.Company,
		DaysPosted:  entry.DayPosted,
		URL:         entry.URL,
		Rating:      rating.Rate(keywords, description),
		Location:    entry.Location,
		Description: description,
	}, nil
}

func (p *Pipeline) logStats(stats Stats, records int) {
	p.log.Info().
		Int64("listing_failures", stats.ListingFailures).
		Int64("entry_failures", stats.EntryFailures).
		Int("records", records).
		Msg("pipeline finished")
}
