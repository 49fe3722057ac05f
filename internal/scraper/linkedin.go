package scraper

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"jobrater/internal/models"
	"jobrater/internal/network"
	"jobrater/internal/pipeline"
)

var (
	ErrMissingTitle = errors.New("listing card missing title")
	ErrMissingURL   = errors.New("listing card missing posting url")
)

const searchURLFormat = "https://www.linkedin.com/jobs/search?keywords=%s&location=%s%s&position=1&pageNum=0"

// componentEscaper applies the minimal percent-encoding the search
// page expects for keyword and location values.
var componentEscaper = strings.NewReplacer(" ", "%20", ",", "%2C")

// TimeFilter maps a request time-period bucket to the f_TPR query
// fragment. Unrecognized values produce no time filter.
func TimeFilter(period string) string {
	switch period {
	case "past 24 hours":
		return "&f_TPR=r86400"
	case "past week":
		return "&f_TPR=r604800"
	case "past month":
		return "&f_TPR=r2592000"
	default:
		return ""
	}
}

// SearchURLs builds one listing URL per requested title.
func SearchURLs(req models.SearchRequest) []string {
	timeParam := TimeFilter(req.TimePeriod)
	location := componentEscaper.Replace(req.Location)

	urls := make([]string, 0, len(req.Titles))
	for _, title := range req.Titles {
		keywords := componentEscaper.Replace(title)
		urls = append(urls, fmt.Sprintf(searchURLFormat, keywords, location, timeParam))
	}
	return urls
}

// Delays control the pacing inserted around outbound requests: a fixed
// delay after each listing fetch, and a uniform random delay drawn
// from [DetailMin, DetailMax] before and after each detail fetch.
type Delays struct {
	Listing   time.Duration
	DetailMin time.Duration
	DetailMax time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Listing:   time.Second,
		DetailMin: 500 * time.Millisecond,
		DetailMax: 3 * time.Second,
	}
}

// LinkedIn scrapes the guest job-search pages. It is the only
// markup-coupled component: selector changes stay inside this file.
type LinkedIn struct {
	client *network.Client
	delays Delays
	strip  *bluemonday.Policy
	log    zerolog.Logger
}

func NewLinkedIn(client *network.Client, delays Delays, log zerolog.Logger) *LinkedIn {
	return &LinkedIn{
		client: client,
		delays: delays,
		strip:  bluemonday.StrictPolicy(),
		log:    log,
	}
}

// FetchCards issues one GET for a search URL and returns the listing
// cards found on the page. The fixed pacing delay runs after the
// request completes. A failed fetch is permanent; there are no retries.
func (l *LinkedIn) FetchCards(ctx context.Context, target string) ([]pipeline.Card, error) {
	doc, err := fetchDocument(ctx, l.client, target)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", target, err)
	}
	pause(ctx, l.delays.Listing)

	return listingCards(doc), nil
}

// listingCards selects the direct list items of the results container,
// falling back to every list item in the document when the container
// is absent.
func listingCards(doc *goquery.Document) []pipeline.Card {
	container := doc.Find("ul.jobs-search__results-list")

	var items *goquery.Selection
	if container.Length() > 0 {
		items = container.First().ChildrenFiltered("li")
	} else {
		items = doc.Find("li")
	}

	cards := make([]pipeline.Card, 0, items.Length())
	items.Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, &linkedInCard{sel: s})
	})
	return cards
}

// linkedInCard wraps one <li> from a search-results page.
type linkedInCard struct {
	sel *goquery.Selection
}

// Entry parses the card fields. Title and posting URL are required;
// the remaining fields fall back to the documented defaults.
func (c *linkedInCard) Entry() (models.ListingEntry, error) {
	title := cleanText(c.sel.Find("h3.base-search-card__title").First().Text())
	if title == "" {
		return models.ListingEntry{}, ErrMissingTitle
	}
	href := strings.TrimSpace(c.sel.Find("a").First().AttrOr("href", ""))
	if href == "" {
		return models.ListingEntry{}, ErrMissingURL
	}

	entry := models.ListingEntry{Title: title, URL: href}

	entry.Company = cleanText(c.sel.Find("h4.base-search-card__subtitle").First().Text())
	if entry.Company == "" {
		entry.Company = models.CompanyNotSpecified
	}
	entry.Location = cleanText(c.sel.Find("span.job-search-card__location").First().Text())
	if entry.Location == "" {
		entry.Location = models.LocationNotGiven
	}
	entry.DayPosted = models.DayPosted(cleanText(c.sel.Find("time").First().Text()))

	return entry, nil
}

// FetchDescription retrieves one posting page and extracts the
// description text, pausing a random interval before and after the
// request to stay under the site's abuse detection.
func (l *LinkedIn) FetchDescription(ctx context.Context, target string) (string, error) {
	pause(ctx, l.jitter())
	doc, err := fetchDocument(ctx, l.client, target)
	if err != nil {
		return "", fmt.Errorf("description %s: %w", target, err)
	}
	pause(ctx, l.jitter())

	return l.parseDescription(doc)
}

func (l *LinkedIn) parseDescription(doc *goquery.Document) (string, error) {
	markup := doc.Find("div.show-more-less-html__markup").First()
	if markup.Length() == 0 {
		return models.NoDescription, nil
	}

	inner, err := markup.Html()
	if err != nil {
		return "", err
	}
	return cleanText(l.strip.Sanitize(inner)), nil
}

func (l *LinkedIn) jitter() time.Duration {
	min, max := l.delays.DetailMin, l.delays.DetailMax
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
