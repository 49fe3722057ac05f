package scraper

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"jobrater/internal/models"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}

func TestTimeFilter(t *testing.T) {
	cases := []struct {
		period string
		want   string
	}{
		{"past 24 hours", "&f_TPR=r86400"},
		{"past week", "&f_TPR=r604800"},
		{"past month", "&f_TPR=r2592000"},
		{"any time", ""},
		{"last decade", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := TimeFilter(tc.period); got != tc.want {
			t.Fatalf("TimeFilter(%q) = %q, want %q", tc.period, got, tc.want)
		}
	}
}

func TestSearchURLs(t *testing.T) {
	urls := SearchURLs(models.SearchRequest{
		Titles:     []string{"vue developer", "data engineer"},
		TimePeriod: "past week",
		Location:   "Sao Paulo, Brazil",
	})

	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
	want := "https://www.linkedin.com/jobs/search?keywords=vue%20developer&location=Sao%20Paulo%2C%20Brazil&f_TPR=r604800&position=1&pageNum=0"
	if urls[0] != want {
		t.Fatalf("unexpected url:\n got %s\nwant %s", urls[0], want)
	}
	if !strings.HasSuffix(urls[1], "&position=1&pageNum=0") {
		t.Fatalf("url missing fixed suffix: %s", urls[1])
	}
}

func TestSearchURLsOmitsTimeParamForAnyTime(t *testing.T) {
	urls := SearchURLs(models.SearchRequest{
		Titles:     []string{"engineer"},
		TimePeriod: "any time",
		Location:   "Brazil",
	})
	if strings.Contains(urls[0], "f_TPR") {
		t.Fatalf("any time should carry no time filter: %s", urls[0])
	}
}

const fullCardHTML = `
<ul class="jobs-search__results-list">
  <li>
    <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/1"></a>
    <h3 class="base-search-card__title">Environmental Engineer</h3>
    <h4 class="base-search-card__subtitle">Acme Corp</h4>
    <span class="job-search-card__location">Curitiba, Brazil</span>
    <time>2 days ago</time>
  </li>
</ul>`

func TestCardEntryFullCard(t *testing.T) {
	cards := listingCards(mustDoc(t, fullCardHTML))
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}

	entry, err := cards[0].Entry()
	if err != nil {
		t.Fatalf("Entry() error = %v", err)
	}
	if entry.Title != "Environmental Engineer" {
		t.Fatalf("unexpected title: %q", entry.Title)
	}
	if entry.URL != "https://www.linkedin.com/jobs/view/1" {
		t.Fatalf("unexpected url: %q", entry.URL)
	}
	if entry.Company != "Acme Corp" {
		t.Fatalf("unexpected company: %q", entry.Company)
	}
	if entry.Location != "Curitiba, Brazil" {
		t.Fatalf("unexpected location: %q", entry.Location)
	}
	if entry.DayPosted != "2 days ago" {
		t.Fatalf("unexpected day posted: %q", entry.DayPosted)
	}
}

func TestCardEntryAppliesDefaults(t *testing.T) {
	html := `
<ul class="jobs-search__results-list">
  <li>
    <a href="https://www.linkedin.com/jobs/view/2"></a>
    <h3 class="base-search-card__title">Platform Engineer</h3>
  </li>
</ul>`

	cards := listingCards(mustDoc(t, html))
	entry, err := cards[0].Entry()
	if err != nil {
		t.Fatalf("Entry() error = %v", err)
	}
	if entry.Company != models.CompanyNotSpecified {
		t.Fatalf("company default = %q, want %q", entry.Company, models.CompanyNotSpecified)
	}
	if entry.Location != models.LocationNotGiven {
		t.Fatalf("location default = %q, want %q", entry.Location, models.LocationNotGiven)
	}
	if entry.DayPosted.Known() {
		t.Fatalf("day posted should be unknown, got %q", entry.DayPosted)
	}
}

func TestCardEntryRequiredFields(t *testing.T) {
	missingTitle := `<ul class="jobs-search__results-list"><li><a href="https://example.com/x"></a></li></ul>`
	cards := listingCards(mustDoc(t, missingTitle))
	if _, err := cards[0].Entry(); !errors.Is(err, ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle, got %v", err)
	}

	missingURL := `<ul class="jobs-search__results-list"><li><h3 class="base-search-card__title">Engineer</h3></li></ul>`
	cards = listingCards(mustDoc(t, missingURL))
	if _, err := cards[0].Entry(); !errors.Is(err, ErrMissingURL) {
		t.Fatalf("expected ErrMissingURL, got %v", err)
	}
}

func TestListingCardsFallsBackToAllListItems(t *testing.T) {
	// No results container: every <li> in the document counts.
	html := `
<div>
  <li><h3 class="base-search-card__title">A</h3><a href="https://example.com/a"></a></li>
  <li><h3 class="base-search-card__title">B</h3><a href="https://example.com/b"></a></li>
</div>`

	cards := listingCards(mustDoc(t, html))
	if len(cards) != 2 {
		t.Fatalf("expected 2 fallback cards, got %d", len(cards))
	}
}

func TestListingCardsUsesContainerWhenPresent(t *testing.T) {
	html := `
<li>outside the container</li>
<ul class="jobs-search__results-list">
  <li><h3 class="base-search-card__title">Inside</h3><a href="https://example.com/in"></a></li>
</ul>`

	cards := listingCards(mustDoc(t, html))
	if len(cards) != 1 {
		t.Fatalf("expected 1 card from container, got %d", len(cards))
	}
	entry, err := cards[0].Entry()
	if err != nil {
		t.Fatalf("Entry() error = %v", err)
	}
	if entry.Title != "Inside" {
		t.Fatalf("unexpected title: %q", entry.Title)
	}
}

func TestParseDescription(t *testing.T) {
	source := NewLinkedIn(nil, Delays{}, zerolog.Nop())

	html := `<div class="show-more-less-html__markup"><p>Build <strong>APIs</strong> for distributed&nbsp;systems.</p><ul><li>Go</li></ul></div>`
	got, err := source.parseDescription(mustDoc(t, html))
	if err != nil {
		t.Fatalf("parseDescription error = %v", err)
	}
	if !strings.Contains(got, "Build APIs for distributed systems.") {
		t.Fatalf("markup not flattened: %q", got)
	}
	if strings.Contains(got, "<") {
		t.Fatalf("html leaked into description: %q", got)
	}
}

func TestParseDescriptionMissingContainer(t *testing.T) {
	source := NewLinkedIn(nil, Delays{}, zerolog.Nop())

	got, err := source.parseDescription(mustDoc(t, `<div class="something-else">text</div>`))
	if err != nil {
		t.Fatalf("parseDescription error = %v", err)
	}
	if got != models.NoDescription {
		t.Fatalf("got %q, want %q", got, models.NoDescription)
	}
}

func TestCleanText(t *testing.T) {
	got := cleanText("  Senior\n\tEngineer &amp; Architect  ")
	if got != "Senior Engineer & Architect" {
		t.Fatalf("cleanText = %q", got)
	}
}
