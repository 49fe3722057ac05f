package models

import "encoding/json"

// Defaults substituted when a listing card or posting page omits a field.
const (
	CompanyNotSpecified = "Not specified"
	LocationNotGiven    = "location not given"
	NoDescription       = "no description specified"
)

// DayPosted is the relative posting age as shown on a listing card
// ("3 days ago"). The zero value marshals as JSON false, which is what
// consumers of the original feed expect when a card carries no date.
type DayPosted string

func (d DayPosted) Known() bool { return d != "" }

func (d DayPosted) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(d))
}

func (d *DayPosted) UnmarshalJSON(data []byte) error {
	if string(data) == "false" {
		*d = ""
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*d = DayPosted(value)
	return nil
}

// JobRecord is the externally visible unit: one listing enriched with
// its description and keyword rating. Immutable once built; never
// persisted.
type JobRecord struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	DaysPosted  DayPosted `json:"daysPosted"`
	URL         string    `json:"url"`
	Rating      int       `json:"rating"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}
