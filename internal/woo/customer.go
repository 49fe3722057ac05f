package woo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNotConfigured    = errors.New("woocommerce credentials not configured")
	ErrCustomerNotFound = errors.New("customer not found")
)

// Client queries the WooCommerce REST API for customer records. The
// shop stores each customer's saved search in customer meta_data.
type Client struct {
	baseURL string
	key     string
	secret  string
	http    *http.Client
}

func NewClient(baseURL, key, secret string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		secret:  secret,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.key != "" && c.secret != ""
}

// Profile is the saved search attached to a shop customer.
type Profile struct {
	ID       int      `json:"id"`
	JobTitle string   `json:"jobTitle"`
	Plavras  []string `json:"plavras"`
	Location string   `json:"location"`
}

type customerPayload struct {
	Code     string     `json:"code"`
	MetaData []metaItem `json:"meta_data"`
}

type metaItem struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Lookup fetches one customer and extracts the jobTitle, plavras and
// location metadata, substituting the shop defaults for missing keys.
func (c *Client) Lookup(ctx context.Context, id int) (Profile, error) {
	if !c.Configured() {
		return Profile{}, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/wp-json/wc/v3/customers/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Profile{}, err
	}
	req.SetBasicAuth(c.key, c.secret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("customer %d: %w", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Profile{}, fmt.Errorf("customer %d: %w", id, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return Profile{}, ErrCustomerNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("customer %d: woocommerce returned %d", id, resp.StatusCode)
	}

	var payload customerPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Profile{}, fmt.Errorf("customer %d: %w", id, err)
	}
	if payload.Code != "" {
		return Profile{}, ErrCustomerNotFound
	}

	profile := Profile{
		ID:       id,
		JobTitle: "Engenharia Ambiental",
		Location: "Brazil",
		Plavras:  []string{},
	}
	for _, meta := range payload.MetaData {
		switch meta.Key {
		case "jobTitle":
			_ = json.Unmarshal(meta.Value, &profile.JobTitle)
		case "plavras":
			_ = json.Unmarshal(meta.Value, &profile.Plavras)
		case "location":
			_ = json.Unmarshal(meta.Value, &profile.Location)
		}
	}
	return profile, nil
}
