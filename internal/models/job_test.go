package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDayPostedMarshalsFalseWhenUnknown(t *testing.T) {
	record := JobRecord{Title: "Engineer", URL: "https://example.com/1"}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"daysPosted":false`) {
		t.Fatalf("expected daysPosted:false, got %s", data)
	}

	record.DaysPosted = "3 days ago"
	data, err = json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"daysPosted":"3 days ago"`) {
		t.Fatalf("expected quoted daysPosted, got %s", data)
	}
}

func TestDayPostedUnmarshalRoundTrip(t *testing.T) {
	var d DayPosted
	if err := json.Unmarshal([]byte(`false`), &d); err != nil {
		t.Fatalf("unmarshal false: %v", err)
	}
	if d.Known() {
		t.Fatalf("false should unmarshal to unknown, got %q", d)
	}

	if err := json.Unmarshal([]byte(`"1 week ago"`), &d); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if d != "1 week ago" {
		t.Fatalf("unexpected value: %q", d)
	}
}

func TestSearchResultMarshalsEmptyRecordsAsArray(t *testing.T) {
	result := SearchResult{Records: []JobRecord{}, TotalCount: 0}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"records":[]`) {
		t.Fatalf("expected empty array, got %s", data)
	}
	if !strings.Contains(string(data), `"totalCount":0`) {
		t.Fatalf("expected totalCount, got %s", data)
	}
}
