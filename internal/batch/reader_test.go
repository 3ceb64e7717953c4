package batch

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestReader_InvalidFile(t *testing.T) {
	file := strings.NewReader("invalid file content")

	reader := NewReader(file, newTestLogger())
	ctx := context.Background()
	ch := reader.ReadAll(ctx)

	for record := range ch {
		if record.Error == nil {
			t.Errorf("expected parse error for invalid JSON, but got none")
		}
	}
}

func TestReader_ValidFile(t *testing.T) {
	inputFile := `{"event_id":"1","community_id":"guild-1","raw":"{}"}
  {"event_id":"2","community_id":"guild-1","kind":"npc","raw":"{\"new_npc\": {}}"}`

	file := strings.NewReader(inputFile)

	ctx := context.Background()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	count := 0
	for record := range ch {
		count += 1
		if record.Error != nil {
			t.Errorf("Error reading the intake request record. Got: %s", record.Error)
		}
		if record.Request.CommunityID != "guild-1" {
			t.Errorf("CommunityID: %q", record.Request.CommunityID)
		}
	}
	if count != 2 {
		t.Errorf("Expected 2 intake request messages. Got: %d", count)
	}
}

func TestReader_ContextCancellation(t *testing.T) {
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, `{"event_id":"1","community_id":"guild-1","raw":"{}"}`)
	}
	file := strings.NewReader(strings.Join(lines, "\n"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	count := 0
	for range ch {
		count++
		if count == 5 {
			cancel()
			break
		}
	}

	if count >= 100 {
		t.Errorf("expected early cancellation, but read all records")
	}
}

func TestReader_LineNumbers(t *testing.T) {
	inputFile := `{"event_id":"1","community_id":"guild-1","raw":"{}"}

{"invalid json}
{"event_id":"2","community_id":"guild-1","raw":"[]"}`

	file := strings.NewReader(inputFile)
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(context.Background())
	records := []InputRecord{}
	for record := range ch {
		records = append(records, record)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].LineNumber != 1 {
		t.Errorf("first record should be line 1, got %d", records[0].LineNumber)
	}
	if records[1].LineNumber != 3 || records[1].Error == nil {
		t.Errorf("error record should be line 3, got %d (err %v)", records[1].LineNumber, records[1].Error)
	}
	if records[2].LineNumber != 4 {
		t.Errorf("third record should be line 4, got %d", records[2].LineNumber)
	}
}

func TestReader_LongLine(t *testing.T) {
	raw := strings.Repeat("a", 200*1024)
	file := strings.NewReader(`{"event_id":"1","community_id":"guild-1","raw":"` + raw + `"}`)

	var records []InputRecord
	for record := range NewReader(file, newTestLogger()).ReadAll(context.Background()) {
		records = append(records, record)
	}

	if len(records) != 1 || records[0].Error != nil {
		t.Fatalf("expected one valid record, got %+v", records)
	}
	if len(records[0].Request.Raw) != len(raw) {
		t.Errorf("raw length: %d, want %d", len(records[0].Request.Raw), len(raw))
	}
}
