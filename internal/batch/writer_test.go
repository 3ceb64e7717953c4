package batch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/povarna/rpg-intake-agent/internal/models"
)

func sampleOutputs() []Output {
	return []Output{
		{LineNumber: 1, Result: models.IntakeResult{EventID: "1", Accepted: true, Content: models.ParsedResponse{}}},
		{LineNumber: 2, Result: models.IntakeResult{EventID: "2", Kind: models.KindMalformedPayload, Reason: "Invalid JSON"}},
		{LineNumber: 3, Result: models.IntakeResult{EventID: "3", Kind: models.KindMalformedPayload, Reason: "Invalid JSON"}},
		{LineNumber: 4, Error: errors.New("line 4: unexpected end of JSON input")},
	}
}

func TestNewWriter_InvalidFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, "csv", newTestLogger()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestWriter_JSONL(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, FormatJSONL, newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter() failed: %v", err)
	}

	for _, output := range sampleOutputs() {
		if err := writer.Write(output); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines []map[string]any
	for scanner.Scan() {
		var line map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("each line should be JSON: %v", err)
		}
		lines = append(lines, line)
	}

	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0]["accepted"] != true {
		t.Errorf("first line should be accepted: %v", lines[0])
	}
	if lines[1]["reason"] != "Invalid JSON" {
		t.Errorf("second line reason: %v", lines[1]["reason"])
	}
	if lines[3]["error"] == nil || lines[3]["line"] != float64(4) {
		t.Errorf("error line malformed: %v", lines[3])
	}
}

func TestWriter_Summary(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, FormatSummary, newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter() failed: %v", err)
	}

	for _, output := range sampleOutputs() {
		if err := writer.Write(output); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Error("summary format should not write before Close")
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("summary should be JSON: %v", err)
	}

	if summary.Total != 4 || summary.Accepted != 1 || summary.Rejected != 2 || summary.Errors != 1 {
		t.Errorf("unexpected counts %+v", summary)
	}
	if summary.ByKind[models.KindMalformedPayload] != 2 {
		t.Errorf("ByKind: %v", summary.ByKind)
	}
	if summary.ByReason["Invalid JSON"] != 2 {
		t.Errorf("ByReason: %v", summary.ByReason)
	}
}
