package parser

import (
	"errors"
	"testing"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
)

func TestStreamTextRows(t *testing.T) {
	rows := [][]string{
		nil,
		{"", "id", "name"},
		{"", "7", "x,y"},
		nil,
		{"", "", "#N/A", "TRUE"},
	}

	sink := &recordingSink{}
	if err := streamTextRows(rows, sink); err != nil {
		t.Fatalf("streamTextRows failed: %v", err)
	}

	expectedDim := dim(1, 1, 4, 3)
	if len(sink.begins) != 1 || sink.begins[0] != expectedDim {
		t.Errorf("Expected Begin(%+v), got %v", expectedDim, sink.begins)
	}

	expected := []event{
		cellEvent(1, 1, models.NewString("id")),
		cellEvent(1, 2, models.NewString("name")),
		rowEvent(1, 2),
		cellEvent(2, 1, models.NewInt(7)),
		cellEvent(2, 2, models.NewString("x,y")),
		rowEvent(2, 2),
		cellEvent(4, 2, models.NewError(models.ErrorNA)),
		cellEvent(4, 3, models.NewBool(true)),
		rowEvent(4, 3),
	}
	if len(sink.events) != len(expected) {
		t.Fatalf("Expected %d events, got %d: %v", len(expected), len(sink.events), sink.events)
	}
	for i := range expected {
		if sink.events[i] != expected[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, expected[i], sink.events[i])
		}
	}
}

func TestStreamTextRowsEmpty(t *testing.T) {
	sink := &recordingSink{}
	if err := streamTextRows([][]string{nil, {"", ""}}, sink); err != nil {
		t.Fatalf("streamTextRows failed: %v", err)
	}
	if len(sink.begins) != 0 || len(sink.events) != 0 {
		t.Errorf("Expected no calls, got begins=%v events=%v", sink.begins, sink.events)
	}
}

func TestStreamTextRowsStopsOnSinkError(t *testing.T) {
	sink := &recordingSink{failAt: 1}
	err := streamTextRows([][]string{{"a", "b"}}, sink)
	if !errors.Is(err, errSinkFull) {
		t.Fatalf("Expected sink error, got %v", err)
	}
	if len(sink.events) != 1 {
		t.Errorf("Expected the stream to stop after 1 event, got %d", len(sink.events))
	}
}

func TestClassifyText(t *testing.T) {
	tests := []struct {
		input    string
		expected models.CellValue
	}{
		{"42", models.NewInt(42)},
		{"-1.25", models.NewFloat(-1.25)},
		{"TRUE", models.NewBool(true)},
		{"false", models.NewBool(false)},
		{"#DIV/0!", models.NewError(models.ErrorDiv0)},
		{"#REF!", models.NewError(models.ErrorRef)},
		{"2024-01-31", models.NewString("2024-01-31")},
		{"plain", models.NewString("plain")},
	}

	for _, tt := range tests {
		if result := classifyText(tt.input); result != tt.expected {
			t.Errorf("classifyText(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestOpenReportsContainer(t *testing.T) {
	wb, err := Open(writeFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if wb.Container() != ContainerOOXML {
		t.Errorf("Expected %v, got %v", ContainerOOXML, wb.Container())
	}
	sheets := wb.SheetList()
	if len(sheets) != 2 || sheets[0] != "Sheet1" || sheets[1] != "Second" {
		t.Errorf("Unexpected sheet list %v", sheets)
	}
}
