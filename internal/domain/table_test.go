package domain

import (
	"reflect"
	"testing"
)

var testSchema = Schema{
	Version: 1,
	Fields: []Field{
		{Name: "date", Type: FieldDate},
		{Name: "satisfaction", Type: FieldInt},
		{Name: "weather", Type: FieldEnum, Options: []string{"晴れ", "雨"}},
		{Name: "outdoor_minutes", Type: FieldMinutes},
		{Name: "sleep", Type: FieldTime},
		{Name: "wake", Type: FieldTime},
	},
}

func TestNewTable_EmptySheetUsesSchemaHeader(t *testing.T) {
	table := NewTable(nil, testSchema)

	if !reflect.DeepEqual(table.Header, testSchema.Header()) {
		t.Errorf("expected schema header, got %v", table.Header)
	}
	if !table.Empty() {
		t.Errorf("expected no rows, got %d", len(table.Rows))
	}
}

func TestNewTable_HeaderOnly(t *testing.T) {
	table := NewTable([]Row{{"a", "b"}}, testSchema)

	if !reflect.DeepEqual(table.Header, []string{"a", "b"}) {
		t.Errorf("expected sheet header, got %v", table.Header)
	}
	if !table.Empty() {
		t.Errorf("expected no rows")
	}
}

func TestNewTable_BlankHeaderFallsBackToSchema(t *testing.T) {
	table := NewTable([]Row{
		{"", " "},
		{"2024-01-01", "4"},
	}, testSchema)

	if !reflect.DeepEqual(table.Header, testSchema.Header()) {
		t.Errorf("expected schema header, got %v", table.Header)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if len(table.Rows[0]) != len(testSchema.Fields) {
		t.Errorf("expected row padded to %d cells, got %d", len(testSchema.Fields), len(table.Rows[0]))
	}
}

func TestNewTable_DropsBlankRowsAndPads(t *testing.T) {
	table := NewTable([]Row{
		{"date", "satisfaction", ""},
		{"2024-01-01", "4", ""},
		{"", "", ""},
		{},
		{"2024-01-02"},
	}, testSchema)

	want := []Row{
		{"2024-01-01", "4"},
		{"2024-01-02", ""},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("expected %v, got %v", want, table.Rows)
	}
}

func TestNewTable_LongRowsWidenHeader(t *testing.T) {
	table := NewTable([]Row{
		{"date", "satisfaction"},
		{"2024-01-01", "4", "晴れ"},
		{"2024-01-02", "3", "雨", "15", "23:00", "07:00", "extra"},
	}, testSchema)

	wantHeader := []string{"date", "satisfaction", "weather", "outdoor_minutes", "sleep", "wake", "column 7"}
	if !reflect.DeepEqual(table.Header, wantHeader) {
		t.Errorf("expected header %v, got %v", wantHeader, table.Header)
	}
	want := []Row{
		{"2024-01-01", "4", "晴れ", "", "", "", ""},
		{"2024-01-02", "3", "雨", "15", "23:00", "07:00", "extra"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("expected %v, got %v", want, table.Rows)
	}
}

func TestNewTable_WidenSkipsNamesInUse(t *testing.T) {
	table := NewTable([]Row{
		{"weather", "date"},
		{"晴れ", "2024-01-01", "x"},
	}, testSchema)

	want := []string{"weather", "date", "column 3"}
	if !reflect.DeepEqual(table.Header, want) {
		t.Errorf("expected %v, got %v", want, table.Header)
	}
}

func TestDataRows_KeepsStoredWidth(t *testing.T) {
	got := DataRows([]Row{
		{"date"},
		{"2024-01-01", "4", "", "extra"},
		{"", ""},
		{"2024-01-02"},
	})
	want := []Row{
		{"2024-01-01", "4", "", "extra"},
		{"2024-01-02"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if DataRows(nil) != nil {
		t.Error("expected nil for an empty sheet")
	}
}

func TestRowIsBlank(t *testing.T) {
	tests := []struct {
		row  Row
		want bool
	}{
		{nil, true},
		{Row{"", "  "}, true},
		{Row{"", "x"}, false},
	}
	for _, tt := range tests {
		if got := tt.row.IsBlank(); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.row, got, tt.want)
		}
	}
}
