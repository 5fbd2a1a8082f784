package domain

import (
	"bytes"
	"testing"
)

func TestExportCSV_HeaderFirstAndMissingAsEmpty(t *testing.T) {
	set := RecordSet{
		Columns: testSchema.Header(),
		Records: []Record{
			{Text("2024-01-01"), Number(4), Text("晴れ"), Number(30), Text("23:00"), Text("07:00")},
			{Text("2024-01-02"), Missing(), Text("雨, 強風"), Number(12.5), Text(""), Text("")},
		},
	}

	got := string(ExportCSV(set, testSchema))
	want := "date,satisfaction,weather,outdoor_minutes,sleep,wake\n" +
		"2024-01-01,4,晴れ,30,23:00,07:00\n" +
		"2024-01-02,,\"雨, 強風\",12.5,,\n"

	if got != want {
		t.Errorf("unexpected CSV:\n%s\nwant:\n%s", got, want)
	}
}

func TestExportCSV_Deterministic(t *testing.T) {
	table := NewTable([]Row{
		testSchema.Header(),
		{"2024-01-01", "4", "晴れ", "30", "23:00", "07:00"},
		{"2024-01-02", "x", "雨", "", "", ""},
	}, testSchema)

	a, _ := Coerce(table, testSchema.NumericFields(), testSchema.FlagFields())
	b, _ := Coerce(table, testSchema.NumericFields(), testSchema.FlagFields())

	if !bytes.Equal(ExportCSV(a, testSchema), ExportCSV(b, testSchema)) {
		t.Error("expected identical output for identical input")
	}
}

func TestExportCSV_SchemaDrift(t *testing.T) {
	// Sheet has an undeclared column and lacks "wake".
	set := RecordSet{
		Columns: []string{"date", "legacy"},
		Records: []Record{{Text("2024-01-01"), Text("old")}},
	}
	schema := Schema{Version: 1, Fields: []Field{
		{Name: "date", Type: FieldDate},
		{Name: "wake", Type: FieldTime},
	}}

	got := string(ExportCSV(set, schema))
	want := "date,wake,legacy\n2024-01-01,,old\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExportCSV_EmptySet(t *testing.T) {
	got := string(ExportCSV(RecordSet{}, testSchema))
	want := "date,satisfaction,weather,outdoor_minutes,sleep,wake\n"
	if got != want {
		t.Errorf("expected header only, got %q", got)
	}
}

func TestExportCSV_RowsWiderThanStoredHeader(t *testing.T) {
	table := NewTable([]Row{
		SchemaV1.Header(),
		{"2024-01-01", "4", "晴れ", "30", "23:00", "07:00", "8000", "60.5", "1", "0", "散歩"},
	}, SchemaV2)

	set, _ := SchemaV2.Coerce(table)
	got := string(ExportCSV(set, SchemaV2))
	want := "日付,満足度,天気,外出時間,入眠時間,起床時間,歩数,体重,運動,飲酒,メモ\n" +
		"2024-01-01,4,晴れ,30,23:00,07:00,8000,60.5,1,0,散歩\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
