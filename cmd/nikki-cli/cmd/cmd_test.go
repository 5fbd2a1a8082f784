package cmd

import (
	"reflect"
	"strings"
	"testing"

	"nikki/internal/domain"
)

func TestEntryValues(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		fields  []string
		want    []string
		wantErr string
	}{
		{
			name: "positional",
			args: []string{"2024-01-01", "4"},
			want: []string{"2024-01-01", "4", "", "", "", ""},
		},
		{
			name:   "field overrides positional",
			args:   []string{"2024-01-01", "4"},
			fields: []string{"満足度=1", "天気=雨"},
			want:   []string{"2024-01-01", "1", "雨", "", "", ""},
		},
		{
			name:    "field without equals",
			fields:  []string{"満足度"},
			wantErr: "name=value",
		},
		{
			name:    "unknown column",
			fields:  []string{"気分=3"},
			wantErr: "unknown column",
		},
		{
			name:    "too many values",
			args:    []string{"1", "2", "3", "4", "5", "6", "7"},
			wantErr: "7 values",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entryValues(domain.SchemaV1, tt.args, tt.fields)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEntryValues_DateDefaultsToToday(t *testing.T) {
	got, err := entryValues(domain.SchemaV1, nil, []string{"天気=晴れ"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != domain.Today() {
		t.Errorf("expected today, got %q", got[0])
	}
}

func TestFilterRows(t *testing.T) {
	set := domain.RecordSet{
		Columns: []string{"日付", "満足度"},
		Records: []domain.Record{
			{domain.Text("2024-01-01"), domain.Number(4)},
			{domain.Text("2024/01/02"), domain.Number(2)},
		},
	}

	if rows := filterRows(set, domain.SchemaV1, ""); len(rows) != 2 {
		t.Errorf("expected all rows, got %d", len(rows))
	}
	rows := filterRows(set, domain.SchemaV1, "2024-01-02")
	if len(rows) != 1 || rows[0][1] != "2" {
		t.Errorf("unexpected filtered rows %v", rows)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"init", "add", "list", "delete", "export", "schema", "credentials"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
	if !skipSession(credentialsSetCmd) {
		t.Error("expected credentials subcommands to skip the session")
	}
	if skipSession(listCmd) {
		t.Error("expected list to open a session")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"日付"}, [][]string{{"2024-01-01"}})
	if !strings.Contains(out, "日付") || !strings.Contains(out, "2024-01-01") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

// fakeEditor returns a fixed edit of whatever it is given
type fakeEditor struct {
	got  []byte
	edit func([]byte) []byte
}

func (e *fakeEditor) Edit(initial []byte, _ string) ([]byte, error) {
	e.got = initial
	return e.edit(initial), nil
}

func TestEntryTemplate_RoundTrip(t *testing.T) {
	values := []string{"2024-01-01", "3", "晴れ", "0", "23:30", ""}
	tmpl := entryTemplate(domain.SchemaV1, values)

	if !strings.Contains(string(tmpl), "入眠時間: 23:30\n") {
		t.Errorf("expected time line in template:\n%s", tmpl)
	}
	if !strings.Contains(string(tmpl), "# bounded_int 1..5, default 3") {
		t.Errorf("expected bounds hint in template:\n%s", tmpl)
	}

	got, err := parseTemplate(domain.SchemaV1, tmpl)
	if err != nil {
		t.Fatalf("parseTemplate failed: %v", err)
	}
	if !reflect.DeepEqual(got, values) {
		t.Errorf("expected %v, got %v", values, got)
	}
}

func TestParseTemplate_Edited(t *testing.T) {
	ed := &fakeEditor{edit: func(b []byte) []byte {
		return []byte(strings.Replace(string(b), "満足度: 3", "満足度: 5", 1))
	}}

	edited, _ := ed.Edit(entryTemplate(domain.SchemaV1, []string{"2024-01-01", "3", "", "", "", ""}), "x")
	got, err := parseTemplate(domain.SchemaV1, edited)
	if err != nil {
		t.Fatal(err)
	}
	if got[1] != "5" {
		t.Errorf("expected edited satisfaction, got %q", got[1])
	}
	if len(ed.got) == 0 {
		t.Error("expected template passed to editor")
	}

	if _, err := parseTemplate(domain.SchemaV1, []byte("just text\n")); err == nil {
		t.Error("expected error for a line without a colon")
	}
}
