package newsletter

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// workbookFixture builds an .xlsx file from sheet name to rows and returns
// its path.
func workbookFixture(t *testing.T, sheets map[string][][]string) string {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("renaming default sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("creating sheet %q: %v", name, err)
			}
		}
		for i, row := range rows {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetSheetRow(name, cellRef, &row); err != nil {
				t.Fatalf("writing row %d of %q: %v", i, name, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "newsletter.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}
	return path
}

// requiredSheets returns a minimal valid workbook layout.
func requiredSheets() map[string][][]string {
	return map[string][][]string{
		SheetInfo: {
			{"Field", "Value"},
			{"Month", "MARCH"},
			{"Year", "2025"},
		},
		SheetEditorial: {
			{"Role", "Name", "Designation"},
			{"Chief Editor", "Dr. A", "Professor"},
		},
		SheetEvents: {
			{"Event Title", "Event Date", "Department/Section"},
			{"Guest Lecture", "2025-03-10", "Seminars"},
		},
	}
}

func TestExcelLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("minimal workbook", func(t *testing.T) {
		t.Parallel()
		path := workbookFixture(t, requiredSheets())

		data, err := (&excelLoader{}).Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if data.Info["Month"] != "MARCH" {
			t.Errorf("Info[Month] = %q, want MARCH", data.Info["Month"])
		}
		if len(data.Editorial) != 1 || data.Editorial[0].Role != "Chief Editor" {
			t.Errorf("Editorial = %+v", data.Editorial)
		}
		if len(data.Events) != 1 || data.Events[0].Section != "Seminars" {
			t.Errorf("Events = %+v", data.Events)
		}
		if len(data.Vision) != 0 || len(data.Objectives) != 0 {
			t.Error("optional sheets should be empty when absent")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		_, err := (&excelLoader{}).Load("")
		if !errors.Is(err, ErrEmptyWorkbookPath) {
			t.Errorf("Load(\"\") error = %v, want ErrEmptyWorkbookPath", err)
		}
	})

	t.Run("nonexistent file", func(t *testing.T) {
		t.Parallel()
		_, err := (&excelLoader{}).Load(filepath.Join(t.TempDir(), "absent.xlsx"))
		if !errors.Is(err, ErrWorkbookLoad) {
			t.Errorf("Load() error = %v, want ErrWorkbookLoad", err)
		}
	})

	t.Run("missing required sheet", func(t *testing.T) {
		t.Parallel()
		sheets := requiredSheets()
		delete(sheets, SheetEditorial)
		path := workbookFixture(t, sheets)

		_, err := (&excelLoader{}).Load(path)
		if !errors.Is(err, ErrWorkbookLoad) {
			t.Errorf("Load() error = %v, want ErrWorkbookLoad", err)
		}
	})

	t.Run("missing required column", func(t *testing.T) {
		t.Parallel()
		sheets := requiredSheets()
		sheets[SheetEvents] = [][]string{
			{"Title", "Date"},
			{"Guest Lecture", "2025-03-10"},
		}
		path := workbookFixture(t, sheets)

		_, err := (&excelLoader{}).Load(path)
		if !errors.Is(err, ErrWorkbookLoad) {
			t.Errorf("Load() error = %v, want ErrWorkbookLoad", err)
		}
	})

	t.Run("blank role rows dropped", func(t *testing.T) {
		t.Parallel()
		sheets := requiredSheets()
		sheets[SheetEditorial] = [][]string{
			{"Role", "Name"},
			{"Chief Editor", "Dr. A"},
			{"", "Orphan Row"},
			{"Staff Editor", "Dr. B"},
		}
		path := workbookFixture(t, sheets)

		data, err := (&excelLoader{}).Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(data.Editorial) != 2 {
			t.Errorf("len(Editorial) = %d, want 2 (blank Role dropped)", len(data.Editorial))
		}
	})

	t.Run("blank title events dropped", func(t *testing.T) {
		t.Parallel()
		sheets := requiredSheets()
		sheets[SheetEvents] = [][]string{
			{"Event Title", "Event Date"},
			{"Workshop", "2025-01-15"},
			{"   ", "2025-01-16"},
		}
		path := workbookFixture(t, sheets)

		data, err := (&excelLoader{}).Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(data.Events) != 1 {
			t.Errorf("len(Events) = %d, want 1", len(data.Events))
		}
	})

	t.Run("vision mission partition", func(t *testing.T) {
		t.Parallel()
		sheets := requiredSheets()
		sheets[SheetVision] = [][]string{
			{"Type", "Content"},
			{"Vision", "Be excellent."},
			{"Mission 1", "Teach well."},
			{"MISSION 2", "Research more."},
			{"Remark", "Ignored row."},
		}
		path := workbookFixture(t, sheets)

		data, err := (&excelLoader{}).Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(data.Vision) != 1 {
			t.Errorf("len(Vision) = %d, want 1", len(data.Vision))
		}
		if len(data.Mission) != 2 {
			t.Errorf("len(Mission) = %d, want 2", len(data.Mission))
		}
	})

	t.Run("objective header alias", func(t *testing.T) {
		t.Parallel()
		sheets := requiredSheets()
		sheets[SheetObjectives] = [][]string{
			{"Code", "Objective"},
			{"PEO1", "Apply engineering knowledge."},
		}
		path := workbookFixture(t, sheets)

		data, err := (&excelLoader{}).Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(data.Objectives) != 1 {
			t.Fatalf("len(Objectives) = %d, want 1", len(data.Objectives))
		}
		if data.Objectives[0].Description != "Apply engineering knowledge." {
			t.Errorf("Description = %q", data.Objectives[0].Description)
		}
	})

	t.Run("contact sheet", func(t *testing.T) {
		t.Parallel()
		sheets := requiredSheets()
		sheets[SheetContact] = [][]string{
			{"Field", "Value"},
			{"Email", "editor@example.edu"},
			{"Phone", "12345"},
		}
		path := workbookFixture(t, sheets)

		data, err := (&excelLoader{}).Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if data.Contact["Email"] != "editor@example.edu" {
			t.Errorf("Contact = %v", data.Contact)
		}
	})

	t.Run("event fields mapped", func(t *testing.T) {
		t.Parallel()
		sheets := requiredSheets()
		sheets[SheetEvents] = [][]string{
			{"Event Title", "Event Date", "Department/Section", "Guest Speaker", "Location", "Image Reference", "Event Description", "Coordinators"},
			{"AI Workshop", "2025-02-01", "Workshops", "Dr. X", "Lab 2", "img_42", "Hands-on session.", "Prof. Y"},
		}
		path := workbookFixture(t, sheets)

		data, err := (&excelLoader{}).Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		ev := data.Events[0]
		if ev.GuestSpeaker != "Dr. X" || ev.Location != "Lab 2" || ev.ImageRef != "img_42" || ev.Coordinators != "Prof. Y" {
			t.Errorf("event = %+v", ev)
		}
	})
}

func TestColumnMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  []string
		aliases map[string]string
		want    map[string]int
	}{
		{
			name:   "trims whitespace",
			header: []string{" Field ", "Value"},
			want:   map[string]int{"Field": 0, "Value": 1},
		},
		{
			name:    "alias resolution",
			header:  []string{"Code", " Objective"},
			aliases: descriptionAliases,
			want:    map[string]int{"Code": 0, "Description": 1},
		},
		{
			name:   "first duplicate wins",
			header: []string{"Role", "Role", "Name"},
			want:   map[string]int{"Role": 0, "Name": 2},
		},
		{
			name:   "blank headers skipped",
			header: []string{"", "Field", "  "},
			want:   map[string]int{"Field": 1},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := columnMap(tt.header, tt.aliases)
			if len(got) != len(tt.want) {
				t.Fatalf("columnMap() = %v, want %v", got, tt.want)
			}
			for name, idx := range tt.want {
				if got[name] != idx {
					t.Errorf("columnMap()[%q] = %d, want %d", name, got[name], idx)
				}
			}
		})
	}
}
