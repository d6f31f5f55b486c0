package newsletter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// workbookLoader abstracts workbook reading to allow fakes in tests.
type workbookLoader interface {
	Load(path string) (*Data, error)
}

// excelLoader reads the fixed set of named sheets from an .xlsx workbook.
type excelLoader struct{}

// Compile-time interface check.
var _ workbookLoader = (*excelLoader)(nil)

// descriptionAliases maps legacy column headers to the canonical
// "Description" header. Resolved once at load time.
var descriptionAliases = map[string]string{
	"Objective": "Description",
	"Outcome":   "Description",
}

// Load reads all newsletter sheets into typed records.
//
// Newsletter Info, Editorial Board, and Department Events are required;
// the remaining sheets are optional and yield empty collections when absent.
// Incomplete rows (blank key column) are silently dropped. Any other
// failure aborts the load with a single wrapped ErrWorkbookLoad.
func (l *excelLoader) Load(path string) (*Data, error) {
	if path == "" {
		return nil, ErrEmptyWorkbookPath
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrWorkbookLoad, path, err)
	}
	defer f.Close()

	data := &Data{
		Info:    map[string]string{},
		Contact: map[string]string{},
	}

	// Required sheets.
	if data.Info, err = loadKeyValueSheet(f, SheetInfo); err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrWorkbookLoad, SheetInfo, err)
	}
	if data.Editorial, err = loadEditorial(f); err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrWorkbookLoad, SheetEditorial, err)
	}
	if data.Events, err = loadEvents(f); err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrWorkbookLoad, SheetEvents, err)
	}

	// Optional sheets: presence-checked, absence is not an error.
	if sheetExists(f, SheetVision) {
		vision, mission, verr := loadVisionMission(f)
		if verr != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrWorkbookLoad, SheetVision, verr)
		}
		data.Vision, data.Mission = vision, mission
	}
	if sheetExists(f, SheetObjectives) {
		if data.Objectives, err = loadCoded(f, SheetObjectives, func(code, desc string) ObjectiveItem {
			return ObjectiveItem{Code: code, Description: desc}
		}); err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrWorkbookLoad, SheetObjectives, err)
		}
	}
	if sheetExists(f, SheetOutcomes) {
		if data.Outcomes, err = loadCoded(f, SheetOutcomes, func(code, desc string) OutcomeItem {
			return OutcomeItem{Code: code, Description: desc}
		}); err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrWorkbookLoad, SheetOutcomes, err)
		}
	}
	if sheetExists(f, SheetContact) {
		if data.Contact, err = loadKeyValueSheet(f, SheetContact); err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrWorkbookLoad, SheetContact, err)
		}
	}

	return data, nil
}

// sheetExists reports whether the workbook contains the named sheet.
func sheetExists(f *excelize.File, name string) bool {
	idx, err := f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// sheetRows returns the sheet contents, failing if the sheet is absent.
func sheetRows(f *excelize.File, name string) ([][]string, error) {
	if !sheetExists(f, name) {
		return nil, ErrSheetMissing
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// columnMap builds a header-name to column-index mapping from the first
// row. Header whitespace is trimmed before alias resolution, so " Objective"
// still lands on "Description".
func columnMap(header []string, aliases map[string]string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		if name == "" {
			continue
		}
		// First occurrence wins on duplicate headers.
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	return cols
}

// cell returns the trimmed value of row[idx], tolerating ragged rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// loadKeyValueSheet reads a Field/Value sheet into a map, dropping rows with
// a blank Field.
func loadKeyValueSheet(f *excelize.File, name string) (map[string]string, error) {
	rows, err := sheetRows(f, name)
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	if len(rows) == 0 {
		return out, nil
	}
	cols := columnMap(rows[0], nil)
	field, ok := cols["Field"]
	if !ok {
		return nil, fmt.Errorf("%w: Field", ErrColumnMissing)
	}
	value, ok := cols["Value"]
	if !ok {
		return nil, fmt.Errorf("%w: Value", ErrColumnMissing)
	}
	for _, row := range rows[1:] {
		k := cell(row, field)
		if k == "" {
			continue
		}
		out[k] = cell(row, value)
	}
	return out, nil
}

func loadEditorial(f *excelize.File) ([]EditorialMember, error) {
	rows, err := sheetRows(f, SheetEditorial)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := columnMap(rows[0], nil)
	if _, ok := cols["Role"]; !ok {
		return nil, fmt.Errorf("%w: Role", ErrColumnMissing)
	}
	var members []EditorialMember
	for _, row := range rows[1:] {
		role := cell(row, cols["Role"])
		if role == "" {
			continue
		}
		members = append(members, EditorialMember{
			Role:        role,
			Name:        cell(row, lookupCol(cols, "Name")),
			Designation: cell(row, lookupCol(cols, "Designation")),
		})
	}
	return members, nil
}

// loadVisionMission partitions rows into vision and mission lists by
// case-insensitive substring match on the Type column, preserving order.
func loadVisionMission(f *excelize.File) (vision, mission []VisionMissionItem, err error) {
	rows, err := sheetRows(f, SheetVision)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	cols := columnMap(rows[0], nil)
	if _, ok := cols["Type"]; !ok {
		return nil, nil, fmt.Errorf("%w: Type", ErrColumnMissing)
	}
	for _, row := range rows[1:] {
		typ := cell(row, cols["Type"])
		if typ == "" {
			continue
		}
		item := VisionMissionItem{Type: typ, Content: cell(row, lookupCol(cols, "Content"))}
		switch lower := strings.ToLower(typ); {
		case strings.Contains(lower, "vision"):
			vision = append(vision, item)
		case strings.Contains(lower, "mission"):
			mission = append(mission, item)
		}
	}
	return vision, mission, nil
}

// loadCoded reads a Code/Description sheet (Objectives or Outcomes), with
// the Objective/Outcome header aliased to Description.
func loadCoded[T any](f *excelize.File, sheet string, build func(code, desc string) T) ([]T, error) {
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := columnMap(rows[0], descriptionAliases)
	if _, ok := cols["Code"]; !ok {
		return nil, fmt.Errorf("%w: Code", ErrColumnMissing)
	}
	var items []T
	for _, row := range rows[1:] {
		code := cell(row, cols["Code"])
		if code == "" {
			continue
		}
		items = append(items, build(code, cell(row, lookupCol(cols, "Description"))))
	}
	return items, nil
}

func loadEvents(f *excelize.File) ([]EventRecord, error) {
	rows, err := sheetRows(f, SheetEvents)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := columnMap(rows[0], nil)
	if _, ok := cols["Event Title"]; !ok {
		return nil, fmt.Errorf("%w: Event Title", ErrColumnMissing)
	}
	var events []EventRecord
	for _, row := range rows[1:] {
		title := cell(row, cols["Event Title"])
		if title == "" {
			continue
		}
		events = append(events, EventRecord{
			Title:        title,
			Date:         cell(row, lookupCol(cols, "Event Date")),
			Section:      cell(row, lookupCol(cols, "Department/Section")),
			GuestSpeaker: cell(row, lookupCol(cols, "Guest Speaker")),
			Location:     cell(row, lookupCol(cols, "Location")),
			ImageRef:     cell(row, lookupCol(cols, "Image Reference")),
			Description:  cell(row, lookupCol(cols, "Event Description")),
			Coordinators: cell(row, lookupCol(cols, "Coordinators")),
		})
	}
	return events, nil
}

// lookupCol returns the index for name, or -1 so cell() yields "".
func lookupCol(cols map[string]int, name string) int {
	if idx, ok := cols[name]; ok {
		return idx
	}
	return -1
}
