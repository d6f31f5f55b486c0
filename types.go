package newsletter

import "time"

// Sheet names read from the workbook.
const (
	SheetInfo       = "Newsletter Info"
	SheetEditorial  = "Editorial Board"
	SheetVision     = "Vision & Mission"
	SheetObjectives = "Program Objectives"
	SheetOutcomes   = "Program Outcomes"
	SheetEvents     = "Department Events"
	SheetContact    = "Contact Info"
)

// DefaultSection is the bucket for events without a Department/Section value.
const DefaultSection = "OTHER ACTIVITIES"

// EditorialMember is one row of the Editorial Board sheet.
// Rows without a Role are dropped at load time.
type EditorialMember struct {
	Role        string
	Name        string
	Designation string
}

// VisionMissionItem is one row of the Vision & Mission sheet. Type matches
// "vision" or "mission" as a case-insensitive substring.
type VisionMissionItem struct {
	Type    string
	Content string
}

// ObjectiveItem is a program educational objective (PEO).
type ObjectiveItem struct {
	Code        string
	Description string
}

// OutcomeItem is a program specific outcome (PSO).
type OutcomeItem struct {
	Code        string
	Description string
}

// EventRecord is one row of the Department Events sheet.
// Rows without an Event Title are dropped at load time.
type EventRecord struct {
	Title        string
	Date         string
	Section      string
	GuestSpeaker string
	Location     string
	ImageRef     string
	Description  string
	Coordinators string
}

// Data holds everything loaded from one workbook. Built once per generation
// run; event descriptions are deduplicated in place before rendering.
type Data struct {
	Info       map[string]string
	Editorial  []EditorialMember
	Vision     []VisionMissionItem
	Mission    []VisionMissionItem
	Objectives []ObjectiveItem
	Outcomes   []OutcomeItem
	Events     []EventRecord
	Contact    map[string]string
}

// Input contains generation parameters.
type Input struct {
	WorkbookPath string            // Excel workbook (required)
	ImagePaths   map[string]string // logical image key -> file path (optional)
	SessionID    string            // output subdirectory (required)
	PrintPDF     bool              // also print the HTML to PDF via Chrome
}

// Result reports where the generated documents were written.
type Result struct {
	HTMLPath string
	PDFPath  string // empty unless Input.PrintPDF was set
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	outputRoot string
	assetDir   string
	timeout    time.Duration
}

// Defaults applied by New.
const (
	defaultOutputRoot = "generated"
	defaultTimeout    = 30 * time.Second
)

// WithOutputRoot sets the directory under which per-session output
// directories are created. Default "generated".
func WithOutputRoot(dir string) Option {
	return func(s *Service) {
		s.cfg.outputRoot = dir
	}
}

// WithAssetDir sets the directory that holds the static branding images
// (static/images/*.png is resolved relative to it). Default is the current
// working directory.
func WithAssetDir(dir string) Option {
	return func(s *Service) {
		s.cfg.assetDir = dir
	}
}

// WithRawImages embeds uploaded images verbatim, skipping the downscale and
// recompress pass. Useful when the sources are already print-ready and
// fidelity matters more than file size.
func WithRawImages() Option {
	return func(s *Service) {
		s.resolver = &staticImageResolver{encoder: rawEncoder{}}
	}
}

// WithTimeout sets the PDF print timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("newsletter: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}
