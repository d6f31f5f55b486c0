package newsletter

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Hiba550/newsletter/internal/assets"
)

const (
	defaultMonth  = "AUGUST"
	defaultYear   = "2024"
	defaultVolume = "Volume 2"
	defaultIssue  = "Issue 1"

	templateName = "newsletter"
	styleName    = "newsletter"
)

// templateRenderer turns loaded workbook data plus resolved images into a
// complete, self-contained HTML document.
type templateRenderer interface {
	Render(data *Data, images map[string]ImageResolution) ([]byte, error)
}

// htmlTemplateRenderer drives the embedded page template. An assetDir can
// override the embedded template and stylesheet with files on disk.
type htmlTemplateRenderer struct {
	assetDir string
	rich     *richTextRenderer
}

var _ templateRenderer = (*htmlTemplateRenderer)(nil)

func newTemplateRenderer(assetDir string, rich *richTextRenderer) *htmlTemplateRenderer {
	return &htmlTemplateRenderer{assetDir: assetDir, rich: rich}
}

func (r *htmlTemplateRenderer) Render(data *Data, images map[string]ImageResolution) ([]byte, error) {
	text, err := assets.LoadTemplate(r.assetDir, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	style, err := assets.LoadStyle(r.assetDir, styleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	tmpl, err := template.New(templateName).
		Funcs(template.FuncMap{"upper": strings.ToUpper}).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: parse template: %v", ErrRender, err)
	}

	model, err := r.buildModel(data, images, style)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, model); err != nil {
		return nil, fmt.Errorf("%w: execute template: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// renderModel is the root template context. All free-text cells arrive
// already converted to HTML fragments.
type renderModel struct {
	Style template.CSS

	Month  string
	Year   string
	Volume string
	Issue  string

	Department  string
	Institution string

	CollegeLogo ImageResolution
	OrgLogo     ImageResolution
	Badge       ImageResolution
	VisionImage ImageResolution
	MainImage   ImageResolution

	Editorial  []EditorialMember
	Vision     []template.HTML
	Mission    []template.HTML
	Objectives []ObjectiveItem
	Outcomes   []OutcomeItem

	TOC          []tocEntry
	SectionPages []sectionPage
	Contact      []contactEntry
	Leadership   []EditorialMember
}

type tocEntry struct {
	Index int
	Name  string
	Page  int
}

type sectionPage struct {
	Name   string
	Events []renderedEvent
}

type renderedEvent struct {
	Title        string
	Date         string
	Details      string
	Image        ImageResolution
	Description  template.HTML
	Coordinators string
}

type contactEntry struct {
	Field string
	Value string
}

// Footer roles shown on the contact page. Matched case-insensitively as
// substrings of the board member's role.
var leadershipRoles = []string{"editor", "managing", "executive", "director"}

func (r *htmlTemplateRenderer) buildModel(data *Data, images map[string]ImageResolution, style string) (*renderModel, error) {
	info := func(key, fallback string) string {
		if v, ok := data.Info[key]; ok && strings.TrimSpace(v) != "" {
			return v
		}
		return fallback
	}

	model := &renderModel{
		Style:       template.CSS(style),
		Month:       info("Month", defaultMonth),
		Year:        info("Year", defaultYear),
		Volume:      info("Volume", defaultVolume),
		Issue:       info("Issue", defaultIssue),
		Department:  info("Department", ""),
		Institution: info("Institution", ""),
		CollegeLogo: images["college_logo"],
		OrgLogo:     images["org_logo"],
		Badge:       images["accreditation_badge"],
		VisionImage: images["vision"],
		MainImage:   images[frontImageKey(info("Front Image", "1.png"))],
		Editorial:   data.Editorial,
		Objectives:  data.Objectives,
		Outcomes:    data.Outcomes,
	}

	var err error
	if model.Vision, err = r.fragments(data.Vision); err != nil {
		return nil, err
	}
	if model.Mission, err = r.fragments(data.Mission); err != nil {
		return nil, err
	}

	sections := groupSections(data.Events)
	for i, name := range sections.Names {
		model.TOC = append(model.TOC, tocEntry{Index: i + 1, Name: name, Page: sections.Pages[name]})
		page := sectionPage{Name: name}
		for _, ev := range sections.Events[name] {
			rendered, err := r.renderEvent(ev, images)
			if err != nil {
				return nil, err
			}
			page.Events = append(page.Events, rendered)
		}
		model.SectionPages = append(model.SectionPages, page)
	}

	fields := make([]string, 0, len(data.Contact))
	for field := range data.Contact {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		model.Contact = append(model.Contact, contactEntry{Field: field, Value: data.Contact[field]})
	}

	for _, member := range data.Editorial {
		role := strings.ToLower(member.Role)
		for _, keyword := range leadershipRoles {
			if strings.Contains(role, keyword) {
				model.Leadership = append(model.Leadership, member)
				break
			}
		}
	}

	return model, nil
}

func (r *htmlTemplateRenderer) renderEvent(ev EventRecord, images map[string]ImageResolution) (renderedEvent, error) {
	description, err := r.rich.Fragment(ev.Description)
	if err != nil {
		return renderedEvent{}, err
	}

	var details []string
	if s := strings.TrimSpace(ev.GuestSpeaker); s != "" {
		details = append(details, "Guest Speaker: "+s)
	}
	if l := strings.TrimSpace(ev.Location); l != "" {
		details = append(details, "Location: "+l)
	}

	return renderedEvent{
		Title:        ev.Title,
		Date:         ev.Date,
		Details:      strings.Join(details, " | "),
		Image:        images[ev.ImageRef],
		Description:  description,
		Coordinators: ev.Coordinators,
	}, nil
}

func (r *htmlTemplateRenderer) fragments(items []VisionMissionItem) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(items))
	for _, item := range items {
		fragment, err := r.rich.Fragment(item.Content)
		if err != nil {
			return nil, err
		}
		if fragment != "" {
			out = append(out, fragment)
		}
	}
	return out, nil
}

// frontImageKey reduces the cover image file name from the Info sheet to
// the logical key it was uploaded under: lowercase base name, no extension.
func frontImageKey(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
