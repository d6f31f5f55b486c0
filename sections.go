package newsletter

import "sort"

// firstSectionPage is the page of the first event section: editorial board,
// vision/mission, and contents occupy pages 1-3.
const firstSectionPage = 4

// Sections is the grouped, ordered view of event records used by the
// contents table and the per-section pages.
type Sections struct {
	// Names is the lexicographically sorted list of section names; it
	// defines both document order and table-of-contents order.
	Names []string
	// Events holds each section's records in source order.
	Events map[string][]EventRecord
	// Pages maps section name to its page number (firstSectionPage + rank).
	Pages map[string]int
}

// groupSections partitions events by their Department/Section value.
// Grouping is case-sensitive: "Tech Talks" and "tech talks" are distinct
// sections. Events without a section land in DefaultSection.
func groupSections(events []EventRecord) Sections {
	grouped := make(map[string][]EventRecord)
	for _, ev := range events {
		name := ev.Section
		if name == "" {
			name = DefaultSection
		}
		grouped[name] = append(grouped[name], ev)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	pages := make(map[string]int, len(names))
	for rank, name := range names {
		pages[name] = firstSectionPage + rank
	}

	return Sections{Names: names, Events: grouped, Pages: pages}
}
