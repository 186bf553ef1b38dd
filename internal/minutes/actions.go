package minutes

import (
	"regexp"
	"strings"
)

var (
	// "Action Items" heading at any level, case-insensitive, up to the
	// next heading or end of document.
	reActionSection = regexp.MustCompile(`(?is)#+\s*action items\s*\n(.*?)(\n#|\z)`)
	reBullet        = regexp.MustCompile(`(?m)^\s*[•\-\*]\s*(.*)`)

	// "Name will/to/should <task>" or "Name: <task>"
	reAssignVerb  = regexp.MustCompile(`^([A-Z][a-z]+(?: [A-Z][a-z]+)?)\s+(?i:will|to|should)\s+(.+)$`)
	reAssignColon = regexp.MustCompile(`^([A-Z][a-z]+(?: [A-Z][a-z]+)?):\s+(.+)$`)
)

// ExtractActionItems scans a markdown summary for the "Action Items"
// section and synthesizes structured items from its bullet lines. Bullets
// without a recognizable name pattern become unassigned items with the
// whole line as title. Every extracted item defaults to Medium priority.
func ExtractActionItems(markdown string) []ActionItem {
	section := reActionSection.FindStringSubmatch(markdown)
	if section == nil {
		return nil
	}

	var items []ActionItem
	for _, bullet := range reBullet.FindAllStringSubmatch(section[1], -1) {
		line := strings.TrimSpace(bullet[1])
		if line == "" {
			continue
		}

		assignedTo := ""
		title := line

		m := reAssignVerb.FindStringSubmatch(line)
		if m == nil {
			m = reAssignColon.FindStringSubmatch(line)
		}
		if m != nil {
			assignedTo = m[1]
			title = m[2]
		}

		items = append(items, ActionItem{
			Title:       title,
			Description: line,
			AssignedTo:  assignedTo,
			Priority:    PriorityMedium,
		})
	}

	return items
}
