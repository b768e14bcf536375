package docpack

import (
	"fmt"
	"strings"
	"time"

	"pressline/internal/release"
)

const banner = "============================================================"

var uploadSteps = []string{
	"Log in to the distributor dashboard and choose \"Create New Release\".",
	"Enter the title, artist, and release type exactly as listed in the release details.",
	"Set the primary genre (and the secondary genre when one is listed).",
	"Upload the audio master and the cover art from your asset storage.",
	"Enter the product code, or leave it blank for the distributor to assign one.",
	"Select the platforms listed below and schedule the release date.",
	"Submit for review and confirm the upload in Pressline once accepted.",
}

// renderInstructions assembles the human-readable hand-off document. Section
// order is fixed: banner, release details, files checklist, upload steps,
// selected platforms, revenue note, timeline note, tracking note.
func renderInstructions(p *release.Pipeline, src *release.Source, fields []Field, checklist Checklist, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(banner + "\n")
	b.WriteString(" RELEASE DISTRIBUTION PACKAGE\n")
	fmt.Fprintf(&b, " %s by %s\n", p.Title, p.Artist)
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.UTC().Format(time.RFC3339))
	b.WriteString("\n")

	b.WriteString("RELEASE DETAILS\n")
	for _, field := range fields {
		fmt.Fprintf(&b, "  %-18s %s\n", displayName(field.Name)+":", field.Value)
	}
	b.WriteString("\n")

	b.WriteString("FILES CHECKLIST\n")
	fmt.Fprintf(&b, "  %s Audio master (%s)\n", readyMark(checklist.FilesReady.Audio), orUnset(src.AudioRef))
	fmt.Fprintf(&b, "  %s Cover art (%s)\n", readyMark(checklist.FilesReady.Cover), orUnset(src.CoverRef))
	fmt.Fprintf(&b, "  %s Metadata table\n", readyMark(checklist.FilesReady.Metadata))
	b.WriteString("\n")

	b.WriteString("UPLOAD STEPS\n")
	for i, step := range uploadSteps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	b.WriteString("\n")

	b.WriteString("SELECTED PLATFORMS\n")
	if len(p.Platforms) == 0 {
		b.WriteString("  (none selected)\n")
	} else {
		for _, name := range p.Platforms {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}
	b.WriteString("\n")

	b.WriteString("REVENUE MODEL\n")
	b.WriteString("  The distributor forwards 100% of platform royalties. Stream and\n")
	b.WriteString("  revenue figures are reported back per release and recorded with\n")
	b.WriteString("  the metrics command.\n")
	b.WriteString("\n")

	b.WriteString("TIMELINE\n")
	b.WriteString("  Expect 1-2 business days for distributor review and up to 7 days\n")
	b.WriteString("  for stores to list the release after approval.\n")
	b.WriteString("\n")

	b.WriteString("POST-RELEASE TRACKING\n")
	b.WriteString("  Once the release is live, mark it published and record reported\n")
	b.WriteString("  figures so dashboard totals stay accurate.\n")

	return b.String()
}

func displayName(fieldName string) string {
	parts := strings.Split(fieldName, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func readyMark(ready bool) string {
	if ready {
		return "✅"
	}
	return "❌"
}

func orUnset(ref string) string {
	if strings.TrimSpace(ref) == "" {
		return "not attached"
	}
	return ref
}
