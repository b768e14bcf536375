package docpack

import (
	"time"

	"pressline/internal/catalog"
	"pressline/internal/config"
	"pressline/internal/release"
)

// Field is one entry of the ordered metadata table.
type Field struct {
	Name  string
	Value string
}

// FilesReady captures asset readiness at generation time.
type FilesReady struct {
	Audio    bool `json:"audio"`
	Cover    bool `json:"cover"`
	Metadata bool `json:"metadata"`
}

// WorkflowStatus mirrors the fixed hand-off workflow steps that automation
// can attest to. The monitoring step has no flag; it never completes from
// inside the pipeline.
type WorkflowStatus struct {
	MetadataPrepared      bool `json:"metadata_prepared"`
	FilesValidated        bool `json:"files_validated"`
	PackageGenerated      bool `json:"package_generated"`
	InternalReview        bool `json:"internal_review"`
	RoutenoteUploaded     bool `json:"routenote_uploaded"`
	DistributionConfirmed bool `json:"distribution_confirmed"`
}

// Checklist is the machine-readable companion document.
type Checklist struct {
	ReleaseID      string         `json:"release_id"`
	GeneratedAt    time.Time      `json:"generated_at"`
	FilesReady     FilesReady     `json:"files_ready"`
	WorkflowStatus WorkflowStatus `json:"workflow_status"`
}

// Package bundles the three generated hand-off documents.
type Package struct {
	Metadata     []Field
	Instructions string
	Checklist    Checklist
}

// upcPending is rendered when the source release carries no product code.
const upcPending = "UPC-PENDING (assigned by distributor)"

// Generate renders the hand-off package for a pipeline release. It is a
// pure function of its inputs: given identical arguments it produces
// byte-identical output, which is what makes regeneration from the
// submitted state a safe re-download.
func Generate(p *release.Pipeline, src *release.Source, profile config.Distribution, generatedAt time.Time) Package {
	fields := metadataFields(p, src, profile, generatedAt)
	checklist := buildChecklist(p, src, generatedAt)
	return Package{
		Metadata:     fields,
		Instructions: renderInstructions(p, src, fields, checklist, generatedAt),
		Checklist:    checklist,
	}
}

func metadataFields(p *release.Pipeline, src *release.Source, profile config.Distribution, generatedAt time.Time) []Field {
	label := profile.Label
	if label == "" {
		label = p.Artist
	}
	holder := profile.CopyrightHolder
	if holder == "" {
		holder = p.Artist
	}

	upc := src.UPC
	if upc == "" {
		upc = upcPending
	}

	return []Field{
		{Name: "title", Value: p.Title},
		{Name: "artist", Value: p.Artist},
		{Name: "type", Value: string(src.Type)},
		{Name: "primary_genre", Value: src.PrimaryGenre()},
		{Name: "secondary_genre", Value: src.SecondaryGenre()},
		{Name: "release_date", Value: p.ReleaseDate},
		{Name: "product_code", Value: upc},
		{Name: "label", Value: label},
		{Name: "copyright_year", Value: copyrightYear(p.ReleaseDate, generatedAt)},
		{Name: "copyright_holder", Value: holder},
		{Name: "description", Value: src.Description},
		{Name: "explicit", Value: yesNo(profile.Explicit)},
		{Name: "language", Value: profile.Language},
		{Name: "territories", Value: profile.Territories},
	}
}

func buildChecklist(p *release.Pipeline, src *release.Source, generatedAt time.Time) Checklist {
	audio := src.HasAudio()
	cover := src.HasCover()
	return Checklist{
		ReleaseID:   p.ID,
		GeneratedAt: generatedAt.UTC(),
		FilesReady: FilesReady{
			Audio:    audio,
			Cover:    cover,
			Metadata: true,
		},
		WorkflowStatus: WorkflowStatus{
			MetadataPrepared: true,
			FilesValidated:   audio && cover,
			PackageGenerated: true,
		},
	}
}

// Progress returns the share of hand-off workflow steps completed, in the
// range 0 to 1.
func Progress(ws WorkflowStatus) float64 {
	completed := 0
	for _, done := range []bool{
		ws.MetadataPrepared,
		ws.FilesValidated,
		ws.PackageGenerated,
		ws.InternalReview,
		ws.RoutenoteUploaded,
		ws.DistributionConfirmed,
	} {
		if done {
			completed++
		}
	}
	return float64(completed) / float64(catalog.StepCount())
}

func copyrightYear(releaseDate string, generatedAt time.Time) string {
	if t, err := time.Parse(release.ReleaseDateLayout, releaseDate); err == nil {
		return t.Format("2006")
	}
	return generatedAt.UTC().Format("2006")
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
