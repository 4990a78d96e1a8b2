package splice

import (
	"fmt"
	"path"
	"strings"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

// Placeholder names the host template exposes for generated content.
const (
	BodyPlaceholder   = "body"
	HeaderPlaceholder = "header"
	FooterPlaceholder = "footer"
)

// Parts is the generated markup substituted into the host template.
type Parts struct {
	Body   string
	Header string
	Footer string
}

// Values returns the parts keyed by placeholder name.
func (p Parts) Values() map[string]string {
	return map[string]string{
		BodyPlaceholder:   p.Body,
		HeaderPlaceholder: p.Header,
		FooterPlaceholder: p.Footer,
	}
}

// Renderer substitutes placeholder values into the parts of a merged archive.
type Renderer interface {
	Render(pkg *opc.Archive, values map[string]string) error
}

// Options controls merge behavior.
type Options struct {
	// Strict turns unsupported merge targets into errors instead of diagnostics.
	Strict bool
	// RegisterContentTypes adds [Content_Types].xml entries for new parts.
	RegisterContentTypes bool
}

// Disposition is what the merge did with one imported relationship.
type Disposition string

const (
	DispositionAdded    Disposition = "added"
	DispositionMerged   Disposition = "merged"
	DispositionReplaced Disposition = "replaced"
	DispositionExternal Disposition = "external"
	DispositionSkipped  Disposition = "skipped"
)

// Diagnostic describes an imported relationship that was skipped.
type Diagnostic struct {
	Kind           error
	RelationshipID string
	Part           string
	Message        string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %s (%s): %s", d.Kind, d.Part, d.RelationshipID, d.Message)
}

// Report summarizes a merge.
type Report struct {
	Counts      map[Disposition]int
	Diagnostics []Diagnostic
	// Written lists the archive parts written by the merge, in path order.
	Written []string
}

func newReport() *Report {
	return &Report{Counts: make(map[Disposition]int)}
}

// Count returns the number of relationships with the given disposition.
func (r *Report) Count(d Disposition) int {
	return r.Counts[d]
}

// Merge combines the host template, the imported relationships and the generated parts
// into a serialized package. The host archive is not modified.
func Merge(host *opc.Archive, records []Relationship, parts Parts, renderer Renderer, opts Options) ([]byte, *Report, error) {
	work, report, err := MergeArchive(host, records, parts, renderer, opts)
	if err != nil {
		return nil, report, err
	}
	out, err := work.Bytes()
	if err != nil {
		return nil, report, newPackageError(ErrPackageWrite, "", err)
	}
	return out, report, nil
}

// MergeArchive is Merge without the final serialization.
//
// Records are applied in order. Renamed records become new parts with a manifest row.
// Records that kept a shared file name are merged into the host's copy of that part by
// appending their root content before the root's closing tag; theme parts are replaced
// instead. Any other same-path record is skipped with a diagnostic.
func MergeArchive(host *opc.Archive, records []Relationship, parts Parts, renderer Renderer, opts Options) (*opc.Archive, *Report, error) {
	work := host.Clone()
	staged := newPendingWrites()
	report := newReport()

	hostIDs, err := manifestIDs(work)
	if err != nil {
		return nil, report, err
	}

	var additions []opc.Relationship
	var newParts []Relationship
	ensureRow := func(rec Relationship) {
		if _, ok := hostIDs[rec.RenamedID]; ok {
			return
		}
		hostIDs[rec.RenamedID] = struct{}{}
		additions = append(additions, rec.ManifestEntry())
	}

	for _, rec := range records {
		switch {
		case rec.IsExternal():
			additions = append(additions, rec.ManifestEntry())
			report.Counts[DispositionExternal]++

		case rec.Renamed():
			staged.stage(rec.RenamedArchivePath(), rec.Payload)
			additions = append(additions, rec.ManifestEntry())
			newParts = append(newParts, rec)
			report.Counts[DispositionAdded]++

		case isThemePart(rec):
			if _, ok := staged.get(rec.ArchivePath()); !ok && !work.Has(rec.ArchivePath()) {
				newParts = append(newParts, rec)
			}
			staged.stage(rec.ArchivePath(), rec.Payload)
			ensureRow(rec)
			report.Counts[DispositionReplaced]++

		case isXMLPart(rec):
			created, err := mergeShared(work, staged, rec)
			if err != nil {
				return nil, report, err
			}
			if created {
				newParts = append(newParts, rec)
			}
			ensureRow(rec)
			report.Counts[DispositionMerged]++

		default:
			if opts.Strict {
				return nil, report, newPackageError(ErrUnsupportedMergeTarget, rec.ArchivePath(),
					fmt.Errorf("relationship %s", rec.OriginalID))
			}
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Kind:           ErrUnsupportedMergeTarget,
				RelationshipID: rec.OriginalID,
				Part:           rec.ArchivePath(),
				Message:        "cannot merge non-XML part sharing a host path",
			})
			report.Counts[DispositionSkipped]++
		}
	}

	if len(additions) > 0 {
		if err := stageManifestRows(work, additions, staged); err != nil {
			return nil, report, err
		}
	}
	if opts.RegisterContentTypes && len(newParts) > 0 {
		if err := registerContentTypes(work, staged, newParts); err != nil {
			return nil, report, err
		}
	}

	report.Written = staged.flush(work)

	if renderer != nil {
		if err := renderer.Render(work, parts.Values()); err != nil {
			return nil, report, newPackageError(ErrPackageWrite, "", fmt.Errorf("render placeholders: %w", err))
		}
	}
	return work, report, nil
}

// mergeShared splices the imported part into the staged or host copy of the same part.
// It reports whether the part did not exist before, in which case the import itself
// becomes the destination.
func mergeShared(work *opc.Archive, staged *pendingWrites, rec Relationship) (bool, error) {
	name := rec.ArchivePath()
	imported, err := DecodePart(rec.Payload)
	if err != nil {
		return false, newPackageError(ErrMalformedPackage, name, err)
	}

	var dest string
	if data, ok := staged.get(name); ok {
		dest = string(data)
	} else if work.Has(name) {
		data, err := work.Read(name)
		if err != nil {
			return false, newPackageError(ErrMalformedPackage, name, err)
		}
		if dest, err = DecodePart(data); err != nil {
			return false, newPackageError(ErrMalformedPackage, name, err)
		}
	} else {
		staged.stage(name, []byte(imported))
		return true, nil
	}

	merged, err := SpliceInner(dest, imported)
	if err != nil {
		return false, newPackageError(ErrMalformedPackage, name, err)
	}
	staged.stage(name, []byte(merged))
	return false, nil
}

func stageManifestRows(work *opc.Archive, rows []opc.Relationship, staged *pendingWrites) error {
	if !work.Has(opc.DocumentRelsPart) {
		return newPackageError(ErrMalformedPackage, opc.DocumentRelsPart,
			fmt.Errorf("%d relationship(s) to add but the host has no manifest", len(rows)))
	}
	data, err := work.Read(opc.DocumentRelsPart)
	if err != nil {
		return newPackageError(ErrMalformedPackage, opc.DocumentRelsPart, err)
	}
	manifest, err := DecodePart(data)
	if err != nil {
		return newPackageError(ErrMalformedPackage, opc.DocumentRelsPart, err)
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row.Markup())
	}
	updated, err := InsertBeforeClose(manifest, b.String())
	if err != nil {
		return newPackageError(ErrMalformedPackage, opc.DocumentRelsPart, err)
	}
	staged.stage(opc.DocumentRelsPart, []byte(updated))
	return nil
}

// manifestIDs collects the relationship ids of the host manifest, if it has one.
// Fixed shared ids must name their shared part.
func manifestIDs(pkg *opc.Archive) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	if !pkg.Has(opc.DocumentRelsPart) {
		return ids, nil
	}
	data, err := pkg.Read(opc.DocumentRelsPart)
	if err != nil {
		return nil, newPackageError(ErrMalformedPackage, opc.DocumentRelsPart, err)
	}
	rels, err := opc.ParseRelationships(data)
	if err != nil {
		return nil, newPackageError(ErrMalformedPackage, opc.DocumentRelsPart, err)
	}
	for _, rel := range rels {
		if err := checkSharedID(rel); err != nil {
			return nil, newPackageError(ErrMalformedPackage, opc.DocumentRelsPart, err)
		}
		ids[rel.ID] = struct{}{}
	}
	return ids, nil
}

// checkSharedID rejects a host relationship that uses a fixed shared id for a part
// other than the one that id stands for.
func checkSharedID(rel opc.Relationship) error {
	want, ok := sharedFilenames[rel.ID]
	if !ok {
		return nil
	}
	if rel.IsExternal() || path.Base(rel.Target) != want {
		return fmt.Errorf("relationship %s must target %s, not %s", rel.ID, want, rel.Target)
	}
	return nil
}

func isXMLPart(rec Relationship) bool {
	return strings.EqualFold(path.Ext(rec.Filename()), ".xml")
}

func isThemePart(rec Relationship) bool {
	return isXMLPart(rec) && path.Base(path.Dir(rec.ArchivePath())) == "theme"
}
