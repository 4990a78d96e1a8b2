package splice

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

// sharedParts maps the file name of every part the host template owns to the fixed
// relationship id it is registered under. Imported relationships that point at one of
// these file names are merged into the host part instead of being copied.
var sharedParts = map[string]string{
	"styles.xml":      "rId1",
	"settings.xml":    "rId2",
	"webSettings.xml": "rId3",
	"footnotes.xml":   "rId4",
	"endnotes.xml":    "rId5",
	"header1.xml":     "rId6",
	"footer1.xml":     "rId7",
	"fontTable.xml":   "rId8",
	"theme1.xml":      "rId9",
}

// sharedFilenames is sharedParts inverted.
var sharedFilenames = func() map[string]string {
	m := make(map[string]string, len(sharedParts))
	for name, id := range sharedParts {
		m[id] = name
	}
	return m
}()

// SharedPartID returns the fixed host relationship id for a shared file name.
func SharedPartID(filename string) (string, bool) {
	id, ok := sharedParts[filename]
	return id, ok
}

// SharedPartIDs returns the fixed host relationship ids in ascending order.
func SharedPartIDs() []string {
	ids := make([]string, 0, len(sharedParts))
	for _, id := range sharedParts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Relationship is one imported relationship with its renaming decision.
type Relationship struct {
	OriginalID     string
	RenamedID      string
	Type           string
	OriginalTarget string
	RenamedTarget  string
	TargetMode     string
	// Payload is the content of the referenced part, captured at import time.
	// External relationships have none.
	Payload []byte
}

// IsExternal reports whether the relationship points outside the package.
func (r Relationship) IsExternal() bool {
	return strings.EqualFold(r.TargetMode, opc.ExternalTargetMode)
}

// Renamed reports whether the relationship was given a new target path.
func (r Relationship) Renamed() bool {
	return r.RenamedTarget != r.OriginalTarget
}

// Filename is the last path component of the original target.
func (r Relationship) Filename() string {
	return path.Base(r.OriginalTarget)
}

// ArchivePath is where the original target lives in the source package.
func (r Relationship) ArchivePath() string {
	return opc.ResolveTarget(r.OriginalTarget)
}

// RenamedArchivePath is where the target lives in the combined package.
func (r Relationship) RenamedArchivePath() string {
	return opc.ResolveTarget(r.RenamedTarget)
}

// ManifestEntry is the row the relationship contributes to the combined manifest.
func (r Relationship) ManifestEntry() opc.Relationship {
	return opc.Relationship{
		ID:         r.RenamedID,
		Type:       r.Type,
		Target:     r.RenamedTarget,
		TargetMode: r.TargetMode,
	}
}

// RenameMap maps original relationship ids to renamed ids for one import.
type RenameMap map[string]string

// PartReader reads parts of a source package.
type PartReader interface {
	Read(name string) ([]byte, error)
}

const maxSuffixAttempts = 16

// TableBuilder builds relationship tables for successive imports into one document,
// keeping every renamed id unique across the host and all earlier imports.
// It is not safe for concurrent use.
type TableBuilder struct {
	suffix SuffixGenerator
	used   map[string]struct{}
}

// NewTableBuilder returns a builder whose id set is seeded with the host's fixed ids.
// A nil generator defaults to UUIDSuffix.
func NewTableBuilder(suffix SuffixGenerator) *TableBuilder {
	if suffix == nil {
		suffix = UUIDSuffix{}
	}
	b := &TableBuilder{suffix: suffix, used: make(map[string]struct{})}
	b.Reserve(SharedPartIDs()...)
	return b
}

// Reserve marks ids as taken.
func (b *TableBuilder) Reserve(ids ...string) {
	for _, id := range ids {
		b.used[id] = struct{}{}
	}
}

// InUse reports whether id is already taken.
func (b *TableBuilder) InUse(id string) bool {
	_, ok := b.used[id]
	return ok
}

// Build parses a relationship manifest and decides the renamed id and target of every
// entry, reading each internal target's payload from src. Ids are only reserved when
// the whole table was built successfully.
func (b *TableBuilder) Build(relsXML string, src PartReader) ([]Relationship, RenameMap, error) {
	entries, err := opc.ParseRelationships([]byte(relsXML))
	if err != nil {
		return nil, nil, newPackageError(ErrMalformedPackage, opc.DocumentRelsPart, err)
	}

	taken := make(map[string]struct{})
	records := make([]Relationship, 0, len(entries))
	renames := make(RenameMap, len(entries))

	for _, entry := range entries {
		if entry.ID == "" {
			return nil, nil, newPackageError(ErrMalformedPackage, opc.DocumentRelsPart,
				fmt.Errorf("relationship to %q has no id", entry.Target))
		}
		rec := Relationship{
			OriginalID:     entry.ID,
			Type:           entry.Type,
			OriginalTarget: entry.Target,
			TargetMode:     entry.TargetMode,
		}

		if rec.IsExternal() {
			token, err := b.freshToken(entry.ID, taken)
			if err != nil {
				return nil, nil, err
			}
			rec.RenamedID = renamedID(entry.ID, token)
			rec.RenamedTarget = entry.Target
		} else {
			if strings.HasPrefix(entry.Target, "/") {
				return nil, nil, newPackageError(ErrMalformedPackage, opc.DocumentRelsPart,
					fmt.Errorf("relationship %s has absolute target %q", entry.ID, entry.Target))
			}
			payload, err := src.Read(rec.ArchivePath())
			if err != nil {
				return nil, nil, newPackageError(ErrMalformedPackage, rec.ArchivePath(), err)
			}
			rec.Payload = payload

			if id, ok := SharedPartID(rec.Filename()); ok {
				rec.RenamedID = id
				rec.RenamedTarget = entry.Target
			} else {
				token, err := b.freshToken(entry.ID, taken)
				if err != nil {
					return nil, nil, err
				}
				rec.RenamedID = renamedID(entry.ID, token)
				rec.RenamedTarget = renamedTarget(entry.Target, token)
			}
		}

		renames[rec.OriginalID] = rec.RenamedID
		records = append(records, rec)
	}

	for id := range taken {
		b.used[id] = struct{}{}
	}
	return records, renames, nil
}

var errSuffixExhausted = errors.New("suffix generator keeps producing ids already in use")

func (b *TableBuilder) freshToken(originalID string, taken map[string]struct{}) (string, error) {
	for range maxSuffixAttempts {
		token := b.suffix.Next()
		id := renamedID(originalID, token)
		if _, ok := b.used[id]; ok {
			continue
		}
		if _, ok := taken[id]; ok {
			continue
		}
		taken[id] = struct{}{}
		return token, nil
	}
	return "", fmt.Errorf("%w: %s", errSuffixExhausted, originalID)
}

func renamedID(originalID, token string) string {
	return originalID + "_" + token
}

// renamedTarget inserts the token before the file name: "media/image1.png" becomes
// "media/<token>_image1.png".
func renamedTarget(target, token string) string {
	dir, file := path.Split(target)
	return dir + token + "_" + file
}
