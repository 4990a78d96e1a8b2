package docxbuilder

import (
	"fmt"
	"path"
	"strings"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/splice"
)

// relationship reference attributes checked in story parts, by local name
var referenceAttributes = map[string]struct{}{
	"id":    {},
	"embed": {},
	"link":  {},
	"pict":  {},
}

// Validate checks the structural consistency of a generated .docx file: the required
// parts exist, every internal relationship of a story part points at an existing part,
// every r:id style reference in a story part resolves, and every part has a content type.
// It returns a *ValidationError listing all problems found.
func Validate(data []byte) error {
	pkg, err := opc.Open(data)
	if err != nil {
		return &splice.PackageError{Kind: ErrMalformedPackage, Cause: err}
	}
	return ValidateArchive(pkg)
}

// ValidateArchive is Validate for an opened package.
func ValidateArchive(pkg *opc.Archive) error {
	var issues []ValidationIssue
	add := func(part, format string, args ...any) {
		issues = append(issues, ValidationIssue{Part: part, Message: fmt.Sprintf(format, args...)})
	}

	for _, required := range []string{opc.ContentTypesPart, opc.PackageRelsPart, opc.DocumentPart} {
		if !pkg.Has(required) {
			add(required, "required part is missing")
		}
	}

	for _, part := range pkg.StoryParts() {
		validateStoryPart(pkg, part, add)
	}
	validateContentTypes(pkg, add)

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func validateStoryPart(pkg *opc.Archive, part string, add func(part, format string, args ...any)) {
	ids := make(map[string]struct{})
	relsPart := opc.RelationshipsPartFor(part)
	if pkg.Has(relsPart) {
		data, _ := pkg.Read(relsPart)
		rels, err := opc.ParseRelationships(data)
		if err != nil {
			add(relsPart, "%v", err)
			return
		}
		for _, rel := range rels {
			if _, dup := ids[rel.ID]; dup {
				add(relsPart, "duplicate relationship id %s", rel.ID)
			}
			ids[rel.ID] = struct{}{}
			if rel.IsExternal() {
				continue
			}
			target := resolvePartTarget(part, rel.Target)
			if !pkg.Has(target) {
				add(relsPart, "relationship %s points at missing part %s", rel.ID, target)
			}
		}
	}

	data, _ := pkg.Read(part)
	text, err := splice.DecodePart(data)
	if err != nil {
		add(part, "%v", err)
		return
	}
	err = splice.Scan(text, func(tok splice.Token) error {
		if tok.Kind != splice.StartTag {
			return nil
		}
		for _, attr := range tok.Attrs {
			if attr.Name.Space != "r" {
				continue
			}
			if _, ok := referenceAttributes[attr.Name.Local]; !ok {
				continue
			}
			if _, ok := ids[attr.Value]; !ok {
				add(part, "<%s> refers to unknown relationship %s", tok.Name, attr.Value)
			}
		}
		return nil
	})
	if err != nil {
		add(part, "not well-formed: %v", err)
	}
}

// resolvePartTarget resolves a relationship target relative to the directory of the
// part that declares it.
func resolvePartTarget(part, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if path.Dir(part) == "word" {
		return opc.ResolveTarget(target)
	}
	return path.Join(path.Dir(part), target)
}

func validateContentTypes(pkg *opc.Archive, add func(part, format string, args ...any)) {
	data, err := pkg.Read(opc.ContentTypesPart)
	if err != nil {
		return
	}
	ct, err := opc.ParseContentTypes(data)
	if err != nil {
		add(opc.ContentTypesPart, "%v", err)
		return
	}
	for _, name := range pkg.Names() {
		if name == opc.ContentTypesPart {
			continue
		}
		ext := strings.TrimPrefix(path.Ext(name), ".")
		if !ct.HasOverride("/"+name) && !ct.HasDefault(ext) {
			add(name, "no content type registered")
		}
	}
}
