package splice

import (
	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

// registerContentTypes adds [Content_Types].xml entries for parts new to the package.
// A package without a content types part is left alone.
func registerContentTypes(work *opc.Archive, staged *pendingWrites, records []Relationship) error {
	data, ok := staged.get(opc.ContentTypesPart)
	if !ok {
		if !work.Has(opc.ContentTypesPart) {
			return nil
		}
		var err error
		if data, err = work.Read(opc.ContentTypesPart); err != nil {
			return newPackageError(ErrMalformedPackage, opc.ContentTypesPart, err)
		}
	}

	ct, err := opc.ParseContentTypes(data)
	if err != nil {
		return newPackageError(ErrMalformedPackage, opc.ContentTypesPart, err)
	}

	changed := false
	for _, rec := range records {
		if ct.RegisterPart(rec.RenamedArchivePath(), rec.Type) {
			changed = true
		}
	}
	if !changed {
		return nil
	}

	out, err := ct.Marshal()
	if err != nil {
		return newPackageError(ErrPackageWrite, opc.ContentTypesPart, err)
	}
	staged.stage(opc.ContentTypesPart, out)
	return nil
}
