package docxbuilder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
	"github.com/kundan048/docx-builder/pkg/docxbuilder/splice"
)

// Bytes merges the document into its host template and returns the .docx file.
func (d *Document) Bytes() ([]byte, error) {
	out, _, err := d.build()
	if err != nil {
		return nil, NewDocumentError("save", "", err)
	}
	return out, nil
}

// Save writes the document to path. The file is written to a temporary file in the
// same directory and renamed into place, so a failed save leaves no file behind.
func (d *Document) Save(path string) error {
	out, _, err := d.build()
	if err != nil {
		return NewDocumentError("save", path, err)
	}
	if err := WriteFile(path, out); err != nil {
		return err
	}
	d.logger.WithFields(Fields{"path": path, "bytes": len(out)}).Info("Saved document")
	return nil
}

// Report merges the document like Bytes and also returns the merge report.
func (d *Document) Report() ([]byte, *splice.Report, error) {
	out, report, err := d.build()
	if err != nil {
		return nil, report, NewDocumentError("save", "", err)
	}
	return out, report, nil
}

func (d *Document) build() ([]byte, *splice.Report, error) {
	d.awaitPending()

	start := time.Now()
	host, err := d.hostTemplate()
	if err != nil {
		d.metrics.observeSave(nil, err, time.Since(start))
		return nil, nil, err
	}

	opts := splice.Options{
		Strict:               d.config.StrictMerge,
		RegisterContentTypes: true,
	}
	out, report, err := splice.Merge(host, d.records, d.parts(), d.renderer, opts)
	d.metrics.observeSave(report, err, time.Since(start))
	if report != nil {
		for _, diag := range report.Diagnostics {
			d.logger.WithFields(Fields{"part": diag.Part, "relationship": diag.RelationshipID}).
				Warn("Cannot merge part: %s", diag.Message)
		}
	}
	if err != nil {
		d.logger.Error("Merge failed: %v", err)
		return nil, report, err
	}

	d.logger.WithFields(Fields{
		"relationships": len(d.records),
		"written":       len(report.Written),
		"bytes":         len(out),
	}).Debug("Merged document")
	return out, report, nil
}

func (d *Document) hostTemplate() (*opc.Archive, error) {
	if d.template != nil {
		return d.template, nil
	}
	if d.config.TemplatePath != "" {
		archive, err := sharedTemplateCache().Load(d.config.TemplatePath)
		if err != nil {
			return nil, &splice.PackageError{Kind: ErrMalformedPackage, Part: d.config.TemplatePath, Cause: err}
		}
		return archive, nil
	}
	return DefaultTemplate(), nil
}

// WriteFile writes a generated package to path through a temporary file in the same
// directory, so that path is either fully written or left as it was.
func WriteFile(path string, data []byte) error {
	if err := writeFileAtomic(path, data); err != nil {
		return NewDocumentError("save", path, fmt.Errorf("%w: %v", ErrPackageWrite, err))
	}
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
