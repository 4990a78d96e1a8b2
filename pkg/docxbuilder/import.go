package docxbuilder

import (
	"os"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/splice"
)

// InsertDocx appends the body of another .docx package to the current target.
// The imported relationships are renamed so they cannot collide with the host or with
// earlier imports; the referenced parts are written at save. A failed import leaves
// the document unchanged.
func (d *Document) InsertDocx(data []byte) error {
	imported, err := d.importDocx(data)
	if err != nil {
		return NewDocumentError("import", "", err)
	}
	d.push(imported.Body)
	return nil
}

// InsertDocxFile reads a .docx file and appends its body like InsertDocx.
func (d *Document) InsertDocxFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		d.metrics.observeImport(err)
		return NewDocumentError("import", path, err)
	}
	imported, err := d.importDocx(data)
	if err != nil {
		return NewDocumentError("import", path, err)
	}
	d.push(imported.Body)
	return nil
}

func (d *Document) importDocx(data []byte) (*splice.Imported, error) {
	imported, err := d.tables.Import(data)
	d.metrics.observeImport(err)
	if err != nil {
		d.logger.WithField("bytes", len(data)).Warn("Import failed: %v", err)
		return nil, err
	}
	d.records = append(d.records, imported.Relationships...)
	d.logger.WithFields(Fields{
		"bytes":         len(data),
		"relationships": len(imported.Relationships),
	}).Debug("Imported document")
	return imported, nil
}

// PendingImport is an import whose file is being read in the background.
type PendingImport struct {
	doc    *Document
	path   string
	target Target
	slot   int

	done    chan struct{}
	data    []byte
	readErr error

	applied bool
	err     error
}

// InsertDocxFileAsync starts reading a .docx file in the background and reserves its
// position in the current target. The import itself is applied by Wait, on the
// calling goroutine; Bytes and Save wait for imports that were not waited for.
func (d *Document) InsertDocxFileAsync(path string) *PendingImport {
	target := d.state.Target
	d.buffers[target] = append(d.buffers[target], "")

	p := &PendingImport{
		doc:    d,
		path:   path,
		target: target,
		slot:   len(d.buffers[target]) - 1,
		done:   make(chan struct{}),
	}
	d.pending = append(d.pending, p)

	go func() {
		defer close(p.done)
		p.data, p.readErr = os.ReadFile(path)
	}()
	return p
}

// Done is closed when the file has been read.
func (p *PendingImport) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the file is read, then applies the import into the reserved
// position. Calling Wait again returns the same result.
func (p *PendingImport) Wait() error {
	<-p.done
	if p.applied {
		return p.err
	}
	p.applied = true

	if p.readErr != nil {
		p.doc.metrics.observeImport(p.readErr)
		p.err = NewDocumentError("import", p.path, p.readErr)
		return p.err
	}
	imported, err := p.doc.importDocx(p.data)
	p.data = nil
	if err != nil {
		p.err = NewDocumentError("import", p.path, err)
		return p.err
	}
	p.doc.buffers[p.target][p.slot] = imported.Body
	return nil
}

// awaitPending applies imports that were started but never waited for.
// Failed imports keep an empty slot.
func (d *Document) awaitPending() {
	for _, p := range d.pending {
		if err := p.Wait(); err != nil {
			d.logger.WithField("path", p.path).Warn("Skipping failed background import: %v", err)
		}
	}
	d.pending = nil
}
