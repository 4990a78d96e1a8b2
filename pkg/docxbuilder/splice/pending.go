package splice

import (
	"github.com/tidwall/btree"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

type stagedPart struct {
	Name string
	Data []byte
}

func stagedPartLess(a, b stagedPart) bool {
	return a.Name < b.Name
}

// pendingWrites stages part contents for one save. Staging a path again replaces the
// earlier content; the archive is only touched by flush.
type pendingWrites struct {
	parts *btree.BTreeG[stagedPart]
}

func newPendingWrites() *pendingWrites {
	return &pendingWrites{parts: btree.NewBTreeG[stagedPart](stagedPartLess)}
}

func (p *pendingWrites) stage(name string, data []byte) {
	p.parts.Set(stagedPart{Name: name, Data: data})
}

func (p *pendingWrites) get(name string) ([]byte, bool) {
	item, ok := p.parts.Get(stagedPart{Name: name})
	if !ok {
		return nil, false
	}
	return item.Data, true
}

// flush writes every staged part into pkg in path order and returns the written names.
// The staging area is left empty.
func (p *pendingWrites) flush(pkg *opc.Archive) []string {
	names := make([]string, 0, p.parts.Len())
	p.parts.Scan(func(item stagedPart) bool {
		pkg.Write(item.Name, item.Data)
		names = append(names, item.Name)
		return true
	})
	p.parts = btree.NewBTreeG[stagedPart](stagedPartLess)
	return names
}
