package splice

// Imported is an external document ready to be appended to a host: its body markup with
// relationship ids already rewritten, and the relationships the body refers to.
type Imported struct {
	Body          string
	Relationships []Relationship
	Renames       RenameMap
}

// Import extracts a DOCX package, builds its relationship table and rewrites the body.
// On error no ids are reserved.
func (b *TableBuilder) Import(data []byte) (*Imported, error) {
	frags, pkg, err := ExtractBytes(data)
	if err != nil {
		return nil, err
	}
	records, renames, err := b.Build(frags.Relationships, pkg)
	if err != nil {
		return nil, err
	}
	return &Imported{
		Body:          RewriteIDs(frags.Body, renames),
		Relationships: records,
		Renames:       renames,
	}, nil
}
