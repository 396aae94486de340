package diag

type Note struct {
	Locus Locus
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Locus
	Notes    []Note
}

// WithNote returns a copy with an extra note attached.
func (d Diagnostic) WithNote(at Locus, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Locus: at, Msg: msg})
	return d
}
