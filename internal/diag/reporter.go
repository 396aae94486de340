package diag

// Reporter is the minimal contract engine stages use to surface failures.
// Implementations: BagReporter (collects into a Bag), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary Locus, msg string, notes []Note)
}

// BagReporter writes every report into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary Locus, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Locus, string, []Note) {}

// ReportError emits an error-severity diagnostic with no notes.
func ReportError(r Reporter, code Code, primary Locus, msg string) {
	if r == nil {
		return
	}
	r.Report(code, SevError, primary, msg, nil)
}

// ReportWarning emits a warning-severity diagnostic with no notes.
func ReportWarning(r Reporter, code Code, primary Locus, msg string) {
	if r == nil {
		return
	}
	r.Report(code, SevWarning, primary, msg, nil)
}
