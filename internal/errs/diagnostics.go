package errs

// Diagnostics accumulates non-fatal errors across a single file's checking
// pass. The checker records a Report per failure and keeps walking so a
// single run surfaces as many problems as possible; only errors that make
// further checking meaningless should short-circuit the walk instead of
// being recorded here.
type Diagnostics struct {
	reports []*Report
}

// NewDiagnostics returns an empty Diagnostics accumulator.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Add records a report. A nil error is ignored so call sites can pass the
// result of a fallible helper directly.
func (d *Diagnostics) Add(err error) {
	if err == nil {
		return
	}
	if rep, ok := AsReport(err); ok {
		d.reports = append(d.reports, rep)
		return
	}
	d.reports = append(d.reports, &Report{
		Schema:  "zaco.diagnostic/v1",
		Code:    GenericError,
		Phase:   "checker",
		Message: err.Error(),
	})
}

// HasErrors reports whether any diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.reports) > 0
}

// Reports returns the accumulated reports in recording order.
func (d *Diagnostics) Reports() []*Report {
	return d.reports
}
