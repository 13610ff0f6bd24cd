package snapshot

// FakeSource is an in-memory ProcessSource for tests, substituting the
// platform-native process enumeration the spec treats as an external
// collaborator (spec.md §9 "Polymorphism").
type FakeSource struct {
	Raw    []RawProcess
	Totals SystemTotals
	Err    error
}

func (f *FakeSource) Collect() ([]RawProcess, SystemTotals, error) {
	if f.Err != nil {
		return nil, SystemTotals{}, f.Err
	}
	return f.Raw, f.Totals, nil
}
