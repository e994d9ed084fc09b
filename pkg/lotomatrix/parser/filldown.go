package parser

// FillDown carries the last present value of a field down through rows where
// the field is blank, the way a vertically merged cell reads.
// The zero value is ready to use. Use one per field per worksheet.
type FillDown struct {
	last string
	set  bool
}

// Update returns the effective value for the current row.
// A present v becomes the new carried value.
func (f *FillDown) Update(v string, ok bool) (string, bool) {
	if ok {
		f.last, f.set = v, true
		return v, true
	}
	return f.last, f.set
}

// Reset forgets the carried value.
func (f *FillDown) Reset() {
	f.last, f.set = "", false
}
