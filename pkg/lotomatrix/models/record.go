package models

// Record is one energy-source row of an energy matrix.
// A nil field means the source cells held no value.
type Record struct {
	// SourceFile is the workbook file name (no path).
	SourceFile string `json:"source_file"`
	// Sheet is the worksheet the row was read from.
	Sheet string `json:"sheet,omitempty"`
	// Row is the 1-based worksheet row.
	Row int `json:"row,omitempty"`

	EquipmentTag         *string `json:"equipment_tag"`
	EquipmentDescription *string `json:"equipment_description"`
	SourceTag            *string `json:"source_tag"`
	SourceDescription    *string `json:"source_description"`
	HowToLock            *string `json:"how_to_lock"`
	WhereToLock          *string `json:"where_to_lock"`
	LockType             *string `json:"lock_type"`
	HowToUnlock          *string `json:"how_to_unlock"`
}

// Value returns the value of f, or nil when absent.
func (r *Record) Value(f Field) *string {
	if p := r.slot(f); p != nil {
		return *p
	}
	return nil
}

// Set stores v as the value of f. A nil v marks the field absent.
func (r *Record) Set(f Field, v *string) {
	if p := r.slot(f); p != nil {
		*p = v
	}
}

func (r *Record) slot(f Field) **string {
	switch f {
	case EquipmentTag:
		return &r.EquipmentTag
	case EquipmentDescription:
		return &r.EquipmentDescription
	case SourceTag:
		return &r.SourceTag
	case SourceDescription:
		return &r.SourceDescription
	case HowToLock:
		return &r.HowToLock
	case WhereToLock:
		return &r.WhereToLock
	case LockType:
		return &r.LockType
	case HowToUnlock:
		return &r.HowToUnlock
	}
	return nil
}

// HasSourceInfo reports whether any energy-source field is present.
// Rows carrying only an equipment label are not data rows.
func (r *Record) HasSourceInfo() bool {
	for _, f := range SourceFields() {
		if r.Value(f) != nil {
			return true
		}
	}
	return false
}

// Cells returns the record as a consolidated table row, source file first.
// Absent fields are returned as nil so writers can leave the cell blank.
func (r *Record) Cells() []interface{} {
	out := make([]interface{}, 0, FieldCount+1)
	out = append(out, r.SourceFile)
	for _, f := range Fields() {
		if v := r.Value(f); v != nil {
			out = append(out, *v)
		} else {
			out = append(out, nil)
		}
	}
	return out
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}
