package parser

import (
	"sort"

	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/models"
)

// DefaultStartRow is the first worksheet row that may hold matrix data.
const DefaultStartRow = 11

// FieldSpec lists the columns that jointly hold one logical field, read left to right.
type FieldSpec struct {
	Field   models.Field
	Columns []Column
}

// Layout describes where a matrix sheet keeps its data.
// Build it with NewLayout or DefaultLayout.
type Layout struct {
	// StartRow is the first data row (1-based).
	StartRow int
	// Fields maps every logical field to its columns.
	Fields [models.FieldCount]FieldSpec
	// FooterColumns are inspected for footer keywords.
	FooterColumns []Column
	// FooterKeywords are uppercase terms that mark the end of the data region.
	FooterKeywords []string

	relevant []Column
}

// DefaultLayout returns the energy-matrix layout:
//
//	B        equipment tag (filled down)
//	C D      equipment description (filled down)
//	E F G    source tag
//	H..L     source description
//	M N      how to lock
//	O..S     where to lock / tag
//	T U      lock type
//	Z AA     how to unlock
func DefaultLayout() Layout {
	return NewLayout(DefaultStartRow, []FieldSpec{
		{models.EquipmentTag, MustColumns("B")},
		{models.EquipmentDescription, MustColumns("C", "D")},
		{models.SourceTag, MustColumns("E", "F", "G")},
		{models.SourceDescription, MustColumns("H", "I", "J", "K", "L")},
		{models.HowToLock, MustColumns("M", "N")},
		{models.WhereToLock, MustColumns("O", "P", "Q", "R", "S")},
		{models.LockType, MustColumns("T", "U")},
		{models.HowToUnlock, MustColumns("Z", "AA")},
	},
		MustColumns("A", "B", "C", "D", "E", "H", "M", "O", "T", "Z", "AA"),
		[]string{
			"LEGENDA",
			"ELABORADOR",
			"REVISOR",
			"APROVADOR",
			"PROVIDENCIAS",
			"PROVIDÊNCIAS",
			"DISPOSITIVO",
			"LAYOUT",
			"PÁGINA",
			"PAGINA",
		},
	)
}

// NewLayout builds a layout and precomputes the set of relevant columns.
// Fields missing from specs get no columns and are always absent.
func NewLayout(startRow int, specs []FieldSpec, footerCols []Column, keywords []string) Layout {
	l := Layout{
		StartRow:       startRow,
		FooterColumns:  append([]Column(nil), footerCols...),
		FooterKeywords: append([]string(nil), keywords...),
	}
	for i := range l.Fields {
		l.Fields[i].Field = models.Field(i)
	}
	for _, s := range specs {
		if !s.Field.Valid() {
			continue
		}
		l.Fields[s.Field] = FieldSpec{Field: s.Field, Columns: append([]Column(nil), s.Columns...)}
	}

	seen := make(map[Column]bool)
	for _, s := range l.Fields {
		for _, c := range s.Columns {
			if !seen[c] {
				seen[c] = true
				l.relevant = append(l.relevant, c)
			}
		}
	}
	sort.Slice(l.relevant, func(i, j int) bool { return l.relevant[i] < l.relevant[j] })
	return l
}

// Columns returns the columns of field f.
func (l Layout) Columns(f models.Field) []Column {
	if !f.Valid() {
		return nil
	}
	return l.Fields[f].Columns
}

// RelevantColumns returns the union of all field columns in ascending order.
func (l Layout) RelevantColumns() []Column {
	return l.relevant
}
