// Package models defines the records produced by energy-matrix extraction.
package models

// Field identifies one logical column of the consolidated table.
type Field int

const (
	// EquipmentTag is the equipment tag, filled down across merged rows.
	EquipmentTag Field = iota
	// EquipmentDescription is the equipment description, filled down across merged rows.
	EquipmentDescription
	// SourceTag is the energy source tag.
	SourceTag
	// SourceDescription is the energy source description.
	SourceDescription
	// HowToLock describes how the source is locked out.
	HowToLock
	// WhereToLock names the lock point or its tag.
	WhereToLock
	// LockType is the lockout device type.
	LockType
	// HowToUnlock describes how the source is released.
	HowToUnlock

	// FieldCount is the number of logical fields.
	FieldCount = int(HowToUnlock) + 1
)

// SourceFileHeader is the header of the provenance column in the consolidated table.
const SourceFileHeader = "Arquivo de Origem"

var fieldHeaders = [FieldCount]string{
	EquipmentTag:         "Tag do Equipamento",
	EquipmentDescription: "Descrição do Equipamento",
	SourceTag:            "Tag da Fonte de Energia",
	SourceDescription:    "Descrição da Fonte de Energia",
	HowToLock:            "Como Bloquear",
	WhereToLock:          "Onde Bloquear / TAG",
	LockType:             "Tipo de Bloqueio",
	HowToUnlock:          "Como Desbloquear",
}

var fieldKeys = [FieldCount]string{
	EquipmentTag:         "equipment_tag",
	EquipmentDescription: "equipment_description",
	SourceTag:            "source_tag",
	SourceDescription:    "source_description",
	HowToLock:            "how_to_lock",
	WhereToLock:          "where_to_lock",
	LockType:             "lock_type",
	HowToUnlock:          "how_to_unlock",
}

// Fields returns every field in output column order.
func Fields() []Field {
	out := make([]Field, FieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// SourceFields returns the six energy-source fields.
func SourceFields() []Field {
	out := make([]Field, 0, FieldCount)
	for _, f := range Fields() {
		if f.IsSource() {
			out = append(out, f)
		}
	}
	return out
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	return f >= 0 && int(f) < FieldCount
}

// Header returns the column title used in the consolidated workbook.
func (f Field) Header() string {
	if !f.Valid() {
		return ""
	}
	return fieldHeaders[f]
}

// String returns the snake_case key used in JSON and logs.
func (f Field) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return fieldKeys[f]
}

// IsSource reports whether f describes an energy source rather than the equipment.
func (f Field) IsSource() bool {
	return f.Valid() && f != EquipmentTag && f != EquipmentDescription
}

// Headers returns the full header row of the consolidated table.
func Headers() []string {
	out := make([]string, 0, FieldCount+1)
	out = append(out, SourceFileHeader)
	for _, f := range Fields() {
		out = append(out, f.Header())
	}
	return out
}
