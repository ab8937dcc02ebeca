package dto

import "encoding/json"

// MarkValue is a tri-state mark field for partial updates. A field absent
// from the request body stays Unchanged, an explicit JSON null means Clear,
// and a number means Set. The distinction cannot be expressed with a bare
// *float64, which conflates "omitted" with "cleared".
type MarkValue struct {
	Defined bool
	Value   *float64
}

// UnmarshalJSON marks the field as Defined whenever the key was present.
func (m *MarkValue) UnmarshalJSON(b []byte) error {
	m.Defined = true
	if string(b) == "null" {
		m.Value = nil
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Value = &f
	return nil
}

// MarshalJSON renders the value, or null when cleared/undefined.
func (m MarkValue) MarshalJSON() ([]byte, error) {
	if m.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*m.Value)
}

// Set reports whether the field was provided with a concrete value
func (m MarkValue) Set() bool { return m.Defined && m.Value != nil }

// Clear reports whether the field was provided as an explicit null
func (m MarkValue) Clear() bool { return m.Defined && m.Value == nil }

// SetMarksRequest carries a partial marks update for one student
type SetMarksRequest struct {
	FYP1 MarkValue `json:"fyp1Marks"`
	FYP2 MarkValue `json:"fyp2Marks"`
	LI   MarkValue `json:"liMarks"`
}

// MarksData summarises a student's marks and derived status
type MarksData struct {
	MatrixNumber string   `json:"matrixNumber" example:"AM2110012345"`
	FYP1Marks    *float64 `json:"fyp1Marks"`
	FYP2Marks    *float64 `json:"fyp2Marks"`
	LIMarks      *float64 `json:"liMarks"`
	Status       string   `json:"status" example:"Graded"`
}
