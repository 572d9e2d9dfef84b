package schema

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// IDList encodes ids as a JSON array column value
func IDList(ids []string) datatypes.JSON {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	return datatypes.JSON(b)
}

// ParseIDList decodes a JSON array column value. Empty or null columns yield an empty list.
func ParseIDList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// ParseAssignments decodes the assignments column of a batch weighing
func ParseAssignments(raw datatypes.JSON) ([]WeighingAssignment, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []WeighingAssignment{}, nil
	}
	var out []WeighingAssignment
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
