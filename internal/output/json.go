package output

import (
	"encoding/json"
)

// ToJSON renders any record, or slice of records, as indented JSON.
func ToJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
