package epidemicsim

import (
	"encoding/json"
	"fmt"
)

func stringToArrayString(s string) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("cannot parse command %v: %w", s, err)
	}
	return v, nil
}

// decodePayload re-marshals a loosely decoded command payload into a typed
// format struct.
func decodePayload(payload interface{}, out interface{}) error {
	byteData, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(byteData, out)
}
