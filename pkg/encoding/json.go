package encoding

import (
	jsoniter "github.com/json-iterator/go"
)

// json is a jsoniter configuration that matches the behavior of the standard
// library's encoding/json package.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UnmarshalJSON decodes JSON-encoded data into the specified value.
func UnmarshalJSON(data []byte, value interface{}) error {
	return json.Unmarshal(data, value)
}

// MarshalJSON encodes the specified value as JSON.
func MarshalJSON(value interface{}) ([]byte, error) {
	return json.Marshal(value)
}

// LoadAndUnmarshalJSON loads data from the specified path and decodes it into
// the specified structure.
func LoadAndUnmarshalJSON(path string, value interface{}) error {
	return LoadAndUnmarshal(path, func(data []byte) error {
		return json.Unmarshal(data, value)
	})
}

// MarshalAndSaveJSON marshals the specified structure and saves it to the
// specified path.
func MarshalAndSaveJSON(path string, value interface{}) error {
	return MarshalAndSave(path, func() ([]byte, error) {
		return json.Marshal(value)
	})
}
