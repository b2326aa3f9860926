package encoding

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// LoadAndUnmarshalTOML loads data from the specified path and decodes it into
// the specified structure.
func LoadAndUnmarshalTOML(path string, value interface{}) error {
	return LoadAndUnmarshal(path, func(data []byte) error {
		return toml.Unmarshal(data, value)
	})
}

// MarshalAndSaveTOML marshals the specified structure and saves it to the
// specified path.
func MarshalAndSaveTOML(path string, value interface{}) error {
	return MarshalAndSave(path, func() ([]byte, error) {
		buffer := &bytes.Buffer{}
		if err := toml.NewEncoder(buffer).Encode(value); err != nil {
			return nil, err
		}
		return buffer.Bytes(), nil
	})
}
