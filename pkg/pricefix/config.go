package pricefix

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadOptions reads a TOML config file over DefaultOptions.
// Keys absent from the file keep their default value.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}
