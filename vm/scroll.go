package vm

import (
	"fmt"
	"os"
)

// LoadScroll reads an entire program file into memory. It makes no
// attempt to interpret the bytes — that is the Array Table's job, reached
// through NewMachine — its only job is "read the file, or say why not."
func LoadScroll(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scroll %q: %w", path, err)
	}
	return data, nil
}
