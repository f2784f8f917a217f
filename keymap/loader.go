package keymap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dshills/keychord/key"
)

// bindingsFile mirrors the JSON layout of a bindings file:
//
//	{
//	  "bindings": [
//	    {"keys": "<ctrl>+x <ctrl>+f", "command": "find-file"}
//	  ]
//	}
type bindingsFile struct {
	Bindings []bindingSpec `json:"bindings"`
}

type bindingSpec struct {
	Keys    string `json:"keys"`
	Command string `json:"command"`
}

// Load reads binding specs from JSON and parses each key sequence.
func Load(r io.Reader) ([]Binding, error) {
	var file bindingsFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse bindings file: %w", err)
	}

	out := make([]Binding, 0, len(file.Bindings))
	for _, spec := range file.Bindings {
		seq, err := key.Parse(spec.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", spec.Keys, err)
		}
		if spec.Command == "" {
			return nil, fmt.Errorf("binding %q: missing command", spec.Keys)
		}
		out = append(out, Binding{Seq: seq, Command: spec.Command})
	}
	return out, nil
}

// LoadFile reads binding specs from a JSON file.
func LoadFile(path string) ([]Binding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bindings file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
