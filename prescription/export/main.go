// Command export writes the built-in prescriptions to JSON, in the format
// read by [prescription.ReadFile].
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/paraxial/prescription"
)

const outDir = "testdata/prescriptions"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, name := range slices.Sorted(maps.Keys(prescription.All)) {
		if err := write(prescription.All[name]); err != nil {
			panic(err)
		}
	}
}

func write(p *prescription.Prescription) (err error) {
	f, err := os.Create(filepath.Join(outDir, p.Name+".json"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
