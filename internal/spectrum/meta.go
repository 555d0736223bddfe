package spectrum

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pfagrelius/skyfit-go/internal/errors"
)

// MetaEntry ties a single spectrum on a plate to the camera that recorded
// it. Camera tags are short codes such as b1 or r2.
type MetaEntry struct {
	Plate  int
	SpecNo int
	Camera string
}

// Metadata indexes observation metadata by plate.
type Metadata struct {
	byPlate map[int][]MetaEntry
}

// LoadMetadata reads an observation metadata table in CSV form. The header
// must name PLATE, SPECNO and CAMERAS columns; column order is free.
func LoadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("spectrum").
			Category(errors.CategoryMetadata).
			FileContext(path, 0).
			Build()
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, errors.New(err).
			Component("spectrum").
			Category(errors.CategoryMetadata).
			Context("file", path).
			Build()
	}

	plateCol, specCol, camCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToUpper(strings.TrimSpace(name)) {
		case "PLATE":
			plateCol = i
		case "SPECNO":
			specCol = i
		case "CAMERAS":
			camCol = i
		}
	}
	if plateCol < 0 || specCol < 0 || camCol < 0 {
		return nil, errors.Newf("metadata file %s is missing a PLATE, SPECNO or CAMERAS column", path).
			Component("spectrum").
			Category(errors.CategoryMetadata).
			Build()
	}

	m := &Metadata{byPlate: make(map[int][]MetaEntry)}
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(err).
				Component("spectrum").
				Category(errors.CategoryMetadata).
				Context("file", path).
				Build()
		}
		line++

		plate, perr := strconv.Atoi(strings.TrimSpace(record[plateCol]))
		spec, serr := strconv.Atoi(strings.TrimSpace(record[specCol]))
		if perr != nil || serr != nil {
			return nil, errors.Newf("metadata file %s has a malformed row at line %d", path, line).
				Component("spectrum").
				Category(errors.CategoryMetadata).
				Build()
		}

		m.byPlate[plate] = append(m.byPlate[plate], MetaEntry{
			Plate:  plate,
			SpecNo: spec,
			Camera: strings.TrimSpace(record[camCol]),
		})
	}

	return m, nil
}

// ForPlate returns the metadata rows recorded for one plate, in file order.
func (m *Metadata) ForPlate(plate int) []MetaEntry {
	return m.byPlate[plate]
}

// Plates lists every plate that has at least one metadata row.
func (m *Metadata) Plates() []int {
	plates := make([]int, 0, len(m.byPlate))
	for p := range m.byPlate {
		plates = append(plates, p)
	}
	return plates
}
