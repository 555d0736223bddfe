// Package airglow loads the night-sky emission line catalog and derives the
// vacuum line lists used to build the fit basis.
package airglow

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pfagrelius/skyfit-go/internal/errors"
)

// Line is one emission line from the master catalog: observed wavelength in
// air (nanometers) and an intensity score.
type Line struct {
	Wave      float64
	Intensity float64
}

// Catalog is the master airglow line catalog, loaded once per process and
// immutable afterwards.
type Catalog struct {
	Lines []Line
}

// LoadCatalog reads every .txt line list in dir and concatenates them into a
// single catalog. Each file is a whitespace-delimited table whose header
// names at least the obs_wave and obs_eint columns.
func LoadCatalog(dir string) (*Catalog, error) {
	pattern := filepath.Join(dir, "*.txt")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.New(err).
			Component("airglow").
			Category(errors.CategoryCatalogLoad).
			Context("pattern", pattern).
			Build()
	}
	if len(files) == 0 {
		return nil, errors.Newf("no airglow catalog files found in %s", dir).
			Component("airglow").
			Category(errors.CategoryCatalogLoad).
			Build()
	}

	catalog := &Catalog{}
	for _, file := range files {
		lines, err := readCatalogFile(file)
		if err != nil {
			return nil, err
		}
		catalog.Lines = append(catalog.Lines, lines...)
	}

	return catalog, nil
}

// readCatalogFile parses one whitespace-delimited line list.
func readCatalogFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("airglow").
			Category(errors.CategoryCatalogLoad).
			FileContext(path, 0).
			Build()
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// Header row names the columns.
	if !scanner.Scan() {
		return nil, errors.Newf("airglow catalog file %s is empty", filepath.Base(path)).
			Component("airglow").
			Category(errors.CategoryCatalogLoad).
			Build()
	}
	waveCol, intensityCol := -1, -1
	for i, name := range strings.Fields(scanner.Text()) {
		switch name {
		case "obs_wave":
			waveCol = i
		case "obs_eint":
			intensityCol = i
		}
	}
	if waveCol < 0 || intensityCol < 0 {
		return nil, errors.Newf("airglow catalog file %s missing obs_wave/obs_eint columns", filepath.Base(path)).
			Component("airglow").
			Category(errors.CategoryCatalogLoad).
			Build()
	}

	var lines []Line
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) <= waveCol || len(fields) <= intensityCol {
			return nil, errors.Newf("airglow catalog file %s has a short row", filepath.Base(path)).
				Component("airglow").
				Category(errors.CategoryCatalogLoad).
				Build()
		}
		wave, err := strconv.ParseFloat(fields[waveCol], 64)
		if err != nil {
			return nil, errors.New(err).
				Component("airglow").
				Category(errors.CategoryCatalogLoad).
				Context("column", "obs_wave").
				Build()
		}
		intensity, err := strconv.ParseFloat(fields[intensityCol], 64)
		if err != nil {
			return nil, errors.New(err).
				Component("airglow").
				Category(errors.CategoryCatalogLoad).
				Context("column", "obs_eint").
				Build()
		}
		lines = append(lines, Line{Wave: wave, Intensity: intensity})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New(err).
			Component("airglow").
			Category(errors.CategoryCatalogLoad).
			FileContext(path, 0).
			Build()
	}

	return lines, nil
}
