package airglow

import "math"

// Detector arm tags as recorded in the plate metadata. Each spectrograph has
// a blue and a red camera, numbered per spectrograph half.
const (
	CameraBlue1 = "b1"
	CameraBlue2 = "b2"
	CameraRed1  = "r1"
	CameraRed2  = "r2"
)

// nmToAngstrom scales the vacuum line lists onto the observed wavelength
// grid, which is calibrated in angstroms.
const nmToAngstrom = 10.0

// LineLists holds the two per-arm vacuum line lists in angstroms. The arms
// have different noise floors, so each list carries its own intensity cut.
type LineLists struct {
	Blue []float64
	Red  []float64
}

// VacuumLines filters the catalog by intensity and vacuum-wavelength band
// bounds (nanometers, inclusive of neither bound) and returns the surviving
// line centers converted to vacuum angstroms. Pass math.Inf for an open
// bound. The selection is deterministic and preserves catalog order.
func (c *Catalog) VacuumLines(intensityMin, waveMin, waveMax float64) []float64 {
	var selected []float64
	for _, line := range c.Lines {
		if line.Intensity <= intensityMin {
			continue
		}
		vac := airToVacOne(line.Wave)
		if vac <= waveMin || vac >= waveMax {
			continue
		}
		selected = append(selected, vac*nmToAngstrom)
	}
	return selected
}

// BuildLineLists derives the blue-band and red-band vacuum line lists from
// the catalog.
func BuildLineLists(c *Catalog, blueIntensityMin, redIntensityMin float64) LineLists {
	return LineLists{
		Blue: c.VacuumLines(blueIntensityMin, math.Inf(-1), 700),
		Red:  c.VacuumLines(redIntensityMin, 560, math.Inf(1)),
	}
}

// ForCamera returns the line list matching a detector-arm tag and true, or
// nil and false when the tag is unrecognized.
func (l LineLists) ForCamera(camera string) ([]float64, bool) {
	switch camera {
	case CameraBlue1, CameraBlue2:
		return l.Blue, true
	case CameraRed1, CameraRed2:
		return l.Red, true
	default:
		return nil, false
	}
}
