package airglow

import (
	"math"
	"sort"
	"testing"
)

func TestAirToVacElementwise(t *testing.T) {
	t.Parallel()

	waves := []float64{350.5, 500.0, 557.7, 630.0, 894.3}
	converted := AirToVac(waves)

	if len(converted) != len(waves) {
		t.Fatalf("expected %d outputs, got %d", len(waves), len(converted))
	}

	// Converting the sequence and converting each element independently must
	// yield identical results.
	for i, w := range waves {
		single := AirToVac([]float64{w})
		if converted[i] != single[0] {
			t.Errorf("element %d: sequence conversion %v != single conversion %v", i, converted[i], single[0])
		}
	}
}

func TestAirToVacShiftsRedward(t *testing.T) {
	t.Parallel()

	// The refractive index of air exceeds 1 over the optical range, so
	// vacuum wavelengths are always slightly longer.
	for _, w := range []float64{300, 400, 500, 700, 1000} {
		vac := AirToVac([]float64{w})[0]
		if vac <= w {
			t.Errorf("vacuum wavelength %v should exceed air wavelength %v", vac, w)
		}
		if vac > w*1.001 {
			t.Errorf("vacuum wavelength %v implausibly far from air wavelength %v", vac, w)
		}
	}
}

func TestAirToVacKnownValue(t *testing.T) {
	t.Parallel()

	// At 500 nm the Edlen 1966 index is about 1.0002748.
	vac := AirToVac([]float64{500.0})[0]
	if math.Abs(vac-500.1374) > 0.001 {
		t.Errorf("AirToVac(500) = %v, want ~500.1374", vac)
	}
}

func TestAirToVacPreservesOrdering(t *testing.T) {
	t.Parallel()

	waves := []float64{310.1, 420.9, 486.1, 589.0, 656.3, 850.2, 990.5}
	vac := AirToVac(waves)

	if !sort.Float64sAreSorted(vac) {
		t.Errorf("conversion of an increasing sequence should remain increasing: %v", vac)
	}
}
