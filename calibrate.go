package hll

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/zeebo/xxh3"
)

const calibrationVerboseFlag = "HLL_CALIBRATION_LOG"

// CalibrationPoint holds one measured (true cardinality, raw estimate, bias)
// triple produced by GenerateCalibration. This is the external "data asset
// provider" component: the default tables in
// tables.go are a lightweight stand-in; a caller wanting denser, measured
// calibration for a given precision runs this generator and builds a
// replacement *calibration from the results.
type CalibrationPoint struct {
	TrueCardinality uint64
	RawEstimate     uint64
	Bias            float64
}

// CalibrationOptions controls GenerateCalibration.
type CalibrationOptions struct {
	Precision      uint8
	MaxCardinality uint64
	Repeats        int
	InitialStep    int
	StepRate       float64
}

// DefaultCalibrationOptions returns reasonable defaults for precision p.
func DefaultCalibrationOptions(p uint8) *CalibrationOptions {
	return &CalibrationOptions{
		Precision:      p,
		MaxCardinality: (uint64(1) << p) * 7,
		Repeats:        5_000,
		InitialStep:    50,
		StepRate:       1.25,
	}
}

// GenerateCalibration runs a Monte-Carlo simulation to measure the raw HLL
// estimator's bias at a range of true cardinalities for one precision,
// hashing repeated calls to fn. Generalized to an arbitrary precision
// rather than a single fixed one, using this module's alpha*m^2/sum raw
// estimator rather than a harmonic-only one.
//
// WARNING: if fn produces fewer unique values than options.MaxCardinality,
// this never returns. Set HLL_CALIBRATION_LOG=1 for periodic log.Printf
// progress output.
func GenerateCalibration(fn func() []byte, options *CalibrationOptions) ([]*CalibrationPoint, error) {
	if fn == nil {
		return nil, errors.New("hll: GenerateCalibration requires a non-nil fn")
	}
	if options == nil {
		return nil, errors.New("hll: GenerateCalibration requires options")
	}
	if options.Precision < minP || options.Precision > maxP {
		return nil, fmt.Errorf("hll: precision must be in [%d, %d]", minP, maxP)
	}

	m := uint64(1) << options.Precision
	if options.MaxCardinality <= m {
		return nil, fmt.Errorf("hll: MaxCardinality must be greater than m (%d)", m)
	}
	if options.Repeats <= 0 {
		return nil, errors.New("hll: Repeats must be greater than 0")
	}
	if options.InitialStep <= 0 {
		return nil, errors.New("hll: InitialStep must be greater than 0")
	}
	if options.StepRate <= 0 {
		return nil, errors.New("hll: StepRate must be greater than 0")
	}

	verbose := os.Getenv(calibrationVerboseFlag) == "1"

	cardinalities := interpolationPoints(options.MaxCardinality, options.InitialStep, options.StepRate)
	results := make([]*CalibrationPoint, len(cardinalities))

	if verbose {
		log.Printf("calibrate: %d interpolation points, generating sample sets...", len(cardinalities))
	}

	sets := generateHashSets(fn, options.MaxCardinality, options.Repeats, verbose)

	for i, cardinality := range cardinalities {
		estimates := make([]uint64, options.Repeats)
		biases := make([]float64, options.Repeats)

		for r := 0; r < options.Repeats; r++ {
			raw := rawHarmonicEstimate(sets[r][:cardinality], m, alpha(options.Precision), options.Precision)
			estimates[r] = uint64(raw)
			biases[r] = raw - float64(cardinality)
		}

		var sumEstimate uint64
		var sumBias float64
		for k := 0; k < options.Repeats; k++ {
			sumEstimate += estimates[k]
			sumBias += biases[k]
		}

		results[i] = &CalibrationPoint{
			TrueCardinality: cardinality,
			RawEstimate:     sumEstimate / uint64(options.Repeats),
			Bias:            sumBias / float64(options.Repeats),
		}

		if verbose {
			log.Printf("calibrate: (%d/%d) true=%d raw=%d bias=%f",
				i+1, len(cardinalities), cardinality, results[i].RawEstimate, results[i].Bias)
		}
	}

	return results, nil
}

// rawHarmonicEstimate feeds a slice of already-hashed values through a
// scratch register array and returns the raw (pre-bias) HLL estimate.
func rawHarmonicEstimate(hashes []uint64, m uint64, a float64, p uint8) float64 {
	registers := make([]uint8, m)

	for _, h := range hashes {
		index, rho := rhoAndIndex(h, p)
		if rho > registers[index] {
			registers[index] = rho
		}
	}

	var sum float64
	for _, r := range registers {
		sum += pow2neg(r)
	}

	return a * float64(m) * float64(m) / sum
}

// interpolationPoints splits [0, maxCardinality) into tenths, stepping
// through each tenth with a geometrically increasing step.
func interpolationPoints(maxCardinality uint64, initialStep int, stepRate float64) []uint64 {
	rangeLength := maxCardinality / 10

	step := uint64(initialStep)
	nextStepChange := rangeLength

	var points []uint64
	for i := uint64(0); i < maxCardinality; i += step {
		if i > nextStepChange {
			nextStepChange += rangeLength
			step = uint64(float64(step) * stepRate)
		}
		points = append(points, i)
	}

	// Cardinality 0 is a degenerate special case; skip it.
	if len(points) > 0 {
		points = points[1:]
	}
	return points
}

// generateHashSets returns repeats slices, each containing maxCardinality
// unique 64-bit hashes produced by calling fn.
//
// WARNING: if fn produces fewer uniques than maxCardinality, this never
// returns.
func generateHashSets(fn func() []byte, maxCardinality uint64, repeats int, verbose bool) [][]uint64 {
	sets := make([][]uint64, repeats)

	for i := 0; i < repeats; i++ {
		if verbose && i%100 == 0 {
			log.Printf("calibrate: generating sample set %d/%d", i, repeats)
		}

		uniques := make(map[uint64]struct{})
		for uint64(len(uniques)) < maxCardinality {
			uniques[xxh3.Hash(fn())] = struct{}{}
		}

		set := make([]uint64, 0, len(uniques))
		for h := range uniques {
			set = append(set, h)
		}
		sets[i] = set
	}

	return sets
}
