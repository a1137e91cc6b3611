package mine

import (
	"github.com/timtadh/data-structures/errors"
)

// Options bound the feature set a corpus is mined for. Path2 features are
// kept when MinSupport <= support <= floor(MaxSupportFraction * N). Edge
// features skip the upper bound. At most EdgeQuota of the rarest edges and
// MaxFeatures - EdgeQuota of the rarest paths are selected.
type Options struct {
	MaxFeatures        int
	MinSupport         int
	MaxSupportFraction float64
	EdgeQuota          int
}

func DefaultOptions() Options {
	return Options{
		MaxFeatures:        700,
		MinSupport:         3,
		MaxSupportFraction: .08,
		EdgeQuota:          80,
	}
}

func (o Options) Validate() error {
	if o.MaxFeatures <= 0 {
		return errors.Errorf("max features must be positive, got %v", o.MaxFeatures)
	}
	if o.MinSupport < 1 {
		return errors.Errorf("min support must be at least 1, got %v", o.MinSupport)
	}
	if o.MaxSupportFraction < 0 || o.MaxSupportFraction > 1 {
		return errors.Errorf("max support fraction must be in [0, 1], got %v", o.MaxSupportFraction)
	}
	if o.EdgeQuota < 0 {
		return errors.Errorf("edge quota must not be negative, got %v", o.EdgeQuota)
	}
	return nil
}

// MaxSupport is the largest support a path2 feature may have in a corpus of
// n graphs.
func (o Options) MaxSupport(n int) int {
	return int(float64(n) * o.MaxSupportFraction)
}

func (o Options) edgeCap() int {
	if o.EdgeQuota < o.MaxFeatures {
		return o.EdgeQuota
	}
	return o.MaxFeatures
}

func (o Options) pathCap() int {
	if o.MaxFeatures > o.EdgeQuota {
		return o.MaxFeatures - o.EdgeQuota
	}
	return 0
}
