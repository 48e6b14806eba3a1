//go:build arm64 && !purego

package biquad

import (
	_ "github.com/alex-parisi/biquad-filters/dsp/biquad/internal/arch/arm64/neon"
	_ "github.com/alex-parisi/biquad-filters/dsp/biquad/internal/arch/generic"
	_ "github.com/alex-parisi/biquad-filters/dsp/biquad/internal/arch/registry"
)
