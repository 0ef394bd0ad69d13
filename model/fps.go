package model

import "time"

// FPS is the render loop tick rate.
type FPS int

const (
	FPSMin     FPS = 10
	FPSMax     FPS = 60
	FPSDefault FPS = 30

	DefaultFPSStep = 5
)

func ClampFPS(v int) FPS {
	if v < int(FPSMin) {
		return FPSMin
	}
	if v > int(FPSMax) {
		return FPSMax
	}
	return FPS(v)
}

func (f FPS) Faster(step int) FPS {
	return ClampFPS(int(f) + step)
}

func (f FPS) Slower(step int) FPS {
	return ClampFPS(int(f) - step)
}

// Period is the time between two ticks at this rate.
func (f FPS) Period() time.Duration {
	return time.Second / time.Duration(ClampFPS(int(f)))
}
