package garden

import "fmt"

// GrowthThresholds maps each growth stage to the cumulative sun drops
// required to reach it. Stage i is reached at GrowthThresholds[i] drops;
// the last stage is the fully bloomed tree.
var GrowthThresholds = [...]int{0, 10, 25, 45, 70, 100, 140, 190, 250, 320, 400, 500, 620, 750, 900}

// MaxGrowthStage is the bloomed stage.
const MaxGrowthStage = len(GrowthThresholds) - 1

// StageForSunDrops returns the highest growth stage whose threshold the
// cumulative sun drops meet.
func StageForSunDrops(sunDrops int) (int, error) {
	if sunDrops < 0 {
		return 0, fmt.Errorf("sun drops %d: %w", sunDrops, ErrNegativeSunDrops)
	}
	stage := 0
	for i, threshold := range GrowthThresholds {
		if sunDrops >= threshold {
			stage = i
		}
	}
	return stage, nil
}
