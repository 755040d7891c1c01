package videoproc

// characterize.go aggregates a scene's selected key frames into scene-level
// descriptors: motion intensity, color diversity, brightness variation, a
// coarse scene-type classification, and an overall scene quality score.

import "math"

// SceneProfile is the scene-level aggregate computed from selected key frames.
type SceneProfile struct {
	SceneType           SceneType
	MotionIntensity     float64
	ColorDiversity      float64
	BrightnessVariation float64
	QualityScore        float64
}

// CharacterizeScene computes scene-level aggregates from the selected key
// frames. An empty frame list is not an error: it yields all-zero metrics
// and SceneTypeUnknown.
//
// Classification is a decision rule evaluated in priority order: high
// motion wins over high brightness variation, which wins over high
// contrast; everything else is static.
func CharacterizeScene(frames []KeyFrame) SceneProfile {
	if len(frames) == 0 {
		return SceneProfile{SceneType: SceneTypeUnknown}
	}

	var motionSum, brightnessSum, contrastSum, histogramSum float64
	brightness := make([]float64, len(frames))
	for i, f := range frames {
		motionSum += f.MotionScore
		brightnessSum += f.BrightnessScore
		contrastSum += f.ContrastScore
		histogramSum += f.HistogramScore
		brightness[i] = f.BrightnessScore
	}

	n := float64(len(frames))
	avgMotion := motionSum / n
	avgBrightness := brightnessSum / n
	avgContrast := contrastSum / n
	avgHistogram := histogramSum / n

	_, brightnessStddev := meanStddev(brightness)

	profile := SceneProfile{
		MotionIntensity:     avgMotion,
		ColorDiversity:      avgHistogram,
		BrightnessVariation: brightnessStddev,
	}

	switch {
	case avgMotion > 0.3:
		profile.SceneType = SceneTypeAction
	case brightnessStddev > 0.2:
		profile.SceneType = SceneTypeTransition
	case avgContrast > 0.5:
		profile.SceneType = SceneTypeDialogue
	default:
		profile.SceneType = SceneTypeStatic
	}

	// Weighted combination mirroring the per-frame quality formula: contrast
	// and histogram diversity dominate, mid-range brightness is preferred,
	// and motion contributes up to its 0.5 cap.
	exposure := 1.0 - math.Abs(avgBrightness-0.5)*2.0
	motionTerm := math.Min(avgMotion, 0.5) * 2.0
	profile.QualityScore = clamp01(avgContrast*0.3 + avgHistogram*0.3 + exposure*0.2 + motionTerm*0.2)

	return profile
}
