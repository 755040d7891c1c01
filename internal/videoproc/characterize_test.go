package videoproc

import "testing"

func TestCharacterizeSceneEmpty(t *testing.T) {
	profile := CharacterizeScene(nil)

	if profile.SceneType != SceneTypeUnknown {
		t.Errorf("empty scene type = %q, want %q", profile.SceneType, SceneTypeUnknown)
	}
	if profile.MotionIntensity != 0 || profile.ColorDiversity != 0 || profile.BrightnessVariation != 0 || profile.QualityScore != 0 {
		t.Errorf("empty scene metrics not zero: %+v", profile)
	}
}

func TestCharacterizeSceneClassification(t *testing.T) {
	tests := []struct {
		name   string
		frames []KeyFrame
		want   SceneType
	}{
		{
			name: "high motion is action",
			frames: []KeyFrame{
				{MotionScore: 0.5, BrightnessScore: 0.5},
				{MotionScore: 0.6, BrightnessScore: 0.5},
			},
			want: SceneTypeAction,
		},
		{
			name: "brightness swings are a transition",
			frames: []KeyFrame{
				{MotionScore: 0.1, BrightnessScore: 0.1},
				{MotionScore: 0.1, BrightnessScore: 0.9},
			},
			want: SceneTypeTransition,
		},
		{
			name: "steady high contrast is dialogue",
			frames: []KeyFrame{
				{MotionScore: 0.1, BrightnessScore: 0.5, ContrastScore: 0.7},
				{MotionScore: 0.1, BrightnessScore: 0.5, ContrastScore: 0.6},
			},
			want: SceneTypeDialogue,
		},
		{
			name: "everything low is static",
			frames: []KeyFrame{
				{MotionScore: 0.05, BrightnessScore: 0.5, ContrastScore: 0.2},
				{MotionScore: 0.05, BrightnessScore: 0.5, ContrastScore: 0.2},
			},
			want: SceneTypeStatic,
		},
		{
			name: "motion outranks brightness variation",
			frames: []KeyFrame{
				{MotionScore: 0.5, BrightnessScore: 0.1},
				{MotionScore: 0.5, BrightnessScore: 0.9},
			},
			want: SceneTypeAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := CharacterizeScene(tt.frames)
			if profile.SceneType != tt.want {
				t.Errorf("scene type = %q, want %q", profile.SceneType, tt.want)
			}
		})
	}
}

func TestCharacterizeSceneAverages(t *testing.T) {
	frames := []KeyFrame{
		{MotionScore: 0.2, BrightnessScore: 0.4, ContrastScore: 0.3, HistogramScore: 0.6},
		{MotionScore: 0.4, BrightnessScore: 0.6, ContrastScore: 0.5, HistogramScore: 0.8},
	}
	profile := CharacterizeScene(frames)

	if !floatEquals(profile.MotionIntensity, 0.3, 0.0001) {
		t.Errorf("motion intensity = %v, want 0.3", profile.MotionIntensity)
	}
	if !floatEquals(profile.ColorDiversity, 0.7, 0.0001) {
		t.Errorf("color diversity = %v, want 0.7", profile.ColorDiversity)
	}
	if !floatEquals(profile.BrightnessVariation, 0.1, 0.0001) {
		t.Errorf("brightness variation = %v, want 0.1", profile.BrightnessVariation)
	}

	// contrast 0.4*0.3 + histogram 0.7*0.3 + exposure 1.0*0.2 + motion term 0.6*0.2.
	if !floatEquals(profile.QualityScore, 0.12+0.21+0.2+0.12, 0.0001) {
		t.Errorf("quality score = %v, want 0.65", profile.QualityScore)
	}
}

func TestCharacterizeSceneQualityBounds(t *testing.T) {
	tests := []struct {
		name   string
		frames []KeyFrame
	}{
		{"maxed out", []KeyFrame{{MotionScore: 1, BrightnessScore: 0.5, ContrastScore: 1, HistogramScore: 1}}},
		{"all zero", []KeyFrame{{}}},
		{"extreme brightness", []KeyFrame{{BrightnessScore: 1.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := CharacterizeScene(tt.frames)
			if profile.QualityScore < 0.0 || profile.QualityScore > 1.0 {
				t.Errorf("quality score %v out of [0, 1]", profile.QualityScore)
			}
		})
	}
}

func TestCharacterizeSceneMotionCap(t *testing.T) {
	// Motion beyond 0.5 must not raise the quality score further.
	atCap := CharacterizeScene([]KeyFrame{{MotionScore: 0.5, BrightnessScore: 0.5}})
	beyond := CharacterizeScene([]KeyFrame{{MotionScore: 1.0, BrightnessScore: 0.5}})

	if !floatEquals(atCap.QualityScore, beyond.QualityScore, 0.0001) {
		t.Errorf("motion cap not applied: %v vs %v", atCap.QualityScore, beyond.QualityScore)
	}
}
