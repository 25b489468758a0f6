package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithSampleRate(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
	if def.SampleRate != 44100 {
		t.Fatalf("default sample rate = %v, want 44100", def.SampleRate)
	}
}

func TestSamplesFor(t *testing.T) {
	tests := []struct {
		seconds, rate float64
		want          int
	}{
		{1, 44100, 44100},
		{0.25, 44100, 11025},
		{0.00001, 44100, 0},
		{0.00002, 44100, 1},
		{0, 44100, 0},
		{-1, 44100, -44100},
	}
	for _, tt := range tests {
		if got := SamplesFor(tt.seconds, tt.rate); got != tt.want {
			t.Errorf("SamplesFor(%v, %v) = %d, want %d", tt.seconds, tt.rate, got, tt.want)
		}
	}
}
