package tracing

import (
	"testing"

	"mercator-hq/modellint/pkg/config"
)

func TestNewSampler(t *testing.T) {
	tests := []struct {
		sampler string
		ratio   float64
		wantErr bool
	}{
		{sampler: "", wantErr: false},
		{sampler: SamplerAlways, wantErr: false},
		{sampler: SamplerNever, wantErr: false},
		{sampler: SamplerRatio, ratio: 0, wantErr: false},
		{sampler: SamplerRatio, ratio: 0.25, wantErr: false},
		{sampler: SamplerRatio, ratio: 1, wantErr: false},
		{sampler: SamplerRatio, ratio: -0.5, wantErr: true},
		{sampler: SamplerRatio, ratio: 2, wantErr: true},
		{sampler: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.sampler, func(t *testing.T) {
			s, err := newSampler(&config.TracingConfig{Sampler: tt.sampler, SampleRatio: tt.ratio})
			if (err != nil) != tt.wantErr {
				t.Fatalf("newSampler(%q, %g) error = %v, wantErr %v", tt.sampler, tt.ratio, err, tt.wantErr)
			}
			if err == nil && s == nil {
				t.Error("nil sampler without error")
			}
		})
	}
}
