package metrics

import (
	"math"
	"testing"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: []float64{1, 2, 3},
			yPred: []float64{1, 2, 3},
			want:  0,
		},
		{
			name:  "constant offset",
			yTrue: []float64{1, 2, 3},
			yPred: []float64{2, 3, 4},
			want:  1,
		},
		{
			name:    "empty input",
			yTrue:   nil,
			yPred:   nil,
			wantErr: true,
		},
		{
			name:    "length mismatch",
			yTrue:   []float64{1, 2},
			yPred:   []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MSE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestR2Score(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4, 5}

	r2, err := R2Score(yTrue, yTrue)
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if math.Abs(r2-1) > 1e-12 {
		t.Errorf("R2Score() perfect fit = %v, want 1", r2)
	}

	// Predicting the mean explains no variance.
	mean := []float64{3, 3, 3, 3, 3}
	r2, err = R2Score(yTrue, mean)
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if math.Abs(r2) > 1e-12 {
		t.Errorf("R2Score() mean predictor = %v, want 0", r2)
	}

	// Constant response is undefined.
	if _, err := R2Score([]float64{2, 2, 2}, []float64{2, 2, 2}); err == nil {
		t.Error("R2Score() on constant response should fail")
	}
}

func TestAdjustedR2(t *testing.T) {
	// Adding parameters must not raise adjusted R².
	base := AdjustedR2(0.9, 20, 2)
	more := AdjustedR2(0.9, 20, 5)
	if more >= base {
		t.Errorf("AdjustedR2 with more parameters = %v, want < %v", more, base)
	}
	if !math.IsNaN(AdjustedR2(0.9, 3, 3)) {
		t.Error("AdjustedR2 with n <= k should be NaN")
	}
}

func TestLogLoss(t *testing.T) {
	// Confident correct predictions approach zero loss.
	loss, err := LogLoss([]float64{1, 0}, []float64{0.999, 0.001})
	if err != nil {
		t.Fatalf("LogLoss() error = %v", err)
	}
	if loss > 0.01 {
		t.Errorf("LogLoss() confident correct = %v, want near 0", loss)
	}

	// p=0.5 everywhere gives ln 2.
	loss, err = LogLoss([]float64{1, 0, 1}, []float64{0.5, 0.5, 0.5})
	if err != nil {
		t.Fatalf("LogLoss() error = %v", err)
	}
	if math.Abs(loss-math.Log(2)) > 1e-12 {
		t.Errorf("LogLoss() coin flip = %v, want ln 2", loss)
	}

	// Extreme probabilities stay finite thanks to clamping.
	loss, err = LogLoss([]float64{1}, []float64{0})
	if err != nil {
		t.Fatalf("LogLoss() error = %v", err)
	}
	if math.IsInf(loss, 0) || math.IsNaN(loss) {
		t.Errorf("LogLoss() clamped = %v, want finite", loss)
	}
}

func TestAccuracy(t *testing.T) {
	acc, err := Accuracy([]float64{1, 0, 1, 0}, []float64{0.9, 0.2, 0.4, 0.1})
	if err != nil {
		t.Fatalf("Accuracy() error = %v", err)
	}
	if math.Abs(acc-0.75) > 1e-12 {
		t.Errorf("Accuracy() = %v, want 0.75", acc)
	}
}
