package model

import (
	"testing"
)

func TestRouteStepValidate(t *testing.T) {
	tests := []struct {
		name    string
		step    RouteStep
		wantErr bool
	}{
		{
			name: "Walk step",
			step: RouteStep{Mode: ModeWalk, Instruction: "Head north", DistanceMeters: 200, DurationMinutes: 3},
		},
		{
			name: "Taxi step",
			step: RouteStep{Mode: ModeTaxi, Instruction: "Ride to station", DistanceMeters: 3000, DurationMinutes: 12},
		},
		{
			name: "Train step with line and direction",
			step: RouteStep{Mode: ModeTrain, Instruction: "Yamanote Line", DistanceMeters: 4000, DurationMinutes: 8, Line: "JY", Direction: "Shinagawa"},
		},
		{
			name:    "Train step missing line",
			step:    RouteStep{Mode: ModeTrain, Instruction: "Ride", DistanceMeters: 4000, DurationMinutes: 8, Direction: "Shinagawa"},
			wantErr: true,
		},
		{
			name:    "Bus step missing direction",
			step:    RouteStep{Mode: ModeBus, Instruction: "Ride", DistanceMeters: 1500, DurationMinutes: 10, Line: "88"},
			wantErr: true,
		},
		{
			name:    "Walk step with stray line",
			step:    RouteStep{Mode: ModeWalk, Instruction: "Head north", DistanceMeters: 200, DurationMinutes: 3, Line: "JY"},
			wantErr: true,
		},
		{
			name:    "Unknown mode",
			step:    RouteStep{Mode: "hovercraft", DistanceMeters: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.step.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRouteValidate(t *testing.T) {
	valid := Route{
		Steps: []RouteStep{
			{Mode: ModeWalk, Instruction: "Walk", DistanceMeters: 300, DurationMinutes: 4},
		},
		TotalDistanceMeters:  300,
		TotalDurationMinutes: 4,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid route rejected: %v", err)
	}

	empty := Route{TotalDistanceMeters: 100}
	if err := empty.Validate(); err == nil {
		t.Error("route with no steps accepted")
	}

	zeroDist := Route{Steps: valid.Steps}
	if err := zeroDist.Validate(); err == nil {
		t.Error("route with zero distance accepted")
	}
}

func TestTravelModeTransit(t *testing.T) {
	if !ModeTrain.Transit() || !ModeBus.Transit() {
		t.Error("train and bus must be transit modes")
	}
	if ModeWalk.Transit() || ModeTaxi.Transit() {
		t.Error("walk and taxi must not be transit modes")
	}
}
