package models

import "testing"

func TestDance_Valid(t *testing.T) {
	tests := []struct {
		name  string
		dance Dance
		want  bool
	}{
		{"waggle is valid", DanceWaggle, true},
		{"round is valid", DanceRound, true},
		{"scout is valid", DanceScout, true},
		{"tremble is valid", DanceTremble, true},
		{"converge is valid", DanceConverge, true},
		{"disperse is valid", DanceDisperse, true},
		{"empty string is invalid", Dance(""), false},
		{"unknown dance is invalid", Dance("shimmy"), false},
		{"uppercase is invalid", Dance("WAGGLE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dance.Valid(); got != tt.want {
				t.Errorf("Dance(%q).Valid() = %v, want %v", tt.dance, got, tt.want)
			}
		})
	}
}

func TestDance_StringValues(t *testing.T) {
	// Verify the string values are as expected
	tests := []struct {
		dance Dance
		want  string
	}{
		{DanceWaggle, "waggle"},
		{DanceRound, "round"},
		{DanceScout, "scout"},
		{DanceTremble, "tremble"},
		{DanceConverge, "converge"},
		{DanceDisperse, "disperse"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := string(tt.dance); got != tt.want {
				t.Errorf("string(Dance) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskPriority_Valid(t *testing.T) {
	tests := []struct {
		name     string
		priority TaskPriority
		want     bool
	}{
		{"low is valid", PriorityLow, true},
		{"medium is valid", PriorityMedium, true},
		{"high is valid", PriorityHigh, true},
		{"critical is valid", PriorityCritical, true},
		{"empty string is invalid", TaskPriority(""), false},
		{"unknown priority is invalid", TaskPriority("urgent"), false},
		{"uppercase is invalid", TaskPriority("HIGH"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.priority.Valid(); got != tt.want {
				t.Errorf("TaskPriority(%q).Valid() = %v, want %v", tt.priority, got, tt.want)
			}
		})
	}
}
