package job

import (
	"testing"
	"time"
)

func TestAcceptsApplications(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		job  Job
		want bool
	}{
		{"open future deadline", Job{Status: StatusOpen, ApplicationDeadline: now.Add(time.Hour)}, true},
		{"open deadline now", Job{Status: StatusOpen, ApplicationDeadline: now}, true},
		{"open past deadline", Job{Status: StatusOpen, ApplicationDeadline: now.Add(-time.Second)}, false},
		{"closed", Job{Status: StatusClosed, ApplicationDeadline: now.Add(time.Hour)}, false},
	}
	for _, tt := range tests {
		if got := tt.job.AcceptsApplications(now); got != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
