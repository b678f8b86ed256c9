package types

import "testing"

func TestSubmissionTransitionsForwardOnly(t *testing.T) {
	cases := []struct {
		from, to SubmissionStatus
		want     bool
	}{
		{SubmissionIntake, SubmissionEditing, true},
		{SubmissionEditing, SubmissionDesign, true},
		{SubmissionDesign, SubmissionScheduled, true},
		{SubmissionScheduled, SubmissionPublished, true},
		{SubmissionScheduled, SubmissionEditing, true}, // unschedule
		{SubmissionPublished, SubmissionScheduled, false},
		{SubmissionEditing, SubmissionIntake, false},
		{SubmissionIntake, SubmissionPublished, false},
		{SubmissionDesign, SubmissionEditing, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Fatalf("%s -> %s: want=%v got=%v", c.from, c.to, c.want, got)
		}
	}
}

func TestSubmissionStatusValid(t *testing.T) {
	if !SubmissionIntake.Valid() {
		t.Fatalf("intake should be valid")
	}
	if SubmissionStatus("archived").Valid() {
		t.Fatalf("unknown status should be invalid")
	}
}

func TestIdeaTransitionsOneWay(t *testing.T) {
	cases := []struct {
		from, to IdeaStatus
		want     bool
	}{
		{IdeaProposed, IdeaApproved, true},
		{IdeaProposed, IdeaRejected, true},
		{IdeaApproved, IdeaInProgress, true},
		{IdeaInProgress, IdeaCompleted, true},
		{IdeaRejected, IdeaApproved, false},
		{IdeaCompleted, IdeaInProgress, false},
		{IdeaApproved, IdeaProposed, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Fatalf("%s -> %s: want=%v got=%v", c.from, c.to, c.want, got)
		}
	}
}

func TestTaskTransitionsTerminalStates(t *testing.T) {
	if !TaskPosted.Terminal() {
		t.Fatalf("posted should be terminal")
	}
	if !TaskFailed.Terminal() {
		t.Fatalf("failed should be terminal")
	}
	if TaskScheduled.Terminal() {
		t.Fatalf("scheduled should not be terminal")
	}
	if TaskPosted.CanTransitionTo(TaskScheduled) {
		t.Fatalf("posted must never be re-scheduled")
	}
	if !TaskScheduled.CanTransitionTo(TaskPosting) {
		t.Fatalf("dispatcher claim edge missing")
	}
	if !TaskScheduled.CanTransitionTo(TaskDraft) {
		t.Fatalf("client cancel edge missing")
	}
}
