package services

import (
	"context"
	"errors"
	"testing"
)

func validEnrollInput() EnrollTeamInput {
	return EnrollTeamInput{
		TeamID:         "a1b2c3d4",
		TeamName:       "Nagpur Strikers",
		TournamentID:   "5",
		TournamentName: "Winter Cup",
		PlayerIDs:      []int{10, 11},
	}
}

func TestEnrollTeamMissingData(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, nil)

	tests := []struct {
		name   string
		mutate func(*EnrollTeamInput)
	}{
		{"no team id", func(in *EnrollTeamInput) { in.TeamID = "" }},
		{"no tournament id", func(in *EnrollTeamInput) { in.TournamentID = "" }},
		{"no players", func(in *EnrollTeamInput) { in.PlayerIDs = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validEnrollInput()
			tt.mutate(&input)

			_, err := svc.EnrollTeam(context.Background(), input)
			if !errors.Is(err, ErrMissingRequiredData) {
				t.Fatalf("got %v, want ErrMissingRequiredData", err)
			}
		})
	}
	if len(repo.rows) != 0 {
		t.Errorf("rejected inputs produced rows: %v", repo.rows)
	}
}

// Display names are optional: ids plus the player list are enough, and the
// rows carry empty labels.
func TestEnrollTeamWithoutNames(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, nil)

	count, err := svc.EnrollTeam(context.Background(), EnrollTeamInput{
		TeamID:       "T1",
		TournamentID: "TR1",
		PlayerIDs:    []int{7, 8},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 || len(repo.rows) != 2 {
		t.Fatalf("count = %d, rows = %d, want 2 and 2", count, len(repo.rows))
	}
	for _, row := range repo.rows {
		if row.TeamID != "T1" || row.TournamentID != "TR1" {
			t.Errorf("row ids wrong: %+v", row)
		}
		if row.TeamName != "" || row.TournamentName != "" {
			t.Errorf("row labels should be empty: %+v", row)
		}
	}
}

func TestEnrollTeamOneRowPerPlayer(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	feed := &fakeFeed{}
	svc := NewEnrollmentService(repo, feed)

	count, err := svc.EnrollTeam(context.Background(), validEnrollInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("enrolled count = %d, want 2", count)
	}
	if len(repo.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(repo.rows))
	}
	for _, row := range repo.rows {
		if row.TeamID != "a1b2c3d4" || row.TournamentName != "Winter Cup" {
			t.Errorf("row labels wrong: %+v", row)
		}
	}
	if len(feed.events) != 1 || feed.events[0] != "team_enrolled" {
		t.Errorf("feed events = %v", feed.events)
	}
}

// Re-submitting the same squad duplicates the rows; nothing deduplicates.
func TestEnrollTeamRepeatDoublesRows(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, nil)

	ctx := context.Background()
	if _, err := svc.EnrollTeam(ctx, validEnrollInput()); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if _, err := svc.EnrollTeam(ctx, validEnrollInput()); err != nil {
		t.Fatalf("second enroll: %v", err)
	}
	if len(repo.rows) != 4 {
		t.Errorf("rows = %d, want 4", len(repo.rows))
	}
}

func TestListByPlayerEmptyIsNotFound(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentRepo{}, nil)

	_, err := svc.ListByPlayer(context.Background(), 10)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListByTournamentReturnsRows(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewEnrollmentService(repo, nil)

	if _, err := svc.EnrollTeam(context.Background(), validEnrollInput()); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	rows, err := svc.ListByTournament(context.Background(), "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}
}
