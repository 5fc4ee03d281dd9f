package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/ctms-cli/internal/models"
	"github.com/desertthunder/ctms-cli/internal/shared"
)

func setupRepository(t *testing.T) *JournalRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// each connection to :memory: is a separate database
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewJournalRepository(db)
}

func testRun(id string, started time.Time) *models.Run {
	return &models.Run{
		ID:          id,
		CSVPath:     "contacts.csv",
		Updated:     2,
		NotFound:    1,
		Failed:      0,
		StartedAt:   started,
		CompletedAt: started.Add(3 * time.Second),
	}
}

func TestJournalRepository_CreateRun(t *testing.T) {
	t.Run("roundtrips a run with entries", func(t *testing.T) {
		repo := setupRepository(t)
		started := time.Now().UTC().Truncate(time.Second)

		run := testRun(shared.GenerateID(), started)
		entries := []models.RunEntry{
			{EmailID: "E1", Outcome: "success", Detail: "mozilla-foundation;common-voice"},
			{EmailID: "E2", Outcome: "not_found", Detail: "404"},
			{EmailID: "E3", Outcome: "success", Detail: ""},
		}

		if err := repo.CreateRun(run, entries); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, gotEntries, err := repo.GetRun(run.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.CSVPath != "contacts.csv" {
			t.Errorf("unexpected csv path: %s", got.CSVPath)
		}
		if got.Contacts() != 3 {
			t.Errorf("expected 3 contacts, got %d", got.Contacts())
		}
		if !got.StartedAt.Equal(started) {
			t.Errorf("expected started_at %v, got %v", started, got.StartedAt)
		}

		if len(gotEntries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(gotEntries))
		}
		for i, entry := range gotEntries {
			if entry.Seq != i+1 {
				t.Errorf("expected seq %d, got %d", i+1, entry.Seq)
			}
			if entry.RunID != run.ID {
				t.Errorf("expected run id %s, got %s", run.ID, entry.RunID)
			}
		}
		if gotEntries[1].EmailID != "E2" || gotEntries[1].Outcome != "not_found" {
			t.Errorf("unexpected second entry: %+v", gotEntries[1])
		}
	})

	t.Run("rejects an incomplete run", func(t *testing.T) {
		repo := setupRepository(t)
		run := testRun("", time.Now())

		if err := repo.CreateRun(run, nil); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("invalid entry rolls back the run", func(t *testing.T) {
		repo := setupRepository(t)
		run := testRun(shared.GenerateID(), time.Now())
		entries := []models.RunEntry{{EmailID: "", Outcome: "success"}}

		if err := repo.CreateRun(run, entries); err == nil {
			t.Fatal("expected validation error")
		}
		if _, _, err := repo.GetRun(run.ID); !errors.Is(err, shared.ErrRunNotFound) {
			t.Errorf("expected run to be rolled back, got %v", err)
		}
	})
}

func TestJournalRepository_GetRun(t *testing.T) {
	repo := setupRepository(t)

	if _, _, err := repo.GetRun("missing"); !errors.Is(err, shared.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestJournalRepository_ListRuns(t *testing.T) {
	repo := setupRepository(t)
	started := time.Now().UTC().Truncate(time.Second)

	older := testRun(shared.GenerateID(), started.Add(-time.Hour))
	newer := testRun(shared.GenerateID(), started)
	for _, run := range []*models.Run{older, newer} {
		if err := repo.CreateRun(run, nil); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}
	}

	runs, err := repo.ListRuns()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != newer.ID {
		t.Error("expected most recent run first")
	}
}
