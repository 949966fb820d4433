package seed

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"mentor-chat/internal/content"
	"mentor-chat/internal/db"
	"mentor-chat/internal/models"
)

func setupSeededStore(t *testing.T) (*db.DB, *content.Library, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	database, err := db.NewDB(tmpFile.Name(), zap.NewNop())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	lib, err := content.Default()
	if err != nil {
		t.Fatalf("failed to load library: %v", err)
	}

	if err := Run(database, lib, zap.NewNop()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	return database, lib, func() {
		database.Close()
		os.Remove(tmpFile.Name())
	}
}

func TestRun_SeedsAllMentors(t *testing.T) {
	database, lib, cleanup := setupSeededStore(t)
	defer cleanup()

	mentors, err := database.GetAllMentors()
	if err != nil {
		t.Fatalf("failed to list mentors: %v", err)
	}
	if len(mentors) != len(lib.Mentors) {
		t.Fatalf("expected %d mentors, got %d", len(lib.Mentors), len(mentors))
	}

	// Listing preserves library order
	for i, mentor := range mentors {
		if mentor.ID != lib.Mentors[i].ID {
			t.Errorf("position %d: expected %q, got %q", i, lib.Mentors[i].ID, mentor.ID)
		}
	}
}

func TestRun_OneThreadPerMentor(t *testing.T) {
	database, lib, cleanup := setupSeededStore(t)
	defer cleanup()

	threads, err := database.GetAllThreads()
	if err != nil {
		t.Fatalf("failed to list threads: %v", err)
	}
	if len(threads) != len(lib.Mentors) {
		t.Fatalf("expected %d threads, got %d", len(lib.Mentors), len(threads))
	}

	pinned := 0
	for _, thread := range threads {
		if thread.Unread != 1 {
			t.Errorf("thread %q: expected unread 1, got %d", thread.MentorID, thread.Unread)
		}
		if thread.RushScore != 70 || thread.RichScore != 30 {
			t.Errorf("thread %q: expected scores 70/30, got %d/%d", thread.MentorID, thread.RushScore, thread.RichScore)
		}
		if thread.RushScore+thread.RichScore != 100 {
			t.Errorf("thread %q: scores are not complementary", thread.MentorID)
		}
		if thread.UserMessageCount != 0 {
			t.Errorf("thread %q: expected no user messages, got %d", thread.MentorID, thread.UserMessageCount)
		}
		if thread.Pinned {
			pinned++
		}
	}
	if pinned != 3 {
		t.Errorf("expected 3 pinned threads, got %d", pinned)
	}
}

func TestRun_SeedsOpeningMessages(t *testing.T) {
	database, lib, cleanup := setupSeededStore(t)
	defer cleanup()

	for _, entry := range lib.Mentors {
		messages, err := database.GetMessages(entry.ID)
		if err != nil {
			t.Fatalf("failed to list messages for %q: %v", entry.ID, err)
		}

		want := len(entry.Openings)
		if want > 2 {
			want = 2
		}
		if len(messages) != want {
			t.Errorf("mentor %q: expected %d openings, got %d", entry.ID, want, len(messages))
		}

		for i, msg := range messages {
			if msg.Direction != models.DirectionIn {
				t.Errorf("mentor %q: opening %d should come from the mentor", entry.ID, i)
			}
			if msg.Tag != entry.Name {
				t.Errorf("mentor %q: expected tag %q, got %q", entry.ID, entry.Name, msg.Tag)
			}
			if msg.ID == "" {
				t.Errorf("mentor %q: opening %d has no id", entry.ID, i)
			}
			if i > 0 && messages[i].CreatedAt.Before(messages[i-1].CreatedAt) {
				t.Errorf("mentor %q: openings out of order", entry.ID)
			}
		}
	}
}

func TestRun_IdempotentOnSecondRun(t *testing.T) {
	database, lib, cleanup := setupSeededStore(t)
	defer cleanup()

	// Mutate a thread, then re-run the seeder; the mutation must survive
	thread, err := database.GetThread(lib.Mentors[0].ID)
	if err != nil {
		t.Fatalf("failed to get thread: %v", err)
	}
	thread.RichScore = 55
	thread.UserMessageCount = 4
	if err := database.PutThread(thread); err != nil {
		t.Fatalf("failed to update thread: %v", err)
	}

	if err := Run(database, lib, zap.NewNop()); err != nil {
		t.Fatalf("second seed run failed: %v", err)
	}

	got, err := database.GetThread(lib.Mentors[0].ID)
	if err != nil {
		t.Fatalf("failed to get thread: %v", err)
	}
	if got.RichScore != 55 || got.UserMessageCount != 4 {
		t.Error("expected second seed run to leave existing state untouched")
	}

	mentors, err := database.GetAllMentors()
	if err != nil {
		t.Fatalf("failed to list mentors: %v", err)
	}
	if len(mentors) != len(lib.Mentors) {
		t.Errorf("expected %d mentors after reseed, got %d", len(lib.Mentors), len(mentors))
	}
}
