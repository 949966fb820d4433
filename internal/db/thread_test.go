package db

import (
	"testing"
	"time"

	"mentor-chat/internal/models"
)

func seedMentor(t *testing.T, database *DB, id string) {
	t.Helper()
	mentor := &models.Mentor{ID: id, Name: id, Role: "Mentor"}
	if err := database.PutMentor(mentor); err != nil {
		t.Fatalf("failed to seed mentor %q: %v", id, err)
	}
}

func TestPutThread_RoundTrip(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	seedMentor(t, database, "kareem")

	thread := &models.Thread{
		MentorID:     "kareem",
		Pinned:       true,
		Unread:       1,
		Preview:      "You showed up.",
		RichScore:    30,
		RushScore:    70,
		LastActivity: time.Now(),
	}
	if err := database.PutThread(thread); err != nil {
		t.Fatalf("failed to put thread: %v", err)
	}

	got, err := database.GetThread("kareem")
	if err != nil {
		t.Fatalf("failed to get thread: %v", err)
	}

	if got.MentorID != "kareem" {
		t.Errorf("expected mentor_id 'kareem', got %q", got.MentorID)
	}
	if !got.Pinned {
		t.Error("expected pinned thread")
	}
	if got.Unread != 1 {
		t.Errorf("expected unread 1, got %d", got.Unread)
	}
	if got.RichScore != 30 || got.RushScore != 70 {
		t.Errorf("expected scores 30/70, got %d/%d", got.RichScore, got.RushScore)
	}
}

func TestPutThread_UpsertsByMentorID(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	seedMentor(t, database, "amara")

	thread := &models.Thread{MentorID: "amara", RichScore: 30, LastActivity: time.Now()}
	if err := database.PutThread(thread); err != nil {
		t.Fatalf("failed to put thread: %v", err)
	}

	thread.RichScore = 45
	thread.UserMessageCount = 3
	if err := database.PutThread(thread); err != nil {
		t.Fatalf("failed to update thread: %v", err)
	}

	got, err := database.GetThread("amara")
	if err != nil {
		t.Fatalf("failed to get thread: %v", err)
	}
	if got.RichScore != 45 {
		t.Errorf("expected rich score 45, got %d", got.RichScore)
	}
	if got.UserMessageCount != 3 {
		t.Errorf("expected user message count 3, got %d", got.UserMessageCount)
	}

	threads, err := database.GetAllThreads()
	if err != nil {
		t.Fatalf("failed to list threads: %v", err)
	}
	if len(threads) != 1 {
		t.Errorf("expected 1 thread after upsert, got %d", len(threads))
	}
}

func TestPutThread_ClampsAndDerivesRush(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	seedMentor(t, database, "malik")

	thread := &models.Thread{MentorID: "malik", RichScore: 130, LastActivity: time.Now()}
	if err := database.PutThread(thread); err != nil {
		t.Fatalf("failed to put thread: %v", err)
	}

	got, err := database.GetThread("malik")
	if err != nil {
		t.Fatalf("failed to get thread: %v", err)
	}
	if got.RichScore != 100 {
		t.Errorf("expected rich score clamped to 100, got %d", got.RichScore)
	}
	if got.RushScore != 0 {
		t.Errorf("expected rush score 0, got %d", got.RushScore)
	}
	if got.RichScore+got.RushScore != 100 {
		t.Errorf("expected complementary scores, got %d+%d", got.RichScore, got.RushScore)
	}
}

func TestGetAllThreads_PinnedFirst(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	seedMentor(t, database, "a")
	seedMentor(t, database, "b")

	unpinned := &models.Thread{MentorID: "a", LastActivity: now}
	pinned := &models.Thread{MentorID: "b", Pinned: true, LastActivity: now.Add(-time.Hour)}
	if err := database.PutThread(unpinned); err != nil {
		t.Fatalf("failed to put thread: %v", err)
	}
	if err := database.PutThread(pinned); err != nil {
		t.Fatalf("failed to put thread: %v", err)
	}

	threads, err := database.GetAllThreads()
	if err != nil {
		t.Fatalf("failed to list threads: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].MentorID != "b" {
		t.Errorf("expected pinned thread first, got %q", threads[0].MentorID)
	}
}
