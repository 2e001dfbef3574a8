package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/handshot/internal/detector"
)

func createRecording(t *testing.T, repo *RecordingRepository, name string) *Recording {
	t.Helper()

	rec := &Recording{ID: uuid.NewString(), Name: name, Camera: 1}
	if err := repo.Create(rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return rec
}

func TestRecordings_CreateGet(t *testing.T) {
	repo := newTestStore(t).Recordings()
	rec := createRecording(t, repo, "warmup")

	got, err := repo.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "warmup" || got.Camera != 1 || got.Frames != 0 {
		t.Errorf("Get() = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	if _, err := repo.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) error = %v, want %v", err, ErrNotFound)
	}
}

func TestRecordings_Frames(t *testing.T) {
	repo := newTestStore(t).Recordings()
	rec := createRecording(t, repo, "pinch")

	frames := []Frame{
		{Seq: 0, Offset: 0, Hands: nil},
		{Seq: 1, Offset: 33 * time.Millisecond, Hands: []detector.HandLandmarks{detector.HandAt(0.5, 0.5)}},
	}
	if err := repo.AppendFrames(rec.ID, frames); err != nil {
		t.Fatalf("AppendFrames() error = %v", err)
	}
	more := []Frame{{Seq: 2, Offset: 66 * time.Millisecond, Hands: []detector.HandLandmarks{detector.PinchAt(0.2, 0.3)}}}
	if err := repo.AppendFrames(rec.ID, more); err != nil {
		t.Fatalf("AppendFrames() error = %v", err)
	}

	got, err := repo.Frames(rec.ID)
	if err != nil {
		t.Fatalf("Frames() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(Frames()) = %d, want 3", len(got))
	}
	if len(got[0].Hands) != 0 {
		t.Errorf("frame 0 has %d hands, want 0", len(got[0].Hands))
	}
	if got[1].Offset != 33*time.Millisecond {
		t.Errorf("frame 1 offset = %s, want 33ms", got[1].Offset)
	}
	if got[2].Hands[0] != detector.PinchAt(0.2, 0.3) {
		t.Error("frame 2 landmarks did not round-trip")
	}

	meta, err := repo.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if meta.Frames != 3 {
		t.Errorf("Frames count = %d, want 3", meta.Frames)
	}
}

func TestRecordings_AppendToMissing(t *testing.T) {
	repo := newTestStore(t).Recordings()

	err := repo.AppendFrames("missing", []Frame{{Seq: 0}})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("AppendFrames() error = %v, want %v", err, ErrNotFound)
	}
	if _, err := repo.Frames("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Frames() error = %v, want %v", err, ErrNotFound)
	}
}

func TestRecordings_ListDelete(t *testing.T) {
	repo := newTestStore(t).Recordings()
	a := createRecording(t, repo, "a")
	b := createRecording(t, repo, "b")
	if err := repo.AppendFrames(a.ID, []Frame{{Seq: 0}}); err != nil {
		t.Fatalf("AppendFrames() error = %v", err)
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(list))
	}

	if err := repo.Delete(a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, ErrNotFound)
	}

	list, err = repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("List() after delete = %v, want only %s", list, b.ID)
	}

	var orphans int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM recording_frames WHERE recording_id = ?`, a.ID).Scan(&orphans); err != nil {
		t.Fatalf("count frames: %v", err)
	}
	if orphans != 0 {
		t.Errorf("%d frames left after delete, want 0", orphans)
	}
}
