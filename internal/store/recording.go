package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ayusman/handshot/internal/detector"
)

// Recording is a named sequence of detector outputs.
type Recording struct {
	ID        string
	Name      string
	Camera    int
	Frames    int
	CreatedAt time.Time
}

// Frame is the detector output for one captured camera frame.
type Frame struct {
	Seq    int
	Offset time.Duration // since the first frame of the recording
	Hands  []detector.HandLandmarks
}

// RecordingRepository provides CRUD operations for recordings and their frames.
type RecordingRepository struct {
	db *sql.DB
}

// Recordings returns the recording repository for this store.
func (s *Store) Recordings() *RecordingRepository {
	return &RecordingRepository{db: s.db}
}

// Create inserts a new, empty recording.
func (r *RecordingRepository) Create(rec *Recording) error {
	rec.CreatedAt = time.Now()
	rec.Frames = 0

	_, err := r.db.Exec(
		`INSERT INTO recordings (id, name, camera, frames, created_at) VALUES (?, ?, ?, 0, ?)`,
		rec.ID, rec.Name, rec.Camera, rec.CreatedAt,
	)
	return err
}

// Get retrieves a recording by its ID.
func (r *RecordingRepository) Get(id string) (*Recording, error) {
	rec := &Recording{}
	err := r.db.QueryRow(
		`SELECT id, name, camera, frames, created_at FROM recordings WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Name, &rec.Camera, &rec.Frames, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// List retrieves all recordings, newest first.
func (r *RecordingRepository) List() ([]*Recording, error) {
	rows, err := r.db.Query(
		`SELECT id, name, camera, frames, created_at FROM recordings ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*Recording
	for rows.Next() {
		rec := &Recording{}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Camera, &rec.Frames, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recs, nil
}

// Delete removes a recording and its frames.
func (r *RecordingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AppendFrames stores frames in a single transaction and bumps the
// recording's frame count.
func (r *RecordingRepository) AppendFrames(id string, frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE recordings SET frames = frames + ? WHERE id = ?`, len(frames), id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	stmt, err := tx.Prepare(`INSERT INTO recording_frames (recording_id, seq, offset_ms, hands) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range frames {
		hands := f.Hands
		if hands == nil {
			hands = []detector.HandLandmarks{}
		}
		data, err := json.Marshal(hands)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(id, f.Seq, f.Offset.Milliseconds(), string(data)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Frames returns every frame of a recording in capture order.
func (r *RecordingRepository) Frames(id string) ([]Frame, error) {
	if _, err := r.Get(id); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT seq, offset_ms, hands FROM recording_frames WHERE recording_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var (
			f      Frame
			offset int64
			data   string
		)
		if err := rows.Scan(&f.Seq, &offset, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &f.Hands); err != nil {
			return nil, err
		}
		f.Offset = time.Duration(offset) * time.Millisecond
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return frames, nil
}
