package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rampinfotech/meetscribe/internal/minutes"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

// MeetingRecord is a finished meeting ready for persistence.
type MeetingRecord struct {
	Title           string
	Date            time.Time
	DurationSeconds float64
	AudioPath       string
	TranscriptPath  string
	MoMPath         string
	SummaryText     string
	Utterances      []transcript.Utterance
	ActionItems     []minutes.ActionItem
}

// SaveMeeting stores one meeting with its participants and action items
// in a single transaction, returning the new meeting ID.
func (s *Store) SaveMeeting(ctx context.Context, rec MeetingRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO meetings (
            title, meeting_date, duration_seconds,
            audio_path, transcript_path, mom_path, summary_text, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Title,
		rec.Date.UTC().Format(time.RFC3339),
		rec.DurationSeconds,
		rec.AudioPath,
		rec.TranscriptPath,
		rec.MoMPath,
		rec.SummaryText,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert meeting: %w", err)
	}

	meetingID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	for _, speaker := range transcript.UniqueSpeakers(rec.Utterances) {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO participants (meeting_id, speaker_label) VALUES (?, ?)`,
			meetingID, speaker,
		); err != nil {
			return 0, fmt.Errorf("insert participant %q: %w", speaker, err)
		}
	}

	for _, item := range rec.ActionItems {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO action_items (
                meeting_id, title, description, assigned_to, priority, created_at
            ) VALUES (?, ?, ?, ?, ?, ?)`,
			meetingID, item.Title, item.Description, item.AssignedTo, string(item.Priority), now,
		); err != nil {
			return 0, fmt.Errorf("insert action item %q: %w", item.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit meeting: %w", err)
	}

	return meetingID, nil
}
