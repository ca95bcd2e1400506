package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionColumns = []string{
	"id", "sequence", "timestamp", "session_id", "user_id", "user_name", "action",
	"started_at", "ended_at", "total_questions", "questions_answered",
	"correct_answers", "points_earned", "final_score", "average_time_ms",
}

type sessionRow struct {
	ID                int64   `sql:"id"`
	Sequence          int64   `sql:"sequence"`
	Timestamp         int64   `sql:"timestamp"`
	SessionID         string  `sql:"session_id"`
	UserID            string  `sql:"user_id"`
	UserName          string  `sql:"user_name"`
	Action            string  `sql:"action"`
	StartedAt         int64   `sql:"started_at"`
	EndedAt           int64   `sql:"ended_at"`
	TotalQuestions    int     `sql:"total_questions"`
	QuestionsAnswered int     `sql:"questions_answered"`
	CorrectAnswers    int     `sql:"correct_answers"`
	PointsEarned      int     `sql:"points_earned"`
	FinalScore        int     `sql:"final_score"`
	AverageTimeMs     float64 `sql:"average_time_ms"`
}

func (r sessionRow) event() SessionEvent {
	return SessionEvent{
		ID:        r.ID,
		Sequence:  r.Sequence,
		Timestamp: fromMillis(r.Timestamp),
		SessionEventData: SessionEventData{
			SessionID:         r.SessionID,
			UserID:            r.UserID,
			UserName:          r.UserName,
			Action:            r.Action,
			StartedAt:         fromMillis(r.StartedAt),
			EndedAt:           fromMillis(r.EndedAt),
			TotalQuestions:    r.TotalQuestions,
			QuestionsAnswered: r.QuestionsAnswered,
			CorrectAnswers:    r.CorrectAnswers,
			PointsEarned:      r.PointsEarned,
			FinalScore:        r.FinalScore,
			AverageTimeMs:     r.AverageTimeMs,
		},
	}
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	action := data.Action
	if action == "" {
		action = ActionCompleted
	}

	query, args := builder().
		Insert(sessionTable).
		Columns(sessionColumns[1:]...).
		Values(
			seqNum, time.Now().UnixMilli(), data.SessionID, data.UserID, data.UserName, action,
			toMillis(data.StartedAt), toMillis(data.EndedAt), data.TotalQuestions,
			data.QuestionsAnswered, data.CorrectAnswers, data.PointsEarned,
			data.FinalScore, data.AverageTimeMs,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, userID string, opts QueryOpts) ([]SessionEvent, error) {
	sel := builder().Select(sessionColumns...).From(entsql.Table(sessionTable))
	if userID != "" {
		sel.Where(entsql.EQ("user_id", userID))
	}
	query, args := applyOpts(sel, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var scanned []sessionRow
	if err := entsql.ScanSlice(rows, &scanned); err != nil {
		return nil, fmt.Errorf("scan session events: %w", err)
	}

	events := make([]SessionEvent, len(scanned))
	for i, row := range scanned {
		events[i] = row.event()
	}
	return events, nil
}

func (r *eventRepo) DeleteSessionEvents(ctx context.Context) error {
	query, args := builder().Delete(sessionTable).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete session events: %w", err)
	}
	return nil
}
