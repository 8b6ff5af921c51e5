package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"tradeRadar/internal/model"
)

const insertMessageSQL = `
	INSERT INTO messages (
		message_obj_addr, creator_addr, creation_timestamp,
		last_update_timestamp, last_update_event_idx, content
	) VALUES ($1,$2,$3,$4,$5,$6)
`

const upsertUserStatsSQL = `
	INSERT INTO user_stats (
		user_addr, creation_timestamp, last_update_timestamp,
		created_messages, updated_messages, s1_points, total_points
	) VALUES ($1,$2,$3,$4,$5,$6,$7)
	ON CONFLICT (user_addr) DO UPDATE SET
		last_update_timestamp = EXCLUDED.last_update_timestamp,
		created_messages = user_stats.created_messages + EXCLUDED.created_messages,
		updated_messages = user_stats.updated_messages + EXCLUDED.updated_messages,
		s1_points = user_stats.s1_points + EXCLUDED.s1_points,
		total_points = user_stats.total_points + EXCLUDED.total_points
`

// InsertCreateMessages writes created messages and the batch's user stat
// deltas. Replaying a create is a no-op on the message row.
func (s *Store) InsertCreateMessages(ctx context.Context, messages []model.Message, stats []model.UserStat) error {
	return s.writeMessages(ctx, messages, stats, `ON CONFLICT (message_obj_addr) DO NOTHING`)
}

// UpdateMessages writes updated messages (latest content wins) and the
// batch's user stat deltas.
func (s *Store) UpdateMessages(ctx context.Context, messages []model.Message, stats []model.UserStat) error {
	return s.writeMessages(ctx, messages, stats, `
		ON CONFLICT (message_obj_addr) DO UPDATE SET
			content = EXCLUDED.content,
			last_update_timestamp = EXCLUDED.last_update_timestamp,
			last_update_event_idx = EXCLUDED.last_update_event_idx`)
}

func (s *Store) writeMessages(ctx context.Context, messages []model.Message, stats []model.UserStat, conflictSQL string) error {
	chunks := chunkPlan(chunkRows(messages, s.chunkSize("messages")), len(stats) > 0)
	if len(chunks) == 0 {
		return nil
	}

	sql := insertMessageSQL + conflictSQL

	return s.runChunks(ctx, "messages", len(chunks), func(ctx context.Context, tx pgx.Tx, chunk int) error {
		batch := &pgx.Batch{}
		for _, m := range chunks[chunk] {
			batch.Queue(sql,
				m.MessageObjAddr, m.CreatorAddr, m.CreationTimestamp,
				m.LastUpdateTimestamp, m.LastUpdateEventIdx, m.Content,
			)
		}
		for _, st := range statsForChunk(chunk, stats) {
			batch.Queue(upsertUserStatsSQL,
				st.UserAddr, st.CreationTimestamp, st.LastUpdateTimestamp,
				st.CreatedMessages, st.UpdatedMessages, st.S1Points, st.TotalPoints,
			)
		}
		return queueAll(ctx, tx, batch)
	})
}
