package model

// Message is a stored on-chain message, keyed by its object address.
type Message struct {
	MessageObjAddr      string `json:"message_obj_addr"`
	CreatorAddr         string `json:"creator_addr"`
	CreationTimestamp   int64  `json:"creation_timestamp"`
	LastUpdateTimestamp int64  `json:"last_update_timestamp"`
	LastUpdateEventIdx  int64  `json:"last_update_event_idx"`
	Content             string `json:"content"`
}

// MessageFromEvent converts a message create/update payload into a row.
func MessageFromEvent(ev *MessageEventOnChain, eventIdx int64) Message {
	return Message{
		MessageObjAddr:      ev.MessageObjAddr,
		CreatorAddr:         ev.CreatorAddr,
		CreationTimestamp:   ParseInt64(ev.CreationTimestamp, 0),
		LastUpdateTimestamp: ParseInt64(ev.LastUpdateTimestamp, 0),
		LastUpdateEventIdx:  eventIdx,
		Content:             ev.Content,
	}
}

// UserStat holds cumulative message counters for one creator. When produced
// by the aggregator every counter is a batch-scoped delta, not an absolute
// total; the persister merges deltas additively.
type UserStat struct {
	UserAddr            string `json:"user_addr"`
	CreationTimestamp   int64  `json:"creation_timestamp"`
	LastUpdateTimestamp int64  `json:"last_update_timestamp"`
	CreatedMessages     int64  `json:"created_messages"`
	UpdatedMessages     int64  `json:"updated_messages"`
	S1Points            int64  `json:"s1_points"`
	TotalPoints         int64  `json:"total_points"`
}

// NewUserStat returns a zeroed accumulator for a creator first seen at ts.
func NewUserStat(userAddr string, ts int64) UserStat {
	return UserStat{
		UserAddr:            userAddr,
		CreationTimestamp:   ts,
		LastUpdateTimestamp: ts,
	}
}
