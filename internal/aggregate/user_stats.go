package aggregate

import (
	"sort"

	"tradeRadar/internal/model"
)

// Points awarded per message action, all feeding the season-1 pool.
const (
	pointsCreateMessage = 1
	pointsUpdateMessage = 1
)

// FoldCreateMessages turns created-message events into message rows plus
// one merged user stat delta per creator.
func FoldCreateMessages(events []model.MessageCreated) ([]model.Message, []model.UserStat) {
	rows := make([]model.Message, 0, len(events))
	acc := make(map[string]*model.UserStat)

	for _, ev := range events {
		m := ev.Message
		rows = append(rows, m)

		st := userAcc(acc, m.CreatorAddr, m.CreationTimestamp)
		st.CreatedMessages++
		st.S1Points += pointsCreateMessage
		st.TotalPoints += pointsCreateMessage
		st.LastUpdateTimestamp = m.CreationTimestamp
	}

	return rows, sortedUserStats(acc)
}

// FoldUpdateMessages turns updated-message events into message rows plus
// user stat deltas.
func FoldUpdateMessages(events []model.MessageUpdated) ([]model.Message, []model.UserStat) {
	rows := make([]model.Message, 0, len(events))
	acc := make(map[string]*model.UserStat)

	for _, ev := range events {
		m := ev.Message
		rows = append(rows, m)

		st := userAcc(acc, m.CreatorAddr, m.LastUpdateTimestamp)
		st.UpdatedMessages++
		st.S1Points += pointsUpdateMessage
		st.TotalPoints += pointsUpdateMessage
		st.LastUpdateTimestamp = m.LastUpdateTimestamp
	}

	return rows, sortedUserStats(acc)
}

func userAcc(acc map[string]*model.UserStat, addr string, ts int64) *model.UserStat {
	st := acc[addr]
	if st == nil {
		s := model.NewUserStat(addr, ts)
		st = &s
		acc[addr] = st
	}
	return st
}

func sortedUserStats(acc map[string]*model.UserStat) []model.UserStat {
	out := make([]model.UserStat, 0, len(acc))
	for _, st := range acc {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserAddr < out[j].UserAddr })
	return out
}
