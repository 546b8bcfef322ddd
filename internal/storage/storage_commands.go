package storage

import "time"

type CommandHistoryRecord struct {
	DispatchID string    `json:"dispatch_id"`
	ChannelID  string    `json:"channel_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Group      string    `json:"group"`
	Command    string    `json:"command"`
	Param      string    `json:"param"`
	Datetime   time.Time `json:"datetime"`
}

// AppendCommandToHistory appends a command history record for a guild,
// keeping only the most recent entries.
func (s *Storage) AppendCommandToHistory(guildID string, command CommandHistoryRecord) error {
	return s.update(guildID, func(r *Record) {
		r.CommandsHistoryList = append(r.CommandsHistoryList, command)
		if n := len(r.CommandsHistoryList); n > commandHistoryLimit {
			r.CommandsHistoryList = r.CommandsHistoryList[n-commandHistoryLimit:]
		}
	})
}

func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.view(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistoryList, nil
}
