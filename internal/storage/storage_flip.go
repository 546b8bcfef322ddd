package storage

// AddFlipWin counts one coin-flip win for userID.
func (s *Storage) AddFlipWin(guildID, userID string) error {
	return s.update(guildID, func(r *Record) {
		r.FlipWins[userID]++
	})
}

// FlipWins returns the number of coin flips userID has won in the guild.
func (s *Storage) FlipWins(guildID, userID string) (int, error) {
	record, err := s.view(guildID)
	if err != nil {
		return 0, err
	}
	return record.FlipWins[userID], nil
}
