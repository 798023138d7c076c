package service

import "context"

// IsMember reports whether the Discord identity currently belongs to the
// configured guild. Platform errors and unknown identities both resolve to
// false.
func (s *Service) IsMember(ctx context.Context, discordID string) bool {
	member, err := s.discord.IsMember(ctx, discordID)
	if err != nil {
		s.logger.Errorf("Failed to check membership for %s: %v", discordID, err)
		return false
	}
	return member
}

// HasStaffPrivilege reports whether the actor passes the dual staff gate: the
// Discord role check and the database role check must both independently
// succeed. Either check failing, for any reason, denies the privilege.
func (s *Service) HasStaffPrivilege(ctx context.Context, discordID string) bool {
	discordStaff, err := s.discord.MemberHasStaffRole(ctx, discordID)
	if err != nil {
		s.logger.Errorf("Failed to check Discord staff role for %s: %v", discordID, err)
		discordStaff = false
	}

	dbStaff := false
	user, err := s.repo.GetUserByDiscordID(ctx, discordID)
	if err != nil {
		s.logger.Errorf("Failed to check database role for %s: %v", discordID, err)
	} else if user != nil {
		dbStaff = user.IsStaff()
	}

	return discordStaff && dbStaff
}
