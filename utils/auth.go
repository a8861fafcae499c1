package utils

import "github.com/bwmarrin/discordgo"

// StaffPolicy describes who bypasses automated moderation and may run
// staff commands.
type StaffPolicy struct {
	OwnerID     string
	StaffRoleID string
}

// IsPrivileged reports whether a user satisfies the staff predicate: the
// configured owner, a holder of the administrator permission, or a holder
// of the configured staff role.
func IsPrivileged(userID string, roleIDs []string, permissions int64, policy StaffPolicy) bool {
	if policy.OwnerID != "" && userID == policy.OwnerID {
		return true
	}
	if permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	if policy.StaffRoleID != "" {
		for _, id := range roleIDs {
			if id == policy.StaffRoleID {
				return true
			}
		}
	}
	return false
}
