package moderation

// Rank describes the bot's authority in a guild at a point in time. It is
// fetched fresh immediately before every mutating action; role reordering
// between check and use is an accepted narrow window.
type Rank struct {
	ManageRoles bool
	TopPosition int
}

// CanManageRole reports whether the bot may mutate a role at the given
// position.
func CanManageRole(bot Rank, rolePosition int) bool {
	return bot.ManageRoles && bot.TopPosition > rolePosition
}

// CanManageMember reports whether the bot may mutate a member whose highest
// role sits at the given position.
func CanManageMember(bot Rank, memberTopPosition int) bool {
	return bot.ManageRoles && bot.TopPosition > memberTopPosition
}
