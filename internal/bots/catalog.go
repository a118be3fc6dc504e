package bots

import "core-nexus/internal/model"

// Catalog is the static profile data for the two CORE DEVS bots. It is
// marketing content, configured here rather than in the database.
var Catalog = []model.BotProfile{
	{
		ID:          "aegis",
		Name:        "Aegis",
		Tagline:     "Moderation that never sleeps",
		Description: "Aegis keeps servers clean with auto-moderation, raid protection, configurable warning ladders and a full audit trail. Built for communities that grew past what manual moderation can handle.",
		ImageURL:    "/assets/bots/aegis.png",
		BannerURL:   "/assets/bots/aegis-banner.png",
		Color:       "#713CF4",
		Stats: model.BotStats{
			Servers:  12400,
			Users:    3800000,
			Commands: 87,
		},
		InviteURL: "https://discord.com/oauth2/authorize?client_id=100000000000000001",
		Features: []model.BotFeature{
			{Title: "Auto-mod", Description: "Spam, invite and slur filtering with per-channel overrides.", Icon: "shield"},
			{Title: "Raid shield", Description: "Join-rate anomaly detection locks the server down automatically.", Icon: "lock"},
			{Title: "Audit trail", Description: "Every action logged, searchable, exportable.", Icon: "scroll"},
		},
	},
	{
		ID:          "nova",
		Name:        "Nova",
		Tagline:     "Your server's engagement engine",
		Description: "Nova runs leveling, economy, giveaways and scheduled events. Custom commands without code, rich embeds, and leaderboards your members actually check.",
		ImageURL:    "/assets/bots/nova.png",
		BannerURL:   "/assets/bots/nova-banner.png",
		Color:       "#2DD4BF",
		Stats: model.BotStats{
			Servers:  8900,
			Users:    2100000,
			Commands: 64,
		},
		InviteURL: "https://discord.com/oauth2/authorize?client_id=100000000000000002",
		Features: []model.BotFeature{
			{Title: "Leveling", Description: "XP curves, role rewards, weekly leaderboards.", Icon: "chart"},
			{Title: "Giveaways", Description: "Timed giveaways with entry requirements.", Icon: "gift"},
			{Title: "Custom commands", Description: "Build commands and embeds from the dashboard.", Icon: "wrench"},
		},
	},
}

// ByID returns the profile with the given id, or nil.
func ByID(id string) *model.BotProfile {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}
