package store

import (
	"time"

	"core-nexus/internal/model"
)

// defaultResources is the vault content shipped with a fresh install.
func defaultResources() []model.Resource {
	now := time.Now()
	return []model.Resource{
		{
			ID:          "seed-gem-key",
			Title:       "Gemini Sandbox Key",
			Description: "Shared key for the Nexus assistant sandbox project. Rotated monthly.",
			Type:        model.ResourceTypeAPIKey,
			Content:     "AIza-SANDBOX-ROTATED-SEE-PINNED",
			Tags:        []string{"gemini", "sandbox"},
			CreatedAt:   now,
		},
		{
			ID:          "seed-embed-s",
			Title:       "Discord Embed Builder",
			Description: "Canonical embed payload we use for announcement posts.",
			Type:        model.ResourceTypeCodeSnippet,
			Content:     "{\n  \"title\": \"CORE DEVS\",\n  \"color\": 7419530,\n  \"description\": \"...\"\n}",
			Tags:        []string{"discord", "embeds"},
			CreatedAt:   now.Add(-time.Minute),
		},
		{
			ID:          "seed-shard-c",
			Title:       "Shard Calculator",
			Description: "Quick calculator for recommended shard counts per guild total.",
			Type:        model.ResourceTypeTool,
			Content:     "https://discordshardcalculator.com",
			Tags:        []string{"sharding", "ops"},
			CreatedAt:   now.Add(-2 * time.Minute),
		},
	}
}

// seedVault inserts the default resources exactly once per database.
// The init flag, not collection emptiness, decides whether to seed, so a
// vault the staff emptied on purpose stays empty.
func (s *Store) seedVault() error {
	initialized, err := s.ConfigValue(model.ConfigKeyVaultInitialized)
	if err != nil {
		return err
	}
	if initialized == "true" {
		return nil
	}

	for _, r := range defaultResources() {
		resource := r
		if err := s.db.Create(&resource).Error; err != nil {
			return err
		}
	}

	return s.SetConfigValue(model.ConfigKeyVaultInitialized, "true")
}
