package model

// BotStats are the headline numbers shown on a bot's profile card.
type BotStats struct {
	Servers  int `json:"servers"`
	Users    int `json:"users"`
	Commands int `json:"commands"`
}

// BotFeature is one feature bullet on a bot's detail page.
type BotFeature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// BotProfile is the static marketing profile of one Discord bot.
// Profiles are configuration data, not user-editable.
type BotProfile struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Tagline     string       `json:"tagline"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	BannerURL   string       `json:"banner_url"`
	Color       string       `json:"color"`
	Stats       BotStats     `json:"stats"`
	InviteURL   string       `json:"invite_url"`
	Features    []BotFeature `json:"features"`
}
