package models

// Bot is a stored bot credential record. The token itself never lands in
// this table; it is kept in the encrypted vault keyed by the bot id.
type Bot struct {
	ID        string
	Name      string
	ChannelID string
	IsActive  bool
	CreatedAt int64
	LastUsed  int64
}

// Settings is the singleton settings row (id is always 1).
type Settings struct {
	PrimaryBotID      string
	AutoBackupEnabled bool
	WifiOnly          bool
	LastBackupTime    int64
}
