package cli

import (
	"context"
	"fmt"
	"os"
	"time"
)

// BotAdd interactively registers a new bot: prompts for a name, token and
// channel id, verifies them against the live API and stores the result.
func (a *App) BotAdd(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Bot name (empty to use the bot's username)", os.Stdout)
	if err != nil {
		return err
	}
	token, err := GetSimpleText(a.reader, "Bot token", os.Stdout)
	if err != nil {
		return err
	}
	channelID, err := GetSimpleText(a.reader, "Channel id (e.g. -1001234567890)", os.Stdout)
	if err != nil {
		return err
	}

	bot, err := a.bots.AddBot(ctx, name, token, channelID)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Bot %q registered with id %s", bot.Name, bot.ID))
	return nil
}

// Bots lists the registered bots and marks the primary one.
func (a *App) Bots(ctx context.Context) error {
	bots, err := a.bots.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(bots) == 0 {
		printlnFn("No bots registered yet, use 'botadd'")
		return nil
	}

	st, err := a.repos.Settings.Get(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	for _, b := range bots {
		marker := " "
		if b.ID == st.PrimaryBotID {
			marker = "*"
		}
		lastUsed := "never"
		if b.LastUsed > 0 {
			lastUsed = time.UnixMilli(b.LastUsed).Format(time.RFC3339)
		}
		printlnFn(fmt.Sprintf("%s %s  %s  channel=%s  last used: %s", marker, b.ID, b.Name, b.ChannelID, lastUsed))
	}
	return nil
}

// SetPrimary selects which bot upload batches use.
func (a *App) SetPrimary(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: primary <bot id>")
		return nil
	}

	if err := a.bots.SetPrimary(ctx, args[0]); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Primary bot set to", args[0])
	return nil
}
