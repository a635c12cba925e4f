package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	BotAdd(ctx context.Context) error
	Bots(ctx context.Context) error
	SetPrimary(ctx context.Context, args []string) error
	Scan(ctx context.Context, args []string) error
	Upload(ctx context.Context) error
	Status(ctx context.Context) error
	Cloud(ctx context.Context) error
	Download(ctx context.Context, args []string) error
	Thumb(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Wifi(ctx context.Context, args []string) error
	Auto(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the PhotoKeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands
//
//	botadd            — register a bot (interactive prompts)
//	bots              — list registered bots
//	primary <id>      — select the primary bot
//	scan <dir>        — index a media directory
//	(u)pload          — upload pending photos
//	status            — show backup counters and batch progress
//	cloud             — list remote photos
//	download <id>     — download a remote photo
//	thumb <id>        — cache a remote photo's thumbnail
//	remove <id>       — delete a remote photo from the channel
//	wifi on|off       — toggle the wifi-only upload policy
//	auto on|off       — toggle periodic auto-backup
//	exit | quit       — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: botadd, bots, primary, scan, (u)pload, status, cloud, download, thumb, remove, wifi, auto, exit")

		case "botadd":
			_ = a.BotAdd(ctx)

		case "bots":
			_ = a.Bots(ctx)

		case "primary":
			_ = a.SetPrimary(ctx, args)

		case "scan":
			_ = a.Scan(ctx, args)

		case "u", "upload":
			_ = a.Upload(ctx)

		case "status":
			_ = a.Status(ctx)

		case "cloud":
			_ = a.Cloud(ctx)

		case "download":
			_ = a.Download(ctx, args)

		case "thumb":
			_ = a.Thumb(ctx, args)

		case "remove":
			_ = a.Remove(ctx, args)

		case "wifi":
			_ = a.Wifi(ctx, args)

		case "auto":
			_ = a.Auto(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
