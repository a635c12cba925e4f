package cli

import (
	"context"
	"fmt"
)

// Scan indexes a media directory into the local photo database.
func (a *App) Scan(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: scan <directory>")
		return nil
	}

	seen, err := a.scanner.ScanDirectory(ctx, args[0])
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Indexed %d media files", seen))
	return nil
}
