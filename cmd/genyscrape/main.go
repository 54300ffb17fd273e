package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"genyscrape/cmd/genyscrape/commands"
	"genyscrape/lib/osutil"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "err", err)
	}

	ctx, cancel := osutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
