package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Parse   ParseCmd         `cmd:"" help:"Parse hand history files and print a summary"`
	Replay  ReplayCmd        `cmd:"" help:"Step through a hand in the terminal"`
	Export  ExportCmd        `cmd:"" help:"Export parsed hands as TOML records"`
	Serve   ServeCmd         `cmd:"" help:"Serve replay state over a websocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handreplay"),
		kong.Description("Parse and replay poker hand histories"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
