// Command holdemctl drives the poker engine from the command line:
// simulate runs unattended AI-vs-AI hands for statistics, play is an
// interactive text session against the bots, and serve exposes the
// engine over the websocket transport.
package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

// CLI is the holdemctl command tree. Each subcommand is an engine-driving
// verb; no client UI lives here, matching spec's narrow transport scope.
var CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`

	Simulate SimulateCmd `cmd:"" help:"Run unattended hands between AI personalities and report statistics"`
	Play     PlayCmd     `cmd:"" help:"Play an interactive text session against the bots"`
	Serve    ServeCmd    `cmd:"" help:"Serve games over the websocket transport"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("holdemctl"),
		kong.Description("Texas Hold'em engine CLI"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
