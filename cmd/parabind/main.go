// Command parabind binds the paragraphs of a book to the paragraphs of its
// translation by verse overlap.
package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/config"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/store"
)

const version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	DB        string        `name:"db" short:"d" help:"SQLite database path" env:"PARABIND_DB" default:"parabind.db" type:"path"`
	LogLevel  string        `name:"log-level" help:"Log level (debug, info, warn, error)" env:"PARABIND_LOG_LEVEL" default:"info"`
	LogFormat string        `name:"log-format" help:"Log format (text, json)" env:"PARABIND_LOG_FORMAT" default:"text"`
	CacheTTL  time.Duration `name:"cache-ttl" help:"How long book contents stay cached" default:"5m"`

	cfg config.Config `kong:"-"`
	out io.Writer     `kong:"-"`
}

// CLI defines the command-line interface for parabind.
type CLI struct {
	Globals

	// Command groups (noun-first organization)
	Range   RangeGroup   `cmd:"" help:"Verse range utilities"`
	Align   AlignCmd     `cmd:"" help:"Align two paragraph files and print the pairs"`
	Book    BookGroup    `cmd:"" help:"Stored book operations"`
	Binding BindingGroup `cmd:"" help:"Stored binding operations"`
	Version VersionCmd   `cmd:"" help:"Print version information"`
}

// setup resolves the configuration and installs the logger.
func (g *Globals) setup() error {
	cfg, err := config.Load(g.DB, g.LogLevel, g.LogFormat, g.CacheTTL)
	if err != nil {
		return err
	}
	g.cfg = cfg
	if g.out == nil {
		g.out = os.Stdout
	}
	cfg.InitLogging()
	return nil
}

func (g *Globals) openStore(ctx context.Context) (*store.Store, error) {
	return g.cfg.OpenStore(ctx)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	return printf(g.out, "parabind version %s\n", version)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("parabind"),
		kong.Description("Paragraph binding for translation editing"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	ctx.FatalIfErrorf(cli.Globals.setup())
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
