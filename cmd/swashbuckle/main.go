package main

import (
	"fmt"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Check   CheckCmd   `cmd:"" help:"Validate a generated spec document."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type CheckCmd struct {
	File string `arg:"" help:"Path to a swagger.json or swagger.yaml document."`
}

func (c *CheckCmd) Run() error {
	report, err := checkDocument(c.File)
	if err != nil {
		return err
	}
	fmt.Println(report)
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("swashbuckle"),
		kong.Description("Swashbuckle CLI for spec document tooling."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
