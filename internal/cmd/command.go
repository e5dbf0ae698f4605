// Package cmd contains the go-flags commands of the xtar executable.
package cmd

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xtar/internal/config"
)

type Xtar struct {
	Config  flags.Filename `long:"config" description:"load configuration from this file instead of the nearest .xtar file"`
	Create  Create         `command:"create" alias:"c" description:"create a tar archive from files and directories"`
	Extract Extract        `command:"extract" alias:"x" description:"extract tar archives"`
	List    List           `command:"list" alias:"t" alias:"ls" description:"list the entries of tar archives"`
}

func NewParser() (*flags.Parser, error) {
	opts := &Xtar{}

	p := flags.NewNamedParser("xtar", flags.Default)
	if _, err := p.AddGroup("Global Options", "", opts); err != nil {
		return nil, err
	}

	p.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}

		if err := opts.loadConfig(context.Background()); err != nil {
			return err
		}

		return command.Execute(args)
	}

	return p, nil
}

func (x *Xtar) loadConfig(ctx context.Context) error {
	if x.Config != "" {
		return config.LoadFile(string(x.Config))
	}

	if _, err := config.Load(ctx); err != nil {
		return fmt.Errorf("find config error: %w", err)
	}

	return nil
}
