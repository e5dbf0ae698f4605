package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xtar"
	"github.com/nguyengg/xtar/archive"
	"github.com/nguyengg/xtar/codec"
	"github.com/nguyengg/xtar/internal"
	"github.com/nguyengg/xtar/internal/config"
)

type Extract struct {
	Directory flags.Filename `short:"C" long:"directory" description:"the directory to extract into; defaults to the working directory"`
	Format    string         `short:"F" long:"format" choice:"auto" choice:"none" choice:"gzip" choice:"zstd" choice:"xz" choice:"lz4" default:"auto" description:"compression format of the archives"`
	Progress  bool           `short:"P" long:"progress" description:"show progress bar"`
	Args      struct {
		Files []flags.Filename `positional-arg-name:"archive" description:"the archives to be extracted" required:"yes"`
	} `positional-args:"yes"`

	logger *log.Logger
}

func (c *Extract) Execute(args []string) (err error) {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	cfg := config.ForExtract()
	dir := string(c.Directory)
	if dir == "" {
		if dir = cfg.Directory; dir == "" {
			dir = "."
		}
	}

	success := 0
	n := len(c.Args.Files)
	for i, file := range c.Args.Files {
		c.logger = internal.NewLogger(i, n, file)
		c.logger.Printf("start extracting")

		if err = c.extract(ctx, string(file), dir, c.Progress || cfg.Progress); err == nil {
			c.logger.Printf("done extracting")
			success++
			continue
		}

		if errors.Is(err, context.Canceled) {
			break
		}

		c.logger.Printf("extract error: %v", err)
	}

	log.Printf("successfully extracted %d/%d archives", success, n)
	if success != n {
		return fmt.Errorf("failed to extract %d/%d archives", n-success, n)
	}

	return nil
}

func (c *Extract) extract(ctx context.Context, name, dir string, progress bool) error {
	optFns, err := codecOptions(c.Format)
	if err != nil {
		return err
	}

	entries := 0
	optFns = append(optFns, func(opts *xtar.Options) {
		opts.OnEntry = func(archive.Entry) {
			entries++
		}
		if progress {
			opts.ProgressBar = internal.DefaultBytes(-1, "extracting")
		}
	})

	if err = xtar.Extract(ctx, name, dir, optFns...); err != nil {
		return err
	}

	c.logger.Printf(`extracted %d entries to "%s"`, entries, dir)
	return nil
}

// codecOptions turns the --format flag into options shared by the extract and list commands.
func codecOptions(format string) ([]func(*xtar.Options), error) {
	if format == "" || format == "auto" {
		return []func(*xtar.Options){func(opts *xtar.Options) {
			opts.DetectCodec = true
		}}, nil
	}

	cd, ok := codec.FromName(format)
	if !ok {
		return nil, fmt.Errorf(`unknown format "%s"`, format)
	}

	return []func(*xtar.Options){func(opts *xtar.Options) {
		opts.Codec = cd
	}}, nil
}
