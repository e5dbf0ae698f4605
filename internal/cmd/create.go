package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xtar"
	"github.com/nguyengg/xtar/archive"
	"github.com/nguyengg/xtar/codec"
	"github.com/nguyengg/xtar/internal"
	"github.com/nguyengg/xtar/internal/config"
	"github.com/nguyengg/xtar/util"
	"golang.org/x/time/rate"
)

type Create struct {
	Directory   flags.Filename `short:"C" long:"directory" description:"the files are relative to this directory which is not part of the entry names"`
	Format      string         `short:"F" long:"format" choice:"none" choice:"gzip" choice:"zstd" choice:"xz" choice:"lz4" description:"compression format; inferred from the archive extension if not given"`
	Gzip        bool           `short:"z" long:"gzip" description:"shorthand for --format=gzip"`
	Level       int            `short:"l" long:"level" description:"compression level for gzip and zstd"`
	Concurrency int            `short:"j" long:"concurrency" description:"number of compression goroutines for gzip and zstd"`
	Keep        bool           `short:"k" long:"keep" description:"never overwrite an existing archive; a new name such as archive-1.tar.gz is picked instead"`
	Progress    bool           `short:"P" long:"progress" description:"show progress bar"`
	Args        struct {
		Archive flags.Filename   `positional-arg-name:"archive" description:"the archive to be created" required:"yes"`
		Files   []flags.Filename `positional-arg-name:"file" description:"the files and directories to be archived" required:"yes"`
	} `positional-args:"yes"`

	logger *log.Logger
}

func (c *Create) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	c.logger = internal.NewLogger(0, 1, c.Args.Archive)

	name, err := c.create(ctx)
	if err != nil {
		c.logger.Printf("create archive error: %v", err)
		return err
	}

	if fi, err := os.Stat(name); err == nil {
		c.logger.Printf(`done creating "%s" (%s)`, name, humanize.IBytes(uint64(fi.Size())))
	}

	return nil
}

func (c *Create) create(ctx context.Context) (string, error) {
	cfg := config.ForCreate()

	cd, err := c.codec(cfg)
	if err != nil {
		return "", err
	}

	name, reserved := string(c.Args.Archive), false
	if c.Keep || cfg.Keep {
		f, err := util.OpenExclFile(name, 0666)
		if err != nil {
			return "", err
		}

		if name = f.Name(); name != string(c.Args.Archive) {
			c.logger.Printf(`"%s" already exists, writing to "%s" instead`, c.Args.Archive, name)
		}

		if err = f.Close(); err != nil {
			_ = os.Remove(name)
			return "", fmt.Errorf(`close file "%s" error: %w`, name, err)
		}

		reserved = true
	}

	src := make([]string, len(c.Args.Files))
	for i, file := range c.Args.Files {
		src[i] = string(file)
	}

	var (
		n         int
		size      int64
		sometimes = rate.Sometimes{Interval: 5 * time.Second}
	)

	if err = xtar.Create(ctx, name, src, func(opts *xtar.Options) {
		opts.Codec = cd
		opts.BaseDir = string(c.Directory)
		opts.OnEntry = func(e archive.Entry) {
			n++
			size += e.Size
			sometimes.Do(func() {
				c.logger.Printf(`added %d entries (%s), latest "%s"`, n, humanize.IBytes(uint64(size)), e.DisplayName())
			})
		}
		if c.Progress {
			opts.ProgressBar = internal.DefaultBytes(-1, "archiving")
		}
	}); err != nil {
		// validation errors happen before the archive is opened so an existing file must be left alone.
		if reserved || !invalidInput(err) {
			_ = os.Remove(name)
		}

		return "", err
	}

	c.logger.Printf("added %d entries (%s)", n, humanize.IBytes(uint64(size)))
	return name, nil
}

// codec resolves the compression codec with this precedence: --format, --gzip, the archive extension, then the
// config file's format.
func (c *Create) codec(cfg config.CreateConfig) (codec.Codec, error) {
	var (
		cd codec.Codec
		ok bool
	)

	switch {
	case c.Format != "":
		if cd, ok = codec.FromName(c.Format); !ok {
			return nil, fmt.Errorf(`unknown format "%s"`, c.Format)
		}
	case c.Gzip:
		cd = codec.Gzip{}
	default:
		if cd, ok = codec.FromExt(string(c.Args.Archive)); !ok && cfg.Format != "" {
			if cd, ok = codec.FromName(cfg.Format); !ok {
				return nil, fmt.Errorf(`unknown format "%s" in config`, cfg.Format)
			}
		}
	}

	level, concurrency := c.Level, c.Concurrency
	if level == 0 {
		level = cfg.Level
	}
	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}

	switch cd.(type) {
	case codec.Gzip:
		cd = codec.Gzip{Level: level, Concurrency: concurrency}
	case codec.Zstd:
		cd = codec.Zstd{Level: level, Concurrency: concurrency}
	}

	return cd, nil
}

func invalidInput(err error) bool {
	for _, target := range []error{xtar.ErrInvalidTarget, xtar.ErrEmptyInput, xtar.ErrAbsolutePath, xtar.ErrInvalidBase} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
