package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xtar"
	"github.com/nguyengg/xtar/internal"
)

type List struct {
	Format  string `short:"F" long:"format" choice:"auto" choice:"none" choice:"gzip" choice:"zstd" choice:"xz" choice:"lz4" default:"auto" description:"compression format of the archives"`
	Verbose bool   `short:"v" long:"verbose" description:"also print mode, size, and modification time of each entry"`
	Args    struct {
		Files []flags.Filename `positional-arg-name:"archive" description:"the archives to be listed" required:"yes"`
	} `positional-args:"yes"`

	stdout io.Writer
}

func (c *List) Execute(args []string) (err error) {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	if c.stdout == nil {
		c.stdout = os.Stdout
	}

	failed := 0
	n := len(c.Args.Files)
	for i, file := range c.Args.Files {
		if n > 1 {
			if i > 0 {
				_, _ = fmt.Fprintln(c.stdout)
			}
			_, _ = fmt.Fprintf(c.stdout, "%s:\n", file)
		}

		if err = c.list(ctx, string(file)); err == nil {
			continue
		}

		if errors.Is(err, context.Canceled) {
			return err
		}

		internal.NewLogger(i, n, file).Printf("list error: %v", err)
		failed++
	}

	if failed != 0 {
		log.Printf("failed to list %d/%d archives", failed, n)
		return fmt.Errorf("failed to list %d/%d archives", failed, n)
	}

	return nil
}

func (c *List) list(ctx context.Context, name string) error {
	optFns, err := codecOptions(c.Format)
	if err != nil {
		return err
	}

	entries, err := xtar.ListEntries(ctx, name, optFns...)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if c.Verbose {
			_, _ = fmt.Fprintf(c.stdout, "%s %10s %s %s\n", e.FileMode(), humanize.IBytes(uint64(e.Size)), e.ModTime.Format("2006-01-02 15:04"), e.DisplayName())
			continue
		}

		_, _ = fmt.Fprintln(c.stdout, e.DisplayName())
	}

	return nil
}
