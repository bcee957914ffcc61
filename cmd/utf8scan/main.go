// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// utf8scan validates files as UTF-8 and reports the number of code points
// in each one.
//
// Usage:
//
//	utf8scan [-surrogates] [-index N] [-workers N] [-q] FILE...
//
// A FILE of "-" reads standard input. The exit status is 1 if any file is
// not valid UTF-8 or could not be read.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/slices"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/charlievieth/utf8scan"
)

type options struct {
	conf    utf8scan.Config
	index   int
	workers int
	quiet   bool
}

type result struct {
	name   string
	runes  int
	size   int
	offset int // byte offset of options.index
	err    error
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func scan(opts *options, name string, stdin io.Reader) *result {
	res := &result{name: name, runes: utf8scan.Invalid, offset: utf8scan.Invalid}
	data, err := readInput(name, stdin)
	if err != nil {
		res.err = err
		return res
	}
	res.size = len(data)
	res.runes = opts.conf.Count(data)
	if res.runes == utf8scan.Invalid {
		res.err = fmt.Errorf("%s: %w", name, utf8scan.ErrInvalidUTF8)
		return res
	}
	if opts.index >= 0 {
		var tab *utf8scan.Index
		res.offset = utf8scan.Locate(data, opts.index, res.runes, &tab)
		utf8scan.FreeIndex(&tab)
	}
	return res
}

func newProgressBar(w io.Writer, n int) *progressbar.ProgressBar {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return progressbar.Default(int64(n), "scanning")
	}
	return progressbar.DefaultSilent(int64(n), "scanning")
}

// scanAll scans names with opts.workers goroutines and returns the results
// in the order of names.
func scanAll(opts *options, names []string, stdin io.Reader, stderr io.Writer) []*result {
	results := make([]*result, len(names))
	bar := newProgressBar(stderr, len(names))
	defer bar.Close()

	workers := opts.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(names) {
		workers = len(names)
	}

	ch := make(chan int, workers*2)
	go func() {
		for i := range names {
			ch <- i
		}
		close(ch)
	}()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range ch {
				results[i] = scan(opts, names[i], stdin)
				_ = bar.Add(1)
			}
		}()
	}
	wg.Wait()
	return results
}

// uniqueNames removes repeated file names keeping the first occurrence.
func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "utf8scan: ", 0)

	flags := flag.NewFlagSet("utf8scan", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: utf8scan [OPTIONS] FILE...\n\n")
		flags.PrintDefaults()
	}
	var opts options
	flags.BoolVar(&opts.conf.AllowSurrogates, "surrogates", false,
		"Accept encoded UTF-16 surrogate halves (U+D800..U+DFFF).")
	flags.IntVar(&opts.index, "index", -1,
		"Print the byte offset of the code point at this index.")
	flags.IntVar(&opts.workers, "workers", runtime.GOMAXPROCS(0),
		"Number of files to scan in parallel.")
	flags.BoolVar(&opts.quiet, "q", false,
		"Do not print results, only set the exit status.")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	names := uniqueNames(flags.Args())
	if len(names) == 0 {
		flags.Usage()
		return 2
	}

	p := message.NewPrinter(language.English)
	exit := 0
	for _, res := range scanAll(&opts, names, stdin, stderr) {
		switch {
		case errors.Is(res.err, utf8scan.ErrInvalidUTF8):
			exit = 1
			if !opts.quiet {
				fmt.Fprintf(stdout, "%s: invalid UTF-8\n", res.name)
			}
		case res.err != nil:
			exit = 1
			logger.Printf("%s: %v", res.name, res.err)
		case opts.quiet:
		default:
			p.Fprintf(stdout, "%s: %d runes, %d bytes\n", res.name, res.runes, res.size)
			if opts.index < 0 {
				break
			}
			if res.offset == utf8scan.Invalid {
				p.Fprintf(stdout, "%s: rune %d: out of range\n", res.name, opts.index)
			} else {
				p.Fprintf(stdout, "%s: rune %d at byte %d\n", res.name, opts.index, res.offset)
			}
		}
	}
	return exit
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
