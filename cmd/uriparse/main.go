/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command uriparse parses URIs and prints their components.
//
// Usage:
//
//	uriparse [flags] [uri ...]
//
// With no arguments, one URI is read per line from standard input and blank
// lines are skipped. The exit status is 1 when any input is invalid and 2 on
// usage errors.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/text/unicode/norm"

	"github.com/jplu/uriparse/internal/log"
	"github.com/jplu/uriparse/uri"
	"github.com/jplu/uriparse/weburl"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage error")

// options are the parsed command line flags.
type options struct {
	keepSchemeDelimiter bool
	keepQueryPrefix     bool
	keepFragmentPrefix  bool
	url                 bool
	nfc                 bool
	idna                bool
	json                bool
	dev                 bool
	verbose             bool
}

// result is one printed parse result. Fields that do not apply to the
// selected mode are omitted from JSON output.
type result struct {
	Input         string `json:"input"`
	Valid         bool   `json:"valid"`
	Error         string `json:"error,omitempty"`
	Scheme        string `json:"scheme,omitempty"`
	User          string `json:"user,omitempty"`
	Password      string `json:"password,omitempty"`
	Host          string `json:"host,omitempty"`
	Port          string `json:"port,omitempty"`
	Path          string `json:"path,omitempty"`
	Query         string `json:"query,omitempty"`
	Fragment      string `json:"fragment,omitempty"`
	HasAuthority  bool   `json:"has_authority,omitempty"`
	Href          string `json:"href,omitempty"`
	Protocol      string `json:"protocol,omitempty"`
	Origin        string `json:"origin,omitempty"`
	Hostname      string `json:"hostname,omitempty"`
	Pathname      string `json:"pathname,omitempty"`
	Search        string `json:"search,omitempty"`
	Hash          string `json:"hash,omitempty"`
	ASCIIHostname string `json:"ascii_hostname,omitempty"`
}

func main() {
	code, err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "Encountered error(s): %s\n", err)
	}
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var opts options
	fs := flag.NewFlagSet("uriparse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.keepSchemeDelimiter, "keep-scheme-delimiter", false, "Keep the trailing ':' in the scheme.")
	fs.BoolVar(&opts.keepQueryPrefix, "keep-query-prefix", false, "Keep the leading '?' in the query.")
	fs.BoolVar(&opts.keepFragmentPrefix, "keep-fragment-prefix", false, "Keep the leading '#' in the fragment.")
	fs.BoolVar(&opts.url, "url", false, "Print URL projections (href, protocol, origin, ...) instead of raw components.")
	fs.BoolVar(&opts.nfc, "nfc", false, "Normalize inputs to Unicode NFC before parsing.")
	fs.BoolVar(&opts.idna, "idna", false, "Print the IDNA ASCII form of the hostname. Requires -url.")
	fs.BoolVar(&opts.json, "json", false, "Print one JSON object per input.")
	fs.BoolVar(&opts.dev, "dev", false, "Use the developer log format.")
	fs.BoolVar(&opts.verbose, "v", false, "Log every parser state transition.")
	if err := fs.Parse(args); err != nil {
		return opts, nil, errtrace.Wrap(errors.Join(errUsage, err))
	}
	if opts.idna && !opts.url {
		fmt.Fprintln(stderr, "-idna requires -url")
		return opts, nil, errtrace.Wrap(errUsage)
	}
	return opts, fs.Args(), nil
}

func newLogger(opts options, stderr io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	if opts.dev {
		return log.NewDev(stderr, level)
	}
	return log.NewConsole(stderr, level)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	opts, inputs, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage, err
	}
	logger := newLogger(opts, stderr)

	p := &uri.Parser{
		Config: uri.Config{
			KeepSchemeDelimiter: opts.keepSchemeDelimiter,
			KeepQueryPrefix:     opts.keepQueryPrefix,
			KeepFragmentPrefix:  opts.keepFragmentPrefix,
		},
		Logger: logger,
	}

	next := argsSource(inputs)
	if len(inputs) == 0 {
		next = linesSource(stdin)
	}

	w := newWriter(stdout, opts.json)
	code := exitOK
	for {
		input, ok, err := next()
		if err != nil {
			return exitUsage, errtrace.Wrap(err)
		}
		if !ok {
			break
		}
		if opts.nfc {
			input = norm.NFC.String(input)
		}

		var res result
		if opts.url {
			res = urlResult(input, opts.idna)
		} else {
			res = componentsResult(p.Parse(input))
		}
		if !res.Valid {
			logger.LogAttrs(context.Background(), slog.LevelWarn, "invalid URI",
				slog.String("input", input), slog.String("error", res.Error))
			code = exitInvalid
		}
		if err := w.write(res); err != nil {
			return exitUsage, errtrace.Wrap(err)
		}
	}
	return code, errtrace.Wrap(w.flush())
}

// argsSource yields the command line arguments.
func argsSource(args []string) func() (string, bool, error) {
	return func() (string, bool, error) {
		if len(args) == 0 {
			return "", false, nil
		}
		s := args[0]
		args = args[1:]
		return s, true, nil
	}
}

// linesSource yields the non-blank lines of r.
func linesSource(r io.Reader) func() (string, bool, error) {
	sc := bufio.NewScanner(r)
	return func() (string, bool, error) {
		for sc.Scan() {
			if line := sc.Text(); strings.TrimSpace(line) != "" {
				return line, true, nil
			}
		}
		return "", false, errtrace.Wrap(sc.Err())
	}
}

func componentsResult(c uri.Components) result {
	res := result{Input: c.URI, Valid: c.Valid}
	if !c.Valid {
		res.Error = c.Err.Error()
		return res
	}
	res.Scheme = c.Scheme
	res.User = c.User
	res.Password = c.Password
	res.Host = c.Host
	res.Port = c.Port
	res.Path = c.Path
	res.Query = c.Query
	res.Fragment = c.Fragment
	res.HasAuthority = c.HasAuthority
	return res
}

func urlResult(input string, withIDNA bool) result {
	u := weburl.New(input)
	res := result{Input: input, Valid: u.Valid()}
	if !u.Valid() {
		res.Error = u.Err().Error()
		return res
	}
	res.Href = u.Href()
	res.Protocol = u.Protocol()
	res.Origin = u.Origin()
	res.User = u.Username()
	res.Password = u.Password()
	res.Host = u.Host()
	res.Hostname = u.Hostname()
	res.Port = u.Port()
	res.Pathname = u.Pathname()
	res.Search = u.Search()
	res.Hash = u.Hash()
	if withIDNA {
		if ascii, err := u.ASCIIHostname(); err == nil {
			res.ASCIIHostname = ascii
		} else {
			res.Error = err.Error()
		}
	}
	return res
}
