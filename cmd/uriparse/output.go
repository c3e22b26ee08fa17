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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"braces.dev/errtrace"
)

// resultWriter prints results either as JSON lines or as aligned text
// blocks separated by blank lines.
type resultWriter struct {
	enc     *json.Encoder
	tw      *tabwriter.Writer
	written bool
}

func newWriter(w io.Writer, asJSON bool) *resultWriter {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return &resultWriter{enc: enc}
	}
	return &resultWriter{tw: tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)}
}

func (w *resultWriter) write(res result) error {
	if w.enc != nil {
		return errtrace.Wrap(w.enc.Encode(res))
	}

	if w.written {
		fmt.Fprintln(w.tw)
	}
	w.written = true

	w.line("input", res.Input)
	w.line("valid", fmt.Sprint(res.Valid))
	for _, f := range []struct{ name, value string }{
		{"error", res.Error},
		{"href", res.Href},
		{"protocol", res.Protocol},
		{"origin", res.Origin},
		{"scheme", res.Scheme},
		{"user", res.User},
		{"password", res.Password},
		{"host", res.Host},
		{"hostname", res.Hostname},
		{"ascii_hostname", res.ASCIIHostname},
		{"port", res.Port},
		{"path", res.Path},
		{"pathname", res.Pathname},
		{"query", res.Query},
		{"search", res.Search},
		{"fragment", res.Fragment},
		{"hash", res.Hash},
	} {
		if f.value != "" {
			w.line(f.name, f.value)
		}
	}
	if res.HasAuthority {
		w.line("has_authority", "true")
	}
	return nil
}

func (w *resultWriter) line(name, value string) {
	fmt.Fprintf(w.tw, "%s:\t%s\n", name, value)
}

func (w *resultWriter) flush() error {
	if w.tw == nil {
		return nil
	}
	return errtrace.Wrap(w.tw.Flush())
}
