package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	errs "github.com/matzehuels/cargoauthors/pkg/errors"
)

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "single",
			err:  errs.New(errs.ErrCodeInvalidFormat, `unknown format "xml"`),
			want: "error: unknown format \"xml\"\n",
		},
		{
			name: "chain",
			err: fmt.Errorf("resolve project: %w",
				errs.Wrap(errs.ErrCodeManifestNotFound, errors.New("no such file or directory"), "could not find `Cargo.toml` in `/tmp/x`")),
			want: "error: resolve project\n" +
				"caused by: could not find `Cargo.toml` in `/tmp/x`\n" +
				"caused by: no such file or directory\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			if buf.String() != tt.want {
				t.Errorf("printError =\n%s\nwant\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestRun_InvalidArgumentEncoding(t *testing.T) {
	err := run(t.Context(), []string{"-p", "bad\xff"})
	if !errs.Is(err, errs.ErrCodeArgumentEncoding) {
		t.Errorf("run error = %v, want ARGUMENT_ENCODING", err)
	}
}
