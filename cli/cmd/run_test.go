package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunRun(t *testing.T) {
	t.Setenv(PathEnv, "")

	lib := t.TempDir()
	writeScript(t, lib, "sq.pc", "def sq x\nbegin\n* x x\nend\n")

	tests := []struct {
		name     string
		run      Run
		stdin    string
		tty      bool
		wantOut  string
		wantErr  string
		wantEval bool
		wantIs   error
	}{
		{
			name:    "expr",
			run:     Run{Expr: []string{"var x 5; = x * 2 x"}},
			wantOut: "5\n10\n",
		},
		{
			name:    "expr_order",
			run:     Run{Expr: []string{"+ 1 1", "* 3 3"}},
			wantOut: "2\n9\n",
		},
		{
			name:    "batch",
			run:     Run{Expr: []string{"+ 1 2", "xprint 7"}, Batch: true},
			wantOut: "7\n",
		},
		{
			name:     "failure_continues",
			run:      Run{Expr: []string{"+ nope 1", "+ 1 1"}},
			wantOut:  "2\n",
			wantErr:  "EvalError: ",
			wantEval: true,
		},
		{
			name:    "file_then_expr",
			run:     Run{File: []string{"sq.pc"}, Expr: []string{"call sq 6 cend"}},
			wantOut: "true\n36\n",
		},
		{
			name:   "file_not_found",
			run:    Run{File: []string{"missing.pc"}},
			wantIs: ErrScriptNotFound,
		},
		{
			name:    "pipe",
			stdin:   "+ 1 1\n:quit\n+ 2 2\n",
			wantOut: "2\n",
		},
		{
			name:    "interactive_pipe",
			run:     Run{Expr: []string{"var a 4"}, Interactive: true},
			stdin:   "* a a\n",
			wantOut: "4\n16\n",
		},
		{
			name:     "pipe_failure",
			stdin:    "bogus\n+ 2 2\n",
			wantOut:  "4\n",
			wantErr:  "EvalError: ",
			wantEval: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			r := tt.run
			r.stdin = strings.NewReader(tt.stdin)
			r.stdout = &stdout
			r.stderr = &stderr
			r.tty = func() bool { return tt.tty }

			ctx := WithSearchPath(context.Background(), []string{lib})

			err := r.Run(ctx)

			switch {
			case tt.wantIs != nil:
				if !errors.Is(err, tt.wantIs) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantIs)
				}
			case tt.wantEval:
				if !IsEvaluation(err) {
					t.Fatalf("Run() error = %v, want evaluation failure", err)
				}
			case err != nil:
				t.Fatalf("Run() error = %v", err)
			}

			if got := stdout.String(); got != tt.wantOut {
				t.Errorf("stdout = %q, want %q", got, tt.wantOut)
			}

			if got := stderr.String(); !strings.HasPrefix(got, tt.wantErr) ||
				(tt.wantErr == "") != (got == "") {
				t.Errorf("stderr = %q, want prefix %q", got, tt.wantErr)
			}
		})
	}
}

func TestIsEvaluation(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	if !IsEvaluation(ErrEvaluation.Wrap(cause)) {
		t.Error("wrapped evaluation error not recognized")
	}

	if IsEvaluation(ErrReadScript.Wrap(cause)) {
		t.Error("read error recognized as evaluation error")
	}

	if IsEvaluation(nil) {
		t.Error("nil recognized as evaluation error")
	}
}
