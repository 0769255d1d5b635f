// Command consbench times the conslist traversal families on a zip-and-fold workload.
//
// Two lists of the same length are built, then walked side by side while the paired elements are summed up.
// Only the traversal is timed.
//
//	consbench -length 1048576 -traversal borrow-coro -prefetch -locality 3
//	consbench -t stream -repeat 5 -history bench.db -format yaml
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.llib.dev/conslist/internal/bench"
	"go.llib.dev/conslist/internal/history"
	"go.llib.dev/conslist/pkg/prefetch"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

func main() {
	ctx := logging.ContextWith(context.Background(), logging.Field("app", "consbench"))
	cli.Main(ctx, Command{})
}

type Command struct {
	Length    int    `flag:"length,n" env:"CONSBENCH_LENGTH" default:"1048576" desc:"number of elements in each list"`
	Traversal string `flag:"traversal,t" env:"CONSBENCH_TRAVERSAL" default:"iter" enum:"iter,borrow-iter,coro,borrow-coro,stream,borrow-stream," desc:"traversal family to measure"`
	Prefetch  bool   `flag:"prefetch" env:"CONSBENCH_PREFETCH" desc:"hint the node after the current position to the cache"`
	Locality  int    `flag:"locality" default:"3" desc:"temporal locality of the prefetch hint, from 0 (none) to 3 (high)"`
	Repeat    int    `flag:"repeat" default:"1" desc:"number of measured runs"`
	Format    string `flag:"format" default:"auto" enum:"auto,text,json,yaml," desc:"output format, auto picks text for terminals and json otherwise"`
	History   string `flag:"history" env:"CONSBENCH_HISTORY" desc:"bbolt file where every result is recorded"`
}

func (cmd Command) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := r.Context()
	if cmd.Repeat < 1 {
		w.ExitCode(cli.ExitCodeBadRequest)
		fmt.Fprintf(w, "repeat must be positive, got %d\n", cmd.Repeat)
		return
	}
	c := bench.Config{
		Traversal: bench.Traversal(cmd.Traversal),
		Length:    cmd.Length,
		Prefetch:  cmd.Prefetch,
		Locality:  prefetch.Locality(cmd.Locality),
	}
	if err := c.Validate(); err != nil {
		w.ExitCode(cli.ExitCodeBadRequest)
		fmt.Fprintf(w, "%s\n", err.Error())
		return
	}
	if c.Prefetch && !prefetch.Supported() {
		logger.Warn(ctx, "prefetch hints are not supported on this platform, the run degrades to a plain traversal")
	}

	var store *history.Store
	if cmd.History != "" {
		st, err := history.Open(cmd.History)
		if err != nil {
			cli.HandleError(w, r, err)
			return
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.Error(ctx, "closing the result history failed", logging.ErrField(err))
			}
		}()
		store = st
	}

	enc := cmd.encoder(w)
	for i := 0; i < cmd.Repeat; i++ {
		res, err := bench.Run(ctx, c)
		if err != nil {
			cli.HandleError(w, r, err)
			return
		}
		logger.Info(ctx, "benchmark run finished",
			logging.Field("run", i+1),
			logging.Field("sum", res.Sum),
			logging.Field("elapsed", res.Elapsed.String()))
		if store != nil {
			seq, err := store.Add(res)
			if err != nil {
				cli.HandleError(w, r, err)
				return
			}
			logger.Debug(ctx, "result recorded", logging.Field("seq", seq))
		}
		if err := enc(res); err != nil {
			cli.HandleError(w, r, err)
			return
		}
	}
}

func (cmd Command) encoder(w cli.Response) func(bench.Result) error {
	format := cmd.Format
	if format == "auto" || format == "" {
		format = "json"
		if stdoutIsTerminal() {
			format = "text"
		}
	}
	switch format {
	case "json":
		e := json.NewEncoder(w)
		return func(res bench.Result) error { return e.Encode(res) }
	case "yaml":
		var n int
		return func(res bench.Result) error {
			data, err := yaml.Marshal(res)
			if err != nil {
				return err
			}
			if n++; 1 < n {
				if _, err := fmt.Fprintln(w, "---"); err != nil {
					return err
				}
			}
			_, err = w.Write(data)
			return err
		}
	default:
		return func(res bench.Result) error {
			_, err := fmt.Fprintln(w, res.String())
			return err
		}
	}
}

var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
