package main

import (
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"go.llib.dev/conslist/internal/bench"
	"go.llib.dev/conslist/internal/history"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
	"gopkg.in/yaml.v3"
)

func TestCommand(t *testing.T) {
	logger.Testing(t)
	s := testcase.NewSpec(t)

	terminal := testcase.LetValue(s, false)
	s.Before(func(t *testcase.T) {
		og := stdoutIsTerminal
		t.Cleanup(func() { stdoutIsTerminal = og })
		stdoutIsTerminal = func() bool { return terminal.Get(t) }
	})

	args := testcase.LetValue(s, []string{"-length", "100"})
	response := let.Var(s, func(t *testcase.T) *cli.ResponseRecorder {
		return &cli.ResponseRecorder{}
	})
	act := let.Act0(func(t *testcase.T) {
		cli.ServeCLI(Command{}, response.Get(t), &cli.Request{Args: args.Get(t)})
	})

	decode := func(t *testcase.T) []bench.Result {
		var out []bench.Result
		dec := json.NewDecoder(&response.Get(t).Out)
		for dec.More() {
			var res bench.Result
			assert.NoError(t, dec.Decode(&res))
			out = append(out, res)
		}
		return out
	}

	s.Then("a single json result is written when stdout is not a terminal", func(t *testcase.T) {
		act(t)
		assert.Equal(t, cli.ExitCodeOK, response.Get(t).Code)
		got := decode(t)
		assert.Equal(t, 1, len(got))
		assert.Equal(t, 100*101, got[0].Sum)
		assert.Equal(t, bench.Iter, got[0].Traversal)
	})

	s.When("stdout is a terminal", func(s *testcase.Spec) {
		terminal.LetValue(s, true)

		s.Then("the result is written as text", func(t *testcase.T) {
			act(t)
			assert.Equal(t, cli.ExitCodeOK, response.Get(t).Code)
			assert.Contain(t, response.Get(t).Out.String(), "res: 10100 time: ")
		})
	})

	s.When("the text format is requested", func(s *testcase.Spec) {
		args.LetValue(s, []string{"-length", "3", "-t", "borrow-coro", "-format", "text"})

		s.Then("the text result is written", func(t *testcase.T) {
			act(t)
			assert.Contain(t, response.Get(t).Out.String(), "res: 12 time: ")
		})
	})

	s.When("runs are repeated with prefetch", func(s *testcase.Spec) {
		args.LetValue(s, []string{"-n", "50", "-traversal", "stream", "-prefetch", "-locality", "1", "-repeat", "3", "-format", "json"})

		s.Then("every run is reported", func(t *testcase.T) {
			act(t)
			got := decode(t)
			assert.Equal(t, 3, len(got))
			for _, res := range got {
				assert.Equal(t, 50*51, res.Sum)
				assert.Equal(t, bench.Stream, res.Traversal)
				assert.True(t, res.Prefetch)
				assert.Equal(t, "low", res.Locality)
			}
		})
	})

	s.When("the yaml format is requested", func(s *testcase.Spec) {
		args.LetValue(s, []string{"-length", "10", "-t", "coro", "-repeat", "2", "-format", "yaml"})

		s.Then("every run is written as a yaml document", func(t *testcase.T) {
			act(t)
			assert.Equal(t, cli.ExitCodeOK, response.Get(t).Code)
			dec := yaml.NewDecoder(&response.Get(t).Out)
			var n int
			for {
				var doc map[string]any
				if err := dec.Decode(&doc); err == io.EOF {
					break
				} else {
					assert.NoError(t, err)
				}
				n++
				assert.Equal[any](t, 110, doc["sum"])
				assert.Equal[any](t, "coro", doc["traversal"])
			}
			assert.Equal(t, 2, n)
		})
	})

	s.When("a history file is given", func(s *testcase.Spec) {
		path := let.Var(s, func(t *testcase.T) string {
			return filepath.Join(t.TempDir(), "history.db")
		})
		args.Let(s, func(t *testcase.T) []string {
			return []string{"-length", "20", "-t", "borrow-stream", "-repeat", "2", "-history", path.Get(t)}
		})

		s.Then("every run is recorded", func(t *testcase.T) {
			act(t)
			assert.Equal(t, cli.ExitCodeOK, response.Get(t).Code)

			st, err := history.Open(path.Get(t))
			assert.NoError(t, err)
			defer st.Close()
			recs, err := st.Last(10, "")
			assert.NoError(t, err)
			assert.Equal(t, 2, len(recs))
			for _, rec := range recs {
				assert.Equal(t, bench.BorrowStream, rec.Traversal)
				assert.Equal(t, 20*21, rec.Sum)
			}
		})
	})

	s.When("the traversal is not one of the known families", func(s *testcase.Spec) {
		args.LetValue(s, []string{"-traversal", "recursive"})

		s.Then("it fails as a bad request", func(t *testcase.T) {
			act(t)
			assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
		})
	})

	s.When("the length is not positive", func(s *testcase.Spec) {
		args.LetValue(s, []string{"-length", "0"})

		s.Then("it fails as a bad request", func(t *testcase.T) {
			act(t)
			assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
		})
	})

	s.When("the locality is out of range for a prefetching run", func(s *testcase.Spec) {
		args.LetValue(s, []string{"-length", "10", "-prefetch", "-locality", "7"})

		s.Then("it fails as a bad request", func(t *testcase.T) {
			act(t)
			assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
		})
	})

	s.When("repeat is not positive", func(s *testcase.Spec) {
		args.LetValue(s, []string{"-length", "10", "-repeat", "0"})

		s.Then("it fails as a bad request", func(t *testcase.T) {
			act(t)
			assert.Equal(t, cli.ExitCodeBadRequest, response.Get(t).Code)
		})
	})
}
