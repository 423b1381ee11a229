// Package shell runs urn queries: one-shot from a string or file, or
// interactively one statement at a time.
package shell

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gitrdm/urn/internal/config"
	"github.com/gitrdm/urn/internal/render"
	"github.com/gitrdm/urn/pkg/query"
	"github.com/gitrdm/urn/pkg/urn"
)

// Session evaluates query text with one evaluator and one set of default
// output options.
type Session struct {
	eval   *urn.Evaluator
	output render.Options
	log    logrus.FieldLogger
}

// NewSession creates a Session from cfg. color reports whether ANSI styling
// should be used; the caller resolves cfg.Output.Color against the
// terminal.
func NewSession(cfg *config.Config, log logrus.FieldLogger, color bool) (*Session, error) {
	eval, err := urn.NewEvaluator(
		urn.WithLogger(log),
		urn.WithBinomialCacheSize(cfg.Engine.BinomialCacheSize),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating evaluator")
	}
	return &Session{
		eval: eval,
		output: render.Options{
			Format:    cfg.Output.Format,
			Rational:  cfg.Output.Rational,
			Precision: cfg.Output.Precision,
			Commas:    cfg.Output.Commas,
			Color:     color,
		},
		log: log,
	}, nil
}

// Exec parses every statement in src, then evaluates and renders them to w
// in order, separated by blank lines. Parsing completes before anything is
// evaluated, so a syntax error produces no output.
func (s *Session) Exec(w io.Writer, src string) error {
	stmts, err := query.ParseAll(src)
	if err != nil {
		return err
	}
	for i, stmt := range stmts {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := s.run(w, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) run(w io.Writer, stmt *query.Statement) error {
	req := stmt.Request
	if err := req.Finalize(); err != nil {
		return err
	}
	s.log.WithField("request", req.String()).Debug("evaluating")
	res, err := s.eval.Evaluate(req)
	if err != nil {
		return err
	}
	return render.Write(w, req, res, s.options(stmt.Output))
}

// options applies the statement's own output clauses over the defaults.
func (s *Session) options(out query.Output) render.Options {
	opts := s.output
	if out.Format != "" {
		opts.Format = out.Format
	}
	if out.Rational != nil {
		opts.Rational = *out.Rational
	}
	return opts
}
