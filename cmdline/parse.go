// Package cmdline turns the command line into an Invocation: input and
// output mesh paths plus the ordered list of fixed-vertex constraints.
//
// Two flags define constraints:
//
//	--fixedPoint, -p x,y,z
//	--fixedTextureCoords, -c u1 v1 u2 v2 ...   (one token per value)
//	--fixedTextureCoords, -c "u1 v1 u2 v2 ..." (a single token)
//
// Texture coordinates are paired, in order, with the fixed points collected
// before the flag. Bare tokens are the input path, then the output path.
package cmdline

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures Parse.
type Options struct {
	// EligibleLimit caps the constraints forwarded to flattening (default 2).
	EligibleLimit int
	// Stdout receives progress lines; nil discards them.
	Stdout io.Writer
	Logger zerolog.Logger
}

// Invocation is the normalized command line.
type Invocation struct {
	Input       string
	Output      string
	Preview     string
	Report      string
	Verbose     bool
	Constraints *Collector
}

// Validate checks that the invocation can drive a run.
func (inv *Invocation) Validate() error {
	if inv.Output == "" {
		return ErrMissingOutput
	}
	return nil
}

type parser struct {
	stream *TokenStream
	inv    *Invocation
	out    io.Writer
	log    zerolog.Logger
}

// Verbose reports whether args ask for debug output. It lets callers set up
// logging before Parse runs.
func Verbose(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "--verbose" || a == "-v"
	})
}

// Parse scans args (without the program name) left to right.
func Parse(args []string, opts Options) (*Invocation, error) {
	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}
	p := &parser{
		stream: NewTokenStream(args),
		inv:    &Invocation{Constraints: NewCollector(opts.EligibleLimit)},
		out:    out,
		log:    opts.Logger,
	}

	for !p.stream.Done() {
		tok, err := p.stream.Next()
		if err != nil {
			return nil, err
		}
		switch tok {
		case "--fixedPoint", "-p":
			err = p.fixedPoint(tok)
		case "--fixedTextureCoords", "-c":
			err = p.fixedTextureCoords(tok)
		case "--preview":
			p.inv.Preview, err = p.value(tok)
		case "--report":
			p.inv.Report, err = p.value(tok)
		case "--verbose", "-v":
			p.inv.Verbose = true
		default:
			p.path(tok)
		}
		if err != nil {
			return nil, err
		}
	}
	return p.inv, nil
}

func (p *parser) value(flag string) (string, error) {
	tok, err := p.stream.Next()
	if err != nil {
		return "", fmt.Errorf("%s expects a value: %w", flag, err)
	}
	return tok, nil
}

func (p *parser) path(tok string) {
	switch {
	case p.inv.Input == "":
		p.inv.Input = tok
	case p.inv.Output == "":
		p.inv.Output = tok
	default:
		p.log.Warn().Str("previous", p.inv.Output).Str("path", tok).Msg("extra argument replaces output path")
		p.inv.Output = tok
	}
}

func (p *parser) fixedPoint(flag string) error {
	tok, err := p.value(flag)
	if err != nil {
		return err
	}
	fv, warnings := ParsePosition(tok)
	if strings.Count(tok, ",") < 2 {
		p.log.Warn().Str("flag", flag).Str("argument", tok).Msg("fixed point has fewer than three coordinates, missing ones are 0")
	}
	p.warn(flag, warnings)

	c := p.inv.Constraints
	c.Add(fv)
	if c.Len() > c.Limit() {
		p.log.Debug().Str("position", tok).Int("limit", c.Limit()).Msg("fixed vertex kept but not used for flattening")
	}
	return nil
}

func (p *parser) warn(flag string, warnings []Warning) {
	for i := range warnings {
		warnings[i].Flag = flag
		p.log.Warn().
			Str("flag", flag).
			Str("argument", warnings[i].Token).
			Int("field", warnings[i].Field).
			Msg("cannot parse number, using 0")
	}
	p.inv.Constraints.warn(warnings...)
}
