package cmdline

import "fmt"

// TokenStream is a read cursor over the argument list. It never indexes past
// the last token: reads beyond the end fail with ErrTruncatedArgument.
type TokenStream struct {
	tokens []string
	pos    int
}

// NewTokenStream returns a cursor positioned before the first token.
func NewTokenStream(tokens []string) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Done reports whether every token has been consumed.
func (s *TokenStream) Done() bool { return s.pos >= len(s.tokens) }

// Pos returns the index of the next unread token.
func (s *TokenStream) Pos() int { return s.pos }

// Peek returns the token offset positions after the cursor without consuming it.
func (s *TokenStream) Peek(offset int) (string, error) {
	i := s.pos + offset
	if offset < 0 || i >= len(s.tokens) {
		return "", fmt.Errorf("no argument at position %d: %w", i, ErrTruncatedArgument)
	}
	return s.tokens[i], nil
}

// Next consumes and returns the token under the cursor.
func (s *TokenStream) Next() (string, error) {
	tok, err := s.Peek(0)
	if err != nil {
		return "", err
	}
	s.pos++
	return tok, nil
}
