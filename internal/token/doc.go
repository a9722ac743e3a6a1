// Package token defines lexical token kinds for the compilab language.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Comments and whitespace never appear in the token stream.
//   - The lexer always terminates the stream with a single EOF token.
package token
