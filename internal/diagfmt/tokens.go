package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"compilab/internal/source"
	"compilab/internal/token"
)

type TokenOutput struct {
	Kind     string      `json:"kind" msgpack:"kind"`
	Category string      `json:"category" msgpack:"category"`
	Text     string      `json:"text,omitempty" msgpack:"text,omitempty"`
	Span     source.Span `json:"span" msgpack:"span"`
	Row      int         `json:"row" msgpack:"row"`
	Column   int         `json:"column" msgpack:"column"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, file *source.File) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-12s %-11s", i+1, tok.Kind.String(), tok.Kind.Category()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if file != nil {
			startPos, endPos := file.Resolve(tok.Span)
			fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		} else {
			fmt.Fprintf(w, " at %d:%d", tok.Row, tok.Col)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// BuildTokensOutput converts tokens for JSON or msgpack encoding.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Kind:     tok.Kind.String(),
			Category: tok.Kind.Category(),
			Text:     tok.Text,
			Span:     tok.Span,
			Row:      tok.Row,
			Column:   tok.Col,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens))
}
