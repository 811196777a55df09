package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/poiesic/hyperfind/core"
)

// atomTypeNames maps head symbols to atom types. The names are exactly what
// core.AtomType.String renders, so parsing round-trips the log form.
var atomTypeNames = map[string]core.AtomType{
	"Node":          core.TypeNode,
	"Variable":      core.TypeVariable,
	"Glob":          core.TypeGlob,
	"Link":          core.TypeLink,
	"VariableList":  core.TypeVariableList,
	"TypedVariable": core.TypeTypedVariable,
	"Lambda":        core.TypeLambda,
	"Scope":         core.TypeScope,
	"Quote":         core.TypeQuote,
}

// ParseAtom parses a single s-expression atom, e.g.
//
//	(Link (Node "Likes") (Variable "$x") (Node "pizza"))
//
// Trailing input after the expression is an error; use a Reader for streams.
func ParseAtom(input string) (*core.Atom, error) {
	r := NewReader(strings.NewReader(input))
	atom, err := r.Next()
	if err != nil {
		return nil, err
	}
	if _, err := r.Next(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing input after expression", ErrSyntax)
	}
	return atom, nil
}

// Reader parses a stream of whitespace-separated s-expression atoms.
// Lines starting with ';' are comments.
type Reader struct {
	src  io.RuneScanner
	line int
}

// NewReader creates a Reader over src. If src is not an io.RuneScanner it is
// wrapped in a buffered one.
func NewReader(src io.Reader) *Reader {
	rs, ok := src.(io.RuneScanner)
	if !ok {
		rs = bufio.NewReader(src)
	}
	return &Reader{src: rs, line: 1}
}

// Next parses and returns the next atom, or io.EOF when the stream is
// exhausted.
func (r *Reader) Next() (*core.Atom, error) {
	if err := r.skipSpace(); err != nil {
		return nil, err
	}
	return r.readAtom()
}

func (r *Reader) readAtom() (*core.Atom, error) {
	ch, _, err := r.src.ReadRune()
	if err != nil {
		return nil, err
	}
	if ch != '(' {
		return nil, fmt.Errorf("%w: line %d: expected '(', got %q", ErrSyntax, r.line, ch)
	}

	head, err := r.readSymbol()
	if err != nil {
		return nil, err
	}
	atomType, ok := atomTypeNames[head]
	if !ok {
		return nil, fmt.Errorf("%w: line %d: %q", ErrUnknownAtomType, r.line, head)
	}

	if atomType.IsNode() {
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		if err := r.expectClose(); err != nil {
			return nil, err
		}
		return core.NewNode(atomType, name), nil
	}

	var out []*core.Atom
	for {
		if err := r.skipSpace(); err != nil {
			return nil, r.unexpectedEOF(err)
		}
		ch, _, err := r.src.ReadRune()
		if err != nil {
			return nil, r.unexpectedEOF(err)
		}
		if ch == ')' {
			return core.NewLink(atomType, out...), nil
		}
		if err := r.src.UnreadRune(); err != nil {
			return nil, err
		}
		child, err := r.readAtom()
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
}

func (r *Reader) readSymbol() (string, error) {
	var sb strings.Builder
	for {
		ch, _, err := r.src.ReadRune()
		if err != nil {
			return "", r.unexpectedEOF(err)
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			if err := r.src.UnreadRune(); err != nil {
				return "", err
			}
			if sb.Len() == 0 {
				return "", fmt.Errorf("%w: line %d: missing head symbol", ErrSyntax, r.line)
			}
			return sb.String(), nil
		}
		sb.WriteRune(ch)
	}
}

func (r *Reader) readString() (string, error) {
	if err := r.skipSpace(); err != nil {
		return "", r.unexpectedEOF(err)
	}
	ch, _, err := r.src.ReadRune()
	if err != nil {
		return "", r.unexpectedEOF(err)
	}
	if ch != '"' {
		return "", fmt.Errorf("%w: line %d: expected string, got %q", ErrSyntax, r.line, ch)
	}

	var sb strings.Builder
	for {
		ch, _, err := r.src.ReadRune()
		if err != nil {
			return "", r.unexpectedEOF(err)
		}
		switch ch {
		case '"':
			return sb.String(), nil
		case '\\':
			esc, _, err := r.src.ReadRune()
			if err != nil {
				return "", r.unexpectedEOF(err)
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteRune(esc)
			}
		case '\n':
			return "", fmt.Errorf("%w: line %d: unterminated string", ErrSyntax, r.line)
		default:
			sb.WriteRune(ch)
		}
	}
}

func (r *Reader) expectClose() error {
	if err := r.skipSpace(); err != nil {
		return r.unexpectedEOF(err)
	}
	ch, _, err := r.src.ReadRune()
	if err != nil {
		return r.unexpectedEOF(err)
	}
	if ch != ')' {
		return fmt.Errorf("%w: line %d: expected ')', got %q", ErrSyntax, r.line, ch)
	}
	return nil
}

// skipSpace consumes whitespace and ';' line comments.
func (r *Reader) skipSpace() error {
	for {
		ch, _, err := r.src.ReadRune()
		if err != nil {
			return err
		}
		if ch == '\n' {
			r.line++
			continue
		}
		if unicode.IsSpace(ch) {
			continue
		}
		if ch == ';' {
			for {
				ch, _, err := r.src.ReadRune()
				if err != nil {
					return err
				}
				if ch == '\n' {
					r.line++
					break
				}
			}
			continue
		}
		return r.src.UnreadRune()
	}
}

func (r *Reader) unexpectedEOF(err error) error {
	if err == io.EOF {
		return fmt.Errorf("%w: line %d: unexpected end of input", ErrSyntax, r.line)
	}
	return err
}
