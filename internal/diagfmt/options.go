package diagfmt

import (
	"fmt"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int // строк контекста до и после, 0 - только сама строка
	PathMode  PathMode
	BaseDir   string
	Width     int // максимальная ширина строки исходника, 0 - не ограничено
	ShowNotes bool
	ShowStage bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}

// Format names an output encoding accepted by the CLI.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates name against the allowed formats.
func ParseFormat(name string, allowed ...Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		f = FormatPretty
	}
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		if a == f {
			return f, nil
		}
		names = append(names, string(a))
	}
	return "", fmt.Errorf("unsupported format %q (expected %s)", name, strings.Join(names, "|"))
}
