package source

// FileFlags encodes metadata about a source file.
type FileFlags uint8 // метаданные

const (
	// FileVirtual indicates the file was added from memory (editor buffer, test, stdin).
	FileVirtual FileFlags = 1 << iota // не с диска
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures content and the line index of a single source text.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n' bytes
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
