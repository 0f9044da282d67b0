package source

type (
	// FileID uniquely identifies a source text within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source text.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the text was added from memory (a cell, a flag, stdin).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	FileHadBOM
	FileNormalizedCRLF
	// FileNormalizedNFKC marks texts whose compatibility characters were folded.
	FileNormalizedNFKC
)

// File captures metadata and content for a single formula or fixture.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source text.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
