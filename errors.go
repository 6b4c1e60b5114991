package diffscope

import "fmt"

// UnsupportedLanguageError indicates a file extension outside the enabled
// language registry. The analyzer fails closed rather than guessing.
type UnsupportedLanguageError struct {
	Ext string
}

func (e *UnsupportedLanguageError) Error() string {
	if e.Ext == "" {
		return "unsupported language: file has no extension"
	}
	return fmt.Sprintf("unsupported language: %s", e.Ext)
}

// FileNotFoundError indicates a file mentioned in the diff is absent from
// the working tree.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// ParseFailedError indicates the grammar could not produce a tree for a file.
type ParseFailedError struct {
	Path   string
	Reason string
}

func (e *ParseFailedError) Error() string {
	return fmt.Sprintf("parse failed for %s: %s", e.Path, e.Reason)
}

// QueryCompileError indicates a structural query did not compile against its
// grammar. This is a configuration error and aborts analyzer construction.
type QueryCompileError struct {
	Language string
	Reason   string
}

func (e *QueryCompileError) Error() string {
	return fmt.Sprintf("query compilation failed for %s: %s", e.Language, e.Reason)
}
