// Package dicerr centralizes the error codes and constructors used across
// dicrector's core packages, following the teacher repo's convention of one
// oops.Code per failure kind instead of ad hoc fmt.Errorf call sites.
package dicerr

import "github.com/samber/oops"

// Error codes for dictionary load-time and programmer failures.
const (
	CodePatternMalformed     = "PATTERN_MALFORMED"
	CodeIndexerFrozen        = "INDEXER_ALREADY_FROZEN"
	CodeFormatUnknown        = "FORMAT_UNKNOWN"
	CodeSideModuleMissing    = "SIDE_MODULE_MISSING"
	CodeSideModuleAttr       = "SIDE_MODULE_ATTR_MISSING"
	CodeLoaderIO             = "LOADER_IO_ERROR"
	CodeConfigInvalid        = "LOADER_CONFIG_INVALID"
)

// PatternMalformed reports a DicxPattern template that yields zero key tokens.
func PatternMalformed(template string) error {
	return oops.Code(CodePatternMalformed).
		With("template", template).
		Errorf("no key token could be derived from template %q", template)
}

// IndexerAlreadyFrozen reports a second call to Indexer.Freeze.
func IndexerAlreadyFrozen() error {
	return oops.Code(CodeIndexerFrozen).
		Errorf("indexer is already frozen")
}

// FormatUnknown reports an extension with no registered format.
func FormatUnknown(ext string) error {
	return oops.Code(CodeFormatUnknown).
		With("extension", ext).
		Errorf("no format registered for extension %q", ext)
}

// SideModuleMissing reports a referenced side module file that could not be found.
func SideModuleMissing(path string) error {
	return oops.Code(CodeSideModuleMissing).
		With("path", path).
		Errorf("side module %q not found", path)
}

// SideModuleAttrMissing reports a side module that does not export the required attribute.
func SideModuleAttrMissing(path, attr string) error {
	return oops.Code(CodeSideModuleAttr).
		With("path", path).
		With("attribute", attr).
		Errorf("side module %q does not export %q", path, attr)
}

// LoaderIOError wraps an I/O failure encountered while loading a dictionary.
func LoaderIOError(path string, cause error) error {
	return oops.Code(CodeLoaderIO).
		With("path", path).
		Wrap(cause)
}

// ConfigInvalid reports a malformed sqlite-config document.
func ConfigInvalid(path string, cause error) error {
	return oops.Code(CodeConfigInvalid).
		With("path", path).
		Wrap(cause)
}
