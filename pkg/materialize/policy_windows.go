//go:build windows

package materialize

// Creating symbolic links on Windows requires elevated privilege, so
// file entries fall back to hard links. Directory junctions do not.
func platformPolicy() LinkPolicy {
	return LinkPolicy{FilesAsHardLinks: true}
}
