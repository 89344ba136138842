//go:build !windows

package materialize

func platformPolicy() LinkPolicy {
	return LinkPolicy{FilesAsHardLinks: false}
}
