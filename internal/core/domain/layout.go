package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the sheaf configuration file.
	ConfigFileName = "sheaf.yaml"

	// DefaultCacheDirName is the name of the artifact cache directory inside the serving directory.
	DefaultCacheDirName = ".cache"

	// DefaultConfigSource is the name of the configuration script evaluated before every build.
	DefaultConfigSource = "config.tmpl"

	// StylesheetExt is the file extension of stylesheet fragments.
	StylesheetExt = ".css"

	// ScriptExt is the file extension of configuration scripts.
	ScriptExt = ".tmpl"

	// DefaultAddr is the default listen address of the HTTP server.
	DefaultAddr = ":8080"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// CachePath returns the artifact cache directory for the given serving directory.
// An absolute dir is returned unchanged.
func CachePath(root, dir string) string {
	if dir == "" {
		dir = DefaultCacheDirName
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
