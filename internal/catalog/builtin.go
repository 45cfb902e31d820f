package catalog

import (
	"embed"
	"sync"
)

//go:embed library/*.md
var libraryFS embed.FS

var (
	builtinOnce    sync.Once
	builtinEntries []*Entry
	builtinErr     error
)

// Builtin returns the section library shipped with the module: header, hero,
// about, menu, gallery, location and contact. Each call returns fresh copies.
func Builtin() ([]*Entry, error) {
	builtinOnce.Do(func() {
		builtinEntries, builtinErr = LoadFS(libraryFS, "library")
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	out := make([]*Entry, len(builtinEntries))
	for i, entry := range builtinEntries {
		out[i] = entry.Clone()
	}
	return out, nil
}

// MustBuiltin panics when the embedded library is malformed.
func MustBuiltin() []*Entry {
	entries, err := Builtin()
	if err != nil {
		panic(err)
	}
	return entries
}
