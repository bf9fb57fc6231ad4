package lang

import (
	"fmt"
	"strings"
)

// UnsupportedExtensionError reports that no plugin in the given list
// claims the requested file extension.
type UnsupportedExtensionError struct {
	Extension string
}

func (e *UnsupportedExtensionError) Error() string {
	if e.Extension == "" {
		return "unsupported file type: no extension"
	}
	return fmt.Sprintf("unsupported file type: %q", e.Extension)
}

// ResolveByExtension returns the first plugin in plugins whose Extensions
// list contains ext, compared case-insensitively. Ordering follows the
// plugin slice's order; duplicate extensions across plugins resolve to
// whichever plugin appears first.
func ResolveByExtension(ext string, plugins []Plugin) (Plugin, error) {
	ext = strings.TrimPrefix(ext, ".")
	for _, p := range plugins {
		for _, e := range p.Extensions() {
			if strings.EqualFold(e, ext) {
				return p, nil
			}
		}
	}
	return nil, &UnsupportedExtensionError{Extension: ext}
}

// ResolveByFilename extracts the extension following the final '.' in
// path and resolves it via ResolveByExtension. A path with no '.'
// produces an UnsupportedExtensionError with an empty Extension.
func ResolveByFilename(path string, plugins []Plugin) (Plugin, error) {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return nil, &UnsupportedExtensionError{}
	}
	return ResolveByExtension(path[idx+1:], plugins)
}

// AllExtensions returns the union of every extension claimed by plugins,
// lower-cased, for cheap membership checks during tree traversal.
func AllExtensions(plugins []Plugin) map[string]struct{} {
	out := make(map[string]struct{})
	for _, p := range plugins {
		for _, e := range p.Extensions() {
			out[strings.ToLower(e)] = struct{}{}
		}
	}
	return out
}

// InstantiateAll compiles every plugin's query, specialised for
// identifier. It fails fast on the first plugin whose query fails to
// compile, naming the offending language.
func InstantiateAll(plugins []Plugin, identifier string) ([]*Instantiated, error) {
	out := make([]*Instantiated, 0, len(plugins))
	for _, p := range plugins {
		inst, err := NewInstantiated(p, identifier)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Default returns the built-in plugin set: Rust, C, Python, Java and
// OCaml. Callers may append additional plugins to extend this list;
// registration is open.
func Default() []Plugin {
	return []Plugin{
		Rust{},
		C{},
		Python{},
		Java{},
		OCaml{},
	}
}
