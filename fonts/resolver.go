package fonts

import (
	"sync"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textfx/text"
)

var (
	builtinOnce sync.Once
	builtinSrc  *text.FontSource
)

// BuiltinSource returns the parsed Go Regular font.
func BuiltinSource() *text.FontSource {
	builtinOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			panic("fonts: built-in font: " + err.Error())
		}
		builtinSrc = src
	})
	return builtinSrc
}

// Resolve returns a face for name at size. It tries, in order:
//  1. the file of the set named exactly name,
//  2. the first file of the set in sorted order,
//  3. the built-in Go Regular font.
//
// A file that fails to load moves on to the built-in font.
// Resolve never fails.
func (s *Set) Resolve(name string, size float64) *text.Face {
	file := name
	if !s.Has(name) {
		if len(s.names) == 0 {
			return s.builtin(size)
		}
		file = s.names[0]
		slogger().Warn("fonts: font not found, using fallback", "requested", name, "fallback", file)
	}

	key := faceKey{name: file, size: size}
	if face, ok := s.faces.Get(key); ok {
		return face
	}

	src, err := s.source(file)
	if err != nil {
		slogger().Warn("fonts: load failed, using built-in", "font", file, "err", err)
		return s.builtin(size)
	}
	face := src.Face(size)
	s.faces.Set(key, face)
	return face
}

func (s *Set) builtin(size float64) *text.Face {
	key := faceKey{size: size}
	if face, ok := s.faces.Get(key); ok {
		return face
	}
	face := BuiltinSource().Face(size)
	s.faces.Set(key, face)
	return face
}
