package opengl

import (
	"path/filepath"

	"asset-viewer/renderer"
)

// ProgramSet owns the programs the viewer draws with, loaded from
// <dir>/<name>.vert and <dir>/<name>.frag.
type ProgramSet struct {
	programs renderer.Programs
	built    []*Program
}

// LoadProgramSet always returns a usable set. A program that fails to
// compile or link is replaced by an empty one that binds program 0, and the
// failure comes back as the error so the caller can log it.
func LoadProgramSet(dir string) (*ProgramSet, error) {
	set := &ProgramSet{}
	programs, err := renderer.LoadPrograms(func(name string) (renderer.ShaderProgram, error) {
		p, err := LoadProgram(filepath.Join(dir, name+".vert"), filepath.Join(dir, name+".frag"))
		if err != nil {
			return &Program{Name: name}, err
		}
		set.built = append(set.built, p)
		return p, nil
	})
	set.programs = programs
	return set, err
}

func (s *ProgramSet) Programs() renderer.Programs {
	return s.programs
}

func (s *ProgramSet) Destroy() {
	for _, p := range s.built {
		p.Destroy()
	}
	s.built = nil
}
