package value

import "sort"

// Module is a first-class namespace value: its member mapping is shared
// by reference with the module's own top-level scope frame, so
// module-level state mutates observably across every caller holding the
// Module.
type Module struct {
	id         int64
	Name       string
	Members    *Frame
	SourcePath string // "" for a native builtin module with no backing file
	Doc        string
	// Public records names declared with `pub`: direct member access ignores
	// it, but enumeration helpers (PublicNames) honor it.
	Public map[string]bool
}

func NewModule(name string, members *Frame, sourcePath, doc string) *Module {
	return &Module{id: NextID(), Name: name, Members: members, SourcePath: sourcePath, Doc: doc, Public: make(map[string]bool)}
}

func (m *Module) ClassName() string { return "Module" }
func (m *Module) Display() string   { return "<module " + m.Name + ">" }
func (m *Module) Inspect() string   { return m.Display() }
func (m *Module) Docstring() string { return m.Doc }
func (m *Module) ID() int64         { return m.id }

// Get reads a member by name; absent members read as Nil, matching Dict's
// missing-key-on-read recovery policy.
func (m *Module) Get(name string) Value {
	if v, ok := m.Members.Vars[name]; ok {
		return v
	}
	return Nil
}

// MarkPublic records name as an explicit export.
func (m *Module) MarkPublic(name string) { m.Public[name] = true }

// PublicNames returns the member names marked public, sorted, for any host
// tooling that wants to enumerate a module's public surface.
func (m *Module) PublicNames() []string {
	var names []string
	for name := range m.Members.Vars {
		if m.Public[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// MergeOverlay merges src's members on top of this module's, overlay
// replacing native on collision. The receiver's docstring is
// kept unless src carries one.
func (m *Module) MergeOverlay(src *Module) *Module {
	out := NewModule(m.Name, NewFrame(), m.SourcePath, m.Doc)
	for k, v := range m.Members.Vars {
		out.Members.Vars[k] = v
		if m.Public[k] {
			out.Public[k] = true
		}
	}
	for k, v := range src.Members.Vars {
		if k == "__builtin__" {
			continue
		}
		out.Members.Vars[k] = v
		if src.Public[k] {
			out.Public[k] = true
		}
	}
	if src.Doc != "" {
		out.Doc = src.Doc
	}
	return out
}
