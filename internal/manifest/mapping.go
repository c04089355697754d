package manifest

// Mapping is a collection of packages keyed by name that remembers the
// order in which names were first seen. Go maps do not have a stable
// iteration order, but the changelog renders entries in encounter order,
// so the order is tracked explicitly. Adding a package whose name already
// exists replaces the entry but keeps its original position.
type Mapping struct {
	byName map[string]Package
	order  []string
}

// NewMapping creates an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{byName: make(map[string]Package)}
}

// Add inserts or replaces a package by name.
func (m *Mapping) Add(pkg Package) {
	if _, exists := m.byName[pkg.Name]; !exists {
		m.order = append(m.order, pkg.Name)
	}
	m.byName[pkg.Name] = pkg
}

// Get returns the package with the given name.
func (m *Mapping) Get(name string) (Package, bool) {
	pkg, ok := m.byName[name]
	return pkg, ok
}

// Has reports whether a package with the given name is present.
func (m *Mapping) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// Names returns the package names in first-seen order.
func (m *Mapping) Names() []string {
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// Len returns the number of packages in the mapping.
func (m *Mapping) Len() int {
	return len(m.byName)
}
