package types

// Package is one concrete (name, version) pair from the repository.
// DependencyConstraints and ConflictConstraints are the raw, parsed
// grammar; Dependencies and Conflicts are populated by a single
// post-parse resolution pass (core.ResolveRepository) and must not be
// read before that pass has run.
type Package struct {
	Name    string
	Version Version
	Size    int

	DependencyConstraints []Disjunction
	ConflictConstraints   []Constraint

	// Dependencies holds, per surviving disjunction, the concrete
	// packages that satisfy it. A disjunction whose resolved form is
	// empty is dropped entirely (never appears here).
	Dependencies [][]*Package
	// Conflicts is the set of concrete packages that conflict with
	// this one, after rationalisation.
	Conflicts map[*Package]struct{}

	// SatID is the unique, dense-from-1 SAT variable identifier
	// assigned by core.AssignSatIDs once every record has been
	// registered. Zero means "not yet assigned".
	SatID int
}

func (p *Package) String() string {
	return p.Name + "=" + p.Version.String()
}

// ConflictsWith reports whether q is in p's resolved conflict set.
func (p *Package) ConflictsWith(q *Package) bool {
	if p.Conflicts == nil {
		return false
	}
	_, ok := p.Conflicts[q]
	return ok
}

// Repository is the parsed set of available package versions, keyed
// by name, plus a flat parse-ordered list used to assign dense SAT
// ids deterministically across the whole repository (not just within
// one name's version list).
type Repository struct {
	// Order is the sequence of names in first-seen order.
	Order []string
	// Versions holds, per name, the versions of that name. Add appends
	// them in declaration order; core.BuildRepository then sorts each
	// list ascending by version.
	Versions map[string][]*Package
	// All holds every package in the order records were read from the
	// repository document; this is the canonical iteration order for
	// SAT-id assignment.
	All []*Package
}

// NewRepository creates an empty repository ready for incremental
// registration via Add.
func NewRepository() *Repository {
	return &Repository{Versions: map[string][]*Package{}}
}

// Add registers a freshly-parsed package version. It does not assign
// a SatID; that happens in a dedicated pass once every record has
// been read (core.AssignSatIDs).
func (r *Repository) Add(pkg *Package) {
	if _, ok := r.Versions[pkg.Name]; !ok {
		r.Order = append(r.Order, pkg.Name)
	}
	r.Versions[pkg.Name] = append(r.Versions[pkg.Name], pkg)
	r.All = append(r.All, pkg)
}

// Find returns the package with the given name and version, if any.
func (r *Repository) Find(name string, version Version) (*Package, bool) {
	for _, pkg := range r.Versions[name] {
		if CompareVersionSlices(pkg.Version, version) == 0 {
			return pkg, true
		}
	}
	return nil, false
}

// CompareVersionSlices is a package-local helper so types can sort
// without importing core (which depends on types). It implements the
// same element-wise, non-zero-padded comparison as core.CompareVersions
// and the two must be kept in sync; core.CompareVersions is the
// canonical, tested implementation used everywhere else.
func CompareVersionSlices(a, b Version) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Initial is the ordered set of packages installed before any command
// runs.
type Initial []*Package

// Contains reports whether pkg (by pointer identity) is present.
func (in Initial) Contains(pkg *Package) bool {
	for _, p := range in {
		if p == pkg {
			return true
		}
	}
	return false
}
