// pattern: Imperative Shell

package shim

// Entry is one listed shim. Target is only set when the listing was resolved.
type Entry struct {
	Name     string
	Target   DispatchTarget
	Resolved bool
}

// List enumerates the registry and, when resolve is set, resolves each name
// against proj and the resolver's catalog as they are right now. Nothing is
// cached between calls.
func List(reg *Registry, res *Resolver, proj ProjectContext, resolve bool) ([]Entry, error) {
	names, err := reg.List()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entry := Entry{Name: name}
		if resolve {
			target, err := res.Resolve(name, proj)
			if err != nil {
				return nil, err
			}
			entry.Target = target
			entry.Resolved = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
