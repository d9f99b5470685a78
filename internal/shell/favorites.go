package shell

import "sort"

// Favorites is the config-backed store of saved queries, runnable with
// \f <name>. It satisfies the completion engine's FavoriteLister.
type Favorites map[string]string

// List returns the favorite names, sorted.
func (f Favorites) List() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a saved query by name.
func (f Favorites) Get(name string) (string, bool) {
	query, ok := f[name]
	return query, ok
}
