package registry

// Aggregate collects the metadata of every loaded domain that exposes it, in
// registry order. Domains without metadata contribute no entry. The slice is
// rebuilt on every call so it always reflects the registry it was given.
func Aggregate(reg *Registry) []Meta {
	var metas []Meta
	for _, entry := range reg.Entries() {
		if !entry.Loaded || entry.Module.Meta == nil {
			continue
		}
		metas = append(metas, *entry.Module.Meta)
	}
	return metas
}
