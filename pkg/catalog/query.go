package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Query returns the records of all that match f, newest first.
// It never mutates all and returns an empty, non-nil slice when nothing matches.
func Query(all []ContentProject, f Filter) []ContentProject {
	sorted := make([]ContentProject, len(all))
	copy(sorted, all)
	SortNewestFirst(sorted)

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.SearchText))

	out := make([]ContentProject, 0, len(sorted))
	for _, p := range sorted {
		if f.Channel != "" && p.Channel != f.Channel {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(SearchBlob(p.ProjectFields)), needle) {
			continue
		}
		out = append(out, p)
	}

	return page(out, f.Limit, f.Offset)
}

// SortNewestFirst orders records by CreatedAt, most recent first. Ties keep
// their input order.
func SortNewestFirst(ps []ContentProject) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].CreatedAt.After(ps[j].CreatedAt)
	})
}

// SearchBlob joins the searchable fields of p with single spaces, skipping
// absent ones: name, client, segment, description, link.
func SearchBlob(p ProjectFields) string {
	parts := make([]string, 0, 5)
	parts = append(parts, p.Name)
	for _, s := range []*string{p.Client, p.Segment, p.Description} {
		if s != nil {
			parts = append(parts, *s)
		}
	}
	parts = append(parts, p.Link)
	return strings.Join(parts, " ")
}

func page(ps []ContentProject, limit, offset int) []ContentProject {
	if offset > 0 {
		if offset >= len(ps) {
			return []ContentProject{}
		}
		ps = ps[offset:]
	}
	if limit > 0 && limit < len(ps) {
		ps = ps[:limit]
	}
	return ps
}
