package views

import (
	"sort"

	"famtree/internal/catalog"
	"famtree/internal/layout"
	"famtree/internal/records"
)

// Roster lists every person sorted by display name.
func (b *Builder) Roster() RosterView {
	planner := b.table.Planner()
	doc := planner.RosterPage()
	view := RosterView{
		Nav:        b.nav(doc, ""),
		LinkPath:   doc,
		OutputPath: planner.OutputPath(doc),
	}
	for _, e := range b.table.Sorted() {
		view.Rows = append(view.Rows, RosterRow{
			Link:  Link{Name: e.DisplayName, Href: layout.Href(doc, e.LinkPath)},
			Birth: e.BirthDate,
			Death: e.DeathDate,
		})
	}
	return view
}

type surnameBucket struct {
	key     string
	label   string
	entries []catalog.Entry
}

// groups buckets table entries by SurnameKey, sorted by key. The label is the
// first surname seen in source order.
func (b *Builder) groups() []surnameBucket {
	index := make(map[string]*surnameBucket)
	var keys []string
	for _, e := range b.table.Entries() {
		bucket, ok := index[e.SurnameKey]
		if !ok {
			label := e.Surname
			if label == "" {
				label = records.UnknownName
			}
			bucket = &surnameBucket{key: e.SurnameKey, label: label}
			index[e.SurnameKey] = bucket
			keys = append(keys, e.SurnameKey)
		}
		bucket.entries = append(bucket.entries, e)
	}
	sort.Strings(keys)
	out := make([]surnameBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *index[k])
	}
	return out
}

// SurnameIndex lists every surname with links to its page and members.
func (b *Builder) SurnameIndex() SurnameIndexView {
	planner := b.table.Planner()
	doc := planner.IndexPage()
	view := SurnameIndexView{
		Nav:        b.nav(doc, ""),
		LinkPath:   doc,
		OutputPath: planner.OutputPath(doc),
	}
	for _, bucket := range b.groups() {
		members := append([]catalog.Entry(nil), bucket.entries...)
		sort.SliceStable(members, func(i, j int) bool {
			return catalog.ByDisplayName(members[i], members[j])
		})
		group := SurnameGroup{
			Key:   bucket.key,
			Label: bucket.label,
			Href:  layout.Href(doc, planner.SurnamePage(bucket.key)),
		}
		for _, e := range members {
			group.Members = append(group.Members, Link{Name: e.GivenName, Href: layout.Href(doc, e.LinkPath)})
		}
		view.Groups = append(view.Groups, group)
	}
	return view
}

// SurnamePages builds one page per surname, members sorted by given name.
func (b *Builder) SurnamePages() []SurnamePageView {
	planner := b.table.Planner()
	var out []SurnamePageView
	for _, bucket := range b.groups() {
		doc := planner.SurnamePage(bucket.key)
		members := append([]catalog.Entry(nil), bucket.entries...)
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].GivenName != members[j].GivenName {
				return members[i].GivenName < members[j].GivenName
			}
			return members[i].ID < members[j].ID
		})
		page := SurnamePageView{
			Nav:        b.nav(doc, bucket.key),
			Key:        bucket.key,
			Label:      bucket.label,
			LinkPath:   doc,
			OutputPath: planner.OutputPath(doc),
		}
		for _, e := range members {
			page.Members = append(page.Members, SurnameMember{
				Link:  Link{Name: e.GivenName, Href: layout.Href(doc, e.LinkPath)},
				Birth: e.BirthDate,
				Death: e.DeathDate,
			})
		}
		out = append(out, page)
	}
	return out
}
