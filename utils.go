package heorte

import (
	"strings"

	vocab "github.com/go-ap/activitypub"
)

func NameOf(it vocab.Item) string {
	var name string
	if vocab.LinkTypes.Contains(it.GetType()) {
		vocab.OnLink(it, func(lnk *vocab.Link) error {
			name = lnk.Name.First().String()
			return nil
		})
	} else {
		vocab.OnObject(it, func(ob *vocab.Object) error {
			name = ob.Name.First().String()
			return nil
		})
	}
	return name
}

// TagNames flattens the items the tag extractor found into plain
// names, without the leading #.
func TagNames(items vocab.ItemCollection) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		name := strings.TrimPrefix(NameOf(it), "#")
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
