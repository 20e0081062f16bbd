package resource

import "strings"

// Include is a parsed inclusion directive: relation names mapped to the
// directive for their own relations.
type Include map[string]Include

// ParseInclude parses a comma-delimited list of dot paths such as
// "customer,customer.addresses".
func ParseInclude(directive string) Include {
	root := Include{}
	for _, path := range strings.Split(directive, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		node := root
		for _, name := range strings.Split(path, ".") {
			name = strings.TrimSpace(name)
			if name == "" {
				break
			}
			child, ok := node[name]
			if !ok {
				child = Include{}
				node[name] = child
			}
			node = child
		}
	}
	return root
}

// Has reports whether name is included and returns its nested directive.
func (i Include) Has(name string) (Include, bool) {
	child, ok := i[name]
	return child, ok
}
