package navrouter

import "net/url"

// PathParam is parameter key/value pair extracted from a URL path.
type PathParam struct {
	Key   string
	Value string
}

// PathParamList is a slice of PathParam, in the order they appear in the path.
type PathParamList []PathParam

// ByName returns the named parameter value or an empty string if not found.
func (ps PathParamList) ByName(name string) string {
	v, _ := ps.Lookup(name)
	return v
}

// Lookup is like ByName but also reports whether the parameter was captured.
// The create/edit split of a view keys off this.
func (ps PathParamList) Lookup(name string) (string, bool) {
	for i := range ps {
		if ps[i].Key == name {
			return ps[i].Value, true
		}
	}
	return "", false
}

// Values converts the list to url.Values.
func (ps PathParamList) Values() url.Values {
	if len(ps) == 0 {
		return nil
	}
	ret := make(url.Values, len(ps))
	for _, p := range ps {
		ret.Set(p.Key, p.Value)
	}
	return ret
}
