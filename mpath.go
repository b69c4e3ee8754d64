package navrouter

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// parseMpath will split p into appropriate parts for an mpath.
// After parsing each element of mpath will either be a static
// string or a parameter starting with ":".  A parameter must occupy
// a whole segment and be named, and a name may appear only once.
func parseMpath(p string) (mpath, error) {

	p = path.Clean("/" + p)
	ret := make(mpath, 0, 2)

	var static strings.Builder
	var seen map[string]bool

	for _, seg := range strings.Split(p[1:], "/") {

		static.WriteByte('/')

		if !strings.HasPrefix(seg, ":") {
			static.WriteString(seg)
			continue
		}

		name := seg[1:]
		if name == "" {
			return nil, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, p)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q repeats parameter %q", ErrInvalidPattern, p, name)
		}
		if seen == nil {
			seen = make(map[string]bool, 2)
		}
		seen[name] = true

		ret = append(ret, static.String(), seg)
		static.Reset()
	}

	// append last part if needed
	if static.Len() > 0 {
		ret = append(ret, static.String())
	}

	return ret, nil
}

// mpath is a matchable-path.  It's basically just a path split by parameter values.
type mpath []string

// paramNames will return the parameter names
// without the preceding colon, i.e. the path "/somewhere/:p1/:p2"
// will return []string{"p1","p2"}
func (mp mpath) paramNames() []string {
	var ret []string
	for _, p := range mp {
		if strings.HasPrefix(p, ":") {
			ret = append(ret, p[1:])
		}
	}
	return ret
}

// staticLen is the number of static characters in the pattern.
// Used to prefer "/a/b" over "/a/:id" when both match.
func (mp mpath) staticLen() int {
	n := 0
	for _, p := range mp {
		if !strings.HasPrefix(p, ":") {
			n += len(p)
		}
	}
	return n
}

// String returns the re-assembled path pattern
func (mp mpath) String() string {
	return strings.Join(mp, "")
}

// merge will use any values provided for the appropriate path params
// and return the constructed path.  A missing param value will cause
// ErrMissingParam to be returned but will still return the path with
// the missing param(s) replaced with "_".  The otherValues will
// be populated with all values not merged into the output path.
func (mp mpath) merge(v url.Values) (outPath string, otherValues url.Values, reterr error) {

	if len(v) > 0 {
		otherValues = make(url.Values, len(v))
		for k, val := range v {
			otherValues[k] = val
		}
	}

	var buf bytes.Buffer
	buf.Grow(64)

	for _, p := range mp {
		if strings.HasPrefix(p, ":") {
			pname := p[1:]
			vlist := v[pname]
			if len(vlist) == 0 || vlist[0] == "" {
				reterr = fmt.Errorf("%w %q", ErrMissingParam, pname)
				buf.WriteString("_")
				continue
			}
			buf.WriteString(url.PathEscape(vlist[0]))
			otherValues.Del(pname)
			continue
		}
		buf.WriteString(p)
	}

	if len(otherValues) == 0 {
		otherValues = nil
	}

	return buf.String(), otherValues, reterr
}

// match compares our mpath to the path provided and returns the parameter
// values plus ok true if match.  If !exact it means the path matched but there is more after.
// Static parts only match on segment boundaries, so "/pipelines" does not
// prefix-match "/pipelines-old".
func (mp mpath) match(p string) (params PathParamList, exact, ok bool) {

	prest := path.Clean("/" + p)

	readParam := func(pin string) (pr, pv string) {
		for i := range pin {
			if pin[i] == '/' {
				return pin[i:], pin[:i]
			}
		}
		// no slash means the entire input is the param value
		return "", pin
	}

	for _, mpart := range mp {

		if strings.HasPrefix(mpart, ":") {
			var raw string
			prest, raw = readParam(prest)
			if raw == "" {
				return nil, false, false
			}
			val, err := url.PathUnescape(raw)
			if err != nil {
				val = raw
			}
			params = append(params, PathParam{Key: mpart[1:], Value: val})
			continue
		}

		if !strings.HasPrefix(prest, mpart) {
			return nil, false, false
		}
		prest = prest[len(mpart):]
		if prest != "" && prest[0] != '/' && !strings.HasSuffix(mpart, "/") {
			return nil, false, false
		}
	}

	exact = prest == ""
	ok = true
	return
}
