package navrouter

// QueryUpdater rewrites the current URL from the bound params without navigating.
type QueryUpdater interface {
	QueryUpdate()
}

// QueryUpdaterRef can be embedded in a view to have a QueryUpdater injected at creation.
type QueryUpdaterRef struct {
	QueryUpdater // embed QueryUpdater
}

// QueryUpdaterSet implements QueryUpdaterSetter.
func (h *QueryUpdaterRef) QueryUpdaterSet(o QueryUpdater) {
	h.QueryUpdater = o
}

// QueryUpdaterSetter is implemented by anything that accepts a QueryUpdater.
type QueryUpdaterSetter interface {
	QueryUpdaterSet(QueryUpdater)
}

// BindParam is implemented by something that can be read and written as a URL param.
type BindParam interface {
	BindParamRead() []string
	BindParamWrite(v []string)
}

// StringParam implements BindParam on a string.
type StringParam string

// BindParamRead implements BindParam.  An empty string reads as no value.
func (s *StringParam) BindParamRead() []string {
	if *s == "" {
		return nil
	}
	return []string{string(*s)}
}

// BindParamWrite implements BindParam.
func (s *StringParam) BindParamWrite(v []string) {
	if len(v) == 0 {
		*s = ""
		return
	}
	*s = StringParam(v[0])
}
