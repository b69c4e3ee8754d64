package navrouter

import (
	"errors"
	"net/url"
	"strings"

	"github.com/vugu/vugu/js"
)

// BrowserHistory implements History using window.history.
// Outside of a browser pushes and replaces are no-ops and the
// other methods return ErrNotBrowser.
type BrowserHistory struct {
	useFragment  bool
	popStateFunc js.Func
}

// NewBrowserHistory returns a BrowserHistory.  If useFragment is set the
// fragment part of the URL (after the "#") is used as the path and query
// string.  This can be useful for applications which are served statically
// and cannot route on the server side.  The default is path mode.
func NewBrowserHistory(useFragment bool) *BrowserHistory {
	return &BrowserHistory{useFragment: useFragment}
}

// Push implements History.
func (h *BrowserHistory) Push(pathAndQuery string) {
	h.call("pushState", pathAndQuery)
}

// Replace implements History.
func (h *BrowserHistory) Replace(pathAndQuery string) {
	h.call("replaceState", pathAndQuery)
}

func (h *BrowserHistory) call(method, pathAndQuery string) {

	g := js.Global()
	if !g.Truthy() {
		return
	}

	pqv := pathAndQuery
	if h.useFragment {
		pqv = "#" + pathAndQuery
	}
	g.Get("window").Get("history").Call(method, nil, "", pqv)
}

// Location implements History.
func (h *BrowserHistory) Location() (*url.URL, error) {

	g := js.Global()
	if !g.Truthy() {
		return nil, ErrNotBrowser
	}

	var locstr string
	if h.useFragment {
		locstr = strings.TrimPrefix(g.Get("window").Get("location").Get("hash").String(), "#")
		if locstr == "" {
			locstr = "/"
		}
	} else {
		locstr = g.Get("window").Get("location").Call("toString").String()
	}

	return url.Parse(locstr)
}

// Listen implements History by adding a popstate listener.
func (h *BrowserHistory) Listen(f func()) error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotBrowser
	}

	if !h.popStateFunc.IsUndefined() {
		return errors.New("navrouter: popstate listener already set")
	}

	jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		f()
		return nil
	})

	g.Get("window").Call("addEventListener", "popstate", jf)

	h.popStateFunc = jf

	return nil
}

// Unlisten implements History.
func (h *BrowserHistory) Unlisten() error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotBrowser
	}

	if h.popStateFunc.IsUndefined() {
		return errors.New("navrouter: popstate listener not set")
	}

	g.Get("window").Call("removeEventListener", "popstate", h.popStateFunc)

	h.popStateFunc.Release()
	h.popStateFunc = js.Func{}

	return nil
}
