package navrouter

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterPrefixHandlers(t *testing.T) {

	type appRouter struct {
		*Router
		out map[string]RouteMatch
	}

	type tcase struct {
		path  string   // the path to request
		rp    []string // route paths for which we AddRoute
		check func(ar *appRouter) bool
	}

	tclist := []tcase{

		{
			"/",
			[]string{"/"},
			func(ar *appRouter) bool { return ar.out["/"].Path == "/" },
		},

		{
			"/nothing",
			[]string{"/"},
			func(ar *appRouter) bool {
				return ar.out["_not_found"].Path == "/nothing" && ar.out["/"].Path == "/nothing"
			},
		},

		{
			"/a",
			[]string{"/", "/a"},
			func(ar *appRouter) bool { return ar.out["/a"].Path == "/a" },
		},

		{
			"/a/v1",
			[]string{"/", "/a", "/a/:id"},
			func(ar *appRouter) bool {
				return ar.out["/a"].Path == "/a/v1" &&
					!ar.out["/a"].Exact &&
					ar.out["/a/:id"].Exact &&
					ar.out["/a/:id"].Params.Get("id") == "v1"
			},
		},
	}

	for i, tc := range tclist {
		t.Run(fmt.Sprint(i), func(t *testing.T) {

			ar := appRouter{Router: New(NewMemoryHistory("/")), out: make(map[string]RouteMatch)}
			for _, p := range tc.rp {
				p := p
				ar.MustAddRoute(p, RouteHandlerFunc(func(rm *RouteMatch) {
					ar.out[p] = *rm
				}))
			}
			ar.SetNotFound(RouteHandlerFunc(func(rm *RouteMatch) {
				ar.out["_not_found"] = *rm
			}))

			// no named routes are installed so this is always not found
			_ = ar.Navigate(tc.path, nil)

			if !tc.check(&ar) {
				t.Fail()
			}

		})
	}

}

func TestRouterResolve(t *testing.T) {

	r := New(NewMemoryHistory("/"))
	r.MustAddRoutes(testTable())

	var tlist = []struct {
		in         string
		name       string
		path       string
		params     url.Values
		pathParams PathParamList
		from       string
	}{
		{in: "/home", name: "Home", path: "/home", params: url.Values{}},
		{in: "/", name: "Home", path: "/home", params: url.Values{}, from: "/"},
		{in: "/items/", name: "Items", path: "/items", params: url.Values{}},
		{in: "/items/new", name: "ItemsNew", path: "/items/new", params: url.Values{}},
		{
			in: "/items/7?tab=x", name: "Item", path: "/items/7",
			params:     url.Values{"id": {"7"}, "tab": {"x"}},
			pathParams: PathParamList{{"id", "7"}},
		},
		{
			in: "/items/7?id=8", name: "Item", path: "/items/7",
			params:     url.Values{"id": {"7"}},
			pathParams: PathParamList{{"id", "7"}},
		},
		{
			in: "/old/9", name: "Item", path: "/items/9",
			params:     url.Values{"id": {"9"}},
			pathParams: PathParamList{{"id", "9"}},
			from:       "/old/9",
		},
	}

	for _, ti := range tlist {
		t.Run(ti.in, func(t *testing.T) {
			rm, err := r.Resolve(ti.in)
			require.NoError(t, err)
			assert.Equal(t, ti.name, rm.Name)
			assert.Equal(t, ti.path, rm.Path)
			assert.Equal(t, ti.params, rm.Params)
			assert.Equal(t, ti.pathParams, rm.PathParams)
			assert.Equal(t, ti.from, rm.RedirectedFrom)
			assert.True(t, rm.Exact)
		})
	}

	for _, in := range []string{"/nope", "/items/7/extra", "/home-page"} {
		t.Run(in, func(t *testing.T) {
			_, err := r.Resolve(in)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}

}

func TestRouterRedirectLoop(t *testing.T) {

	// a validated table cannot loop, so build the entries directly
	r := New(NewMemoryHistory("/"))
	r.rlist = []routeEntry{
		{route: Route{Path: "/a", Redirect: "/b"}, mpath: mpath{"/a"}, redirect: mpath{"/b"}},
		{route: Route{Path: "/b", Redirect: "/a"}, mpath: mpath{"/b"}, redirect: mpath{"/a"}},
	}

	_, err := r.Resolve("/a")
	assert.ErrorIs(t, err, ErrRedirectLoop)

}

func TestRouterPathFor(t *testing.T) {

	assert := assert.New(t)

	r := New(NewMemoryHistory("/"))
	r.MustAddRoutes(testTable())

	p, err := r.PathFor("Item", url.Values{"id": {"42"}})
	assert.NoError(err)
	assert.Equal("/items/42", p)

	p, err = r.PathFor("Item", url.Values{"id": {"42"}, "tab": {"x"}})
	assert.NoError(err)
	assert.Equal("/items/42?tab=x", p)

	p, err = r.PathFor("Item", url.Values{"id": {"a/b"}})
	assert.NoError(err)
	assert.Equal("/items/a%2Fb", p)

	p, err = r.PathFor("Item", nil)
	assert.ErrorIs(err, ErrMissingParam)
	assert.Equal("/items/_", p)

	_, err = r.PathFor("Nope", nil)
	assert.ErrorIs(err, ErrUnknownRoute)

	p, err = r.PathFor("Items", nil)
	assert.NoError(err)
	assert.Equal("/items", p)

}

func TestRouterNavigate(t *testing.T) {

	assert := assert.New(t)
	require := require.New(t)

	h := NewMemoryHistory("/")
	r := New(h)
	r.MustAddRoutes(testTable())

	var got []string
	r.SetHandler(RouteHandlerFunc(func(rm *RouteMatch) {
		got = append(got, fmt.Sprint(rm.Name, ":", rm.Component))
	}))

	require.NoError(r.Navigate("/", nil))
	require.NoError(r.Navigate("/items/3", url.Values{"tab": {"a"}}))
	require.NoError(r.NavigateName("ItemsNew", nil, NavReplace))

	entries, idx := h.Entries()
	assert.Equal([]string{"/", "/home", "/items/new"}, entries)
	assert.Equal(2, idx)
	assert.Equal([]string{"Home:home", "Item:item", "ItemsNew:items-new"}, got)

	require.NoError(r.Navigate("/items", nil, NavSkipRender))
	assert.Len(got, 3)
	assert.Equal("Items", r.Current().Name)

	err := r.NavigateName("Item", nil)
	assert.ErrorIs(err, ErrMissingParam)
	assert.Equal("Items", r.Current().Name)

}

func TestRouterNavigateNotFound(t *testing.T) {

	h := NewMemoryHistory("/home")
	r := New(h)
	r.MustAddRoutes(testTable())

	var notFound string
	r.SetNotFound(RouteHandlerFunc(func(rm *RouteMatch) {
		notFound = rm.Path
	}))

	err := r.Navigate("/nope", url.Values{"q": {"1"}})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "/nope", notFound)
	assert.Nil(t, r.Current())

	entries, _ := h.Entries()
	assert.Equal(t, []string{"/home", "/nope?q=1"}, entries)

}

func TestRouterNavigateNotFoundSkipRender(t *testing.T) {

	assert := assert.New(t)

	h := NewMemoryHistory("/")
	r := New(h)
	r.MustAddRoutes(testTable())

	var tab StringParam
	assert.NoError(r.Navigate("/items/3?tab=one", nil))
	r.Current().Bind("tab", &tab)

	err := r.Navigate("/nope", nil, NavSkipRender)
	assert.ErrorIs(err, ErrNotFound)
	assert.Nil(r.Current())
	assert.ErrorIs(r.Push(), ErrNoActiveRoute)

	entries, _ := h.Entries()
	assert.Equal([]string{"/", "/items/3?tab=one", "/nope"}, entries)

}

func TestRouterDoubleSlashIsAPath(t *testing.T) {

	assert := assert.New(t)
	require := require.New(t)

	h := NewMemoryHistory("/")
	r := New(h)
	r.MustAddRoutes(testTable())

	rm, err := r.Resolve("//items/7?tab=a")
	require.NoError(err)
	assert.Equal("Item", rm.Name)
	assert.Equal("7", rm.Params.Get("id"))
	assert.Equal("a", rm.Params.Get("tab"))

	require.NoError(r.Navigate("//items", nil))
	assert.Equal("Items", r.Current().Name)
	assert.Empty(r.Current().RedirectedFrom)

	entries, _ := h.Entries()
	assert.Equal([]string{"/", "/items"}, entries)

	_, err = r.Resolve("//nope")
	assert.ErrorIs(err, ErrNotFound)

	h2 := NewMemoryHistory("//items/new")
	r2 := New(h2)
	r2.MustAddRoutes(testTable())
	require.NoError(r2.Pull())
	assert.Equal("ItemsNew", r2.Current().Name)

}

func TestRouterPullAndListen(t *testing.T) {

	assert := assert.New(t)
	require := require.New(t)

	h := NewMemoryHistory("/")
	r := New(h)
	r.MustAddRoutes(testTable())

	var got []string
	r.SetHandler(RouteHandlerFunc(func(rm *RouteMatch) {
		got = append(got, rm.Path)
	}))

	// startup on "/" redirects and rewrites the entry in place
	require.NoError(r.Pull())
	entries, _ := h.Entries()
	assert.Equal([]string{"/home"}, entries)

	require.NoError(r.Listen())
	require.NoError(r.Navigate("/items", nil))
	require.NoError(r.Navigate("/items/5", nil))

	assert.True(h.Back())
	assert.Equal("Items", r.Current().Name)
	assert.True(h.Back())
	assert.Equal("Home", r.Current().Name)
	assert.False(h.Back())
	assert.True(h.Forward())
	assert.Equal("Items", r.Current().Name)

	entries, idx := h.Entries()
	assert.Equal([]string{"/home", "/items", "/items/5"}, entries)
	assert.Equal(1, idx)

	require.NoError(r.Close())
	assert.True(h.Forward())
	assert.Equal("Items", r.Current().Name)

	assert.Equal([]string{"/home", "/items", "/items/5", "/items", "/home", "/items"}, got)

}

func TestRouterBasePath(t *testing.T) {

	assert := assert.New(t)

	h := NewMemoryHistory("/studio/items/4?tab=x")
	r := New(h, WithBasePath("/studio/"))
	r.MustAddRoutes(testTable())

	assert.NoError(r.Pull())
	assert.Equal("Item", r.Current().Name)
	assert.Equal("x", r.Current().Params.Get("tab"))

	assert.NoError(r.Navigate("/", nil))
	entries, _ := h.Entries()
	assert.Equal([]string{"/studio/items/4?tab=x", "/studio/home"}, entries)

}

func TestRouterBasePathBoundary(t *testing.T) {

	var tlist = []struct {
		location string
		name     string // empty for not found
	}{
		{"/studio", "Home"},
		{"/studio/", "Home"},
		{"/studio/items", "Items"},
		{"/studioitems", ""},
		{"/studio-items", ""},
		{"/items", ""},
	}

	for _, ti := range tlist {
		ti := ti
		t.Run(ti.location, func(t *testing.T) {

			h := NewMemoryHistory(ti.location)
			r := New(h, WithBasePath("/studio"))
			r.MustAddRoutes(testTable())

			var notFound string
			r.SetNotFound(RouteHandlerFunc(func(rm *RouteMatch) {
				notFound = rm.Path
			}))

			err := r.Pull()
			if ti.name == "" {
				assert.ErrorIs(t, err, ErrNotFound)
				assert.Nil(t, r.Current())
				assert.Equal(t, ti.location, notFound)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, ti.name, r.Current().Name)
			assert.Empty(t, notFound)
		})
	}

}

type testEventEnv struct {
	locks, renders, unlocks int
}

func (e *testEventEnv) Lock()         { e.locks++ }
func (e *testEventEnv) UnlockOnly()   { e.unlocks++ }
func (e *testEventEnv) UnlockRender() { e.renders++ }

func TestRouterEventEnv(t *testing.T) {

	env := &testEventEnv{}
	r := New(NewMemoryHistory("/"), WithEventEnv(env))
	r.MustAddRoutes(testTable())

	assert.NoError(t, r.Navigate("/home", nil))
	assert.NoError(t, r.Navigate("/items", nil, NavSkipRender))
	assert.Equal(t, 1, env.locks)
	assert.Equal(t, 1, env.renders)
	assert.Equal(t, 0, env.unlocks)

}

func TestRouterBindAndPush(t *testing.T) {

	assert := assert.New(t)

	h := NewMemoryHistory("/")
	r := New(h)
	r.MustAddRoutes(testTable())

	assert.ErrorIs(r.Push(), ErrNoActiveRoute)

	var tab StringParam
	r.SetHandler(RouteHandlerFunc(func(rm *RouteMatch) {
		if rm.Name == "Item" {
			rm.Bind("tab", &tab)
		}
	}))

	assert.NoError(r.Navigate("/items/3?tab=one", nil))
	assert.Equal(StringParam("one"), tab)

	tab = "two"
	r.QueryUpdate()
	entries, _ := h.Entries()
	assert.Equal([]string{"/", "/items/3?tab=two"}, entries)

	tab = ""
	assert.NoError(r.Push())
	entries, _ = h.Entries()
	assert.Equal([]string{"/", "/items/3?tab=two", "/items/3"}, entries)

	// navigating away unbinds
	assert.NoError(r.Navigate("/home", nil))
	tab = "three"
	assert.NoError(r.Push(NavReplace))
	entries, _ = h.Entries()
	assert.Equal("/home", entries[len(entries)-1])

}

func TestRouterAddRoutes(t *testing.T) {

	assert := assert.New(t)

	rt := testTable()
	r := New(NewMemoryHistory("/"))
	assert.NoError(r.AddRoutes(rt))
	assert.Error(r.AddRoutes(rt))

	// neither the caller's slice nor the returned copy reach the router
	rt[1].Component = "changed"
	got := r.Routes()
	got[1].Path = "/changed"

	rm, err := r.Resolve("/home")
	assert.NoError(err)
	assert.Equal("home", rm.Component)

	bad := RouteTable{{Path: "/a", Name: "A", Component: 1}, {Path: "/b", Name: "A", Component: 2}}
	assert.ErrorIs(New(NewMemoryHistory("/")).AddRoutes(bad), ErrDuplicateName)
	assert.Panics(func() { New(NewMemoryHistory("/")).MustAddRoutes(bad) })

}

func TestBrowserHistoryOutsideBrowser(t *testing.T) {

	h := NewBrowserHistory(false)
	h.Push("/a")
	h.Replace("/b")

	_, err := h.Location()
	assert.ErrorIs(t, err, ErrNotBrowser)
	assert.ErrorIs(t, h.Listen(func() {}), ErrNotBrowser)

	r := New(h)
	assert.ErrorIs(t, r.Pull(), ErrNotBrowser)

}
