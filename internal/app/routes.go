package app

import "github.com/kfpstudio/navrouter"

// Route names, for navigating with NavigateName.
const (
	RouteComponentList       = "ComponentList"
	RoutePipelinesList       = "PipelinesList"
	RoutePipelineBuilder     = "PipelineBuilder"
	RoutePipelineBuilderEdit = "PipelineBuilderEdit"
)

// ParamPipelineID is the path param of RoutePipelineBuilderEdit.
const ParamPipelineID = "pipelineId"

var (
	componentListView = &ViewBinding{
		View: "ComponentList",
		New:  func(rm *navrouter.RouteMatch) View { return &ComponentList{} },
	}

	pipelinesListView = &ViewBinding{
		View: "PipelinesList",
		New: func(rm *navrouter.RouteMatch) View {
			v := &PipelinesList{}
			rm.Bind("q", &v.Filter)
			return v
		},
	}

	// shared by create and edit, the id param picks the mode
	pipelineBuilderView = &ViewBinding{
		View: "PipelineBuilder",
		New: func(rm *navrouter.RouteMatch) View {
			return NewPipelineBuilder(rm.PathParams.Lookup(ParamPipelineID))
		},
	}
)

//go:generate go run ../../cmd/navroutes gen -q -m routes.toml

// Routes returns the studio route table, declared in routes.toml.
// Each call returns a fresh slice.
func Routes() navrouter.RouteTable {
	return generatedRoutes()
}
