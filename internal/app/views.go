package app

import (
	"net/url"

	"github.com/kfpstudio/navrouter"
)

// View is something the shell can show in its content region.
type View interface {
	Title() string
}

// ViewFactory builds a view for a matched route.
type ViewFactory func(rm *navrouter.RouteMatch) View

// ViewBinding is what routes carry as their Component.  Routes that share a
// view share the same *ViewBinding.
type ViewBinding struct {
	View string
	New  ViewFactory
}

// ComponentList shows the registered pipeline components.
type ComponentList struct {
	navrouter.NavigatorRef
}

// Title implements View.
func (v *ComponentList) Title() string { return "Components" }

// PipelinesList shows saved pipelines.  Filter is bound to the "q" query param.
type PipelinesList struct {
	navrouter.NavigatorRef
	navrouter.QueryUpdaterRef

	Filter navrouter.StringParam
}

// Title implements View.
func (v *PipelinesList) Title() string { return "Pipelines" }

// SetFilter changes the filter and rewrites the URL without a new history entry.
func (v *PipelinesList) SetFilter(f string) {
	v.Filter = navrouter.StringParam(f)
	if v.QueryUpdater != nil {
		v.QueryUpdate()
	}
}

// Open goes to the builder for an existing pipeline.
func (v *PipelinesList) Open(pipelineID string) error {
	return v.NavigateName(RoutePipelineBuilderEdit, url.Values{ParamPipelineID: {pipelineID}})
}

// Create goes to an empty builder.
func (v *PipelinesList) Create() error {
	return v.NavigateName(RoutePipelineBuilder, nil)
}

// BuilderMode tells the builder whether it starts empty or loads a pipeline.
type BuilderMode int

const (
	CreateMode BuilderMode = iota
	EditMode
)

func (m BuilderMode) String() string {
	switch m {
	case CreateMode:
		return "create"
	case EditMode:
		return "edit"
	}
	return "unknown"
}

// PipelineBuilder is the editor for one pipeline.  It is in EditMode exactly
// when PipelineID is set.
type PipelineBuilder struct {
	navrouter.NavigatorRef

	Mode       BuilderMode
	PipelineID string
}

// NewPipelineBuilder returns a builder for the optional id.
func NewPipelineBuilder(pipelineID string, ok bool) *PipelineBuilder {
	if !ok {
		return &PipelineBuilder{Mode: CreateMode}
	}
	return &PipelineBuilder{Mode: EditMode, PipelineID: pipelineID}
}

// Title implements View.
func (v *PipelineBuilder) Title() string {
	if v.Mode == EditMode {
		return "Edit pipeline " + v.PipelineID
	}
	return "New pipeline"
}

// Saved moves a freshly created pipeline to its own URL.  The entry is
// replaced so back returns to wherever the user came from.
func (v *PipelineBuilder) Saved(pipelineID string) error {
	return v.NavigateName(RoutePipelineBuilderEdit, url.Values{ParamPipelineID: {pipelineID}}, navrouter.NavReplace)
}
