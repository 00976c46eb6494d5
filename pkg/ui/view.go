package ui

import (
	"sort"

	"github.com/arthur-debert/stapler/pkg/dispatcher"
	"github.com/arthur-debert/stapler/pkg/session"
	"github.com/arthur-debert/stapler/pkg/style"
	"github.com/google/uuid"
)

// View is the presentation of a command result. Positions are 1-based, as
// typed on the command line.
type View struct {
	Command   string       `json:"command" yaml:"command"`
	Document  string       `json:"document,omitempty" yaml:"document,omitempty"`
	Message   string       `json:"message,omitempty" yaml:"message,omitempty"`
	Items     []ItemView   `json:"items,omitempty" yaml:"items,omitempty"`
	Actions   []ActionView `json:"actions,omitempty" yaml:"actions,omitempty"`
	Previews  []string     `json:"previews,omitempty" yaml:"previews,omitempty"`
	Skipped   []SkipView   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Cancelled bool         `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
}

// ItemView is one alias of a listing
type ItemView struct {
	Position int          `json:"position" yaml:"position"`
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Path     string       `json:"path,omitempty" yaml:"path,omitempty"`
	Status   style.Status `json:"status" yaml:"status"`
	Error    string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// ActionView is the outcome of a batch action on one alias
type ActionView struct {
	Position int          `json:"position" yaml:"position"`
	ID       string       `json:"id,omitempty" yaml:"id,omitempty"`
	Status   style.Status `json:"status" yaml:"status"`
	Error    string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// SkipView is a path add did not take
type SkipView struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// NewView converts a dispatcher result
func NewView(r *dispatcher.Result) *View {
	v := &View{
		Command:  string(r.Command),
		Document: r.Document,
		Message:  r.Message,
		Previews: r.Previews,
	}

	for _, it := range r.Items {
		v.Items = append(v.Items, itemView(it))
	}

	if r.Batch != nil {
		v.Cancelled = r.Batch.Cancelled
		for _, i := range r.Batch.Succeeded {
			v.Actions = append(v.Actions, ActionView{Position: i + 1, Status: style.StatusDone})
		}
		for _, f := range r.Batch.Failures {
			a := ActionView{Position: f.Index + 1, Status: style.StatusFailed, Error: f.Err.Error()}
			if f.ID != uuid.Nil {
				a.ID = f.ID.String()
			}
			v.Actions = append(v.Actions, a)
		}
		sort.Slice(v.Actions, func(i, j int) bool { return v.Actions[i].Position < v.Actions[j].Position })
	}

	for _, s := range r.Skipped {
		v.Skipped = append(v.Skipped, SkipView{Path: s.Path, Error: s.Err.Error()})
	}
	return v
}

func itemView(it session.Item) ItemView {
	iv := ItemView{
		Position: it.Index + 1,
		ID:       it.ID,
		Name:     it.Name,
		Path:     it.Path,
		Status:   style.StatusResolved,
	}
	if !it.Resolved() {
		iv.Status = style.StatusUnresolved
		iv.Error = it.Err.Error()
	}
	return iv
}
