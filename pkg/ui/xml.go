package ui

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// xmlRenderer writes a <stapler> document
type xmlRenderer struct {
	w io.Writer
}

func (r *xmlRenderer) write(root *etree.Element) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(root)
	doc.Indent(2)
	_, err := doc.WriteTo(r.w)
	return err
}

func (r *xmlRenderer) RenderResult(v *View) error {
	root := etree.NewElement("stapler")
	root.CreateAttr("command", v.Command)
	if v.Document != "" {
		root.CreateAttr("document", v.Document)
	}
	if v.Message != "" {
		root.CreateElement("message").SetText(v.Message)
	}

	if len(v.Items) > 0 {
		items := root.CreateElement("items")
		for _, it := range v.Items {
			el := items.CreateElement("item")
			el.CreateAttr("position", fmt.Sprint(it.Position))
			el.CreateAttr("id", it.ID)
			el.CreateAttr("status", string(it.Status))
			el.CreateElement("name").SetText(it.Name)
			if it.Path != "" {
				el.CreateElement("path").SetText(it.Path)
			}
			if it.Error != "" {
				el.CreateElement("error").SetText(it.Error)
			}
		}
	}

	if len(v.Actions) > 0 {
		actions := root.CreateElement("actions")
		if v.Cancelled {
			actions.CreateAttr("cancelled", "true")
		}
		for _, a := range v.Actions {
			el := actions.CreateElement("action")
			el.CreateAttr("position", fmt.Sprint(a.Position))
			el.CreateAttr("status", string(a.Status))
			if a.Error != "" {
				el.SetText(a.Error)
			}
		}
	}

	for _, p := range v.Previews {
		root.CreateElement("preview").SetText(p)
	}
	for _, s := range v.Skipped {
		el := root.CreateElement("skipped")
		el.CreateAttr("path", s.Path)
		el.SetText(s.Error)
	}
	return r.write(root)
}

func (r *xmlRenderer) RenderError(err error) error {
	root := etree.NewElement("error")
	root.SetText(err.Error())
	return r.write(root)
}

func (r *xmlRenderer) RenderMessage(msg string) error {
	root := etree.NewElement("message")
	root.SetText(msg)
	return r.write(root)
}
