package irf

import (
	"github.com/gammasky/dl3kit/pkg/irf"
)

// axisView is the JSON/YAML form of an axis.
type axisView struct {
	Name   string `json:"name" yaml:"name"`
	Column string `json:"column" yaml:"column"`
	Interp string `json:"interp" yaml:"interp"`
	Unit   string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Bins   int64  `json:"bins" yaml:"bins"`
	Edges  bool   `json:"edges" yaml:"edges"`
}

// tableView is the JSON/YAML form of one IRF.
type tableView struct {
	Key    string     `json:"key" yaml:"key"`
	Class  string     `json:"class" yaml:"class"`
	HDU    string     `json:"hdu" yaml:"hdu"`
	Column string     `json:"column" yaml:"column"`
	Unit   string     `json:"unit,omitempty" yaml:"unit,omitempty"`
	Shape  []int64    `json:"shape" yaml:"shape"`
	Axes   []axisView `json:"axes" yaml:"axes"`
}

// fileView is the JSON/YAML form of the IRFs read from one file.
type fileView struct {
	File string      `json:"file" yaml:"file"`
	IRFs []tableView `json:"irfs" yaml:"irfs"`
}

func newFileView(path string, set irf.Set) fileView {
	view := fileView{File: path, IRFs: []tableView{}}
	for _, ext := range irf.CTAExtensions {
		resp, ok := set[ext.Key]
		if !ok {
			continue
		}
		view.IRFs = append(view.IRFs, newTableView(ext.Key, resp.Info()))
	}
	return view
}

func newTableView(key string, t *irf.Table) tableView {
	axes := make([]axisView, len(t.Axes))
	for i, a := range t.Axes {
		axes[i] = axisView{
			Name:   a.Name,
			Column: a.Column,
			Interp: string(a.Interp),
			Unit:   a.Unit,
			Bins:   a.Bins,
			Edges:  a.Edges,
		}
	}
	return tableView{
		Key:    key,
		Class:  t.Class,
		HDU:    t.HDU,
		Column: t.Data.Name,
		Unit:   t.Data.Unit,
		Shape:  t.Data.Shape,
		Axes:   axes,
	}
}
