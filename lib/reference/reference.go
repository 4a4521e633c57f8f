// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package reference inlines and strips the content of reference nodes.
//
// In bootstrap form a reference is target-only: the referenced item is
// authoritative. In dispatch form each reference also carries a shallow
// copy of the target's own fields. [Resolve] goes from the first form
// to the second using a [Namespace]; [Strip] goes back.
package reference

import (
	"strings"

	"github.com/claycms/claycli/lib/node"
	"github.com/claycms/claycli/lib/sitepath"
)

// InstancesKey holds the named instances inside an item body.
const InstancesKey = "instances"

// Namespace looks up the fields of a reference target.
type Namespace interface {
	Lookup(target string) (*node.Record, bool)
}

// Sections is the namespace formed by the components and layouts of one
// bootstrap document. Either section may be nil.
type Sections struct {
	Components *node.Record
	Layouts    *node.Record
}

// Lookup resolves target to the default variant of an item (without
// its instances) or to a named instance. Targets may carry a site
// prefix before the section ("example.com/_components/a").
func (s Sections) Lookup(target string) (*node.Record, bool) {
	location, ok := parseTarget(target)
	if !ok {
		return nil, false
	}
	var section *node.Record
	switch location.Kind {
	case sitepath.KindComponent:
		section = s.Components
	case sitepath.KindLayout:
		section = s.Layouts
	default:
		return nil, false
	}

	item, ok := section.Get(location.Name)
	if !ok || item.Record() == nil {
		return nil, false
	}
	body := item.Record()
	if location.Instance == "" {
		return body.Without(InstancesKey), true
	}
	instances, _ := body.Get(InstancesKey)
	instance, ok := instances.Record().Get(location.Instance)
	if !ok || instance.Record() == nil {
		return nil, false
	}
	return instance.Record(), true
}

func parseTarget(target string) (sitepath.Location, bool) {
	location, err := sitepath.Parse(target)
	if err != nil || !isItem(location) {
		start := -1
		for _, section := range []string{sitepath.Components, sitepath.Layouts} {
			if index := strings.Index(target, "/"+section+"/"); index >= 0 && (start < 0 || index < start) {
				start = index
			}
		}
		if start < 0 {
			return sitepath.Location{}, false
		}
		location, err = sitepath.Parse(target[start:])
	}
	if err != nil || !isItem(location) || location.Meta {
		return sitepath.Location{}, false
	}
	return location, true
}

func isItem(location sitepath.Location) bool {
	return location.Kind == sitepath.KindComponent || location.Kind == sitepath.KindLayout
}

// Resolve returns a copy of tree in which every reference carries the
// fields of its target. Fields are copied one level: references nested
// inside them are left as they are. Inline fields already present on a
// reference are replaced. A target the namespace does not know leaves a
// target-only reference and is reported to onMiss when it is non-nil.
func Resolve(tree node.Node, namespace Namespace, onMiss func(target string)) node.Node {
	switch tree.Kind() {
	case node.KindReference:
		fields, ok := namespace.Lookup(tree.Target())
		if !ok {
			if onMiss != nil {
				onMiss(tree.Target())
			}
			return node.Reference(tree.Target(), nil)
		}
		return node.Reference(tree.Target(), fields.Without(node.RefKey))
	case node.KindRecord:
		return node.Object(ResolveRecord(tree.Record(), namespace, onMiss))
	case node.KindArray:
		items := make([]node.Node, len(tree.Items()))
		for index, item := range tree.Items() {
			items[index] = Resolve(item, namespace, onMiss)
		}
		return node.Array(items...)
	default:
		return tree
	}
}

// ResolveRecord applies [Resolve] to every value of record.
func ResolveRecord(record *node.Record, namespace Namespace, onMiss func(target string)) *node.Record {
	resolved := node.NewRecord()
	for key, value := range record.All() {
		resolved.Set(key, Resolve(value, namespace, onMiss))
	}
	return resolved
}

// Strip returns a copy of tree with every reference reduced to its
// target.
func Strip(tree node.Node) node.Node {
	switch tree.Kind() {
	case node.KindReference:
		return node.Reference(tree.Target(), nil)
	case node.KindRecord:
		return node.Object(StripRecord(tree.Record()))
	case node.KindArray:
		items := make([]node.Node, len(tree.Items()))
		for index, item := range tree.Items() {
			items[index] = Strip(item)
		}
		return node.Array(items...)
	default:
		return tree
	}
}

// StripRecord applies [Strip] to every value of record.
func StripRecord(record *node.Record) *node.Record {
	stripped := node.NewRecord()
	for key, value := range record.All() {
		stripped.Set(key, Strip(value))
	}
	return stripped
}
