// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/claycms/claycli/lib/bootstrap"
	"github.com/claycms/claycli/lib/identity"
	"github.com/claycms/claycli/lib/legacy"
	"github.com/claycms/claycli/lib/node"
	"github.com/claycms/claycli/lib/reference"
	"github.com/claycms/claycli/lib/sitepath"
)

// MetaKey is the field split off into its own "/meta" entry.
const MetaKey = "meta"

// ToDispatch returns the dispatch entries of documents, in order.
//
// Within a document the sections are visited as components, layouts,
// pages, users, then the remaining top-level keys in document order.
// For every component and layout, the default variant is emitted
// first, followed by its named instances; references inside them
// carry the fields of their targets, looked up among the same
// document's components and layouts. Meta fields of items and pages
// follow their main entry as separate "/meta" entries. Users are all
// validated before the first user entry; an invalid user ends the
// stream with an [identity.ValidationError].
func ToDispatch(documents iter.Seq2[*bootstrap.Document, error], options ...Option) iter.Seq2[Entry, error] {
	config := newSettings(options)
	return func(yield func(Entry, error) bool) {
		index := 0
		for document, err := range documents {
			if err != nil {
				yield(Entry{}, err)
				return
			}
			if document == nil {
				continue
			}
			emitter := &generator{yield: yield, logger: config.logger.With("document", index)}
			if err := emitter.document(document); err != nil {
				var validation *identity.ValidationError
				if !errors.As(err, &validation) {
					err = fmt.Errorf("bootstrap document %d: %w", index, err)
				}
				yield(Entry{}, err)
				return
			}
			if emitter.stopped {
				return
			}
			index++
		}
	}
}

// errStopped unwinds the generator after the consumer stops.
var errStopped = errors.New("dispatch: consumer stopped")

type generator struct {
	yield   func(Entry, error) bool
	logger  *slog.Logger
	stopped bool
}

func (g *generator) emit(location sitepath.Location, value node.Node) error {
	if !g.yield(NewEntry(location, value), nil) {
		g.stopped = true
		return errStopped
	}
	return nil
}

// document emits every entry of one document. It returns nil when the
// consumer stopped early, with g.stopped set.
func (g *generator) document(document *bootstrap.Document) error {
	namespace := document.Namespace()
	steps := []func() error{
		func() error { return g.items(sitepath.KindComponent, document.Components, namespace) },
		func() error { return g.items(sitepath.KindLayout, document.Layouts, namespace) },
		func() error { return g.pages(document.Pages) },
		func() error { return g.users(document.Users) },
		func() error { return g.arbitrary(document.Extra) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			if errors.Is(err, errStopped) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (g *generator) items(kind sitepath.Kind, section *node.Record, namespace reference.Namespace) error {
	for name, value := range section.All() {
		location := sitepath.Item(kind, name)
		body := value.Record()
		if body == nil {
			return shapeError(location, "a record", value)
		}
		if err := g.variant(location, body.Without(reference.InstancesKey), namespace); err != nil {
			return err
		}

		instances, _ := body.Get(reference.InstancesKey)
		if instances.IsNull() {
			continue
		}
		if instances.Kind() != node.KindRecord {
			return shapeError(location, "a record of instances", instances)
		}
		for instanceName, instance := range instances.Record().All() {
			instanceLocation := location.WithInstance(instanceName)
			if instance.Record() == nil {
				return shapeError(instanceLocation, "a record", instance)
			}
			if err := g.variant(instanceLocation, instance.Record(), namespace); err != nil {
				return err
			}
		}
	}
	return nil
}

// variant emits one default variant or instance: resolved fields at
// location, then meta at location/meta.
func (g *generator) variant(location sitepath.Location, fields *node.Record, namespace reference.Namespace) error {
	resolved := reference.ResolveRecord(fields, namespace, func(target string) {
		g.logger.Debug("reference target not found", "path", location.String(), "target", target)
	})
	return g.split(location, resolved)
}

func (g *generator) split(location sitepath.Location, fields *node.Record) error {
	meta, hasMeta := fields.Get(MetaKey)
	if main := fields.Without(MetaKey); main.Len() > 0 {
		if err := g.emit(location, node.Object(main)); err != nil {
			return err
		}
	}
	if hasMeta {
		return g.emit(location.WithMeta(), meta)
	}
	return nil
}

func (g *generator) pages(section *node.Record) error {
	for name, value := range section.All() {
		location := sitepath.Page(name)
		if location.Name == "" {
			return fmt.Errorf("page %q: empty page name", name)
		}
		if value.Record() == nil {
			return shapeError(location, "a record", value)
		}
		if err := g.split(location, legacy.NormalizePage(value.Record())); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) users(values []node.Node) error {
	users, err := identity.ValidateAll(values)
	if err != nil {
		return err
	}
	for _, user := range users {
		if err := g.emit(sitepath.User(user.ID()), node.Object(user.Record())); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) arbitrary(extra *node.Record) error {
	for section, value := range extra.All() {
		if value.IsNull() {
			continue
		}
		if value.Kind() != node.KindRecord {
			return &bootstrap.ShapeError{Section: section, Want: "a record", Got: value.Kind()}
		}
		for key, element := range value.Record().All() {
			if err := g.emit(sitepath.Arbitrary(section, key), element); err != nil {
				return err
			}
		}
	}
	return nil
}

func shapeError(location sitepath.Location, want string, value node.Node) error {
	return &bootstrap.ShapeError{Section: location.String(), Want: want, Got: value.Kind()}
}
