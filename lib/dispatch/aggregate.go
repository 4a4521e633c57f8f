// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
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

// ToBootstrap drains entries and assembles one document.
//
// Each entry is merged into the slot its path addresses. Merging is
// shallow: an entry adds or overwrites only the keys it carries, so a
// "/meta" entry attaches under the slot's meta key without touching
// the slot's other fields, whichever arrives first. References in
// component and layout values are reduced to their targets, pages are
// normalized for the legacy url field, and every user entry appends
// one user. The first error aborts the reduction.
func ToBootstrap(entries iter.Seq2[Entry, error], options ...Option) (*bootstrap.Document, error) {
	config := newSettings(options)
	accumulator := newAggregator(config.logger)
	for entry, err := range entries {
		if err != nil {
			return nil, err
		}
		if err := accumulator.add(entry); err != nil {
			return nil, fmt.Errorf("dispatch entry %s: %w", entry.Path, err)
		}
	}
	return accumulator.document()
}

// aggregator owns the tree under construction. Every record reachable
// from root was created by the aggregator or cloned from an entry, so
// merges never write into caller data.
type aggregator struct {
	root   *node.Record
	users  []node.Node
	logger *slog.Logger
}

func newAggregator(logger *slog.Logger) *aggregator {
	return &aggregator{root: node.NewRecord(), logger: logger}
}

func (a *aggregator) add(entry Entry) error {
	location, err := entry.Location()
	if err != nil {
		return err
	}

	switch location.Kind {
	case sitepath.KindComponent, sitepath.KindLayout:
		keys := []string{location.Section, location.Name}
		if location.Instance != "" {
			keys = append(keys, reference.InstancesKey, location.Instance)
		}
		return a.merge(location, keys, reference.Strip(entry.Value))

	case sitepath.KindPage:
		value := entry.Value
		if !location.Meta {
			page := value.Record()
			if page == nil {
				return fmt.Errorf("page value must be a record, got %s", value.Kind())
			}
			value = node.Object(legacy.NormalizePage(page))
		}
		return a.merge(location, []string{location.Section, location.Name}, node.Clone(value))

	case sitepath.KindUser:
		user, err := identity.FromNode(entry.Value)
		if err != nil {
			return err
		}
		if user.ID() != location.Name {
			a.logger.Debug("user path does not match user id", "path", entry.Path, "id", user.ID())
		}
		a.users = append(a.users, node.Object(user.Record()))
		return nil

	default:
		section, err := slot(a.root, location.Section)
		if err != nil {
			return err
		}
		section.Set(location.Name, node.Clone(entry.Value))
		return nil
	}
}

// merge folds value into the slot at keys, or into the slot's meta
// field for meta locations.
func (a *aggregator) merge(location sitepath.Location, keys []string, value node.Node) error {
	target, err := slot(a.root, keys...)
	if err != nil {
		return err
	}
	if location.Meta {
		if value.Kind() != node.KindRecord {
			target.Set(MetaKey, value)
			return nil
		}
		if target, err = slot(target, MetaKey); err != nil {
			return err
		}
	} else if value.Kind() != node.KindRecord {
		return fmt.Errorf("value must be a record, got %s", value.Kind())
	}
	mergeRecord(target, value.Record())
	return nil
}

// slot walks keys from record, creating empty records for missing or
// null keys, and returns the record at the end of the path.
func slot(record *node.Record, keys ...string) (*node.Record, error) {
	for _, key := range keys {
		value, ok := record.Get(key)
		if !ok || value.IsNull() {
			child := node.NewRecord()
			record.Set(key, node.Object(child))
			record = child
			continue
		}
		child := value.Record()
		if child == nil {
			return nil, fmt.Errorf("cannot merge into %q: it holds a %s", key, value.Kind())
		}
		record = child
	}
	return record, nil
}

func mergeRecord(target, source *node.Record) {
	for key, value := range source.All() {
		target.Set(key, value)
	}
}

func (a *aggregator) document() (*bootstrap.Document, error) {
	document, err := bootstrap.FromRecord(a.root)
	if err != nil {
		return nil, err
	}
	if len(a.users) > 0 {
		document.Users = a.users
	}
	return document, nil
}
