// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package sitepath translates between structured locations in a site
// and the path strings carried by dispatch entries.
//
// The grammar, with every emitted path starting with "/":
//
//	item-path      = ("_components" | "_layouts") "/" name ["/instances/" instance]
//	item-meta-path = item-path "/meta"
//	page-path      = "_pages/" name ["/meta"]
//	user-path      = "_users/" id
//	arbitrary-path = topKey "/" subKey
//
// Leading slashes on names are dropped when encoding. The one
// exception is the root key "/" of an arbitrary section (for example
// the "/" entry of _uris): it encodes as an empty sub-key ("/_uris/")
// and [Parse] turns the empty sub-key back into "/".
package sitepath

import (
	"fmt"
	"strings"
)

// Section names of the canonical top-level keys.
const (
	Components = "_components"
	Layouts    = "_layouts"
	Pages      = "_pages"
	Users      = "_users"
)

const (
	instancesSegment = "instances"
	metaSegment      = "meta"
	rootKey          = "/"
)

// Kind classifies a location.
type Kind uint8

const (
	KindArbitrary Kind = iota
	KindComponent
	KindLayout
	KindPage
	KindUser
)

// String returns the section name for canonical kinds.
func (k Kind) String() string {
	switch k {
	case KindComponent:
		return Components
	case KindLayout:
		return Layouts
	case KindPage:
		return Pages
	case KindUser:
		return Users
	default:
		return "arbitrary"
	}
}

// SectionKind returns the kind addressed by a top-level key.
func SectionKind(section string) Kind {
	switch section {
	case Components:
		return KindComponent
	case Layouts:
		return KindLayout
	case Pages:
		return KindPage
	case Users:
		return KindUser
	default:
		return KindArbitrary
	}
}

// Location is a decoded path.
type Location struct {
	Kind Kind
	// Section is the top-level key. For canonical kinds it is the
	// section name; for arbitrary paths it is the top key.
	Section string
	// Name is the item or page name, the user id, or the sub-key of an
	// arbitrary section.
	Name string
	// Instance names an instance of a component or layout.
	Instance string
	// Meta marks the "/meta" trailing segment of items and pages.
	Meta bool
}

// Item addresses the default variant of a component or layout. kind
// must be KindComponent or KindLayout.
func Item(kind Kind, name string) Location {
	return Location{Kind: kind, Section: kind.String(), Name: trimName(name)}
}

// Component addresses the default variant of a component.
func Component(name string) Location {
	return Item(KindComponent, name)
}

// Layout addresses the default variant of a layout.
func Layout(name string) Location {
	return Item(KindLayout, name)
}

// Page addresses a page.
func Page(name string) Location {
	return Location{Kind: KindPage, Section: Pages, Name: trimName(name)}
}

// User addresses a user by its encoded id.
func User(id string) Location {
	return Location{Kind: KindUser, Section: Users, Name: id}
}

// Arbitrary addresses one sub-key of a non-canonical top-level key.
func Arbitrary(section, key string) Location {
	return Location{Kind: KindArbitrary, Section: section, Name: key}
}

// WithInstance returns the location of the named instance of an item.
func (l Location) WithInstance(instance string) Location {
	l.Instance = trimName(instance)
	return l
}

// WithMeta returns the location of the meta entry of an item or page.
func (l Location) WithMeta() Location {
	l.Meta = true
	return l
}

// Base returns the location without its meta segment.
func (l Location) Base() Location {
	l.Meta = false
	return l
}

// String encodes the location as a dispatch path.
func (l Location) String() string {
	var builder strings.Builder
	builder.WriteByte('/')
	builder.WriteString(l.Section)
	builder.WriteByte('/')
	switch l.Kind {
	case KindComponent, KindLayout:
		builder.WriteString(trimName(l.Name))
		if l.Instance != "" {
			builder.WriteString("/" + instancesSegment + "/")
			builder.WriteString(trimName(l.Instance))
		}
		if l.Meta {
			builder.WriteString("/" + metaSegment)
		}
	case KindPage:
		builder.WriteString(trimName(l.Name))
		if l.Meta {
			builder.WriteString("/" + metaSegment)
		}
	case KindUser:
		builder.WriteString(l.Name)
	default:
		builder.WriteString(trimName(l.Name))
	}
	return builder.String()
}

// ParseError reports a path that does not fit the grammar.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid dispatch path %q: %s", e.Path, e.Reason)
}

// Parse decodes a dispatch path. Any number of leading slashes is
// accepted.
func Parse(path string) (Location, error) {
	fail := func(reason string) (Location, error) {
		return Location{}, &ParseError{Path: path, Reason: reason}
	}

	section, rest, found := strings.Cut(strings.TrimLeft(path, "/"), "/")
	if section == "" {
		return fail("missing top-level key")
	}
	if !found {
		return fail("missing key after " + section)
	}

	switch kind := SectionKind(section); kind {
	case KindComponent, KindLayout:
		segments := strings.Split(trimName(rest), "/")
		location := Location{Kind: kind, Section: section, Name: segments[0]}
		if location.Name == "" {
			return fail("missing item name")
		}
		remaining := segments[1:]
		if len(remaining) > 0 && remaining[0] == instancesSegment {
			if len(remaining) < 2 || remaining[1] == "" {
				return fail("missing instance name")
			}
			location.Instance = remaining[1]
			remaining = remaining[2:]
		}
		if len(remaining) == 1 && remaining[0] == metaSegment {
			location.Meta = true
			remaining = nil
		}
		if len(remaining) > 0 {
			return fail(fmt.Sprintf("unexpected segment %q", remaining[0]))
		}
		return location, nil

	case KindPage:
		name, meta := strings.CutSuffix(trimName(rest), "/"+metaSegment)
		if name == "" {
			return fail("missing page name")
		}
		return Location{Kind: kind, Section: section, Name: name, Meta: meta}, nil

	case KindUser:
		// Standard base64 ids may contain "/", so the id is the whole
		// remainder.
		if rest == "" {
			return fail("missing user id")
		}
		return Location{Kind: kind, Section: section, Name: rest}, nil

	default:
		if rest == "" {
			rest = rootKey
		}
		return Location{Kind: KindArbitrary, Section: section, Name: rest}, nil
	}
}

func trimName(name string) string {
	return strings.TrimLeft(name, "/")
}
