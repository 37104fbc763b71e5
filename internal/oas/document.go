// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package oas compiles field-definition rows into OpenAPI component schemas.
package oas

import (
	"github.com/dacolabs/schemagen/internal/ordered"
)

// OpenAPIVersion is the OpenAPI version written into every document.
const OpenAPIVersion = "3.0.0"

// Contact is the info.contact block.
type Contact struct {
	Name  string
	Email string
	URL   string
}

// License is the info.license block.
type License struct {
	Name string
	URL  string
}

// Info is the info block of a generated document.
type Info struct {
	Version        string
	Title          string
	Description    string
	TermsOfService string
	Contact        Contact
	License        License
}

// DefaultInfo returns the info block used when the project config sets none.
func DefaultInfo() Info {
	return Info{
		Version:        "5.0.0",
		TermsOfService: "http://placeholderdomain.io/terms/",
		Contact: Contact{
			Name:  "TIP Initiative",
			Email: "tipinitiative@frontrowadvisory.com",
			URL:   "http://placeholderdomain.io",
		},
		License: License{
			Name: "MIT",
			URL:  "https://opensource.org/licenses/MIT",
		},
	}
}

// Document is one generated OpenAPI document.
type Document struct {
	Info    Info
	Schemas *ordered.Map // name -> schema object, in discovery order
}

// NewDocument creates a document with no schemas.
func NewDocument(info Info) *Document {
	return &Document{Info: info, Schemas: ordered.New()}
}

// SchemaNames returns the schema names in discovery order.
func (d *Document) SchemaNames() []string {
	return d.Schemas.Keys()
}

// Schema returns the named schema object.
func (d *Document) Schema(name string) (*ordered.Map, bool) {
	v, ok := d.Schemas.Get(name)
	if !ok {
		return nil, false
	}
	m, ok := v.(*ordered.Map)
	return m, ok
}

// Map builds the ordered document tree handed to a writer.
func (d *Document) Map() *ordered.Map {
	info := ordered.FromPairs(
		"version", d.Info.Version,
		"title", d.Info.Title,
		"description", d.Info.Description,
		"termsOfService", d.Info.TermsOfService,
		"contact", ordered.FromPairs(
			"name", d.Info.Contact.Name,
			"email", d.Info.Contact.Email,
			"url", d.Info.Contact.URL,
		),
		"license", ordered.FromPairs(
			"name", d.Info.License.Name,
			"url", d.Info.License.URL,
		),
	)
	return ordered.FromPairs(
		"openapi", OpenAPIVersion,
		"info", info,
		"paths", ordered.New(),
		"components", ordered.FromPairs("schemas", d.Schemas),
	)
}
