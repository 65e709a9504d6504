package domain

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Link", func() {
	DescribeTable("keeps every field it was given",
		func(rel string, href string, method string, description string) {
			link := NewLink(rel, href, method, description)
			Expect(link.Rel).To(Equal(rel))
			Expect(link.Href).To(Equal(href))
			Expect(link.Method).To(Equal(method))
			Expect(link.Description).To(Equal(description))
		},
		Entry("self", "self", "http://example.com", "GET", "view"),
		Entry("create", "create", "http://example.com", "POST", "access"),
		Entry("edit", "edit", "http://example.com", "PUT", "access"),
		Entry("remove", "remove", "http://example.com", "DELETE", "access"),
		Entry("empty strings", "", "", "", ""),
	)

	It("does not reorder the query of the href", func() {
		link := NewLink("next", "http://example.com?b=1&a=2", "GET", "next page")
		Expect(link.Href).To(Equal("http://example.com?b=1&a=2"))
		Expect(NormalizeURL(link.Href)).To(Equal("http://example.com?a=2&b=1"))
	})

	It("marshals to JSON", func() {
		Expect(json.Marshal(NewLink("self", "http://example.com/users?a=1&b=2", "GET", "view"))).To(MatchJSON(`{
			"rel": "self",
			"href": "http://example.com/users?a=1&b=2",
			"method": "GET",
			"description": "view"
		}`))
	})

	It("finds links by relation", func() {
		links := []Link{NewLink("self", "a", "GET", ""), NewLink("next", "b", "GET", "")}
		link, ok := FindLink(links, "next")
		Expect(ok).To(BeTrue())
		Expect(link).To(Equal(links[1]))
		_, ok = FindLink(links, "prev")
		Expect(ok).To(BeFalse())
	})
})
