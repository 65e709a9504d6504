package domain

import (
	"fmt"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func hrefFor(links []Link, rel string) string {
	link, ok := FindLink(links, rel)
	Expect(ok).To(BeTrue(), "missing %s link", rel)
	normalized, err := NormalizeURL(link.Href)
	Expect(err).NotTo(HaveOccurred())
	return normalized
}

func rels(links []Link) []string {
	names := make([]string, 0, len(links))
	for _, link := range links {
		names = append(names, link.Rel)
	}
	return names
}

var _ = Describe("GeneratePaginationLinks", func() {
	var requestURL URL

	BeforeEach(func() {
		var err error
		requestURL, err = ParseURL("http://testserver/users")
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("always returns links",
		func(skip int, limit int, totalItems int) {
			links := GeneratePaginationLinks(requestURL, skip, limit, totalItems)
			Expect(links).NotTo(BeEmpty())
			Expect(rels(links)).To(ContainElements("self", "first", "last"))
		},
		Entry("first page", 0, 5, 50),
		Entry("last page", 45, 5, 50),
		Entry("beyond last page", 50, 5, 50),
		Entry("negative skip", -5, 5, 50),
		Entry("no items", 0, 5, 0),
		Entry("zero limit", 0, 0, 50),
		Entry("negative limit", 10, -5, 50),
	)

	It("reproduces the current page in the self link", func() {
		links := GeneratePaginationLinks(requestURL, 10, 5, 50)
		Expect(len(links)).To(BeNumerically(">=", 4))
		Expect(links[0].Rel).To(Equal("self"))
		Expect(NormalizeURL(links[0].Href)).To(Equal("http://testserver/users?limit=5&skip=10"))
	})

	It("links to neighbouring pages in the middle of the result set", func() {
		links := GeneratePaginationLinks(requestURL, 10, 5, 50)
		Expect(rels(links)).To(Equal([]string{"self", "first", "last", "next", "prev"}))
		Expect(hrefFor(links, "first")).To(Equal("http://testserver/users?limit=5&skip=0"))
		Expect(hrefFor(links, "last")).To(Equal("http://testserver/users?limit=5&skip=45"))
		Expect(hrefFor(links, "next")).To(Equal("http://testserver/users?limit=5&skip=15"))
		Expect(hrefFor(links, "prev")).To(Equal("http://testserver/users?limit=5&skip=5"))
	})

	It("omits the prev link on the first page", func() {
		links := GeneratePaginationLinks(requestURL, 0, 5, 50)
		Expect(rels(links)).NotTo(ContainElement("prev"))
		Expect(rels(links)).To(ContainElement("next"))
	})

	It("omits the next link on the last page", func() {
		links := GeneratePaginationLinks(requestURL, 45, 5, 50)
		Expect(rels(links)).NotTo(ContainElement("next"))
		Expect(hrefFor(links, "prev")).To(Equal("http://testserver/users?limit=5&skip=40"))
	})

	It("clamps prev to the first page", func() {
		links := GeneratePaginationLinks(requestURL, 3, 5, 50)
		Expect(hrefFor(links, "prev")).To(Equal("http://testserver/users?limit=5&skip=0"))
	})

	It("passes a negative skip through to the self link", func() {
		links := GeneratePaginationLinks(requestURL, -5, 5, 50)
		Expect(hrefFor(links, "self")).To(Equal("http://testserver/users?limit=5&skip=-5"))
		Expect(rels(links)).NotTo(ContainElement("prev"))
	})

	It("points last at first when everything fits on one page", func() {
		links := GeneratePaginationLinks(requestURL, 0, 5, 3)
		Expect(hrefFor(links, "last")).To(Equal(hrefFor(links, "first")))

		links = GeneratePaginationLinks(requestURL, 0, 5, 0)
		Expect(hrefFor(links, "last")).To(Equal(hrefFor(links, "first")))
	})

	It("points last at a partial final page", func() {
		links := GeneratePaginationLinks(requestURL, 0, 5, 52)
		Expect(hrefFor(links, "last")).To(Equal("http://testserver/users?limit=5&skip=50"))
	})

	It("keeps unrelated query parameters", func() {
		withFilter, err := ParseURL("http://testserver/users?role=admin&skip=99")
		Expect(err).NotTo(HaveOccurred())
		links := GeneratePaginationLinks(withFilter, 0, 5, 50)
		Expect(hrefFor(links, "next")).To(Equal("http://testserver/users?limit=5&role=admin&skip=5"))
		Expect(withFilter.String()).To(Equal("http://testserver/users?role=admin&skip=99"))
	})

	It("does not overflow near the largest int", func() {
		links := GeneratePaginationLinks(requestURL, math.MaxInt-1, 10, math.MaxInt)
		Expect(rels(links)).NotTo(ContainElement("next"))
		lastSkip := (math.MaxInt - 1) / 10 * 10
		Expect(hrefFor(links, "last")).To(Equal(fmt.Sprintf("http://testserver/users?limit=10&skip=%d", lastSkip)))

		links = GeneratePaginationLinks(requestURL, 0, math.MaxInt, math.MaxInt)
		Expect(rels(links)).NotTo(ContainElement("next"))
		Expect(hrefFor(links, "last")).To(Equal(hrefFor(links, "first")))
	})

	It("never adds next for a negative total", func() {
		links := GeneratePaginationLinks(requestURL, 0, 10, math.MinInt)
		Expect(rels(links)).To(Equal([]string{"self", "first", "last"}))
	})
})
