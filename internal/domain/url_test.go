package domain

import (
	"encoding/json"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NormalizeURL", func() {
	DescribeTable("sorts query parameters",
		func(input string, expected string) {
			Expect(NormalizeURL(input)).To(Equal(expected))
		},
		Entry(nil, "http://example.com?b=1&a=2", "http://example.com?a=2&b=1"),
		Entry(nil, "http://example.com?b=3&b=2&a=1", "http://example.com?a=1&b=2&b=3"),
		Entry(nil, "http://example.com?a=1&a=1", "http://example.com?a=1&a=1"),
		Entry(nil, "http://example.com", "http://example.com"),
		Entry(nil, "http://example.com/users/", "http://example.com/users"),
	)

	It("rejects unparseable URLs", func() {
		_, err := NormalizeURL("http://[::1")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("URL", func() {
	It("leaves the original untouched when modifying the query", func() {
		original, err := ParseURL("http://testserver/users?skip=1")
		Expect(err).NotTo(HaveOccurred())
		modified := original.ModifyQuery(func(query *url.Values) {
			query.Set("skip", "2")
		})
		Expect(original.String()).To(Equal("http://testserver/users?skip=1"))
		Expect(modified.String()).To(Equal("http://testserver/users?skip=2"))
	})

	It("round trips through JSON as a string", func() {
		original, err := ParseURL("http://testserver/users?skip=1")
		Expect(err).NotTo(HaveOccurred())
		data, err := json.Marshal(original)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(MatchJSON(`"http://testserver/users?skip=1"`))

		var decoded URL
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded.String()).To(Equal(original.String()))
	})
})
