package acceptance

import (
	"net/http"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/technopolitica/open-users/internal/domain"
	"github.com/technopolitica/open-users/test/acceptance/testutils"
	"github.com/technopolitica/open-users/test/matchers"
)

func fetchPage(options testutils.ListUsersOptions) domain.UserListResponse {
	res := apiClient.ListUsers(options)
	Expect(res).To(HaveHTTPStatus(http.StatusOK))
	return testutils.ReadJSONBody[domain.UserListResponse](res)
}

func linkNamed(links []domain.Link, rel string) domain.Link {
	link, ok := domain.FindLink(links, rel)
	Expect(ok).To(BeTrue(), "missing %s link", rel)
	return link
}

var _ = Describe("/users", func() {
	Context("unauthenticated", func() {
		It("returns 401 Unauthorized status", func() {
			Expect(apiClient.ListUsers(testutils.ListUsersOptions{})).To(HaveHTTPStatus(http.StatusUnauthorized))
		})
	})

	Context("authenticated as the bootstrap admin", Ordered, func() {
		admin := testutils.MakeValidUser(0)

		BeforeAll(func() {
			Expect(apiClient.Register(admin)).To(HaveHTTPStatus(http.StatusCreated))
			apiClient.LoginAs(admin.Email, admin.Password)
		})

		It("creates users with hypermedia links", func() {
			res := apiClient.CreateUser(testutils.MakeValidUser(1))
			Expect(res).To(HaveHTTPStatus(http.StatusCreated))
			created := testutils.ReadJSONBody[domain.UserResponse](res)
			Expect(created.Links).To(HaveLen(3))

			self := linkNamed(created.Links, "self")
			Expect(self.Href).To(ContainSubstring(created.ID.String()))
			fetched := apiClient.Follow(self)
			Expect(fetched).To(HaveHTTPStatus(http.StatusOK))
			Expect(testutils.ReadJSONBody[domain.UserResponse](fetched).Email).To(Equal(created.Email))
		})

		It("rejects duplicate registrations", func() {
			res := apiClient.CreateUser(admin)
			Expect(res).To(HaveHTTPStatus(http.StatusBadRequest))
			Expect(testutils.ReadJSONBody[domain.ApiError](res).Type).To(Equal(domain.ApiErrorTypeAlreadyRegistered))
		})

		It("deletes users through their delete link", func() {
			created := testutils.ReadJSONBody[domain.UserResponse](apiClient.CreateUser(testutils.MakeValidUser(2)))
			Expect(apiClient.Follow(linkNamed(created.Links, "delete"))).To(HaveHTTPStatus(http.StatusNoContent))
			Expect(apiClient.Follow(linkNamed(created.Links, "self"))).To(HaveHTTPStatus(http.StatusNotFound))
		})

		Describe("pagination", Ordered, func() {
			BeforeAll(func() {
				for i := 10; i < 21; i++ {
					Expect(apiClient.CreateUser(testutils.MakeValidUser(i))).To(HaveHTTPStatus(http.StatusCreated))
				}
			})

			It("links every page of the result set", func() {
				page := fetchPage(testutils.ListUsersOptions{Limit: 5})
				Expect(page.Items).To(HaveLen(5))
				Expect(linkNamed(page.Links, "self").Href).To(matchers.MatchURL(apiClient.BaseURL().JoinPath("users").String() + "?skip=0&limit=5"))
				Expect(page.Links).NotTo(ContainElement(HaveField("Rel", "prev")))

				seen := map[string]bool{}
				for {
					for _, item := range page.Items {
						Expect(seen).NotTo(HaveKey(item.Email))
						seen[item.Email] = true
					}
					next, ok := domain.FindLink(page.Links, "next")
					if !ok {
						break
					}
					res := apiClient.Follow(next)
					Expect(res).To(HaveHTTPStatus(http.StatusOK))
					page = testutils.ReadJSONBody[domain.UserListResponse](res)
				}
				Expect(seen).To(HaveLen(int(page.Total)))
				Expect(linkNamed(page.Links, "self").Href).To(matchers.MatchURL(linkNamed(page.Links, "last").Href))
			})

			It("walks back with prev links", func() {
				first := fetchPage(testutils.ListUsersOptions{Limit: 5})
				last := testutils.ReadJSONBody[domain.UserListResponse](apiClient.Follow(linkNamed(first.Links, "last")))
				prev := testutils.ReadJSONBody[domain.UserListResponse](apiClient.Follow(linkNamed(last.Links, "prev")))
				Expect(prev.Skip).To(Equal(last.Skip - 5))
			})
		})
	})
})

var _ = Describe("/register", func() {
	It("bootstraps exactly one admin under concurrent registrations", func() {
		const registrations = 10
		roles := make(chan domain.UserRole, registrations)
		var wg sync.WaitGroup
		for i := 0; i < registrations; i++ {
			wg.Add(1)
			go func(user domain.UserCreate) {
				defer GinkgoRecover()
				defer wg.Done()
				res := apiClient.Register(user)
				Expect(res).To(HaveHTTPStatus(http.StatusCreated))
				roles <- testutils.ReadJSONBody[domain.UserResponse](res).Role
			}(testutils.MakeValidUser(i))
		}
		wg.Wait()
		close(roles)

		admins := 0
		for role := range roles {
			if role == domain.UserRoleAdmin {
				admins++
			} else {
				Expect(role).To(Equal(domain.UserRoleAuthenticated))
			}
		}
		Expect(admins).To(Equal(1))
	})
})
