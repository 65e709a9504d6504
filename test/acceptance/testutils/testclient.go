package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	. "github.com/onsi/gomega"
	"github.com/technopolitica/open-users/internal/domain"
)

type TestClient struct {
	baseURL   url.URL
	authToken string
}

func NewTestClient(baseURL url.URL) *TestClient {
	return &TestClient{baseURL: baseURL}
}

func (client *TestClient) BaseURL() *url.URL {
	copy := client.baseURL
	return &copy
}

func (client *TestClient) Unauthenticate() {
	client.authToken = ""
}

func (client *TestClient) sendRequest(method string, endpoint string, body any) (res *http.Response) {
	var payload *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		payload = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, endpoint, payload)
	Expect(err).NotTo(HaveOccurred())
	if client.authToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", client.authToken))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err = http.DefaultClient.Do(req)
	Expect(err).NotTo(HaveOccurred())
	return
}

func (client *TestClient) endpoint(path ...string) string {
	return client.baseURL.JoinPath(path...).String()
}

// Follow issues a request against an absolute link returned by the API.
func (client *TestClient) Follow(link domain.Link) *http.Response {
	return client.sendRequest(link.Method, link.Href, nil)
}

func (client *TestClient) Register(user domain.UserCreate) *http.Response {
	return client.sendRequest("POST", client.endpoint("register"), user)
}

func (client *TestClient) Login(email string, password string) *http.Response {
	return client.sendRequest("POST", client.endpoint("login"), domain.LoginRequest{Email: email, Password: password})
}

// LoginAs logs in and uses the returned token for subsequent requests.
func (client *TestClient) LoginAs(email string, password string) {
	res := client.Login(email, password)
	Expect(res).To(HaveHTTPStatus(http.StatusOK))
	defer res.Body.Close()
	var token domain.TokenResponse
	Expect(json.NewDecoder(res.Body).Decode(&token)).To(Succeed())
	client.authToken = token.AccessToken
}

func (client *TestClient) CreateUser(user domain.UserCreate) *http.Response {
	return client.sendRequest("POST", client.endpoint("users"), user)
}

type ListUsersOptions struct {
	Skip  int
	Limit int
}

func (client *TestClient) ListUsers(options ListUsersOptions) *http.Response {
	endpoint := client.baseURL.JoinPath("users")
	query := endpoint.Query()
	// Default to a limit of 10 so that the zero value of the options struct is usable.
	if options.Limit == 0 {
		options.Limit = 10
	}
	query.Add("limit", fmt.Sprint(options.Limit))
	if options.Skip != 0 {
		query.Add("skip", fmt.Sprint(options.Skip))
	}
	endpoint.RawQuery = query.Encode()
	return client.sendRequest("GET", endpoint.String(), nil)
}
