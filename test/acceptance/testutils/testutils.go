package testutils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/technopolitica/open-users/internal/domain"
)

func GenerateRandomUUID() uuid.UUID {
	id, err := uuid.NewRandom()
	Expect(err).NotTo(HaveOccurred())
	return id
}

func MakeValidUser(n int) domain.UserCreate {
	return domain.UserCreate{
		Email:    fmt.Sprintf("user%03d@example.com", n),
		Nickname: fmt.Sprintf("user_%03d", n),
		Password: "Secure*1234",
	}
}

func ReadJSONBody[T any](res *http.Response) (output T) {
	data, err := io.ReadAll(res.Body)
	Expect(err).NotTo(HaveOccurred())
	defer res.Body.Close()
	Expect(json.Unmarshal(data, &output)).To(Succeed(), string(data))
	return
}
