package testutils

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"time"

	. "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega/gexec"
)

type APIServer struct {
	BaseURL *url.URL
	session *gexec.Session
	keyFile string
}

const rsa256BitSize = 128 * 8

func writePrivateKeyFile(privateKey *rsa.PrivateKey) (filePath string, err error) {
	file, err := os.CreateTemp("", "open-users-private-key*.pem")
	if err != nil {
		return
	}
	defer file.Close()
	err = pem.Encode(file, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privateKey)})
	filePath = file.Name()
	return
}

func findOpenPort() (addr *net.TCPAddr, err error) {
	addr, err = net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return
	}
	listener, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return
	}
	defer listener.Close()
	addr = listener.Addr().(*net.TCPAddr)
	return
}

func (server APIServer) waitToAcceptConnections(ctx context.Context) (err error) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	var connErr error
	for {
		select {
		case <-ticker.C:
			connErr = server.pingHealthEndpoint()
			if connErr == nil {
				return nil
			}
		case <-ctx.Done():
			return fmt.Errorf("cancelled (%s), last error: %w", context.Cause(ctx), connErr)
		}
	}
}

func (server APIServer) pingHealthEndpoint() (err error) {
	res, err := http.Get(server.BaseURL.JoinPath("health").String())
	if err != nil {
		return
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("got unexpected http status code in response: %s", res.Status)
	}
	return
}

// StartAPIServer runs the server binary against dbConnectionString with a
// freshly generated signing key. Tokens are obtained through /login, so the
// key never leaves the server process.
func StartAPIServer(ctx context.Context, serverBinaryPath string, dbConnectionString string) (server APIServer, err error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rsa256BitSize)
	if err != nil {
		err = fmt.Errorf("failed to generate private key: %w", err)
		return
	}
	keyFile, err := writePrivateKeyFile(privateKey)
	if err != nil {
		err = fmt.Errorf("failed to write private key file: %w", err)
		return
	}

	addr, err := findOpenPort()
	if err != nil {
		err = fmt.Errorf("failed to find open port: %w", err)
		return
	}
	serverCmd := exec.Command(
		serverBinaryPath,
		"-port", fmt.Sprint(addr.Port),
		"-db-url", dbConnectionString,
		"-private-key", fmt.Sprintf("file://%s", keyFile),
		"-bcrypt-rounds", "4",
	)
	session, err := gexec.Start(serverCmd, GinkgoWriter, GinkgoWriter)
	if err != nil {
		err = fmt.Errorf("failed to start server: %w", err)
		return
	}
	baseURL, err := url.Parse(fmt.Sprintf("http://%s", addr.String()))
	if err != nil {
		err = fmt.Errorf("failed to parse base URL: %w", err)
		return
	}
	server = APIServer{
		BaseURL: baseURL,
		session: session,
		keyFile: keyFile,
	}
	err = server.waitToAcceptConnections(ctx)
	return
}

func (server APIServer) Terminate() {
	server.session.Terminate().Wait()
	os.Remove(server.keyFile)
}
