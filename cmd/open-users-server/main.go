package main

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/technopolitica/open-users/internal/password"
	"github.com/technopolitica/open-users/internal/server"
)

func loadPrivateKey(privateKeyURL *url.URL) (privateKey *rsa.PrivateKey, err error) {
	switch privateKeyURL.Scheme {
	case "file":
		var pemBytes []byte
		pemBytes, err = os.ReadFile(privateKeyURL.Path)
		if err != nil {
			return
		}
		pemBlock, _ := pem.Decode(pemBytes)
		if pemBlock == nil {
			err = fmt.Errorf("no PEM data found in %s", privateKeyURL.Path)
			return
		}
		if pemBlock.Type != "RSA PRIVATE KEY" {
			err = fmt.Errorf("invalid private key of type %s", pemBlock.Type)
			return
		}
		privateKey, err = x509.ParsePKCS1PrivateKey(pemBlock.Bytes)
		return
	default:
		err = fmt.Errorf("unsupported private key source: %s", privateKeyURL.Scheme)
		return
	}
}

var (
	dbURL        = flag.String("db-url", "", "URL-formatted connection string to the database server. Currently only postgres:// URLS are supported.")
	port         = flag.Int("port", 0, "port to listen on")
	privateKey   = flag.String("private-key", "", "URL to the RSA private key used to sign auth tokens. Currently only file:// URLs are supported.")
	bcryptRounds = flag.String("bcrypt-rounds", fmt.Sprint(password.DefaultRounds), "bcrypt work factor used for new password hashes")
	tokenTTL     = flag.Duration("token-ttl", server.DefaultTokenTTL, "lifetime of issued auth tokens")
)

func main() {
	ctx := context.Background()

	flag.Parse()
	if *dbURL == "" {
		log.Print("-db-url is required\n")
		flag.Usage()
		os.Exit(1)
	}

	if *privateKey == "" {
		log.Print("-private-key is required\n")
		flag.Usage()
		os.Exit(1)
	}
	privateKeyURL, err := url.Parse(*privateKey)
	if err != nil {
		log.Fatalf("failed to parse private key as URL: %s\n", err)
	}
	if privateKeyURL.Path == "" {
		log.Fatalf("private key url cannot have an empty path\n")
	}
	signingKey, err := loadPrivateKey(privateKeyURL)
	if err != nil {
		log.Fatalf("failed to read private key: %s\n", err)
	}

	rounds, err := password.ParseRounds(*bcryptRounds)
	if err != nil {
		log.Fatalf("invalid -bcrypt-rounds: %s\n", err)
	}
	hasher, err := password.NewHasher(rounds)
	if err != nil {
		log.Fatalf("failed to construct password hasher: %s\n", err)
	}

	db, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %s\n", err)
	}
	defer db.Close()

	router := server.New(&server.Env{
		Connect:    server.PoolConnector(db),
		Hasher:     hasher,
		SigningKey: signingKey,
		TokenTTL:   *tokenTTL,
	})
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		log.Fatalf("failed to listen on specified address: %s\n", err)
	}

	done := make(chan error)
	go func() {
		done <- http.Serve(listener, router)
	}()
	log.Printf("listening on http://%s...\n", listener.Addr())
	err = <-done
	if err != nil {
		log.Fatalf("failed to start server: %s", err)
	}
	fmt.Printf("shutting down...")
}
