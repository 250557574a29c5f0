package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/DataDog/github-app-token/pkg/appauth"
)

var keyPath, appID, installationID, apiURL string

func init() {
	flag.StringVar(&keyPath, "key-path", "", "path to the GitHub App private key PEM file (or GITHUB_PEM_PATH)")
	flag.StringVar(&keyPath, "k", "", "path to the GitHub App private key PEM file (or GITHUB_PEM_PATH)")
	flag.StringVar(&appID, "app-id", "", "GitHub App ID (or GITHUB_APP_ID)")
	flag.StringVar(&appID, "a", "", "GitHub App ID (or GITHUB_APP_ID)")
	flag.StringVar(&installationID, "installation-id", "", "GitHub App installation ID (or GITHUB_INSTALLATION_ID)")
	flag.StringVar(&installationID, "i", "", "GitHub App installation ID (or GITHUB_INSTALLATION_ID)")
	flag.StringVar(&apiURL, "api-url", "", "GitHub API base URL for GitHub Enterprise Server (defaults to https://api.github.com)")
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	if keyPath == "" {
		keyPath = os.Getenv("GITHUB_PEM_PATH")
	}
	if appID == "" {
		appID = os.Getenv("GITHUB_APP_ID")
	}
	if installationID == "" {
		installationID = os.Getenv("GITHUB_INSTALLATION_ID")
	}
	if keyPath == "" || appID == "" || installationID == "" {
		return fmt.Errorf("key path, app ID and installation ID are required")
	}

	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("read private key: %w", err)
	}

	exchanger := &appauth.Exchanger{APIBaseURL: apiURL}
	token, err := exchanger.FetchToken(ctx, keyPEM, appID, installationID)
	if err != nil {
		return fmt.Errorf("github app token: %w", err)
	}

	fmt.Printf("Installation Token: %s\n", token.Token)
	fmt.Printf("Expires at: %s\n", token.ExpiresAt)
	return nil
}
