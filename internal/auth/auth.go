// Package auth resolves the optional GitHub credential used for search requests.
// Anonymous access is valid; a token only raises the provider's rate limits.
package auth

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"
)

// DefaultHostname is the host gh stores github.com credentials under.
const DefaultHostname = "github.com"

// ErrNoToken indicates a provider had no token to offer.
var ErrNoToken = errors.New("no token available")

// TokenProvider defines the interface for obtaining a GitHub authentication token.
// Implementations may use different sources (environment variables, CLI tools, etc).
type TokenProvider interface {
	GetToken() (string, error)
	Name() string
}

// EnvProvider obtains tokens from environment variables, first non-empty wins.
type EnvProvider struct {
	Vars []string // Defaults to GITHUB_TOKEN, GH_TOKEN
}

// GetToken reads the configured environment variables in order.
func (e *EnvProvider) GetToken() (string, error) {
	vars := e.Vars
	if len(vars) == 0 {
		vars = []string{"GITHUB_TOKEN", "GH_TOKEN"}
	}
	for _, v := range vars {
		if token := strings.TrimSpace(os.Getenv(v)); token != "" {
			return token, nil
		}
	}
	return "", fmt.Errorf("%w: %s not set", ErrNoToken, strings.Join(vars, ", "))
}

// Name identifies the provider in logs.
func (e *EnvProvider) Name() string { return "env" }

// GhCliProvider obtains tokens by shelling out to the GitHub CLI (`gh auth token`).
type GhCliProvider struct {
	Command  string // Executable name, defaults to "gh"
	Hostname string // GitHub host to ask for, defaults to github.com
}

// GetToken shells out to `gh auth token` to retrieve the current token.
// Returns an error if gh CLI is not installed, not authenticated, or the command fails.
func (g *GhCliProvider) GetToken() (string, error) {
	command := g.Command
	if command == "" {
		command = "gh"
	}

	hostname := g.Hostname
	if hostname == "" {
		hostname = DefaultHostname
	}

	cmd := exec.Command(command, "auth", "token", "--hostname", hostname)
	output, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s CLI not found in PATH", ErrNoToken, command)
		}
		return "", fmt.Errorf("%w: %s auth token failed: %v", ErrNoToken, command, err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", fmt.Errorf("%w: %s auth token returned empty token", ErrNoToken, command)
	}
	return token, nil
}

// Name identifies the provider in logs.
func (g *GhCliProvider) Name() string { return "gh-cli" }

// Credential is the resolved token, empty for anonymous access.
type Credential struct {
	Token  string
	Source string // Provider name, empty when anonymous
}

// Anonymous reports whether no token was found.
func (c Credential) Anonymous() bool {
	return c.Token == ""
}

// DefaultProviders returns the lookup chain: environment first, then
// optionally the GitHub CLI, asked for the host serving apiURL.
func DefaultProviders(useGhCli bool, apiURL string) []TokenProvider {
	providers := []TokenProvider{&EnvProvider{}}
	if useGhCli {
		providers = append(providers, &GhCliProvider{Hostname: HostnameForAPI(apiURL)})
	}
	return providers
}

// HostnameForAPI maps a REST base URL to the hostname gh keys its tokens by.
// api.github.com belongs to github.com; an Enterprise server serves its API
// from its own host.
func HostnameForAPI(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Hostname() == "" {
		return DefaultHostname
	}
	host := strings.ToLower(u.Hostname())
	if host == "api.github.com" {
		return DefaultHostname
	}
	return host
}

// Resolve tries each provider in order and returns the first token found.
// The provider errors are returned joined for logging; they never make the
// credential unusable, anonymous access is the fallback.
func Resolve(providers ...TokenProvider) (Credential, error) {
	var errs []error
	for _, p := range providers {
		token, err := p.GetToken()
		if err == nil {
			return Credential{Token: token, Source: p.Name()}, nil
		}
		errs = append(errs, err)
	}
	return Credential{}, errors.Join(errs...)
}
