package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/20uf/rexpress/internal/verbose"
)

const (
	repoOwner  = "20uf"
	repoName   = "rexpress"
	defaultAPI = "https://api.github.com"
)

type githubRelease struct {
	TagName    string  `json:"tag_name"`
	Prerelease bool    `json:"prerelease"`
	Assets     []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Updater talks to the GitHub releases API of rexpress.
type Updater struct {
	apiURL string
	client *http.Client
}

// New creates an updater against api.github.com.
func New() *Updater {
	return &Updater{
		apiURL: defaultAPI,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (u *Updater) releasesURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/releases", strings.TrimSuffix(u.apiURL, "/"), repoOwner, repoName)
}

// Check queries GitHub for the most recent release and returns whether an update is available.
// If preRelease is false, only stable releases are considered.
func (u *Updater) Check(ctx context.Context, currentVersion string, preRelease bool) (latestVersion string, hasUpdate bool, err error) {
	if !preRelease {
		var release githubRelease
		if err := u.getJSON(ctx, u.releasesURL()+"/latest", &release); err != nil {
			return "", false, fmt.Errorf("no stable release found: %w", err)
		}
		return compareVersions(currentVersion, release.TagName)
	}

	var releases []githubRelease
	if err := u.getJSON(ctx, u.releasesURL()+"?per_page=1", &releases); err != nil {
		return "", false, fmt.Errorf("failed to fetch releases: %w", err)
	}
	if len(releases) == 0 {
		return "", false, fmt.Errorf("no releases found")
	}
	return compareVersions(currentVersion, releases[0].TagName)
}

// Apply downloads and replaces the current binary with the specified version.
func (u *Updater) Apply(ctx context.Context, version string) error {
	var release githubRelease
	tag := ensureVPrefix(version)
	if err := u.getJSON(ctx, u.releasesURL()+"/tags/"+tag, &release); err != nil {
		return fmt.Errorf("release %s not found: %w", tag, err)
	}

	downloadURL := findAsset(release, buildAssetName())
	if downloadURL == "" {
		return fmt.Errorf("no asset found for %s/%s (%s)", runtime.GOOS, runtime.GOARCH, buildAssetName())
	}

	return u.downloadAndReplace(ctx, downloadURL)
}

func (u *Updater) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	verbose.Log("GET %s", url)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GitHub returned status %d", resp.StatusCode)
	}
	return resp, nil
}

func (u *Updater) getJSON(ctx context.Context, url string, v any) error {
	resp, err := u.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func findAsset(release githubRelease, name string) string {
	for _, a := range release.Assets {
		if a.Name == name {
			return a.BrowserDownloadURL
		}
	}
	return ""
}

func compareVersions(currentVersion, latestTag string) (string, bool, error) {
	latest := ensureVPrefix(latestTag)
	current := ensureVPrefix(currentVersion)

	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return strings.TrimPrefix(latest, "v"), current != latest, nil
	}

	hasUpdate := semver.Compare(current, latest) < 0
	return strings.TrimPrefix(latest, "v"), hasUpdate, nil
}

func (u *Updater) downloadAndReplace(ctx context.Context, url string) error {
	resp, err := u.get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "rexpress-update-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write update: %w", err)
	}
	tmpFile.Close()

	if err := os.Chmod(tmpFile.Name(), 0755); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), execPath); err != nil {
		if os.IsPermission(err) {
			fmt.Println("Permission denied, retrying with sudo...")
			cmd := exec.Command("sudo", "mv", tmpFile.Name(), execPath)
			cmd.Stdin = os.Stdin
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if sudoErr := cmd.Run(); sudoErr != nil {
				return fmt.Errorf("failed to replace binary with sudo: %w", sudoErr)
			}
			return nil
		}
		return fmt.Errorf("failed to replace binary: %w", err)
	}

	return nil
}

func buildAssetName() string {
	return fmt.Sprintf("rexpress_%s_%s", runtime.GOOS, runtime.GOARCH)
}

func ensureVPrefix(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
