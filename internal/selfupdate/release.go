package selfupdate

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const checksumsAsset = "checksums.txt"

var ErrChecksum = errors.New("checksum verification failed")

type release struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name string `json:"name"`
	URL  string `json:"browser_download_url"`
}

func (r *release) asset(name string) (asset, error) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, nil
		}
	}
	return asset{}, fmt.Errorf("release %s has no asset %s", r.TagName, name)
}

// platform names the OS and architecture a release archive is built for.
type platform struct {
	goos, goarch string
}

func currentPlatform() platform {
	return platform{goos: runtime.GOOS, goarch: runtime.GOARCH}
}

var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// archive is the release asset holding the binary for p. macOS ships a
// single universal archive.
func (p platform) archive() (string, error) {
	if p.goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}

	arch, ok := releaseArch[p.goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", p.goarch)
	}
	switch p.goos {
	case "linux":
		return fmt.Sprintf("%s_Linux_%s.tar.gz", binaryName, arch), nil
	case "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", binaryName, arch), nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", p.goos)
	}
}

func (p platform) executable() string {
	if p.goos == "windows" {
		return binaryName + ".exe"
	}
	return binaryName
}

// checksumFor finds the sha256 digest listed for name in a checksums.txt
// body ("<hex>  <file>" per line).
func checksumFor(list []byte, name string) ([]byte, error) {
	sc := bufio.NewScanner(bytes.NewReader(list))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 || fields[1] != name {
			continue
		}
		sum, err := hex.DecodeString(fields[0])
		if err != nil || len(sum) != sha256.Size {
			return nil, fmt.Errorf("malformed checksum for %s", name)
		}
		return sum, nil
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("no checksum listed for %s", name)
}

func verify(data, want []byte) error {
	got := sha256.Sum256(data)
	if !bytes.Equal(got[:], want) {
		return fmt.Errorf("%w: expected %x, got %x", ErrChecksum, want, got)
	}
	return nil
}
