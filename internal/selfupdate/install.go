package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
)

// UpdateInput selects the release to install. An empty TargetVersion means
// the latest release, and only a newer one is installed. An explicit target
// is installed unless it is the running version.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

type UpdateProgress struct {
	Stage   string
	Message string
}

// Update downloads the release archive for the running platform, checks it
// against the release's checksums.txt and swaps it in for the executable.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}
	if progress == nil {
		progress = func(UpdateProgress) {}
	}

	progress(UpdateProgress{Stage: "resolve", Message: "Looking up release..."})
	rel, err := c.lookup(ctx, input.TargetVersion)
	if err != nil {
		return err
	}
	if input.TargetVersion == "" && !newer(rel.TagName, input.CurrentVersion) {
		return ErrAlreadyLatest
	}
	if canonical(rel.TagName) == canonical(input.CurrentVersion) {
		return ErrAlreadyLatest
	}

	name, err := c.platform.archive()
	if err != nil {
		return err
	}
	archive, err := rel.asset(name)
	if err != nil {
		return err
	}
	sums, err := rel.asset(checksumsAsset)
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", rel.TagName)})
	data, err := c.fetch(ctx, archive.URL)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	list, err := c.fetch(ctx, sums.URL)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	want, err := checksumFor(list, name)
	if err != nil {
		return err
	}
	if err := verify(data, want); err != nil {
		return err
	}

	bin, err := unpack(name, data, c.platform.executable())
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "install", Message: "Installing..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceExecutable(target, bin); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", rel.TagName)})
	return nil
}

// unpack pulls the file called want out of a .tar.gz or .zip archive.
func unpack(archive string, data []byte, want string) ([]byte, error) {
	switch {
	case strings.HasSuffix(archive, ".tar.gz"):
		return fromTarGz(data, want)
	case strings.HasSuffix(archive, ".zip"):
		return fromZip(data, want)
	default:
		return nil, fmt.Errorf("unknown archive format: %s", archive)
	}
}

func fromTarGz(data []byte, want string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not found in archive", want)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == want {
			return io.ReadAll(tr)
		}
	}
}

func fromZip(data []byte, want string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || filepath.Base(f.Name) != want {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", want)
}

// replaceExecutable writes bin next to path with path's permissions and
// renames it over path, so a failed write leaves the old binary intact.
func replaceExecutable(path string, bin []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+binaryName+"-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(bin); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
