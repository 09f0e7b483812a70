// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractArchive unpacks a tar archive (gzip-compressed or plain) into
// destDir. Every member is vetted before a single byte is written: absolute
// paths, parent-directory traversal, and symlink/hardlink entries reject the
// whole archive with ErrUnsafeArchive. The caller owns destDir and discards
// it on error.
func extractArchive(data []byte, destDir string) error {
	if err := scanArchive(data); err != nil {
		return err
	}

	tr, closer, err := openTar(data)
	if err != nil {
		return err
	}
	defer closer()

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}

		target := filepath.Join(destDir, filepath.FromSlash(hdr.Name))
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create parent of %s: %w", hdr.Name, err)
			}
			if err := writeMember(target, hdr, tr); err != nil {
				return err
			}
		default:
			// Unsafe types were rejected by the pre-scan. Whatever is left
			// (fifos, devices, pax records) is skipped.
		}
	}
}

// scanArchive enumerates every member without extracting anything.
func scanArchive(data []byte) error {
	tr, closer, err := openTar(data)
	if err != nil {
		return err
	}
	defer closer()

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan archive: %w", err)
		}
		if err := checkMember(hdr); err != nil {
			return err
		}
	}
}

// checkMember rejects the classic extraction escape vectors.
func checkMember(hdr *tar.Header) error {
	name := hdr.Name

	switch hdr.Typeflag {
	case tar.TypeSymlink, tar.TypeLink:
		return fmt.Errorf("%w: link member %q", ErrUnsafeArchive, name)
	}

	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return fmt.Errorf("%w: absolute path %q", ErrUnsafeArchive, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return fmt.Errorf("%w: parent traversal in %q", ErrUnsafeArchive, name)
		}
	}
	return nil
}

func writeMember(target string, hdr *tar.Header, r io.Reader) error {
	mode := os.FileMode(hdr.Mode).Perm()
	if mode == 0 {
		mode = 0o644
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", hdr.Name, err)
	}
	_, err = io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", hdr.Name, err)
	}
	return nil
}

// openTar readies a tar reader over data, transparently unwrapping gzip when
// the magic bytes say so. arXiv e-prints are usually .tar.gz but plain tars
// show up too.
func openTar(data []byte) (*tar.Reader, func(), error) {
	br := bytes.NewReader(data)
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return tar.NewReader(gz), func() { _ = gz.Close() }, nil
	}
	return tar.NewReader(br), func() {}, nil
}
