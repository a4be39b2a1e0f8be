package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/yichen/tinyhabits/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"tag_name":"v1.2.0","html_url":"https://example.com/v1.2.0"}`))
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL))

	t.Run("newer available", func(t *testing.T) {
		result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.1.0"})
		require.NoError(t, err)
		assert.True(t, result.UpdateAvailable)
		assert.Equal(t, "v1.2.0", result.LatestVersion)
	})

	t.Run("already current", func(t *testing.T) {
		result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.2.0"})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable)
	})

	t.Run("tag without v prefix", func(t *testing.T) {
		result, err := checker.Check(context.Background(), &CheckInput{Version: "1.1.0"})
		require.NoError(t, err)
		assert.True(t, result.UpdateAvailable)
	})

	t.Run("dev build never updates", func(t *testing.T) {
		result, err := checker.Check(context.Background(), &CheckInput{Version: "(devel)"})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable)
	})
}

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"darwin amd64", "darwin", "amd64", "tinyhabits_Darwin_all.tar.gz", false},
		{"darwin arm64", "darwin", "arm64", "tinyhabits_Darwin_all.tar.gz", false},
		{"linux amd64", "linux", "amd64", "tinyhabits_Linux_x86_64.tar.gz", false},
		{"linux 386", "linux", "386", "tinyhabits_Linux_i386.tar.gz", false},
		{"windows amd64", "windows", "amd64", "tinyhabits_Windows_x86_64.zip", false},
		{"unsupported os", "freebsd", "amd64", "", true},
		{"unsupported arch", "linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assetNameFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")
	h := sha256.Sum256(data)

	assert.NoError(t, verifyChecksum(data, hex.EncodeToString(h[:])))

	err := verifyChecksum(data, "0000000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestUpdate(t *testing.T) {
	binaryContent := []byte("new-tinyhabits-binary")
	archive := buildTarGz(t, "tinyhabits", binaryContent)
	archiveHash := sha256.Sum256(archive)
	archiveHex := hex.EncodeToString(archiveHash[:])

	t.Run("happy path", func(t *testing.T) {
		dir := t.TempDir()
		execPath := filepath.Join(dir, "tinyhabits")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0755))

		asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
		require.NoError(t, err)
		checksums := fmt.Sprintf("%s  %s\n", archiveHex, asset)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/repos/yichen/tinyhabits/releases/latest":
				_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
			case filepath.Base(r.URL.Path) == "checksums.txt":
				_, _ = w.Write([]byte(checksums))
			case r.URL.Path == fmt.Sprintf("/yichen/tinyhabits/releases/download/v2.0.0/%s", filepath.Base(r.URL.Path)):
				_, _ = w.Write(archive)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err = checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, binaryContent, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)

		info, err := os.Stat(execPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	})

	t.Run("dev build", func(t *testing.T) {
		checker := NewChecker()
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"v1.0.0","html_url":"https://example.com/v1.0.0"}`))
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		checksums := "0000000000000000000000000000000000000000000000000000000000000000  " +
			"tinyhabits_Darwin_all.tar.gz\n" +
			"0000000000000000000000000000000000000000000000000000000000000000  " +
			"tinyhabits_Linux_x86_64.tar.gz\n" +
			"0000000000000000000000000000000000000000000000000000000000000000  " +
			"tinyhabits_Linux_arm64.tar.gz\n"

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/repos/yichen/tinyhabits/releases/latest":
				_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
			case filepath.Base(r.URL.Path) == "checksums.txt":
				_, _ = w.Write([]byte(checksums))
			default:
				_, _ = w.Write(archive)
			}
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

// buildTarGz creates a tar.gz archive containing a single file.
func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: name,
		Size: int64(len(content)),
		Mode: 0755,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}
