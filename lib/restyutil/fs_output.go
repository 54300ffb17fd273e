package restyutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FilesystemOutput writes every HTTP exchange to its own file in a directory,
// files are named after the request order and the last path segment of the
// page, ex. `0003-nacre_c991181.txt`.
type FilesystemOutput struct {
	dir string
}

// NewFilesystemOutput empties `dir`, creating it if needed.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{dir: dir}, nil
}

func dumpName(id uint64, rawURL string) string {
	slug := "page"
	parsed, err := url.Parse(rawURL)
	if err == nil {
		base := path.Base(parsed.Path)
		if base != "/" && base != "." {
			slug = strings.TrimSuffix(base, path.Ext(base))
		}
	}
	return fmt.Sprintf("%04d-%s.txt", id, slug)
}

func (o FilesystemOutput) Write(exchange Exchange) {
	name := dumpName(exchange.ID, exchange.URL)
	err := os.WriteFile(filepath.Join(o.dir, name), []byte(exchange.Dump), 0600)
	if err != nil {
		slog.Warn("failed to dump http exchange", "file", name, "err", err)
	}
}
