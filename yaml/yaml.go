// Package yaml reads and writes the site list consumed by the scraper.
// JSON site files are accepted as well, since JSON is valid YAML.
package yaml

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/fs"
	"gopkg.in/yaml.v3"
)

// SiteFile is the on-disk layout of a site list.
type SiteFile struct {
	Sites []menurag.Site `yaml:"sites"`
}

// ReadSites loads and validates the site list at path.
// Returns ENOTFOUND if the file does not exist, EMALFORMED if it does not
// parse and EINVALID if it lists no sites or a site without a URL.
func ReadSites(path string) ([]menurag.Site, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, menurag.Errorf(menurag.ENOTFOUND, "site file %s not found", path)
	} else if err != nil {
		return nil, err
	}

	var file SiteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, menurag.Errorf(menurag.EMALFORMED, "failed to parse %s: %v", path, err)
	}

	if len(file.Sites) == 0 {
		return nil, menurag.Errorf(menurag.EINVALID, "%s lists no sites", path)
	}
	for i := range file.Sites {
		if err := file.Sites[i].Validate(); err != nil {
			return nil, menurag.Errorf(menurag.EINVALID, "site %d in %s: %s", i+1, path, menurag.ErrorMessage(err))
		}
	}
	return file.Sites, nil
}

// WriteSites atomically writes sites to path as YAML.
func WriteSites(path string, sites []menurag.Site) error {
	if sites == nil {
		sites = []menurag.Site{}
	}
	data, err := yaml.Marshal(SiteFile{Sites: sites})
	if err != nil {
		return fmt.Errorf("encoding sites: %w", err)
	}
	return fs.WriteFile(path, data)
}
