package menurag

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults for sites discovered from a sitemap, which carries neither.
const (
	DefaultSiteTime    = "10:00 AM - 11:00 PM"
	DefaultSiteContact = "+91 9523029342"
)

// Site is a restaurant page to scrape, with the identity fields copied onto
// every record scraped from it.
type Site struct {
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	Location string `json:"location" yaml:"location"`
	Time     string `json:"Time" yaml:"Time"`
	Contact  string `json:"contact" yaml:"contact"`
}

// Validate returns an error if the site cannot be scraped.
func (s *Site) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "site URL required")
	}
	return nil
}

// Restaurant returns an empty raw record carrying the site's identity.
func (s *Site) Restaurant() RawRestaurant {
	return RawRestaurant{
		Name:          s.Name,
		Location:      s.Location,
		AvailableTime: s.Time,
		Contact:       s.Contact,
		MenuItems:     []RawMenuItem{},
	}
}

// SiteFromURL derives a site from a brand page URL of the form
// scheme://host/<name>/<location>[/...]. Reports false when the URL has
// fewer path segments.
func SiteFromURL(url string) (Site, bool) {
	parts := strings.Split(url, "/")
	if len(parts) < 5 {
		return Site{}, false
	}
	return Site{
		Name:     titleSegment(parts[3]),
		URL:      url,
		Location: titleSegment(parts[4]),
		Time:     DefaultSiteTime,
		Contact:  DefaultSiteContact,
	}, true
}

// SelectSites derives sites from urls, keeps at most perName locations for
// each restaurant name and at most maxNames distinct names, in first-seen
// order. A non-positive limit means no limit.
func SelectSites(urls []string, maxNames, perName int) []Site {
	var names []string
	grouped := make(map[string][]Site)
	for _, u := range urls {
		site, ok := SiteFromURL(u)
		if !ok {
			continue
		}
		if _, seen := grouped[site.Name]; !seen {
			names = append(names, site.Name)
		}
		if perName > 0 && len(grouped[site.Name]) >= perName {
			continue
		}
		grouped[site.Name] = append(grouped[site.Name], site)
	}

	if maxNames > 0 && len(names) > maxNames {
		names = names[:maxNames]
	}

	sites := []Site{}
	for _, name := range names {
		sites = append(sites, grouped[name]...)
	}
	return sites
}

func titleSegment(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	return cases.Title(language.Und).String(s)
}
