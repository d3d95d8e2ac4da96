package article

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/accu-org/accu-website/converter"
)

var legacyJournalLink = regexp.MustCompile(`^/?index\.php/journals/(\d+)/?$`)

// LegacyLinkHook rewrites links to numbered journal pages of the old site,
// either relative or under one of siteHosts, to their new site path. Other
// links into the old index.php are reported as unresolved; everything else
// is left alone.
func LegacyLinkHook(siteHosts ...string) converter.LinkHook {
	hosts := make(map[string]bool, len(siteHosts))
	for _, host := range siteHosts {
		hosts[strings.ToLower(host)] = true
	}

	return func(ctx context.Context, in converter.LinkInput) (converter.LinkOutput, error) {
		if err := ctx.Err(); err != nil {
			return converter.LinkOutput{}, err
		}

		u, err := url.Parse(strings.TrimSpace(in.Href))
		if err != nil {
			return converter.LinkOutput{}, nil
		}
		if u.Host != "" && !hosts[strings.ToLower(u.Hostname())] {
			return converter.LinkOutput{}, nil
		}
		if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
			return converter.LinkOutput{}, nil
		}

		if m := legacyJournalLink.FindStringSubmatch(u.Path); m != nil {
			href := "/" + LinkPath(m[1])
			if u.Fragment != "" {
				href += "#" + u.Fragment
			}
			return converter.LinkOutput{Href: href, Handled: true}, nil
		}
		if strings.HasPrefix(strings.TrimPrefix(u.Path, "/"), "index.php") {
			return converter.LinkOutput{}, fmt.Errorf("%w: %s", converter.ErrUnresolved, in.Href)
		}
		return converter.LinkOutput{}, nil
	}
}
