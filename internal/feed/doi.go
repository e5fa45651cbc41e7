// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import "regexp"

// doiResolver prefixes the arXiv DataCite DOI synthesized from an abstract link.
const doiResolver = "https://doi.org/10.48550/arXiv."

// absLinkPattern matches arXiv abstract URLs: "http://arxiv.org/abs/2510.07692v1",
// "https://export.arxiv.org/abs/2301.07041". The capture excludes the version.
var absLinkPattern = regexp.MustCompile(`^https?://(?:www\.|export\.)?arxiv\.org/abs/(\d{4}\.\d{4,5})(?:v\d+)?/?$`)

// DeriveDOI returns the DOI implied by an arXiv abstract link, or false if
// link does not match the abstract-URL pattern.
func DeriveDOI(link string) (string, bool) {
	m := absLinkPattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return doiResolver + m[1], true
}
