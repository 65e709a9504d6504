package domain

// Link is a hypermedia reference to a related resource or action.
type Link struct {
	Href        string `json:"href"`
	Rel         string `json:"rel"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

func NewLink(rel string, href string, method string, description string) Link {
	return Link{
		Href:        href,
		Rel:         rel,
		Method:      method,
		Description: description,
	}
}

// FindLink returns the first link with the given relation.
func FindLink(links []Link, rel string) (link Link, ok bool) {
	for _, l := range links {
		if l.Rel == rel {
			return l, true
		}
	}
	return
}
