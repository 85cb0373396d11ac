package view

// Package view holds the pure URL-state binding for the portal pages: which
// tab is active, which filters apply, and how far a drill-down has descended.
// Everything round-trips through query parameters so a reload or a shared
// link reconstructs the exact view.

import "net/url"

// Query parameter names shared by all pages.
const (
	paramTab        = "tab"
	paramSearch     = "q"
	paramBookmarked = "bookmarked"
	paramSubject    = "subject"
	paramModule     = "module"
	paramResource   = "resource"
)

// pageTabs maps a page key to its tab registry in render order.
// The first tab of each page is its default.
var pageTabs = map[string][]string{
	"academic":      {"subjects", "curriculum", "progress"},
	"learning":      {"browse", "progress"},
	"clinical":      {"postings", "logbooks", "certificates"},
	"hostel":        {"rooms", "allocations", "visitors"},
	"admin":         {"certificates", "notices", "events"},
	"events":        {"upcoming", "registered"},
	"students":      {"directory", "performance"},
	"faculty":       {"directory", "departments"},
	"governance":    {"overview", "colleges", "reports"},
	"notifications": {"all", "unread"},
}

// TabsFor returns the tab registry for a page, in render order.
// Pages without tabs return nil.
func TabsFor(page string) []string {
	return pageTabs[page]
}

// DefaultTab returns the first tab of a page's registry, or "" for pages
// without tabs.
func DefaultTab(page string) string {
	tabs := pageTabs[page]
	if len(tabs) == 0 {
		return ""
	}
	return tabs[0]
}

// validTab reports whether tab is declared for page.
func validTab(page, tab string) bool {
	for _, t := range pageTabs[page] {
		if t == tab {
			return true
		}
	}
	return false
}

// Selection is the drill-down position: subject, then a module within it,
// then a resource within the module. A deeper level is only meaningful while
// every level above it is set.
type Selection struct {
	SubjectID  string `json:"subject_id,omitempty"`
	ModuleID   string `json:"module_id,omitempty"`
	ResourceID string `json:"resource_id,omitempty"`
}

// normalize drops levels whose parent is unset.
func (s Selection) normalize() Selection {
	if s.SubjectID == "" {
		return Selection{}
	}
	if s.ModuleID == "" {
		s.ResourceID = ""
	}
	return s
}

// State is the full view state of one portal page.
type State struct {
	// Page is the registry key, fixed per page component; it is not encoded.
	Page string `json:"page"`

	ActiveTab      string    `json:"active_tab,omitempty"`
	Search         string    `json:"search,omitempty"`
	BookmarkedOnly bool      `json:"bookmarked_only,omitempty"`
	Selection      Selection `json:"selection"`
}

// NewState returns the default state for a page: first tab, no filters,
// no selection.
func NewState(page string) State {
	return State{Page: page, ActiveTab: DefaultTab(page)}
}

// DecodeQuery reconstructs the state of a page from query parameters.
// Unknown tabs fall back to the page default, dangling drill-down levels are
// dropped, and unrecognized parameters are ignored.
func DecodeQuery(page string, q url.Values) State {
	st := NewState(page)
	if tab := q.Get(paramTab); validTab(page, tab) {
		st.ActiveTab = tab
	}
	st.Search = q.Get(paramSearch)
	st.BookmarkedOnly = q.Get(paramBookmarked) == "true"
	st.Selection = Selection{
		SubjectID:  q.Get(paramSubject),
		ModuleID:   q.Get(paramModule),
		ResourceID: q.Get(paramResource),
	}.normalize()
	return st
}

// EncodeQuery renders the state as query parameters. Defaults are omitted so
// a pristine page yields an empty query, and DecodeQuery(page, EncodeQuery(s))
// reproduces s for any state DecodeQuery can emit.
func (s State) EncodeQuery() url.Values {
	q := url.Values{}
	if s.ActiveTab != "" && s.ActiveTab != DefaultTab(s.Page) {
		q.Set(paramTab, s.ActiveTab)
	}
	if s.Search != "" {
		q.Set(paramSearch, s.Search)
	}
	if s.BookmarkedOnly {
		q.Set(paramBookmarked, "true")
	}
	sel := s.Selection.normalize()
	if sel.SubjectID != "" {
		q.Set(paramSubject, sel.SubjectID)
	}
	if sel.ModuleID != "" {
		q.Set(paramModule, sel.ModuleID)
	}
	if sel.ResourceID != "" {
		q.Set(paramResource, sel.ResourceID)
	}
	return q
}

// SwitchTab activates a tab. Unknown tabs are ignored; the drill-down and
// filters survive a tab switch.
func (s State) SwitchTab(tab string) State {
	if validTab(s.Page, tab) {
		s.ActiveTab = tab
	}
	return s
}

// SelectSubject descends into a subject, discarding any deeper selection
// made under a previous subject.
func (s State) SelectSubject(id string) State {
	s.Selection = Selection{SubjectID: id}.normalize()
	return s
}

// SelectModule descends into a module of the selected subject. Without a
// subject the call is a no-op.
func (s State) SelectModule(id string) State {
	if s.Selection.SubjectID == "" {
		return s
	}
	s.Selection.ModuleID = id
	s.Selection.ResourceID = ""
	s.Selection = s.Selection.normalize()
	return s
}

// SelectResource descends into a resource of the selected module. Without a
// module the call is a no-op.
func (s State) SelectResource(id string) State {
	if s.Selection.ModuleID == "" {
		return s
	}
	s.Selection.ResourceID = id
	s.Selection = s.Selection.normalize()
	return s
}

// ClearSubject pops the whole drill-down.
func (s State) ClearSubject() State {
	s.Selection = Selection{}
	return s
}

// ClearModule pops back to the subject level.
func (s State) ClearModule() State {
	s.Selection.ModuleID = ""
	s.Selection.ResourceID = ""
	return s
}

// ClearResource pops back to the module level.
func (s State) ClearResource() State {
	s.Selection.ResourceID = ""
	return s
}

// ClearFilters resets search and the bookmark filter but keeps the active
// tab and drill-down.
func (s State) ClearFilters() State {
	s.Search = ""
	s.BookmarkedOnly = false
	return s
}
