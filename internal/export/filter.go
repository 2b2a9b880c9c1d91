package export

// Filter is the category/section allow-list gate. An article passes when
// its resolved category name or section name appears in the respective
// set. A filter with both sets empty allows everything, so a fresh
// install with no allow-list configured exports the whole help center.
type Filter struct {
	categories map[string]struct{}
	sections   map[string]struct{}
}

// NewFilter builds a filter from the configured allow-lists.
func NewFilter(categories, sections []string) Filter {
	f := Filter{
		categories: make(map[string]struct{}, len(categories)),
		sections:   make(map[string]struct{}, len(sections)),
	}
	for _, name := range categories {
		f.categories[name] = struct{}{}
	}
	for _, name := range sections {
		f.sections[name] = struct{}{}
	}
	return f
}

// Allow reports whether an article with the given resolved breadcrumb
// names should be exported. Nil names (dangling references) match nothing.
func (f Filter) Allow(categoryName, sectionName *string) bool {
	if len(f.categories) == 0 && len(f.sections) == 0 {
		return true
	}
	if categoryName != nil {
		if _, ok := f.categories[*categoryName]; ok {
			return true
		}
	}
	if sectionName != nil {
		if _, ok := f.sections[*sectionName]; ok {
			return true
		}
	}
	return false
}
