package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// fakeDOM maps a selector to the text of every element it matches. Child
// selectors are keyed by "parent child" and indexed like their parent, so a
// table cell for row i lives at index i of its key. Attributes are keyed by
// "selector@name". An unkeyed selector list "a, b" matches a's elements then
// b's.
type fakeDOM map[string][]string

func (d fakeDOM) matches(sel string) []string {
	if values, ok := d[sel]; ok || !strings.Contains(sel, ", ") {
		return values
	}
	var out []string
	for _, part := range strings.Split(sel, ", ") {
		out = append(out, d[part]...)
	}
	return out
}

var errNotFound = fmt.Errorf("element not found: %w", playwright.ErrTimeout)

// fakePage implements the parts of playwright.Page the page objects use
type fakePage struct {
	playwright.Page
	dom     fakeDOM
	url     string
	visited []string
	gotoErr error
}

func newFakePage(dom fakeDOM) *fakePage {
	return &fakePage{dom: dom, url: "https://shop.test/"}
}

func (f *fakePage) Locator(selector string, _ ...playwright.PageLocatorOptions) playwright.Locator {
	return &fakeLocator{dom: f.dom, sel: selector}
}

func (f *fakePage) Goto(url string, _ ...playwright.PageGotoOptions) (playwright.Response, error) {
	f.visited = append(f.visited, url)
	if f.gotoErr != nil {
		return nil, f.gotoErr
	}
	f.url = url
	return nil, nil
}

func (f *fakePage) URL() string {
	return f.url
}

func (f *fakePage) Title() (string, error) {
	return "Automation Exercise", nil
}

func (f *fakePage) WaitForLoadState(_ ...playwright.PageWaitForLoadStateOptions) error {
	return nil
}

// locatorIface is embedded under its own name so fakeLocator can define Locator
type locatorIface = playwright.Locator

// fakeLocator resolves against a fakeDOM. A nil idx selects every match.
type fakeLocator struct {
	locatorIface
	dom fakeDOM
	sel string
	idx []int
}

func (l *fakeLocator) resolve() []int {
	n := len(l.dom.matches(l.sel))
	if l.idx == nil {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	var out []int
	for _, i := range l.idx {
		if i >= 0 && i < n {
			out = append(out, i)
		}
	}
	return out
}

func (l *fakeLocator) with(idx []int) *fakeLocator {
	return &fakeLocator{dom: l.dom, sel: l.sel, idx: idx}
}

func (l *fakeLocator) Count() (int, error) {
	return len(l.resolve()), nil
}

func (l *fakeLocator) Nth(index int) playwright.Locator {
	r := l.resolve()
	if index < 0 || index >= len(r) {
		return l.with([]int{-1})
	}
	return l.with([]int{r[index]})
}

func (l *fakeLocator) First() playwright.Locator {
	return l.Nth(0)
}

func (l *fakeLocator) Locator(sub interface{}, _ ...playwright.LocatorLocatorOptions) playwright.Locator {
	return &fakeLocator{dom: l.dom, sel: l.sel + " " + sub.(string), idx: l.idx}
}

func (l *fakeLocator) Filter(opts ...playwright.LocatorFilterOptions) playwright.Locator {
	if len(opts) == 0 {
		return l
	}
	want, _ := opts[0].HasText.(string)
	idx := []int{}
	for _, i := range l.resolve() {
		if strings.Contains(l.dom.matches(l.sel)[i], want) {
			idx = append(idx, i)
		}
	}
	return l.with(idx)
}

func (l *fakeLocator) TextContent(_ ...playwright.LocatorTextContentOptions) (string, error) {
	r := l.resolve()
	if len(r) == 0 {
		return "", errNotFound
	}
	return l.dom.matches(l.sel)[r[0]], nil
}

func (l *fakeLocator) InputValue(_ ...playwright.LocatorInputValueOptions) (string, error) {
	return l.TextContent()
}

func (l *fakeLocator) AllTextContents() ([]string, error) {
	var out []string
	for _, i := range l.resolve() {
		out = append(out, l.dom.matches(l.sel)[i])
	}
	return out, nil
}

func (l *fakeLocator) GetAttribute(name string, _ ...playwright.LocatorGetAttributeOptions) (string, error) {
	values := l.dom[l.sel+"@"+name]
	if len(values) == 0 {
		return "", errNotFound
	}
	return values[0], nil
}

func (l *fakeLocator) IsVisible(_ ...playwright.LocatorIsVisibleOptions) (bool, error) {
	return len(l.resolve()) > 0, nil
}

func (l *fakeLocator) IsEnabled(_ ...playwright.LocatorIsEnabledOptions) (bool, error) {
	return len(l.resolve()) > 0, nil
}

func (l *fakeLocator) WaitFor(opts ...playwright.LocatorWaitForOptions) error {
	present := len(l.resolve()) > 0
	wantHidden := len(opts) > 0 && opts[0].State != nil && *opts[0].State == *playwright.WaitForSelectorStateHidden
	if present == wantHidden {
		return errNotFound
	}
	return nil
}

func (l *fakeLocator) Click(_ ...playwright.LocatorClickOptions) error {
	if len(l.resolve()) == 0 {
		return errNotFound
	}
	return nil
}
