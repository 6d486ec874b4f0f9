package storefront

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/site"
)

const (
	pageSize       = 3
	featuredCount  = 4
	maxSuggestions = 5
)

type sortOption struct {
	Value  string
	Label  string
	Active bool
}

// sortOptions in the order the sort dropdown lists them
var sortOptions = []sortOption{
	{Value: "featured", Label: "Featured"},
	{Value: "price-asc", Label: "Price: Low to High"},
	{Value: "price-desc", Label: "Price: High to Low"},
	{Value: "name-desc", Label: "Name: Z to A"},
}

type homePage struct {
	Featured   []models.Product
	Subscribed string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	products, err := s.store.ListProducts(r.Context(), "")
	if err != nil {
		s.serverError(w, "list products", err)
		return
	}
	var featured []models.Product
	for _, p := range products {
		if p.InStock && len(featured) < featuredCount {
			featured = append(featured, p)
		}
	}

	s.render(w, r, sess, http.StatusOK, "home.html", "Home", homePage{
		Featured:   featured,
		Subscribed: r.URL.Query().Get("subscribed"),
	})
}

// filterOption is one link in a filter group. Following it toggles the value.
type filterOption struct {
	Label  string
	URL    string
	Active bool
}

type listingPage struct {
	Category   string
	Path       string
	Crumbs     []category
	Products   []models.Product
	Total      int
	MoreURL    string
	Open       bool
	Sizes      []filterOption
	Colors     []filterOption
	Categories []filterOption
	Sort       string
	Sorts      []sortOption
	Min        string
	Max        string
	Hidden     map[string][]string
	ClearURL   string
}

// listingQuery is the filter state a listing URL carries
type listingQuery struct {
	sizes    []string
	colors   []string
	min, max float64
	sort     string
	limit    int
}

func parseListingQuery(q url.Values) listingQuery {
	lq := listingQuery{
		sizes:  q["size"],
		colors: q["color"],
		sort:   q.Get("sort"),
		limit:  pageSize,
	}
	lq.min, _ = strconv.ParseFloat(q.Get("min"), 64)
	lq.max, _ = strconv.ParseFloat(q.Get("max"), 64)
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		lq.limit = n
	}
	return lq
}

// matches reports whether p passes every filter. Sizes and colors match
// when the product has any of the selected values.
func (lq listingQuery) matches(p models.Product) bool {
	price := float64(p.Price) / 100
	if lq.min > 0 && price < lq.min {
		return false
	}
	if lq.max > 0 && price > lq.max {
		return false
	}
	if len(lq.sizes) > 0 && !slices.ContainsFunc(lq.sizes, p.HasSize) {
		return false
	}
	if len(lq.colors) > 0 && !slices.ContainsFunc(lq.colors, p.HasColor) {
		return false
	}
	return true
}

func sortProducts(products []models.Product, by string) {
	switch by {
	case "price-asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price-desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case "name-desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name > products[j].Name })
	}
}

// toggled returns path?q with value added to or removed from key. The
// filter panel stays open and paging restarts.
func toggled(path string, q url.Values, key, value string) string {
	next := url.Values{}
	for k, v := range q {
		next[k] = append([]string(nil), v...)
	}
	next.Del("limit")
	next.Set("filters", "open")

	values := next[key]
	if i := slices.Index(values, value); i >= 0 {
		next[key] = slices.Delete(values, i, i+1)
	} else {
		next[key] = append(values, value)
	}
	return path + "?" + next.Encode()
}

func with(path string, q url.Values, key, value string) string {
	next := url.Values{}
	for k, v := range q {
		next[k] = append([]string(nil), v...)
	}
	next.Set(key, value)
	return path + "?" + next.Encode()
}

// ordered returns the distinct values of the products, known sizes first in
// their usual order
func ordered(products []models.Product, values func(models.Product) []string, known []string) []string {
	seen := map[string]bool{}
	for _, p := range products {
		for _, v := range values(p) {
			seen[v] = true
		}
	}
	var out []string
	for _, k := range known {
		if seen[k] {
			out = append(out, k)
			delete(seen, k)
		}
	}
	var rest []string
	for v := range seen {
		rest = append(rest, v)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func (s *Server) handleListing(slug, name string) http.HandlerFunc {
	path, _ := site.CategoryPath(name)

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.get(w, r)
		q := r.URL.Query()
		q.Del("markup")
		lq := parseListingQuery(q)

		all, err := s.store.ListProducts(r.Context(), slug)
		if err != nil {
			s.serverError(w, "list products", err)
			return
		}

		var matched []models.Product
		for _, p := range all {
			if lq.matches(p) {
				matched = append(matched, p)
			}
		}
		sortProducts(matched, lq.sort)

		page := listingPage{
			Category: name,
			Path:     path,
			Crumbs:   []category{{Name: name}},
			Total:    len(matched),
			Products: matched,
			Open:     q.Get("filters") == "open",
			Sort:     lq.sort,
			Min:      q.Get("min"),
			Max:      q.Get("max"),
			ClearURL: path + "?filters=open",
			Hidden:   map[string][]string{},
		}
		if len(matched) > lq.limit {
			page.Products = matched[:lq.limit]
			page.MoreURL = with(path, q, "limit", strconv.Itoa(lq.limit+pageSize))
		}

		for _, size := range ordered(all, func(p models.Product) []string { return p.Sizes }, site.ProductSizes) {
			page.Sizes = append(page.Sizes, filterOption{
				Label:  size,
				URL:    toggled(path, q, "size", size),
				Active: slices.Contains(lq.sizes, size),
			})
		}
		for _, color := range ordered(all, func(p models.Product) []string { return p.Colors }, nil) {
			page.Colors = append(page.Colors, filterOption{
				Label:  color,
				URL:    toggled(path, q, "color", color),
				Active: slices.Contains(lq.colors, color),
			})
		}
		for _, c := range site.Categories {
			page.Categories = append(page.Categories, filterOption{
				Label:  c.Name,
				URL:    c.Path + "?filters=open",
				Active: c.Name == name,
			})
		}
		for _, o := range sortOptions {
			o.Active = o.Value == lq.sort
			page.Sorts = append(page.Sorts, o)
		}
		// the price and sort forms resubmit the other filters
		for _, k := range []string{"size", "color", "filters"} {
			if v := q[k]; len(v) > 0 {
				page.Hidden[k] = v
			}
		}

		s.render(w, r, sess, http.StatusOK, "listing.html", name, page)
	}
}

type productPage struct {
	Product    models.Product
	Crumbs     []category
	Thumbnails []int
	Added      bool
	Error      string
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	p, err := s.store.GetProduct(r.Context(), r.PathValue("slug"))
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "get product", err)
		return
	}

	page := productPage{
		Product:    p,
		Thumbnails: []int{1, 2, 3},
		Added:      r.URL.Query().Get("added") == "1",
		Error:      addToBagErrors[r.URL.Query().Get("error")],
	}
	for _, c := range categories() {
		if c.Slug == p.Category {
			page.Crumbs = append(page.Crumbs, c)
		}
	}
	page.Crumbs = append(page.Crumbs, category{Name: p.Name})
	s.render(w, r, sess, http.StatusOK, "product.html", p.Name, page)
}

// handleImage draws a placeholder picture for a product
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSuffix(r.PathValue("file"), ".svg")
	p, err := s.store.GetProduct(r.Context(), slug)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "max-age=3600")
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="500" viewBox="0 0 400 500">`+
		`<rect width="400" height="500" fill="#efe9e1"/>`+
		`<text x="200" y="250" font-family="sans-serif" font-size="22" text-anchor="middle" fill="#5a4a3a">%s</text>`+
		`</svg>`, html.EscapeString(p.Name))
}

type searchPage struct {
	Query   string
	Results []models.Product
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	page := searchPage{Query: query}
	if query != "" {
		results, err := s.store.SearchProducts(r.Context(), query)
		if err != nil {
			s.serverError(w, "search products", err)
			return
		}
		page.Results = results
	}
	s.render(w, r, sess, http.StatusOK, "search.html", "Search", page)
}

// handleSuggest answers the search box with up to maxSuggestions products:
// {"suggestions":[{"name":"...","url":"..."}]}
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	results, err := s.store.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.serverError(w, "suggest products", err)
		return
	}

	body := []byte(`{"suggestions":[]}`)
	for i, p := range results {
		if i == maxSuggestions {
			break
		}
		body, err = sjson.SetBytes(body, "suggestions.-1", map[string]string{
			"name": p.Name,
			"url":  site.ProductPath(p.Slug),
		})
		if err != nil {
			s.serverError(w, "encode suggestions", err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
