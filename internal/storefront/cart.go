package storefront

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/site"
)

const maxQuantity = 10

var addToBagErrors = map[string]string{
	"size":     "Please select a size",
	"color":    "Please select a colour",
	"stock":    "Sorry, this item is sold out",
	"quantity": "Please choose a quantity between 1 and 10",
}

type cartLine struct {
	Index int
	models.OrderLine
}

type cartPage struct {
	Lines      []cartLine
	Subtotal   int64
	Total      int64
	Quantities []int
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	page := cartPage{Quantities: quantities()}
	s.sessions.update(func() {
		for i, l := range sess.Cart {
			page.Lines = append(page.Lines, cartLine{Index: i, OrderLine: l})
		}
		page.Subtotal = sess.CartTotal()
		page.Total = page.Subtotal
	})
	s.render(w, r, sess, http.StatusOK, "cart.html", "Shopping Bag", page)
}

func quantities() []int {
	out := make([]int, maxQuantity)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// handleCartAdd puts the posted product in the bag and returns to its page.
// Products with a single size or color need no choice.
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	slug := r.FormValue("slug")

	p, err := s.store.GetProduct(r.Context(), slug)
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "get product", err)
		return
	}

	back := func(key, value string) {
		http.Redirect(w, r, site.ProductPath(p.Slug)+"?"+url.Values{key: {value}}.Encode(), http.StatusSeeOther)
	}

	size := r.FormValue("size")
	if size == "" && len(p.Sizes) == 1 {
		size = p.Sizes[0]
	}
	color := r.FormValue("color")
	if color == "" && len(p.Colors) == 1 {
		color = p.Colors[0]
	}
	quantity := 1
	if v := r.FormValue("quantity"); v != "" {
		quantity, err = strconv.Atoi(v)
		if err != nil || quantity < 1 || quantity > maxQuantity {
			back("error", "quantity")
			return
		}
	}

	switch {
	case !p.InStock:
		back("error", "stock")
		return
	case !p.HasSize(size):
		back("error", "size")
		return
	case !p.HasColor(color):
		back("error", "color")
		return
	}

	s.sessions.update(func() {
		sess.addLine(models.OrderLine{
			ProductSlug: p.Slug,
			ProductName: p.Name,
			Size:        size,
			Color:       color,
			Quantity:    quantity,
			UnitPrice:   p.Price,
		})
	})
	back("added", "1")
}

// lineIndex reads the posted line number and checks it against the bag
func lineIndex(r *http.Request, sess *session) (int, bool) {
	i, err := strconv.Atoi(r.FormValue("line"))
	return i, err == nil && i >= 0 && i < len(sess.Cart)
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 0 || quantity > maxQuantity {
		http.Error(w, "Invalid quantity", http.StatusBadRequest)
		return
	}

	ok := false
	s.sessions.update(func() {
		var i int
		if i, ok = lineIndex(r, sess); !ok {
			return
		}
		if quantity == 0 {
			sess.Cart = append(sess.Cart[:i], sess.Cart[i+1:]...)
			return
		}
		sess.Cart[i].Quantity = quantity
	})
	if !ok {
		http.Error(w, "Unknown line", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, site.Cart, http.StatusSeeOther)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	ok := false
	s.sessions.update(func() {
		var i int
		if i, ok = lineIndex(r, sess); ok {
			sess.Cart = append(sess.Cart[:i], sess.Cart[i+1:]...)
		}
	})
	if !ok {
		http.Error(w, "Unknown line", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, site.Cart, http.StatusSeeOther)
}
