// AngelaMos | 2026
// product_test.go

package product

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carterperez-dev/templates/storefront/internal/category"
	"github.com/carterperez-dev/templates/storefront/internal/core"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type memRepo struct {
	mu       sync.Mutex
	products []Product
	clock    time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memRepo) EnsureIndexes(context.Context) error { return nil }

func (m *memRepo) Create(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Minute)
	p.ID = primitive.NewObjectID()
	p.CreatedAt = m.clock
	p.UpdatedAt = m.clock
	m.products = append(m.products, *p)
	return nil
}

func (m *memRepo) Update(_ context.Context, id primitive.ObjectID, p *Product) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID != id {
			continue
		}
		existing := &m.products[i]
		photo := existing.Photo
		if !p.Photo.IsEmpty() {
			photo = p.Photo
		}
		*existing = Product{
			ID: id, Name: p.Name, Slug: p.Slug, Description: p.Description,
			Price: p.Price, Category: p.Category, Quantity: p.Quantity,
			Shipping: p.Shipping, Photo: photo,
			CreatedAt: existing.CreatedAt, UpdatedAt: m.clock,
		}
		cp := *existing
		cp.Photo = nil
		return &cp, nil
	}
	return nil, fmt.Errorf("update product: %w", core.ErrNotFound)
}

func (m *memRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete product: %w", core.ErrNotFound)
}

func (m *memRepo) GetBySlug(_ context.Context, slug string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == slug {
			p.Photo = nil
			return &p, nil
		}
	}
	return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
}

func (m *memRepo) GetPhoto(_ context.Context, id primitive.ObjectID) (*Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p.Photo, nil
		}
	}
	return nil, fmt.Errorf("get photo: %w", core.ErrNotFound)
}

func (m *memRepo) Find(_ context.Context, q ListQuery) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []Product{}
	for _, p := range m.products {
		if matches(p, q.Filter) {
			p.Photo = nil
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if q.Skip >= int64(len(matched)) {
		return []Product{}, nil
	}
	matched = matched[q.Skip:]
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (m *memRepo) EstimatedCount(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.products)), nil
}

// matches evaluates the filter shapes built in filter.go.
func matches(p Product, filter bson.M) bool {
	for key, cond := range filter {
		switch key {
		case "category":
			switch c := cond.(type) {
			case primitive.ObjectID:
				if p.Category != c {
					return false
				}
			case bson.M:
				if !containsID(c["$in"].([]primitive.ObjectID), p.Category) {
					return false
				}
			}
		case "price":
			c := cond.(bson.M)
			if gte, ok := c["$gte"].(float64); ok && p.Price < gte {
				return false
			}
			if lte, ok := c["$lte"].(float64); ok && p.Price > lte {
				return false
			}
		case "_id":
			c := cond.(bson.M)
			if ne, ok := c["$ne"].(primitive.ObjectID); ok && p.ID == ne {
				return false
			}
			if in, ok := c["$in"].([]primitive.ObjectID); ok && !containsID(in, p.ID) {
				return false
			}
		case "$or":
			anyMatch := false
			for _, clause := range cond.(bson.A) {
				for field, v := range clause.(bson.M) {
					rx := v.(primitive.Regex)
					re := regexp.MustCompile("(?" + rx.Options + ")" + rx.Pattern)
					target := p.Name
					if field == "description" {
						target = p.Description
					}
					if re.MatchString(target) {
						anyMatch = true
					}
				}
			}
			if !anyMatch {
				return false
			}
		}
	}
	return true
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type fakeCategories map[primitive.ObjectID]category.Category

func (f fakeCategories) ByIDs(
	_ context.Context,
	ids []primitive.ObjectID,
) (map[primitive.ObjectID]category.Category, error) {
	out := map[primitive.ObjectID]category.Category{}
	for _, id := range ids {
		if c, ok := f[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (f fakeCategories) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	for _, c := range f {
		if c.Slug == slug {
			cp := c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
}

func TestBuildFilter(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	tests := []struct {
		name    string
		checked []primitive.ObjectID
		radio   []float64
		want    bson.M
	}{
		{"empty", nil, nil, bson.M{}},
		{"categories only", []primitive.ObjectID{a, b}, nil,
			bson.M{"category": bson.M{"$in": []primitive.ObjectID{a, b}}}},
		{"price only", nil, []float64{20, 39.99},
			bson.M{"price": bson.M{"$gte": 20.0, "$lte": 39.99}}},
		{"floor only", nil, []float64{100},
			bson.M{"price": bson.M{"$gte": 100.0}}},
		{"both", []primitive.ObjectID{a}, []float64{0, 19},
			bson.M{
				"category": bson.M{"$in": []primitive.ObjectID{a}},
				"price":    bson.M{"$gte": 0.0, "$lte": 19.0},
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilter(tt.checked, tt.radio)
			gotJSON, _ := json.Marshal(got)
			wantJSON, _ := json.Marshal(tt.want)
			if !bytes.Equal(gotJSON, wantJSON) {
				t.Errorf("BuildFilter() = %s, want %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestSearchFilterEscapesKeyword(t *testing.T) {
	filter := SearchFilter("c++ (2nd ed.)")
	clauses := filter["$or"].(bson.A)
	rx := clauses[0].(bson.M)["name"].(primitive.Regex)

	if rx.Options != "i" {
		t.Errorf("options = %q, want i", rx.Options)
	}
	re := regexp.MustCompile("(?i)" + rx.Pattern)
	if !re.MatchString("Learning C++ (2nd Ed.) Paperback") {
		t.Error("literal keyword did not match")
	}
	if re.MatchString("cpp 2nd ed") {
		t.Error("keyword was interpreted as a pattern")
	}
}

func TestPageQuery(t *testing.T) {
	tests := []struct {
		page     int
		wantSkip int64
	}{
		{-3, 0}, {0, 0}, {1, 0}, {2, 6}, {10, 54},
	}
	for _, tt := range tests {
		q := PageQuery(tt.page)
		if q.Skip != tt.wantSkip || q.Limit != PerPage {
			t.Errorf("PageQuery(%d) = skip %d limit %d", tt.page, q.Skip, q.Limit)
		}
	}
}

func TestReadPhoto(t *testing.T) {
	t.Run("sniffs missing content type", func(t *testing.T) {
		photo, err := readPhoto(bytes.NewReader(pngHeader), "application/octet-stream")
		if err != nil {
			t.Fatalf("readPhoto() error = %v", err)
		}
		if photo.ContentType != "image/png" {
			t.Errorf("content type = %q, want image/png", photo.ContentType)
		}
	})

	t.Run("keeps declared content type", func(t *testing.T) {
		photo, err := readPhoto(bytes.NewReader(pngHeader), "image/webp")
		if err != nil || photo.ContentType != "image/webp" {
			t.Errorf("readPhoto() = %v, %v", photo, err)
		}
	})

	t.Run("limit is inclusive", func(t *testing.T) {
		photo, err := readPhoto(bytes.NewReader(make([]byte, MaxPhotoBytes)), "image/jpeg")
		if err != nil || len(photo.Data) != MaxPhotoBytes {
			t.Errorf("photo at limit rejected: %v", err)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := readPhoto(bytes.NewReader(make([]byte, MaxPhotoBytes+1)), "image/jpeg")
		appErr, ok := core.AsAppError(err)
		if !ok || appErr.Message != photoTooLargeMsg || appErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("over-limit error = %v", err)
		}
	})

	t.Run("empty part", func(t *testing.T) {
		photo, err := readPhoto(bytes.NewReader(nil), "")
		if err != nil || photo != nil {
			t.Errorf("empty photo = %v, %v", photo, err)
		}
	})
}

type testEnv struct {
	router   *chi.Mux
	service  *Service
	repo     *memRepo
	category category.Category
}

func newTestEnv() *testEnv {
	c := category.Category{ID: primitive.NewObjectID(), Name: "Books", Slug: "books"}
	repo := newMemRepo()
	svc := NewService(repo, fakeCategories{c.ID: c})

	pass := func(next http.Handler) http.Handler { return next }
	router := chi.NewRouter()
	router.Route("/product", func(r chi.Router) {
		NewHandler(svc).RegisterRoutes(r, pass, pass)
	})
	return &testEnv{router: router, service: svc, repo: repo, category: c}
}

func multipartBody(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, key := range []string{"name", "description", "price", "category", "quantity", "shipping"} {
		if v, ok := fields[key]; ok {
			if err := mw.WriteField(key, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "photo.bin")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("write photo: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) do(t *testing.T, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%q)", err, w.Body.String())
	}
	return body
}

func (e *testEnv) validFields() map[string]string {
	return map[string]string{
		"name":        "The Go Programming Language",
		"description": "Donovan and Kernighan",
		"price":       "39.99",
		"category":    e.category.ID.Hex(),
		"quantity":    "12",
		"shipping":    "1",
	}
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name        string
		drop        string
		override    map[string]string
		wantMessage string
	}{
		{"missing name", "name", nil, "Name is Required"},
		{"missing description", "description", nil, "Description is Required"},
		{"missing price", "price", nil, "Price is Required"},
		{"missing category", "category", nil, "Category is Required"},
		{"missing quantity", "quantity", nil, "Quantity is Required"},
		{"negative price", "", map[string]string{"price": "-1"}, "Price must be greater than or equal to 0"},
		{"negative quantity", "", map[string]string{"quantity": "-2"}, "Quantity must be greater than or equal to 0"},
		{"bad category", "", map[string]string{"category": "zzz"}, "Category must be a valid id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := env.validFields()
			delete(fields, tt.drop)
			for k, v := range tt.override {
				fields[k] = v
			}
			body, contentType := multipartBody(t, fields, nil)
			r := httptest.NewRequest(http.MethodPost, "/product/create-product", body)
			r.Header.Set("Content-Type", contentType)

			w := env.do(t, r)
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", w.Code)
			}
			got := decodeBody(t, w)
			if got["success"] != false || got["message"] != tt.wantMessage {
				t.Errorf("body = %v, want message %q", got, tt.wantMessage)
			}
		})
	}

	t.Run("missing fields reported in order", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"quantity": "1"}, nil)
		r := httptest.NewRequest(http.MethodPost, "/product/create-product", body)
		r.Header.Set("Content-Type", contentType)
		if got := decodeBody(t, env.do(t, r)); got["message"] != "Name is Required" {
			t.Errorf("message = %v, want Name first", got["message"])
		}
	})

	t.Run("oversized photo", func(t *testing.T) {
		body, contentType := multipartBody(t, env.validFields(), make([]byte, MaxPhotoBytes+1))
		r := httptest.NewRequest(http.MethodPost, "/product/create-product", body)
		r.Header.Set("Content-Type", contentType)
		w := env.do(t, r)
		if got := decodeBody(t, w); w.Code != http.StatusInternalServerError || got["message"] != photoTooLargeMsg {
			t.Errorf("got %d %v", w.Code, got)
		}
		if len(env.repo.products) != 0 {
			t.Error("product persisted despite oversized photo")
		}
	})
}

func TestPhotoRoundTrip(t *testing.T) {
	env := newTestEnv()

	body, contentType := multipartBody(t, env.validFields(), pngHeader)
	r := httptest.NewRequest(http.MethodPost, "/product/create-product", body)
	r.Header.Set("Content-Type", contentType)
	w := env.do(t, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", w.Code, w.Body.String())
	}

	created := decodeBody(t, w)["products"].(map[string]any)
	if created["slug"] != "the-go-programming-language" {
		t.Errorf("slug = %v", created["slug"])
	}
	if _, leaked := created["photo"]; leaked {
		t.Error("photo bytes serialized into JSON")
	}
	pid := created["_id"].(string)

	w = env.do(t, httptest.NewRequest(http.MethodGet, "/product/product-photo/"+pid, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("photo status = %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("content type = %q", w.Header().Get("Content-Type"))
	}
	if !bytes.Equal(w.Body.Bytes(), pngHeader) {
		t.Error("photo bytes differ")
	}

	t.Run("update without photo keeps it", func(t *testing.T) {
		fields := env.validFields()
		fields["name"] = "The Go Programming Language 2e"
		body, contentType := multipartBody(t, fields, nil)
		r := httptest.NewRequest(http.MethodPut, "/product/update-product/"+pid, body)
		r.Header.Set("Content-Type", contentType)
		w := env.do(t, r)
		if w.Code != http.StatusCreated {
			t.Fatalf("update status = %d (%s)", w.Code, w.Body.String())
		}
		updated := decodeBody(t, w)["products"].(map[string]any)
		if updated["slug"] != "the-go-programming-language-2e" {
			t.Errorf("slug = %v", updated["slug"])
		}

		w = env.do(t, httptest.NewRequest(http.MethodGet, "/product/product-photo/"+pid, nil))
		if !bytes.Equal(w.Body.Bytes(), pngHeader) {
			t.Error("photo lost on update")
		}
	})
}

func TestPhotoWithoutData(t *testing.T) {
	env := newTestEnv()
	p, err := env.service.Create(context.Background(), &ProductInput{
		Name: "No Picture", Description: "d", Category: env.category.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	w := env.do(t, httptest.NewRequest(http.MethodGet, "/product/product-photo/"+p.ID.Hex(), nil))
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Errorf("got %d with %d bytes, want empty 204", w.Code, w.Body.Len())
	}

	w = env.do(t, httptest.NewRequest(http.MethodGet, "/product/product-photo/"+primitive.NewObjectID().Hex(), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown product photo status = %d", w.Code)
	}
}

func seedProducts(t *testing.T, env *testEnv, n int, other primitive.ObjectID) []*Product {
	t.Helper()
	out := make([]*Product, 0, n)
	for i := range n {
		cat := env.category.ID
		if i%2 == 1 {
			cat = other
		}
		p, err := env.service.Create(context.Background(), &ProductInput{
			Name:        fmt.Sprintf("Item %02d", i),
			Description: "plain item",
			Price:       float64(10 * i),
			Category:    cat,
			Quantity:    i,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		out = append(out, p)
	}
	return out
}

func productNames(t *testing.T, raw any) []string {
	t.Helper()
	list, ok := raw.([]any)
	if !ok {
		t.Fatalf("products = %T, want array", raw)
	}
	names := make([]string, 0, len(list))
	for _, item := range list {
		names = append(names, item.(map[string]any)["name"].(string))
	}
	return names
}

func TestListingEndpoints(t *testing.T) {
	env := newTestEnv()
	other := primitive.NewObjectID()
	products := seedProducts(t, env, 14, other)

	t.Run("latest capped and populated", func(t *testing.T) {
		w := env.do(t, httptest.NewRequest(http.MethodGet, "/product/get-product", nil))
		body := decodeBody(t, w)
		names := productNames(t, body["products"])
		if len(names) != ListingCap || body["countTotal"] != float64(ListingCap) {
			t.Fatalf("got %d products, countTotal %v", len(names), body["countTotal"])
		}
		if names[0] != "Item 13" {
			t.Errorf("first = %q, want newest", names[0])
		}
		list := body["products"].([]any)
		for _, item := range list {
			p := item.(map[string]any)
			c, populated := p["category"].(map[string]any)
			if p["name"] == "Item 12" && (!populated || c["slug"] != "books") {
				t.Errorf("category not populated: %v", p["category"])
			}
			if p["name"] == "Item 13" && p["category"] != nil {
				t.Errorf("dangling category = %v, want null", p["category"])
			}
		}
	})

	t.Run("pages of six", func(t *testing.T) {
		tests := []struct {
			path      string
			wantFirst string
			wantLen   int
		}{
			{"/product/product-list/1", "Item 13", 6},
			{"/product/product-list/2", "Item 07", 6},
			{"/product/product-list/3", "Item 01", 2},
			{"/product/product-list/4", "", 0},
			{"/product/product-list/abc", "Item 13", 6},
		}
		for _, tt := range tests {
			body := decodeBody(t, env.do(t, httptest.NewRequest(http.MethodGet, tt.path, nil)))
			names := productNames(t, body["products"])
			if len(names) != tt.wantLen || (tt.wantLen > 0 && names[0] != tt.wantFirst) {
				t.Errorf("%s = %v", tt.path, names)
			}
		}
	})

	t.Run("count", func(t *testing.T) {
		body := decodeBody(t, env.do(t, httptest.NewRequest(http.MethodGet, "/product/product-count", nil)))
		if body["total"] != float64(14) {
			t.Errorf("total = %v", body["total"])
		}
	})

	t.Run("filters", func(t *testing.T) {
		tests := []struct {
			name    string
			body    string
			wantLen int
		}{
			{"empty", `{"checked":[],"radio":[]}`, 14},
			{"category", fmt.Sprintf(`{"checked":[%q]}`, env.category.ID.Hex()), 7},
			{"price", `{"radio":[20,40]}`, 3},
			{"both", fmt.Sprintf(`{"checked":[%q],"radio":[0,50]}`, other.Hex()), 3},
		}
		for _, tt := range tests {
			r := httptest.NewRequest(http.MethodPost, "/product/product-filters", strings.NewReader(tt.body))
			w := env.do(t, r)
			body := decodeBody(t, w)
			if w.Code != http.StatusOK || len(productNames(t, body["products"])) != tt.wantLen {
				t.Errorf("%s: %d %v", tt.name, w.Code, body["products"])
			}
		}

		r := httptest.NewRequest(http.MethodPost, "/product/product-filters", strings.NewReader(`{"checked":["nope"]}`))
		if w := env.do(t, r); w.Code != http.StatusBadRequest {
			t.Errorf("malformed id status = %d, want 400", w.Code)
		}
	})

	t.Run("search is literal and bare", func(t *testing.T) {
		w := env.do(t, httptest.NewRequest(http.MethodGet, "/product/search/item%2003", nil))
		var results []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
			t.Fatalf("search body is not an array: %s", w.Body.String())
		}
		if len(results) != 1 || results[0]["name"] != "Item 03" {
			t.Errorf("results = %v", results)
		}

		w = env.do(t, httptest.NewRequest(http.MethodGet, "/product/search/.*", nil))
		_ = json.Unmarshal(w.Body.Bytes(), &results)
		if len(results) != 0 {
			t.Errorf("regex metacharacters matched %d products", len(results))
		}
	})

	t.Run("related excludes self", func(t *testing.T) {
		pid := products[4].ID.Hex()
		path := "/product/related-product/" + pid + "/" + env.category.ID.Hex()
		body := decodeBody(t, env.do(t, httptest.NewRequest(http.MethodGet, path, nil)))
		names := productNames(t, body["products"])
		if len(names) != RelatedLimit {
			t.Fatalf("related = %v", names)
		}
		for _, n := range names {
			if n == "Item 04" {
				t.Error("related list contains the product itself")
			}
		}
	})

	t.Run("by category slug", func(t *testing.T) {
		body := decodeBody(t, env.do(t, httptest.NewRequest(http.MethodGet, "/product/product-category/books", nil)))
		if c := body["category"].(map[string]any); c["name"] != "Books" {
			t.Errorf("category = %v", c)
		}
		if n := len(productNames(t, body["products"])); n != 7 {
			t.Errorf("products = %d, want 7", n)
		}

		w := env.do(t, httptest.NewRequest(http.MethodGet, "/product/product-category/missing", nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("unknown slug status = %d, want 400", w.Code)
		}
	})

	t.Run("single by slug and delete", func(t *testing.T) {
		w := env.do(t, httptest.NewRequest(http.MethodGet, "/product/get-product/item-00", nil))
		body := decodeBody(t, w)
		if w.Code != http.StatusOK || body["product"].(map[string]any)["name"] != "Item 00" {
			t.Fatalf("single: %d %v", w.Code, body)
		}

		w = env.do(t, httptest.NewRequest(http.MethodDelete, "/product/delete-product/"+products[0].ID.Hex(), nil))
		if w.Code != http.StatusOK {
			t.Errorf("delete status = %d", w.Code)
		}

		w = env.do(t, httptest.NewRequest(http.MethodGet, "/product/get-product/item-00", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("deleted product status = %d", w.Code)
		}
	})
}

func TestPrices(t *testing.T) {
	env := newTestEnv()
	products := seedProducts(t, env, 3, primitive.NewObjectID())

	prices, err := env.service.Prices(context.Background(), []string{
		products[1].ID.Hex(),
		products[2].ID.Hex(),
		primitive.NewObjectID().Hex(),
	})
	if err != nil {
		t.Fatalf("Prices() error = %v", err)
	}
	if len(prices) != 2 || prices[products[2].ID.Hex()] != 20 {
		t.Errorf("Prices() = %v", prices)
	}
}
