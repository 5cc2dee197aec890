package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/shopsight"
)

func testDataset() *shopsight.Dataset {
	mk := func(id, customer, product, category, country string, selling, cost float64, qty int) shopsight.OrderRecord {
		r := shopsight.OrderRecord{
			ID:            id,
			Time:          time.Date(2025, time.July, 16, 10, 0, 0, 0, time.UTC),
			CustomerID:    customer,
			CustomerName:  "Customer " + customer,
			ProductName:   product,
			Category:      category,
			Quantity:      qty,
			CostPrice:     shopsight.USD(cost),
			SellingPrice:  shopsight.USD(selling),
			TotalDiscount: shopsight.USD(0),
			PaymentMethod: "Credit Card",
			City:          "Portland",
			Country:       country,
		}
		r.TotalPrice = r.Revenue()
		return r
	}
	return shopsight.NewDataset(
		mk("A1", "C1", "Laptop Pro", "Electronics", "USA", 800, 400, 1),
		mk("A2", "C2", "T-Shirt Basic", "Clothing", "UK", 15, 5, 2),
		mk("A3", "C1", "Fiction Premium", "Books", "USA", 20, 10, 1),
	)
}

// client wraps a test server with a cookie jar so requests share one
// session.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T) *client {
	t.Helper()
	srv := New(Config{Addr: ":0"}, testDataset())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &client{t: t, base: ts.URL, http: &http.Client{Jar: jar}}
}

func (c *client) get(path string) *http.Response {
	c.t.Helper()
	res, err := c.http.Get(c.base + path)
	if err != nil {
		c.t.Fatal(err)
	}
	return res
}

func (c *client) postJSON(path string, body any) *http.Response {
	c.t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		c.t.Fatal(err)
	}
	res, err := c.http.Post(c.base+path, "application/json", bytes.NewReader(b))
	if err != nil {
		c.t.Fatal(err)
	}
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestSummaryEndpoint(t *testing.T) {
	c := newClient(t)
	res := c.get("/api/summary")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/summary = %d", res.StatusCode)
	}
	s := decode[map[string]any](t, res)
	if s["orders"].(float64) != 3 {
		t.Errorf("orders = %v, want 3", s["orders"])
	}
	// revenue 800 + 30 + 20
	if s["revenue"].(float64) != 850 {
		t.Errorf("revenue = %v, want 850", s["revenue"])
	}
}

func TestFiltersAreSessionScoped(t *testing.T) {
	c := newClient(t)

	res := c.postJSON("/api/filters", map[string]any{"categories": []string{"Electronics"}})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/filters = %d", res.StatusCode)
	}
	res.Body.Close()

	s := decode[map[string]any](t, c.get("/api/summary"))
	if s["orders"].(float64) != 1 {
		t.Errorf("filtered orders = %v, want 1", s["orders"])
	}

	// A different browser (no shared jar) still sees everything.
	other := newClient(t)
	s2 := decode[map[string]any](t, other.get("/api/summary"))
	if s2["orders"].(float64) != 3 {
		t.Errorf("other session sees %v orders, want 3", s2["orders"])
	}
}

func TestOrdersSearchAndPagination(t *testing.T) {
	c := newClient(t)

	data := decode[map[string]any](t, c.get("/api/orders?q=laptop"))
	if data["total"].(float64) != 1 {
		t.Fatalf("search total = %v, want 1", data["total"])
	}

	data = decode[map[string]any](t, c.get("/api/orders?page=2&size=2"))
	orders := data["orders"].([]any)
	if len(orders) != 1 {
		t.Errorf("page 2 of size 2 holds %d orders, want 1", len(orders))
	}
}

func TestUploadRejectsBadSchema(t *testing.T) {
	c := newClient(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "orders.csv")
	if err != nil {
		t.Fatal(err)
	}
	fmt.Fprintln(fw, "order_id,order_date")
	fmt.Fprintln(fw, "X1,2025-07-16")
	w.Close()

	res, err := c.http.Post(c.base+"/api/upload", w.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("bad schema upload = %d, want 422", res.StatusCode)
	}
	res.Body.Close()

	// The previous dataset must still be served.
	s := decode[map[string]any](t, c.get("/api/summary"))
	if s["orders"].(float64) != 3 {
		t.Errorf("orders after rejected upload = %v, want 3", s["orders"])
	}
}

func TestUploadReplacesSessionDataset(t *testing.T) {
	c := newClient(t)

	var csv bytes.Buffer
	if err := shopsight.EncodeDataset(&csv, testDataset().Select(shopsight.Filter{Categories: []string{"Books"}})); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "orders.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(csv.Bytes()); err != nil {
		t.Fatal(err)
	}
	w.Close()

	res, err := c.http.Post(c.base+"/api/upload", w.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("upload = %d, want 200", res.StatusCode)
	}
	res.Body.Close()

	s := decode[map[string]any](t, c.get("/api/summary"))
	if s["orders"].(float64) != 1 {
		t.Errorf("orders after upload = %v, want 1", s["orders"])
	}
}

func TestFraudEndpoint(t *testing.T) {
	c := newClient(t)
	f := decode[map[string]any](t, c.get("/api/fraud"))
	if _, ok := f["by_rule"].(map[string]any)["large-order-total"]; !ok {
		t.Errorf("by_rule misses the large-order-total rule: %v", f["by_rule"])
	}
}

func TestPageAndExport(t *testing.T) {
	c := newClient(t)

	res := c.get("/")
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusOK || !strings.Contains(string(body), "Electronics") {
		t.Errorf("GET / = %d, page should list the Electronics facet", res.StatusCode)
	}

	res = c.get("/api/export")
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/export = %d", res.StatusCode)
	}
	if got := res.Header.Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Errorf("export content type = %q", got)
	}
}

func TestDailyPeriods(t *testing.T) {
	c := newClient(t)
	for _, period := range []string{"day", "week", "month"} {
		res := c.get("/api/daily?period=" + period)
		if res.StatusCode != http.StatusOK {
			t.Errorf("period %s = %d", period, res.StatusCode)
		}
		res.Body.Close()
	}
	res := c.get("/api/daily?period=year")
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("period year = %d, want 400", res.StatusCode)
	}
	res.Body.Close()
}
