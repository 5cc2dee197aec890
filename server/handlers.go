package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/date"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func (s *Server) handleSummary(c *gin.Context) {
	view := s.sessions.session(c).view()
	c.JSON(http.StatusOK, shopsight.Summarize(view))
}

func (s *Server) handleDaily(c *gin.Context) {
	view := s.sessions.session(c).view()
	switch c.DefaultQuery("period", "day") {
	case "day":
		c.JSON(http.StatusOK, shopsight.FillGaps(shopsight.DailyProfit(view)))
	case "week":
		c.JSON(http.StatusOK, shopsight.PeriodicProfit(view, date.Weekly))
	case "month":
		c.JSON(http.StatusOK, shopsight.PeriodicProfit(view, date.Monthly))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be day, week or month"})
	}
}

func (s *Server) handleProducts(c *gin.Context) {
	view := s.sessions.session(c).view()
	c.JSON(http.StatusOK, shopsight.TopProducts(view, intQuery(c, "k", 0)))
}

func (s *Server) handleCategories(c *gin.Context) {
	view := s.sessions.session(c).view()
	c.JSON(http.StatusOK, shopsight.TopCategories(view, intQuery(c, "k", 0)))
}

func (s *Server) handleCustomers(c *gin.Context) {
	view := s.sessions.session(c).view()
	c.JSON(http.StatusOK, shopsight.TopCustomers(view, intQuery(c, "k", 0)))
}

func (s *Server) handlePayments(c *gin.Context) {
	view := s.sessions.session(c).view()
	c.JSON(http.StatusOK, shopsight.PaymentMix(view))
}

// flaggedOrder is one row of the fraud panel.
type flaggedOrder struct {
	orderJSON
	Reasons []shopsight.RuleCode `json:"reasons"`
}

func (s *Server) handleFraud(c *gin.Context) {
	view := s.sessions.session(c).view()
	report := shopsight.EvaluateFraud(view, shopsight.DefaultFraudConfig())

	byRule := make(map[string]int, len(report.ByRule))
	for _, code := range shopsight.RuleCodes() {
		byRule[code.String()] = report.ByRule[code]
	}

	var flagged []flaggedOrder
	for i, r := range view.Records() {
		if a := report.Annotations[i]; a.Suspicious {
			flagged = append(flagged, flaggedOrder{orderJSON: toOrderJSON(r), Reasons: a.Reasons})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"flagged":         report.Flagged,
		"total":           view.Len(),
		"by_rule":         byRule,
		"revenue_at_risk": report.RevenueAtRisk,
		"orders":          flagged,
	})
}

// orderJSON is the wire form of a record for the data explorer.
type orderJSON struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	SellingPrice  shopsight.Money `json:"selling_price"`
	TotalDiscount shopsight.Money `json:"total_discount"`
	TotalPrice    shopsight.Money `json:"total_price"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	City          string          `json:"city"`
	Country       string          `json:"country"`
	Fraud         bool            `json:"fraud"`
}

func toOrderJSON(r shopsight.OrderRecord) orderJSON {
	return orderJSON{
		ID:            r.ID,
		Date:          r.Time.Format("2006-01-02 15:04:05"),
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		ProductName:   r.ProductName,
		Category:      r.Category,
		Quantity:      r.Quantity,
		SellingPrice:  r.SellingPrice,
		TotalDiscount: r.TotalDiscount,
		TotalPrice:    r.TotalPrice,
		CouponCode:    r.CouponCode,
		PaymentMethod: r.PaymentMethod,
		City:          r.City,
		Country:       r.Country,
		Fraud:         r.Fraud,
	}
}

// handleOrders serves the paginated data explorer. The q parameter
// searches order id, customer, product and coupon, case-insensitively.
func (s *Server) handleOrders(c *gin.Context) {
	view := s.sessions.session(c).view()

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	var rows []shopsight.OrderRecord
	for _, r := range view.Records() {
		if q == "" || matchQuery(r, q) {
			rows = append(rows, r)
		}
	}

	page := max(intQuery(c, "page", 1), 1)
	size := intQuery(c, "size", defaultPageSize)
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	start := min((page-1)*size, len(rows))
	end := min(start+size, len(rows))

	out := make([]orderJSON, 0, end-start)
	for _, r := range rows[start:end] {
		out = append(out, toOrderJSON(r))
	}
	c.JSON(http.StatusOK, gin.H{
		"total":  len(rows),
		"page":   page,
		"size":   size,
		"orders": out,
	})
}

func matchQuery(r shopsight.OrderRecord, q string) bool {
	for _, field := range []string{r.ID, r.CustomerID, r.CustomerName, r.ProductName, r.CouponCode} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// handleUpload replaces the session's dataset with an uploaded CSV.
// A schema error rejects the upload and keeps the previous dataset;
// malformed rows are excluded and returned as warnings.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	ds, rowErrs, err := shopsight.DecodeDataset(f)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	warnings := make([]string, 0, len(rowErrs))
	for _, re := range rowErrs {
		warnings = append(warnings, re.Error())
	}
	s.sessions.session(c).setDataset(ds)
	s.log.WithField("rows", ds.Len()).WithField("warnings", len(warnings)).Info("dataset uploaded")
	c.JSON(http.StatusOK, gin.H{"rows": ds.Len(), "warnings": warnings})
}

func (s *Server) handleFilters(c *gin.Context) {
	var f shopsight.Filter
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess := s.sessions.session(c)
	sess.setFilter(f)
	c.JSON(http.StatusOK, gin.H{"rows": sess.view().Len()})
}

func intQuery(c *gin.Context, name string, defaultValue int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
