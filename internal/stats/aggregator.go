// Package stats derives dashboard metrics from a set of ledger entries. One
// parameterized aggregator serves every dashboard (admin overview, admin
// sales, reports, cashier dashboard) so the numbers cannot drift between
// pages.
package stats

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type Granularity int

const (
	// Hourly buckets the reference day into 24 [h:00, h+1:00) intervals.
	Hourly Granularity = iota
	// Daily buckets the trailing 7 calendar days ending at the reference
	// date. Bucket membership is local calendar-date equality, not a rolling
	// 24h window.
	Daily
)

const trailingDays = 7

// TxView is the aggregator's flattened view of one ledger entry. Callers map
// persisted transactions into this shape before aggregating.
type TxView struct {
	CashierName   string
	TotalAmount   float64
	Profit        float64
	PaymentMethod string
	CreatedAt     time.Time
	Items         []ItemView
}

type ItemView struct {
	ProductName string
	Quantity    int
}

// Series holds parallel label/value arrays ready for charting.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type Metrics struct {
	// Scalars over the whole input set.
	TotalSales   float64 `json:"total_sales"`
	TotalProfit  float64 `json:"total_profit"`
	Transactions int     `json:"transactions"`

	// Scalars scoped to the reference date / month.
	SalesToday   float64 `json:"sales_today"`
	ProfitToday  float64 `json:"profit_today"`
	CashToday    float64 `json:"cash_today"`
	MpesaToday   float64 `json:"mpesa_today"`
	BankToday    float64 `json:"bank_today"`
	RevenueMonth float64 `json:"revenue_month"`

	SalesTrend Series `json:"sales_trend"`

	TopProducts Series `json:"top_products"`
	TopProduct  string `json:"top_product"`

	// CashierPerformance ranks cashiers by revenue; TopCashierByCount keeps
	// the by-transaction-count ranking the admin sales page uses.
	CashierPerformance Series `json:"cashier_performance"`
	TopCashier         string `json:"top_cashier"`
	TopCashierByCount  string `json:"top_cashier_by_count"`
}

// Aggregate scans transactions once and derives the full metrics superset.
// ref supplies "today" so results are reproducible; topN bounds the ranking
// lists. An empty input yields zero scalars, full-length zero trend buckets
// and empty rankings with "-" sentinels.
func Aggregate(transactions []TxView, ref time.Time, granularity Granularity, topN int) Metrics {
	m := Metrics{
		TopProduct:        "-",
		TopCashier:        "-",
		TopCashierByCount: "-",
	}

	productQty := newTally()
	cashierRevenue := newTally()
	cashierCount := newTally()

	for _, tx := range transactions {
		m.TotalSales += tx.TotalAmount
		m.TotalProfit += tx.Profit
		m.Transactions++

		if sameDay(tx.CreatedAt, ref) {
			m.SalesToday += tx.TotalAmount
			m.ProfitToday += tx.Profit

			// Unrecognized labels still count toward the totals above.
			switch strings.ToLower(tx.PaymentMethod) {
			case "cash":
				m.CashToday += tx.TotalAmount
			case "mpesa":
				m.MpesaToday += tx.TotalAmount
			case "bank":
				m.BankToday += tx.TotalAmount
			}
		}

		if tx.CreatedAt.Year() == ref.Year() && tx.CreatedAt.Month() == ref.Month() {
			m.RevenueMonth += tx.TotalAmount
		}

		for _, item := range tx.Items {
			name := item.ProductName
			if name == "" {
				name = "Unknown"
			}
			productQty.add(name, float64(item.Quantity))
		}

		cashier := tx.CashierName
		if cashier == "" {
			cashier = "Unknown"
		}
		cashierRevenue.add(cashier, tx.TotalAmount)
		cashierCount.add(cashier, 1)
	}

	m.SalesTrend = trend(transactions, ref, granularity)

	m.TopProducts = productQty.top(topN)
	if len(m.TopProducts.Labels) > 0 {
		m.TopProduct = m.TopProducts.Labels[0]
	}

	m.CashierPerformance = cashierRevenue.top(topN)
	if len(m.CashierPerformance.Labels) > 0 {
		m.TopCashier = m.CashierPerformance.Labels[0]
	}
	if byCount := cashierCount.top(1); len(byCount.Labels) > 0 {
		m.TopCashierByCount = byCount.Labels[0]
	}

	return m
}

func trend(transactions []TxView, ref time.Time, granularity Granularity) Series {
	if granularity == Hourly {
		s := Series{
			Labels: make([]string, 24),
			Data:   make([]float64, 24),
		}
		for h := 0; h < 24; h++ {
			s.Labels[h] = strconv.Itoa(h) + ":00"
		}
		for _, tx := range transactions {
			if sameDay(tx.CreatedAt, ref) {
				s.Data[tx.CreatedAt.Hour()] += tx.TotalAmount
			}
		}
		return s
	}

	s := Series{
		Labels: make([]string, 0, trailingDays),
		Data:   make([]float64, 0, trailingDays),
	}
	for i := trailingDays - 1; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		total := 0.0
		for _, tx := range transactions {
			if sameDay(tx.CreatedAt, day) {
				total += tx.TotalAmount
			}
		}
		s.Labels = append(s.Labels, day.Format("2006-01-02"))
		s.Data = append(s.Data, total)
	}
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// tally accumulates values per key while remembering first-encounter order,
// so equal counts rank deterministically by insertion.
type tally struct {
	order  []string
	totals map[string]float64
}

func newTally() *tally {
	return &tally{totals: make(map[string]float64)}
}

func (t *tally) add(key string, value float64) {
	if _, seen := t.totals[key]; !seen {
		t.order = append(t.order, key)
	}
	t.totals[key] += value
}

func (t *tally) top(n int) Series {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.totals[keys[i]] > t.totals[keys[j]]
	})
	if n >= 0 && len(keys) > n {
		keys = keys[:n]
	}

	s := Series{
		Labels: make([]string, 0, len(keys)),
		Data:   make([]float64, 0, len(keys)),
	}
	for _, k := range keys {
		s.Labels = append(s.Labels, k)
		s.Data = append(s.Data, t.totals[k])
	}
	return s
}
