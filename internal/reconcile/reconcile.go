// Package reconcile resolves watch-list tickers against the broker,
// preferring the account's holdings snapshot over live quote lookups.
package reconcile

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"balanz_export/internal/broker/balanz"
)

// Broker is the subset of the Balanz client the reconciler needs.
type Broker interface {
	AccountStatus() (map[string]balanz.Holding, error)
	GetTickerQuote(ticker string, settlement balanz.Settlement) (*balanz.Quote, error)
	FutureCashFlow() ([]balanz.CashFlow, error)
}

// sentinelPrice replaces quote prices for instruments not listed on BYMA,
// such as currency or unit-denominated entries.
var sentinelPrice = decimal.NewFromInt(1)

// QuoteRow is one resolved ticker for the Titulos sheet.
type QuoteRow struct {
	Ticker string
	Date   string
	Value  decimal.Decimal
	Buy    decimal.Decimal
	Sell   decimal.Decimal
}

// CashFlowRow is one projected cash-flow entry for the Flujos sheet.
type CashFlowRow struct {
	Instrument         string
	Date               string
	Residual           decimal.Decimal
	Income             decimal.Decimal
	Amortization       decimal.Decimal
	IncomeAmortization decimal.Decimal
	Total              decimal.Decimal
	Currency           string
}

// Reconciler resolves watch-list tickers into export rows.
type Reconciler struct {
	broker Broker

	// Settlement is used for live quote lookups.
	Settlement balanz.Settlement

	// SkipFailed logs and skips tickers that fail to resolve instead of
	// aborting the run. Off by default: skipping silently changes the
	// completeness of the export.
	SkipFailed bool

	now func() time.Time
}

// New creates a reconciler over the given broker.
func New(b Broker) *Reconciler {
	return &Reconciler{
		broker:     b,
		Settlement: balanz.SettlementStandard,
		now:        time.Now,
	}
}

// Quotes resolves each requested ticker. A ticker present in the holdings
// snapshot never triggers a live quote lookup.
func (r *Reconciler) Quotes(tickers []string) ([]QuoteRow, error) {
	holdings, err := r.broker.AccountStatus()
	if err != nil {
		return nil, err
	}

	rows := make([]QuoteRow, 0, len(tickers))
	for _, ticker := range tickers {
		row, err := r.resolve(ticker, holdings)
		if err != nil {
			if r.SkipFailed {
				log.Printf("[Reconcile] Skipping %s: %v", ticker, err)
				continue
			}
			return nil, fmt.Errorf("resolving %s: %w", ticker, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (r *Reconciler) resolve(ticker string, holdings map[string]balanz.Holding) (QuoteRow, error) {
	if h, ok := holdings[ticker]; ok {
		date, err := ParseQuoteDate(h.LastTraded, r.now())
		if err != nil {
			return QuoteRow{}, err
		}
		log.Printf("[Reconcile] Found %s in account at price %s", ticker, h.Price)
		// Held positions are exported at the snapshot price across all
		// three columns.
		return QuoteRow{Ticker: ticker, Date: date, Value: h.Price, Buy: h.Price, Sell: h.Price}, nil
	}

	quote, err := r.broker.GetTickerQuote(ticker, r.Settlement)
	if err != nil {
		return QuoteRow{}, err
	}

	date, err := ParseQuoteDate(quote.LastTraded, r.now())
	if err != nil {
		return QuoteRow{}, err
	}

	if quote.SecurityID == nil {
		log.Printf("[Reconcile] %s is not listed on BYMA, using sentinel price", ticker)
		return QuoteRow{Ticker: ticker, Date: date, Value: sentinelPrice, Buy: sentinelPrice, Sell: sentinelPrice}, nil
	}

	log.Printf("[Reconcile] Found %s via quote lookup at price %s", ticker, quote.LastPrice)
	return QuoteRow{Ticker: ticker, Date: date, Value: quote.LastPrice, Buy: quote.BuyPrice, Sell: quote.SellPrice}, nil
}

// CashFlows returns the projected cash-flow schedule as export rows,
// order preserved.
func (r *Reconciler) CashFlows() ([]CashFlowRow, error) {
	flows, err := r.broker.FutureCashFlow()
	if err != nil {
		return nil, err
	}

	rows := make([]CashFlowRow, 0, len(flows))
	for _, f := range flows {
		rows = append(rows, CashFlowRow{
			Instrument:         f.Code,
			Date:               f.Date,
			Residual:           f.Residual,
			Income:             f.Income,
			Amortization:       f.Amortization,
			IncomeAmortization: f.IncomeAmort,
			Total:              f.Total,
			Currency:           f.Currency,
		})
	}

	return rows, nil
}
