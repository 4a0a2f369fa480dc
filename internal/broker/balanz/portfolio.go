package balanz

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// AccountStatus fetches the holdings snapshot for the configured account,
// keyed by ticker. The snapshot is rebuilt fresh on every call.
func (c *Client) AccountStatus() (map[string]Holding, error) {
	if err := c.Login(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("estadodecuenta/%s?Fecha=%s", c.creds.AccountID, c.now().Format("20060102"))
	body, err := c.Get(endpoint)
	if err != nil {
		return nil, err
	}

	var sr accountStatusResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decoding account status: %w", err)
	}

	holdings := make(map[string]Holding, len(sr.Holdings))
	for _, h := range sr.Holdings {
		holdings[h.Ticker] = h
	}

	return holdings, nil
}

// GetTickerQuote fetches a live quote for a single instrument.
func (c *Client) GetTickerQuote(ticker string, settlement Settlement) (*Quote, error) {
	if err := c.Login(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("cotizacioninstrumento?ticker=%s&plazo=%d", url.QueryEscape(ticker), settlement)
	body, err := c.Get(endpoint)
	if err != nil {
		return nil, err
	}

	var qr quoteResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("decoding quote for %s: %w", ticker, err)
	}

	return &qr.Quote, nil
}

// FutureCashFlow fetches the projected cash-flow schedule for the
// account, in the order the broker reports it.
func (c *Client) FutureCashFlow() ([]CashFlow, error) {
	if err := c.Login(); err != nil {
		return nil, err
	}

	endpoint := "bonos/flujoproyectado/" + c.creds.AccountID
	body, err := c.Get(endpoint)
	if err != nil {
		return nil, err
	}

	var fr cashFlowResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("decoding cash flow: %w", err)
	}

	return fr.Flows, nil
}
