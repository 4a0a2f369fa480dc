package balanz

import (
	"time"

	"github.com/shopspring/decimal"
)

// tokenValidFor is how long the broker honors a session token after issuance.
const tokenValidFor = 15 * time.Minute

// Token is the opaque session credential issued by the login endpoint.
// It is never mutated, only replaced by a fresh login.
type Token struct {
	Value    string
	IssuedAt time.Time
}

// ValidAt reports whether the token is still usable at the given instant.
func (t Token) ValidAt(now time.Time) bool {
	return now.Before(t.IssuedAt.Add(tokenValidFor))
}

// Settlement is the number of business days until a trade settles.
type Settlement int

const (
	// SettlementImmediate settles the same day.
	SettlementImmediate Settlement = 0
	// SettlementStandard settles the next business day.
	SettlementStandard Settlement = 1
)

// initRequest is the body for POST auth/init.
type initRequest struct {
	User   string `json:"user"`
	Source string `json:"source"`
}

// initResponse carries the server-issued nonce for the login step.
type initResponse struct {
	Nonce string `json:"nonce"`
}

// loginRequest is the body for POST auth/login. The device-identity
// fields are fixed and mirror the broker's own web client.
type loginRequest struct {
	User            string `json:"user"`
	Pass            string `json:"pass"`
	Nonce           string `json:"nonce"`
	DeviceName      string `json:"NombreDispositivo"`
	DeviceID        string `json:"idDispositivo"`
	OperatingSystem string `json:"SistemaOperativo"`
	OSVersion       string `json:"VersionSO"`
	Source          string `json:"source"`
	DeviceType      string `json:"TipoDispositivo"`
	AppVersion      string `json:"VersionAPP"`
}

type loginResponse struct {
	AccessToken string `json:"AccessToken"`
}

// Holding is one position row from the account status endpoint.
type Holding struct {
	Ticker     string          `json:"Ticker"`
	Price      decimal.Decimal `json:"Precio"`
	LastTraded string          `json:"FechaUltimoOperado"`
	BuyPrice   decimal.Decimal `json:"PrecioCompra"`
	SellPrice  decimal.Decimal `json:"PrecioVenta"`
}

// accountStatusResponse wraps the holdings list from estadodecuenta.
type accountStatusResponse struct {
	Holdings []Holding `json:"tenencia"`
}

// Quote is an instrument quote. SecurityID is nil when the instrument is
// not listed on BYMA.
type Quote struct {
	SecurityID *string         `json:"SecurityID"`
	LastPrice  decimal.Decimal `json:"UltimoPrecio"`
	BuyPrice   decimal.Decimal `json:"PrecioCompra"`
	SellPrice  decimal.Decimal `json:"PrecioVenta"`
	LastTraded string          `json:"UltimaOperacion"`
}

// quoteResponse wraps the quote from cotizacioninstrumento.
type quoteResponse struct {
	Quote Quote `json:"Cotizacion"`
}

// CashFlow is one projected cash-flow entry for a bond position.
type CashFlow struct {
	Code         string          `json:"codigoespeciebono"`
	Date         string          `json:"fecha"`
	Residual     decimal.Decimal `json:"vr"`
	Income       decimal.Decimal `json:"renta"`
	Amortization decimal.Decimal `json:"amort"`
	IncomeAmort  decimal.Decimal `json:"rentaamort"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"tipo_moneda"`
}

// cashFlowResponse wraps the flow list from bonos/flujoproyectado.
type cashFlowResponse struct {
	Flows []CashFlow `json:"flujo"`
}
