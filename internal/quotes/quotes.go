// Package quotes fetches live security prices from the Yahoo Finance chart
// API. The price refresh sweep is its only consumer; it asks for the latest
// close per ticker and multiplies into holding quantities.
package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Source is the price lookup used by the refresh service. Tests substitute a
// fake; production uses FinanceClient.
type Source interface {
	LatestClose(symbol string) (decimal.Decimal, error)
}

// FinanceClient fetches price data from Yahoo Finance over HTTP.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a client with a 10 second request timeout.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// LatestClose returns the most recent daily closing price for a symbol. It
// queries the last five trading days and takes the final data point, so a
// weekend or holiday request still resolves to the last session's close.
func (c *FinanceClient) LatestClose(symbol string) (decimal.Decimal, error) {
	resp, err := c.QueryFiveDaySymbol(symbol)
	if err != nil {
		return decimal.Decimal{}, err
	}

	chart, err := c.ParseChart(resp)
	if err != nil {
		return decimal.Decimal{}, err
	}

	last := chart.Indicators[len(chart.Indicators)-1]
	if last.PriceClose <= 0 {
		return decimal.Decimal{}, fmt.Errorf("non-positive close for symbol %s", symbol)
	}

	return decimal.NewFromFloat(last.PriceClose), nil
}

// ParseChart converts a raw chart response into a structured price chart,
// validating that timestamps and close prices are present and aligned.
func (c *FinanceClient) ParseChart(result Response) (PriceChart, error) {
	r := result.Chart.Result[0]

	if len(r.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(r.Indicators.Quote) == 0 || len(r.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}
	if len(r.Indicators.Quote[0].Close) != len(r.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		indicators[i].Date = time.Unix(ts, 0).UTC()
		indicators[i].PriceOpen = r.Indicators.Quote[0].Open[i]
		indicators[i].PriceClose = r.Indicators.Quote[0].Close[i]
		indicators[i].Volume = r.Indicators.Quote[0].Volume[i]
		indicators[i].PriceHigh = r.Indicators.Quote[0].High[i]
		indicators[i].PriceLow = r.Indicators.Quote[0].Low[i]
	}

	return PriceChart{
		Symbol:           r.Meta.Symbol,
		Currency:         r.Meta.Currency,
		ExchangeName:     r.Meta.ExchangeName,
		FullExchangeName: r.Meta.FullExchangeName,
		LongName:         r.Meta.LongName,
		Shortname:        r.Meta.Shortname,
		Indicators:       indicators,
	}, nil
}

// QueryFiveDaySymbol fetches the last five days of daily price data.
func (c *FinanceClient) QueryFiveDaySymbol(symbol string) (Response, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)
	result, err := c.query(url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

func (c *FinanceClient) query(url string) (Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	// Yahoo blocks requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("quote source error: %s", *response.Chart.Error)
	}

	return response, nil
}
