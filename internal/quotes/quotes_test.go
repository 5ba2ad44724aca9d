package quotes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chartBody(symbol string, timestamps []int64, closes []float64) string {
	ts := ""
	cl := ""
	op := ""
	vol := ""
	hi := ""
	lo := ""
	for i := range timestamps {
		if i > 0 {
			ts += ","
			cl += ","
			op += ","
			vol += ","
			hi += ","
			lo += ","
		}
		ts += fmt.Sprintf("%d", timestamps[i])
		cl += fmt.Sprintf("%g", closes[i])
		op += fmt.Sprintf("%g", closes[i])
		vol += "1000"
		hi += fmt.Sprintf("%g", closes[i])
		lo += fmt.Sprintf("%g", closes[i])
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {"currency": "USD", "symbol": %q, "exchangeName": "NMS"},
				"timestamp": [%s],
				"indicators": {"quote": [{"open": [%s], "close": [%s], "volume": [%s], "high": [%s], "low": [%s]}]}
			}],
			"error": null
		}
	}`, symbol, ts, op, cl, vol, hi, lo)
}

func testClient(server *httptest.Server) *FinanceClient {
	c := NewFinanceClient()
	c.baseURL = server.URL
	c.httpClient = server.Client()
	return c
}

func TestLatestClose(t *testing.T) {
	t.Run("returns last close in the series", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartBody("VTI", []int64{1750000000, 1750086400, 1750172800}, []float64{271.10, 272.45, 273.92}))
		}))
		defer server.Close()

		got, err := testClient(server).LatestClose("VTI")
		if err != nil {
			t.Fatalf("LatestClose() error = %v", err)
		}
		if got.String() != "273.92" {
			t.Errorf("LatestClose() = %s, want 273.92", got)
		}
	})

	t.Run("returns error on api error message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": [], "error": "No data found, symbol may be delisted"}}`)
		}))
		defer server.Close()

		if _, err := testClient(server).LatestClose("NOPE"); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("returns error on empty result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
		}))
		defer server.Close()

		if _, err := testClient(server).LatestClose("EMPTY"); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("returns error on non-positive close", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartBody("ZERO", []int64{1750000000}, []float64{0}))
		}))
		defer server.Close()

		if _, err := testClient(server).LatestClose("ZERO"); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func TestParseChart(t *testing.T) {
	t.Run("rejects mismatched lengths", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"chart": {
					"result": [{
						"meta": {"symbol": "BAD"},
						"timestamp": [1750000000, 1750086400],
						"indicators": {"quote": [{"open": [1], "close": [1], "volume": [1], "high": [1], "low": [1]}]}
					}],
					"error": null
				}
			}`)
		}))
		defer server.Close()

		c := testClient(server)
		resp, err := c.QueryFiveDaySymbol("BAD")
		if err != nil {
			t.Fatalf("QueryFiveDaySymbol() error = %v", err)
		}
		if _, err := c.ParseChart(resp); err == nil {
			t.Error("expected error for mismatched lengths, got nil")
		}
	})
}
