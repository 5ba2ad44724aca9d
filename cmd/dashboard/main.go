// Command dashboard is a terminal front end for the homeledger server. It
// signs in, keeps the refresh and market statuses polled in the background,
// and exposes the account, holdings, and property report views through a
// small command loop.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"homeledger/internal/client"
	"homeledger/internal/model"
	"homeledger/internal/view"
)

type dashboard struct {
	client     *client.Client
	holdings   *view.ChildCache[model.Holding]
	poller     *view.StatusPoller
	refresh    *view.RefreshAction
	periods    *view.PeriodSelector
	accounts   []model.Account
	properties []model.Property
}

func main() {
	server := flag.String("server", envOr("HOMELEDGER_SERVER", "http://localhost:5001"), "server base URL")
	email := flag.String("email", os.Getenv("HOMELEDGER_EMAIL"), "login email")
	password := flag.String("password", os.Getenv("HOMELEDGER_PASSWORD"), "login password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required (flags or HOMELEDGER_EMAIL / HOMELEDGER_PASSWORD)")
	}

	cli := client.New(*server)

	ctx := context.Background()
	user, err := cli.Login(ctx, *email, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	fmt.Printf("Signed in as %s\n", user.Email)

	d := &dashboard{
		client: cli,
		holdings: view.NewChildCache(func(ctx context.Context, accountID string) ([]model.Holding, error) {
			return cli.Holdings(ctx, accountID)
		}),
		poller:  view.NewStatusPoller(cli.RefreshStatus, cli.MarketStatus),
		periods: view.NewPeriodSelector(cli.PropertyReport, cli.PortfolioReport),
	}

	// A manual refresh kicks the server-side sweep, then pushes the fresh
	// status into the poller and refetches every cached holdings list.
	trigger := func(ctx context.Context) (model.RefreshStatus, error) {
		if _, err := cli.RefreshPrices(ctx); err != nil {
			return model.RefreshStatus{}, err
		}
		return cli.RefreshStatus(ctx)
	}
	d.refresh = view.NewRefreshAction(trigger, d.holdings, d.poller)

	d.poller.Start(ctx)
	defer d.poller.Stop()

	d.loop(ctx)
}

func (d *dashboard) loop(ctx context.Context) {
	fmt.Println(`Commands: accounts, expand <n>, properties, select <n|all>, period <mtd|ytd|ltd|last-month|last-year|YYYY-MM>, report, refresh, status, quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch cmd, arg := fields[0], strings.Join(fields[1:], " "); cmd {
		case "accounts":
			err = d.listAccounts(ctx)
		case "expand":
			err = d.expandAccount(ctx, arg)
		case "properties":
			err = d.listProperties(ctx)
		case "select":
			err = d.selectProperty(ctx, arg)
		case "period":
			err = d.selectPeriod(ctx, arg)
		case "report":
			d.printReport()
		case "refresh":
			d.refresh.Trigger(ctx)
			if toast, ok := d.refresh.Toast(); ok {
				if toast.Kind == view.ToastFailure {
					fmt.Printf("Error: %s\n", toast.Message)
				} else {
					fmt.Println(toast.Message)
				}
			}
		case "status":
			d.printStatus()
		case "quit", "exit":
			return
		default:
			fmt.Printf("Unknown command %q\n", cmd)
		}

		if errors.Is(err, client.ErrSessionExpired) {
			fmt.Println("Session expired, sign in again")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func (d *dashboard) listAccounts(ctx context.Context) error {
	accounts, err := d.client.Accounts(ctx)
	if err != nil {
		return err
	}
	d.accounts = accounts

	for i, a := range accounts {
		balance := "-"
		if a.CurrentBalance.Valid {
			balance = a.CurrentBalance.Decimal.StringFixed(2) + " " + a.CurrencyCode
		}
		marker := " "
		if d.holdings.Expanded() == a.ID {
			marker = "*"
		}
		fmt.Printf("%s %2d. %-30s %-12s %s\n", marker, i+1, a.Name, a.Type, balance)
	}
	return nil
}

// expandAccount toggles the holdings row under an account. The fetch happens
// at most once per account; a collapsed account keeps its cached list.
func (d *dashboard) expandAccount(ctx context.Context, arg string) error {
	account, err := pick(d.accounts, arg, "account")
	if err != nil {
		return err
	}

	<-d.holdings.Toggle(ctx, account.ID)
	if d.holdings.Expanded() != account.ID {
		fmt.Printf("Collapsed %s\n", account.Name)
		return nil
	}

	items, state := d.holdings.Get(account.ID)
	if state == view.Failed {
		fmt.Println("  (holdings unavailable)")
		return nil
	}
	if len(items) == 0 {
		fmt.Println("  (no holdings)")
		return nil
	}
	for _, h := range items {
		value := "-"
		if h.CurrentValue.Valid {
			value = h.CurrentValue.Decimal.StringFixed(2)
		}
		fmt.Printf("  %-8s %-25s qty %-12s value %s\n", h.TickerSymbol, h.Name, h.Quantity.String(), value)
	}
	return nil
}

func (d *dashboard) listProperties(ctx context.Context) error {
	properties, err := d.client.Properties(ctx)
	if err != nil {
		return err
	}
	d.properties = properties

	for i, p := range properties {
		value := "-"
		if p.CurrentValue.Valid {
			value = p.CurrentValue.Decimal.StringFixed(2)
		}
		fmt.Printf("%2d. %-35s %s\n", i+1, p.Address, value)
	}
	return nil
}

func (d *dashboard) selectProperty(ctx context.Context, arg string) error {
	if arg == "all" {
		return d.periods.SelectProperty(ctx, view.ScopeAll)
	}
	property, err := pick(d.properties, arg, "property")
	if err != nil {
		return err
	}
	return d.periods.SelectProperty(ctx, property.ID)
}

func (d *dashboard) selectPeriod(ctx context.Context, arg string) error {
	switch arg {
	case "mtd":
		return d.periods.SelectPreset(ctx, view.PeriodMTD)
	case "ytd":
		return d.periods.SelectPreset(ctx, view.PeriodYTD)
	case "ltd":
		return d.periods.SelectPreset(ctx, view.PeriodLTD)
	case "last-month":
		return d.periods.SelectPreset(ctx, view.PeriodLastMonth)
	case "last-year":
		return d.periods.SelectPreset(ctx, view.PeriodLastYear)
	}

	month, err := time.Parse("2006-01", arg)
	if err != nil {
		return fmt.Errorf("unknown period %q", arg)
	}
	return d.periods.SetCustom(ctx, month.Year(), int(month.Month()))
}

func (d *dashboard) printReport() {
	if portfolio := d.periods.Portfolio(); portfolio != nil {
		fmt.Printf("Portfolio %s (%d properties)\n", portfolio.Month, len(portfolio.Properties))
		printMonthly(portfolio.PortfolioTotal.Monthly, nil)
		return
	}

	report := d.periods.Report()
	if report == nil {
		fmt.Println("No property selected; use `select <n>` or `select all`")
		return
	}

	fmt.Printf("%s %s\n", report.PropertyAddress, report.Month)
	printMonthly(report.Monthly, d.periods.Comparison())
	if report.Lifetime != nil {
		lt := report.Lifetime
		fmt.Printf("  lifetime since %s: NOI %.2f, cash flow %.2f over %d months\n",
			lt.StartDate, lt.NOI, lt.CashFlow, lt.Months)
	}
}

func printMonthly(m model.MonthlyMetrics, previous *model.PropertyReport) {
	prev := func(pick func(model.MonthlyMetrics) float64) *float64 {
		if previous == nil {
			return nil
		}
		v := pick(previous.Monthly)
		return &v
	}

	printMetric("rent collected", m.RentCollected, prev(func(m model.MonthlyMetrics) float64 { return m.RentCollected }), true)
	printMetric("delinquency", m.Delinquency, prev(func(m model.MonthlyMetrics) float64 { return m.Delinquency }), false)
	printMetric("NOI", m.NOI, prev(func(m model.MonthlyMetrics) float64 { return m.NOI }), true)
	printMetric("cash flow", m.CashFlow, prev(func(m model.MonthlyMetrics) float64 { return m.CashFlow }), true)
	printMetric("occupancy %", m.OccupancyPct, prev(func(m model.MonthlyMetrics) float64 { return m.OccupancyPct }), true)
}

func printMetric(label string, current float64, previous *float64, higherIsBetter bool) {
	direction, sentiment := view.Trend(current, previous, higherIsBetter)

	arrow := " "
	switch direction {
	case view.Up:
		arrow = "^"
	case view.Down:
		arrow = "v"
	}
	note := ""
	if sentiment == view.Bad {
		note = " (!)"
	}
	fmt.Printf("  %-15s %12.2f %s%s\n", label, current, arrow, note)
}

func (d *dashboard) printStatus() {
	if status, ok := d.poller.RefreshStatus(); ok {
		last := "never"
		if status.LastRefresh != nil {
			last = status.LastRefresh.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("Prices last refreshed: %s (auto-refresh every %dm, enabled=%t)\n",
			last, status.IntervalMinutes, status.Enabled)
	}
	if status, ok := d.poller.MarketStatus(); ok {
		if status.IsOpen {
			fmt.Println("Market: open")
		} else if status.NextOpen != nil {
			fmt.Printf("Market: closed, reopens %s\n", status.NextOpen.Local().Format("2006-01-02 15:04"))
		} else {
			fmt.Println("Market: closed")
		}
	}
}

// pick resolves a 1-based index argument against a previously listed slice.
func pick[T any](items []T, arg, kind string) (T, error) {
	var zero T
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		return zero, fmt.Errorf("pick a %s by number from the last listing (1-%d)", kind, len(items))
	}
	return items[n-1], nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
